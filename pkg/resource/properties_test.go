package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing properties: %v", err)
	}

	return path
}

func TestInitResolvesPlaceholders(t *testing.T) {
	t.Setenv("RESOURCE_TEST_PORT", "9090")
	os.Unsetenv("RESOURCE_TEST_BUCKET")

	path := writeProperties(t, `
app:
  name: pipeline-test
  server:
    port: ${RESOURCE_TEST_PORT:8080}
  storage:
    raw-bucket: ${RESOURCE_TEST_BUCKET:store-raw-data-yml}
  pipeline:
    skip-unchanged: true
    retry:
      max-attempts: 3
      delay: 30s
`)

	if err := Init(path); err != nil {
		t.Fatalf("loading properties: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{name: "literal string survives", got: GetString("app.name"), want: "pipeline-test"},
		{name: "env value wins over default", got: GetString("app.server.port"), want: "9090"},
		{name: "default used when env unset", got: GetString("app.storage.raw-bucket"), want: "store-raw-data-yml"},
		{name: "bool key", got: GetBool("app.pipeline.skip-unchanged"), want: true},
		{name: "int key", got: GetInt("app.pipeline.retry.max-attempts"), want: 3},
		{name: "duration key", got: GetDuration("app.pipeline.retry.delay"), want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestInitFailsOnBrokenFile(t *testing.T) {
	path := writeProperties(t, "app:\n  name: [unclosed")

	if err := Init(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestResolveEnvVariable(t *testing.T) {
	t.Setenv("RESOURCE_TEST_SET", "from-env")
	os.Unsetenv("RESOURCE_TEST_UNSET")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "plain string", value: "redfin_data/", want: "redfin_data/"},
		{name: "env set", value: "${RESOURCE_TEST_SET:fallback}", want: "from-env"},
		{name: "env unset uses default", value: "${RESOURCE_TEST_UNSET:fallback}", want: "fallback"},
		{name: "env unset without default", value: "${RESOURCE_TEST_UNSET}", want: ""},
		{name: "placeholder inside text", value: "s3://${RESOURCE_TEST_UNSET:bucket}/prefix", want: "s3://bucket/prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveEnvVariable(tt.value); got != tt.want {
				t.Errorf("resolveEnvVariable(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
