package warehouse

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/pkg/resource"
)

// Config holds the Snowflake object names the bootstrap script creates.
type Config struct {
	Database         string
	TableSchema      string
	FileFormatSchema string
	StageSchema      string
	PipeSchema       string
	Table            string
	FileFormat       string
	Stage            string
	Pipe             string

	// StageURL is the s3 URL the external stage reads transformed
	// objects from
	StageURL string
}

// ConfigFromResources builds the warehouse config from the application
// resources. The stage URL points at the transform zone prefix.
func ConfigFromResources() Config {
	return Config{
		Database:         resource.GetString("app.warehouse.database"),
		TableSchema:      resource.GetString("app.warehouse.table-schema"),
		FileFormatSchema: resource.GetString("app.warehouse.file-format-schema"),
		StageSchema:      resource.GetString("app.warehouse.stage-schema"),
		PipeSchema:       resource.GetString("app.warehouse.pipe-schema"),
		Table:            resource.GetString("app.warehouse.table"),
		FileFormat:       resource.GetString("app.warehouse.file-format"),
		Stage:            resource.GetString("app.warehouse.stage"),
		Pipe:             resource.GetString("app.warehouse.pipe"),
		StageURL: fmt.Sprintf("s3://%s/%s",
			resource.GetString("app.storage.transform-bucket"),
			resource.GetString("app.storage.transform-prefix")),
	}
}

const scriptTemplate = `-- Bootstrap objects for the {{.Database}} warehouse
CREATE DATABASE IF NOT EXISTS {{.Database}};

CREATE SCHEMA IF NOT EXISTS {{.Database}}.{{.TableSchema}};
CREATE SCHEMA IF NOT EXISTS {{.Database}}.{{.FileFormatSchema}};
CREATE SCHEMA IF NOT EXISTS {{.Database}}.{{.StageSchema}};
CREATE SCHEMA IF NOT EXISTS {{.Database}}.{{.PipeSchema}};

CREATE OR REPLACE TABLE {{.Database}}.{{.TableSchema}}.{{.Table}} (
{{.ColumnList}}
);

CREATE OR REPLACE FILE FORMAT {{.Database}}.{{.FileFormatSchema}}.{{.FileFormat}}
    TYPE = 'CSV'
    FIELD_DELIMITER = ','
    RECORD_DELIMITER = '\n'
    SKIP_HEADER = 1;

CREATE OR REPLACE STAGE {{.Database}}.{{.StageSchema}}.{{.Stage}}
    URL = '{{.StageURL}}'
    FILE_FORMAT = {{.Database}}.{{.FileFormatSchema}}.{{.FileFormat}};

CREATE OR REPLACE PIPE {{.Database}}.{{.PipeSchema}}.{{.Pipe}}
AUTO_INGEST = TRUE
AS
COPY INTO {{.Database}}.{{.TableSchema}}.{{.Table}}
FROM @{{.Database}}.{{.StageSchema}}.{{.Stage}}
FILE_FORMAT = (FORMAT_NAME = '{{.Database}}.{{.FileFormatSchema}}.{{.FileFormat}}');

DESC PIPE {{.Database}}.{{.PipeSchema}}.{{.Pipe}};
`

type templateData struct {
	Config
	ColumnList string
}

// Render writes the warehouse bootstrap SQL to w. The column list is checked
// against the transform output columns before anything is written.
func Render(w io.Writer, config Config) error {
	if err := validateColumns(); err != nil {
		return err
	}

	tmpl, err := template.New("warehouse").Parse(scriptTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse warehouse template: %w", err)
	}

	data := templateData{Config: config, ColumnList: columnList()}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render warehouse script: %w", err)
	}
	return nil
}

// RenderFile renders the bootstrap SQL into the file at path
func RenderFile(path string, config Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = Render(file, config)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// validateColumns keeps the warehouse table and the transform output in
// lockstep: same names, same order
func validateColumns() error {
	columns := entity.MarketColumns()
	if len(columnDefs) != len(columns) {
		return fmt.Errorf("warehouse defines %d columns, transform writes %d", len(columnDefs), len(columns))
	}
	for i, def := range columnDefs {
		if def[0] != columns[i] {
			return fmt.Errorf("warehouse column %d is %q, transform writes %q", i, def[0], columns[i])
		}
	}
	return nil
}

func columnList() string {
	lines := make([]string, len(columnDefs))
	for i, def := range columnDefs {
		line := fmt.Sprintf("    %s %s", def[0], def[1])
		if i < len(columnDefs)-1 {
			line += ","
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
