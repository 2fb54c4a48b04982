package msg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const defaultMessagesPath = "configs/messages.yml"

var messages = map[string]string{}

func init() {
	path := os.Getenv("MESSAGES_FILE_PATH")
	if path == "" {
		path = defaultMessagesPath
	}

	if _, err := os.Stat(path); err != nil {
		log.Printf("messages file %s not found, message catalog disabled", path)
		return
	}

	if err := Init(path); err != nil {
		log.Fatalf("Error loading messages file: %v", err)
	}
}

// Init loads the message catalog from the given YAML file, replacing any
// catalog loaded before it.
func Init(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read messages file: %w", err)
	}

	parsed := map[string]string{}
	parseMessageMap("", v.AllSettings(), parsed)
	messages = parsed

	return nil
}

// parseMessageMap flattens nested message maps into dot separated keys.
func parseMessageMap(prefix string, value map[string]interface{}, out map[string]string) {
	for key, entry := range value {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch typed := entry.(type) {
		case map[string]interface{}:
			parseMessageMap(fullKey, typed, out)
		default:
			out[fullKey] = primitiveToString(typed)
		}
	}
}

// GetMessage returns the catalog message for key with {0}, {1}, ... placeholders
// replaced by args. Unknown keys return the key itself so log lines stay useful.
func GetMessage(key string, args ...interface{}) string {
	message, found := messages[key]
	if !found {
		return key
	}

	for index, arg := range args {
		placeholder := fmt.Sprintf("{%d}", index)
		message = strings.ReplaceAll(message, placeholder, primitiveToString(arg))
	}

	return message
}

func primitiveToString(value interface{}) string {
	if value == nil {
		return ""
	}

	if isPrimitive(value) {
		return fmt.Sprintf("%v", value)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(encoded)
}

func isPrimitive(value interface{}) bool {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
