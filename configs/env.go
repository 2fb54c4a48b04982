package configs

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
}

var Env EnvConfig

func init() {
	// A .env file is optional, real environments inject variables directly.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	Env = EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "redfin-etl"),
		ContextPath:     getStringOrDefault("CONTEXT_PATH", "/redfin-etl"),
	}
}

func getStringOrDefault(key string, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}

	return value
}
