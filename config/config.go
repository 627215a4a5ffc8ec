package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mbenaiss/whatsapp-client/logging"
)

// Config struct to hold the configuration
type Config struct {
	Host     string        `envconfig:"WHATSAPP_HOST" default:"http://localhost:3000"`
	Token    string        `envconfig:"WHATSAPP_TOKEN"`
	Timeout  time.Duration `envconfig:"WHATSAPP_TIMEOUT" default:"30s"`
	Port     string        `envconfig:"PORT" default:"8080"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load function to load the configuration from .env and the environment
// variables
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile loads the dotenv file at path, if it exists, before reading the
// environment. Variables already set in the environment are not overridden.
func LoadFile(path string) (Config, error) {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("unable to load %s: %w", path, err)
	}

	var c Config
	err = envconfig.Process("", &c)
	if err != nil {
		return Config{}, fmt.Errorf("unable to get envconfig: %w", err)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return c, nil
}
