// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Plain environment variables + built-in defaults, when no
//     config file is given at all.
//
// Source 3 matters because this is an interactive tool: it must run
// with zero setup. Double-click-level usage gets a registro.json next
// to the working directory; anything fancier goes in a YAML file.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage driver names accepted in storage_driver.
const (
	DriverJSONFile = "jsonfile"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by
// the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is where the registry lives: a JSON file for the
	// jsonfile driver, a .db file for sqlite. Passing the path in
	// explicitly (rather than deriving it from the program's own
	// location) keeps every operation testable against a temp file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"registro.json"`

	// StorageDriver selects the backend: "jsonfile" (default, the
	// hand-editable format) or "sqlite".
	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"jsonfile"`
}

// MustLoad reads, validates, and returns the application config.
//
// The name follows the Go convention: "Must" functions are allowed to
// fatal on failure, so callers do not check an error — if this
// returns, the config is usable. Unlike a server (which should refuse
// to boot half-configured), a missing config file here just means
// "use the defaults".
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flagPath := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flagPath
	}

	var cfg Config

	if configPath == "" {
		// No file given: environment variables and env-default tags.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
