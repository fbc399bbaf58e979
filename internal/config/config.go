package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"pokerverse-server/internal/util"
)

// Config provides configuration for PokerVerse
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	Blinds          struct {
		Small int `yaml:"small" envconfig:"small"`
		Big   int `yaml:"big" envconfig:"big"`
	}
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// DefaultConfig returns a configuration with the default values set
func DefaultConfig() Config {
	var cfg Config
	cfg.PGDSN = "postgres://localhost:5432/pokerverse?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"
	cfg.Blinds.Small = 10
	cfg.Blinds.Big = 20
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the environment alone may configure the server
func Load() error {
	config = Config{}
	config.MigrationsPath = "./sql"
	config.Blinds.Small = 10
	config.Blinds.Big = 20

	configFile := util.Getenv("PV_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("pv", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
