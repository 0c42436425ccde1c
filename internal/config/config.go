package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jusunglee/bart-go/internal/models"
	"github.com/jusunglee/bart-go/pkg/bart"
)

// Config holds settings shared by the command-line tool and the server
type Config struct {
	APIKey    string        `yaml:"api_key"`
	Endpoint  string        `yaml:"endpoint"`
	Station   string        `yaml:"station"`
	Direction string        `yaml:"direction"`
	Timeout   time.Duration `yaml:"timeout"`
	Server    ServerConfig  `yaml:"server"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns the built-in configuration: the public API key, El Cerrito Plaza, south-bound
func Default() Config {
	client := bart.DefaultConfig()

	return Config{
		APIKey:    client.APIKey,
		Endpoint:  client.Endpoint,
		Station:   "PLZA",
		Direction: models.DirectionSouth,
		Timeout:   client.Timeout,
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Load reads a YAML file over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "cannot open config file")
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		decoder.KnownFields(true)
		// An empty file leaves the defaults in place
		if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "cannot parse config file %s", path)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if cfg.Direction != models.DirectionSouth && cfg.Direction != models.DirectionNorth {
		return nil, errors.Errorf("direction must be %q or %q, got %q", models.DirectionSouth, models.DirectionNorth, cfg.Direction)
	}

	return &cfg, nil
}

// ApplyEnv overrides settings from BART_* environment variables and PORT
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("BART_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("BART_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("BART_STATION"); v != "" {
		c.Station = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid PORT %q", v)
		}
		c.Server.Port = port
	}
	return nil
}

// Client converts the settings into a fetcher configuration
func (c *Config) Client() bart.Config {
	client := bart.DefaultConfig()
	client.APIKey = c.APIKey
	client.Endpoint = c.Endpoint
	client.Timeout = c.Timeout
	return client
}
