// Package config is used to configure the application settings.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
)

// Config - application configuration structure.
type Config struct {
	// Addr: string with the address on which the server will run (e.g., "localhost:8080").
	Addr string `json:"server_address"`
	// BaseDomain: apex domain the redirect subdomains live under (e.g., "rustref.com").
	BaseDomain string `json:"base_domain"`
	// RedirectsFile: path to the local redirects.toml file.
	RedirectsFile string `json:"redirects_file"`
	// RedirectsURL: raw URL of redirects.toml in the configuration repository.
	// When set, reloads download the latest config instead of re-reading the file.
	RedirectsURL string `json:"redirects_url"`
	// DBConnection: database connection string for a PostgreSQL-backed config.
	DBConnection string `json:"database_dsn"`
	// GithubSecret: shared secret for verifying webhook signatures.
	GithubSecret string
	// ConfigPath: path to configuration file.
	ConfigPath string
	// Timeout: integer value representing the request processing timeout in seconds.
	Timeout int
}

var cfgDefault = Config{
	Addr:          "localhost:8080",
	BaseDomain:    "rustref.com",
	RedirectsFile: "redirects.toml",
	RedirectsURL:  "",
	DBConnection:  "",
	Timeout:       15,
}

// NewConfig creates and returns a new instance of the Config structure with predefined values.
func NewConfig() *Config {
	c := cfgDefault
	return &c
}

// ErrReadConfig - error reading json config.
var ErrReadConfig = errors.New("reading json config")

// ErrParseConfig - error parsing json config.
var ErrParseConfig = errors.New("parse json config")

// Init initializes the application configuration using environment variables and command-line flags.
func Init(c *Config) error {
	if val, exist := os.LookupEnv("SERVER_ADDRESS"); exist {
		c.Addr = val
	}
	if val, exist := os.LookupEnv("BASE_DOMAIN"); exist {
		c.BaseDomain = val
	}
	if val, exist := os.LookupEnv("REDIRECTS_FILE"); exist {
		c.RedirectsFile = val
	}
	if val, exist := os.LookupEnv("REDIRECTS_URL"); exist {
		c.RedirectsURL = val
	}
	if val, exist := os.LookupEnv("DATABASE_DSN"); exist {
		c.DBConnection = val
	}
	if val, exist := os.LookupEnv("GITHUB_SECRET"); exist {
		c.GithubSecret = val
	}

	var flagCgf Config
	flag.StringVar(&flagCgf.Addr, "a", "", "HTTP-server startup address")
	flag.StringVar(&flagCgf.BaseDomain, "b", "", "apex domain served by the redirector")
	flag.StringVar(&flagCgf.RedirectsFile, "f", "", "path to the local redirects.toml")
	flag.StringVar(&flagCgf.RedirectsURL, "u", "", "raw URL of redirects.toml for remote reloads")
	flag.StringVar(&flagCgf.DBConnection, "d", "", "database connection address")
	flag.StringVar(&flagCgf.ConfigPath, "c", "", "path to config file (json)")

	flag.Parse()

	if flagCgf.ConfigPath != "" {
		file, err := os.ReadFile(flagCgf.ConfigPath)
		if err != nil {
			return ErrReadConfig
		}
		if err := json.Unmarshal(file, &c); err != nil {
			return ErrParseConfig
		}
	}

	// override
	if flagCgf.Addr != "" {
		c.Addr = flagCgf.Addr
	}
	if flagCgf.BaseDomain != "" {
		c.BaseDomain = flagCgf.BaseDomain
	}
	if flagCgf.RedirectsFile != "" {
		c.RedirectsFile = flagCgf.RedirectsFile
	}
	if flagCgf.RedirectsURL != "" {
		c.RedirectsURL = flagCgf.RedirectsURL
	}
	if flagCgf.DBConnection != "" {
		c.DBConnection = flagCgf.DBConnection
	}

	return nil
}
