// Package config loads runtime configuration from an optional YAML
// file plus environment variables, with working defaults for every
// field except the bot token.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// DefaultPageURL is the course-catalog page the study plan lives on.
	DefaultPageURL = "https://abit.itmo.ru/program/master/ai"

	defaultDataDir    = "data"
	defaultListenAddr = ":8080"

	botTokenEnv = "TELEGRAM_BOT_TOKEN"
)

// Config is the full runtime configuration.
type Config struct {
	PageURL    string `yaml:"pageUrl" json:"pageUrl"`
	DataDir    string `yaml:"dataDir" json:"dataDir"`
	ListenAddr string `yaml:"listenAddr" json:"listenAddr"`
	BotToken   string `yaml:"botToken" json:"botToken"`
}

// Validate checks the fields every command depends on. The bot token is
// validated separately since only the bot command needs it.
func (c *Config) Validate() []error {
	var errs []error
	if c.PageURL == "" {
		errs = append(errs, errors.New("page URL must not be empty"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data directory must not be empty"))
	}
	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen address must not be empty"))
	}
	return errs
}

// ValidateBot checks the fields the bot command needs.
func (c *Config) ValidateBot() []error {
	var errs []error
	if c.BotToken == "" {
		errs = append(errs, errors.Errorf("%s environment variable is not set", botTokenEnv))
	}
	return errs
}

// NewDefault returns a Config with all defaults applied.
func NewDefault() *Config {
	return &Config{
		PageURL:    DefaultPageURL,
		DataDir:    defaultDataDir,
		ListenAddr: defaultListenAddr,
	}
}

// Load builds the configuration. When configFilePath is non-empty the
// file must exist; otherwise only defaults and environment variables
// apply. Environment keys use the PLANPIPE_ prefix (PLANPIPE_DATADIR,
// PLANPIPE_PAGEURL, ...); the bot token is read from TELEGRAM_BOT_TOKEN.
func Load(configFilePath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("planpipe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("pageUrl", DefaultPageURL)
	v.SetDefault("dataDir", defaultDataDir)
	v.SetDefault("listenAddr", defaultListenAddr)

	if configFilePath != "" {
		if _, err := os.Stat(configFilePath); err != nil {
			return nil, err
		}
		dir, file := filepath.Split(configFilePath)
		ext := filepath.Ext(file)
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(file, ext))
		v.SetConfigType(strings.TrimPrefix(ext, "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Errorf("parsing config file: %s", err.Error())
		}
	}

	cfg := NewDefault()
	cfg.PageURL = v.GetString("pageUrl")
	cfg.DataDir = v.GetString("dataDir")
	cfg.ListenAddr = v.GetString("listenAddr")
	cfg.BotToken = v.GetString("botToken")
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv(botTokenEnv)
	}
	return cfg, nil
}
