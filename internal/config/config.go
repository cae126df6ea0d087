// Package config provides centralized configuration management for the application.
//
// Two kinds of configuration live here: process Settings, resolved by viper from
// flags, TICKETBOARD_* environment variables and defaults, and the JIRA
// Configuration, which is persisted by a Store between runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName = "ticketboard"

	keyListen      = "listen"
	keyLocale      = "locale"
	keyTimeout     = "timeout"
	keyCredentials = "credentials"
	keyLogLevel    = "log-level"
	keyPprof       = "pprof"

	DefaultListenAddress  = ":8080"
	DefaultLocale         = "pt-BR"
	DefaultRequestTimeout = 30 * time.Second
)

// Settings holds process-level parameters.
type Settings struct {
	ListenAddress   string
	Locale          string
	RequestTimeout  time.Duration
	CredentialsPath string
	LogLevel        string
	Pprof           bool
}

// LoadSettings resolves Settings from the given flags, the environment and
// defaults, in that order of precedence. flags may be nil.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyListen, DefaultListenAddress)
	v.SetDefault(keyLocale, DefaultLocale)
	v.SetDefault(keyTimeout, DefaultRequestTimeout)
	v.SetDefault(keyCredentials, DefaultCredentialsPath())
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyPprof, false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	settings := &Settings{
		ListenAddress:   v.GetString(keyListen),
		Locale:          v.GetString(keyLocale),
		RequestTimeout:  v.GetDuration(keyTimeout),
		CredentialsPath: v.GetString(keyCredentials),
		LogLevel:        v.GetString(keyLogLevel),
		Pprof:           v.GetBool(keyPprof),
	}

	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func validateSettings(s *Settings) error {
	var invalid []string

	if s.RequestTimeout < 0 {
		invalid = append(invalid, keyTimeout)
	}
	if strings.TrimSpace(s.Locale) == "" {
		invalid = append(invalid, keyLocale)
	}
	if strings.TrimSpace(s.CredentialsPath) == "" {
		invalid = append(invalid, keyCredentials)
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid settings: %v", invalid)
	}

	return nil
}

// DefaultCredentialsPath returns ~/.ticketboard/credentials.yaml, or a path
// relative to the working directory when the home directory is unknown.
func DefaultCredentialsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("."+appName, "credentials.yaml")
	}
	return filepath.Join(homeDir, "."+appName, "credentials.yaml")
}
