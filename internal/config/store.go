package config

import (
	"fmt"
	"strings"
)

// Storage keys for the persisted JIRA configuration.
const (
	KeyURL     = "jiraUrl"
	KeyEmail   = "jiraEmail"
	KeyToken   = "jiraToken"
	KeyProject = "jiraProject"
)

// Defaults applied by Load when a key is missing or empty.
const (
	DefaultInstanceURL = "https://openfinancebrasil.atlassian.net"
	DefaultProjectKey  = "105"
)

// Configuration holds the JIRA connection parameters.
type Configuration struct {
	InstanceURL  string
	AccountEmail string
	APIToken     string
	ProjectKey   string
}

// HasCredentials reports whether both the account email and API token are set.
func (c Configuration) HasCredentials() bool {
	return c.AccountEmail != "" && c.APIToken != ""
}

// ValidationError lists the storage keys of required fields that were empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required configuration fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks that URL, email and token are present.
func (c Configuration) Validate() error {
	var missing []string

	if c.InstanceURL == "" {
		missing = append(missing, KeyURL)
	}
	if c.AccountEmail == "" {
		missing = append(missing, KeyEmail)
	}
	if c.APIToken == "" {
		missing = append(missing, KeyToken)
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (c Configuration) trimmed() Configuration {
	return Configuration{
		InstanceURL:  strings.TrimSpace(c.InstanceURL),
		AccountEmail: strings.TrimSpace(c.AccountEmail),
		APIToken:     strings.TrimSpace(c.APIToken),
		ProjectKey:   strings.TrimSpace(c.ProjectKey),
	}
}

// Store persists a Configuration in a Storage.
type Store struct {
	storage Storage
}

// NewStore creates a Store over the given storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load reads the persisted configuration. Empty values fall back to the
// defaults for the instance URL and project key.
func (s *Store) Load() (Configuration, error) {
	var cfg Configuration

	fields := []struct {
		key      string
		target   *string
		fallback string
	}{
		{KeyURL, &cfg.InstanceURL, DefaultInstanceURL},
		{KeyEmail, &cfg.AccountEmail, ""},
		{KeyToken, &cfg.APIToken, ""},
		{KeyProject, &cfg.ProjectKey, DefaultProjectKey},
	}

	for _, f := range fields {
		value, err := s.storage.Get(f.key)
		if err != nil {
			return Configuration{}, fmt.Errorf("failed to load %s: %w", f.key, err)
		}
		if value == "" {
			value = f.fallback
		}
		*f.target = value
	}

	return cfg, nil
}

// Save trims and validates cfg, then persists all four fields. A blank
// project key is persisted as well. Nothing is written when validation fails.
func (s *Store) Save(cfg Configuration) error {
	cfg = cfg.trimmed()
	if err := cfg.Validate(); err != nil {
		return err
	}

	values := []struct{ key, value string }{
		{KeyURL, cfg.InstanceURL},
		{KeyEmail, cfg.AccountEmail},
		{KeyToken, cfg.APIToken},
		{KeyProject, cfg.ProjectKey},
	}

	for _, kv := range values {
		if err := s.storage.Set(kv.key, kv.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", kv.key, err)
		}
	}

	return nil
}
