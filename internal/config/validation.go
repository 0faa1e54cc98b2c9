package config

import (
	"fmt"
	"strings"
)

// ValidateBatchSize validates the bulk update batch size
func ValidateBatchSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	if size > 1000000 {
		return fmt.Errorf("batch size too large (max 1,000,000)")
	}
	return nil
}

// ValidatePort validates a TCP port number
func ValidatePort(port int, name string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535", name)
	}
	return nil
}

// ValidateNonEmpty validates a required string setting
func ValidateNonEmpty(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}

// Validate checks the whole configuration and returns the first problem found.
func (c Config) Validate() error {
	if err := ValidateNonEmpty(c.SQLitePath, "SQLITE_DB"); err != nil {
		return err
	}
	if err := ValidateNonEmpty(c.PGHost, "PG_HOST"); err != nil {
		return err
	}
	if err := ValidatePort(c.PGPort, "PG_PORT"); err != nil {
		return err
	}
	if err := ValidateNonEmpty(c.PGUser, "PG_USER"); err != nil {
		return err
	}
	if err := ValidateNonEmpty(c.PGDatabase, "PG_DB"); err != nil {
		return err
	}
	return ValidateBatchSize(c.BatchSize)
}
