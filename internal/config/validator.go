package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// Validate checks field ranges and resolves FARM_TIMEZONE
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	loc, err := time.LoadLocation(c.FarmTimezone)
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidTimezone, c.FarmTimezone, err)
	}
	c.location = loc

	if c.StealCooldown != nil && *c.StealCooldown < 0 {
		return fmt.Errorf("%s: StealCooldown must not be negative", ErrMsgInvalidConfig)
	}
	return nil
}

// Warnings reports insecure or surprising settings that do not prevent startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.APIKey == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if c.StorageBackend == StorageBackendMemory && !strings.HasPrefix(c.Environment, "dev") && c.Environment != "test" {
		warnings = append(warnings, "STORAGE_BACKEND=memory loses every farm on restart")
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			warnings = append(warnings, fmt.Sprintf("CATALOG_PATH %s is not readable: %v", c.CatalogPath, err))
		}
	}

	return warnings
}
