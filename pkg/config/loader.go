// Package config parses service configuration out of the process
// environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg, a pointer to a struct annotated with `env` tags, from
// environment variables. Defaults come from `envDefault` tags; list values
// honor `envSeparator`.
//
//	type Config struct {
//	    HTTPPort int      `env:"HTTP_PORT" envDefault:"8080"`
//	    Brokers  []string `env:"KAFKA_BROKERS" envSeparator:","`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load environment config: %w", err)
	}
	return nil
}
