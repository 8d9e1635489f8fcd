package config

import "go.uber.org/fx"

// Module provides *Config loaded from the .env file, YAML file, environment and flags.
var Module = fx.Provide(Load)
