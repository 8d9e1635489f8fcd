package logger

import "go.uber.org/fx"

// Module provides the console *slog.Logger built from configuration.
var Module = fx.Provide(New)
