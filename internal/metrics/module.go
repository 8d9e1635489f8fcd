package metrics

import "go.uber.org/fx"

// Module provides the shared metrics bundle.
var Module = fx.Provide(New)
