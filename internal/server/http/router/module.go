package router

import "go.uber.org/fx"

// Module provides the gin engine serving the console hook surface.
var Module = fx.Provide(Setup)
