package usecase

import "go.uber.org/fx"

// Module provides console use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
)
