package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run starts the console and blocks until a signal arrives or fx asks to
// shut down, e.g. after the HTTP listener failed.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "findash: start: %v\n", err)
		os.Exit(1)
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "findash: stop: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
