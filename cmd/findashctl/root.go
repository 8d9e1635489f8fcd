package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/polkiloo/findash/internal/adapter/backend"
	"github.com/polkiloo/findash/internal/config"
	"github.com/polkiloo/findash/internal/logger"
	"github.com/polkiloo/findash/internal/metrics"
	"github.com/polkiloo/findash/internal/resource"
	"github.com/polkiloo/findash/internal/session"
	"github.com/polkiloo/findash/internal/storage"
	"github.com/polkiloo/findash/internal/usecase"
)

// console is the part of the graph the commands use.
type console struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Sessions  *session.Store
	Customers *resource.Customers
	Products  *resource.Products
	Orders    *resource.Orders
	Dashboard *resource.Dashboard
}

type cli struct {
	configFile string
	backendURL string
	stateDSN   string
	timeout    time.Duration

	// options are appended to the graph, tests use them to replace values.
	options []fx.Option
}

func newRootCommand(opts ...fx.Option) *cobra.Command {
	c := &cli{options: opts}
	root := &cobra.Command{
		Use:           "findashctl",
		Short:         "Operate the FinDash backend with the console's stored session",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&c.configFile, "config", "c", "", "YAML configuration file")
	pf.StringVarP(&c.backendURL, "backend", "b", "", "Backend API base URL")
	pf.StringVarP(&c.stateDSN, "state", "s", "", "State storage: memory, sqlite path or postgres DSN")
	pf.DurationVar(&c.timeout, "timeout", 0, "Backend request timeout")

	root.AddCommand(
		c.loginCommand(),
		c.signupCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
		c.listCommand(),
		c.deleteCommand(),
		c.overviewCommand(),
	)
	return root
}

func (c *cli) args() []string {
	var args []string
	if c.configFile != "" {
		args = append(args, "-c", c.configFile)
	}
	if c.backendURL != "" {
		args = append(args, "-b", c.backendURL)
	}
	if c.stateDSN != "" {
		args = append(args, "-s", c.stateDSN)
	}
	if c.timeout > 0 {
		args = append(args, "-request-timeout", c.timeout.String())
	}
	return args
}

// run builds the console graph without its HTTP surface, starts it for the
// duration of fn and stops it afterwards.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, con console) error) error {
	cfg, err := config.Parse(c.args())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var con console
	options := []fx.Option{
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		fx.Supply(cfg),
		fx.Provide(logger.Stderr),
		metrics.Module,
		storage.Module,
		session.Module,
		backend.Module,
		usecase.Module,
		resource.Module,
	}
	options = append(options, c.options...)
	options = append(options, fx.Populate(&con))

	app := fx.New(options...)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return fn(ctx, con)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
