package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/resource"
)

const passwordEnv = "FINDASH_PASSWORD"

var errNotLoggedIn = errors.New("not logged in")

func kindNames() []string {
	names := make([]string, 0, len(model.Kinds))
	for _, k := range model.Kinds {
		names = append(names, k.String())
	}
	return names
}

func password(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(passwordEnv)
}

func (c *cli) loginCommand() *cobra.Command {
	var email, pass string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, con console) error {
				s, err := con.Auth.Login(ctx, email, password(pass))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", s.User.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&pass, "password", "", "Account password, defaults to $"+passwordEnv)
	return cmd
}

func (c *cli) signupCommand() *cobra.Command {
	var name, email, pass string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, con console) error {
				s, err := con.Auth.Signup(ctx, name, email, password(pass))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s\n", s.User.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&pass, "password", "", "Account password, defaults to $"+passwordEnv)
	return cmd
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, con console) error {
				if err := con.Auth.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

func (c *cli) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the user of the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(_ context.Context, con console) error {
				s := con.Sessions.Current()
				if !s.Authenticated() {
					return errNotLoggedIn
				}
				return printJSON(cmd.OutOrStdout(), s.User)
			})
		},
	}
}

func (c *cli) listCommand() *cobra.Command {
	var query, category, status string
	cmd := &cobra.Command{
		Use:       "list <" + strings.Join(kindNames(), "|") + ">",
		Short:     "List a resource with optional filters",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, con console) error {
				var items any
				switch model.Kind(args[0]) {
				case model.KindCustomers:
					if err := con.Customers.SetFilter(ctx, model.CustomerFilter{Query: query}); err != nil {
						return err
					}
					items = con.Customers.Items()
				case model.KindProducts:
					if err := con.Products.SetFilter(ctx, model.ProductFilter{Category: model.ProductCategory(category)}); err != nil {
						return err
					}
					items = con.Products.Items()
				case model.KindOrders:
					if err := con.Orders.SetFilter(ctx, model.OrderFilter{Status: model.OrderStatus(status)}); err != nil {
						return err
					}
					items = con.Orders.Items()
				}
				return printJSON(cmd.OutOrStdout(), items)
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Customer name or email search")
	cmd.Flags().StringVar(&category, "category", "", "Product category")
	cmd.Flags().StringVar(&status, "status", "", "Order status")
	return cmd
}

type deleter interface {
	Delete(ctx context.Context, id model.ID) (resource.Outcome, error)
}

func (c *cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "delete <" + strings.Join(kindNames(), "|") + "> <id>",
		Short:     "Delete one record",
		Args:      cobra.ExactArgs(2),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, con console) error {
				views := map[model.Kind]deleter{
					model.KindCustomers: con.Customers,
					model.KindProducts:  con.Products,
					model.KindOrders:    con.Orders,
				}
				view, ok := views[model.Kind(args[0])]
				if !ok {
					return fmt.Errorf("unknown resource %q", args[0])
				}
				out, err := view.Delete(ctx, model.ID(args[1]))
				if err != nil {
					return err
				}
				if out.Kind == resource.OutcomeError {
					return errors.New(out.Message)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				return nil
			})
		},
	}
}

func (c *cli) overviewCommand() *cobra.Command {
	var start, end, category string
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the analytics overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, con console) error {
				f := model.DashboardFilter{StartDate: start, EndDate: end, Category: model.ProductCategory(category)}
				if err := con.Dashboard.SetFilter(ctx, f); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), con.Dashboard.State().Overview)
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "End date, YYYY-MM-DD")
	cmd.Flags().StringVar(&category, "category", "", "Product category")
	return cmd
}
