package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subscription", "subs"},
		Short:   "Manage list subscriptions",
		Long:    "Inspect and change list subscriptions and the global opt-in state of an email",
	}

	cmd.AddCommand(newSubscriptionsGetCommand())
	cmd.AddCommand(newSubscriptionsOptInCommand())
	cmd.AddCommand(newSubscriptionsOptOutCommand())
	cmd.AddCommand(newSubscriptionsUpdateCommand())

	return cmd
}

func newSubscriptionsGetCommand() *cobra.Command {
	var (
		email   string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show subscriptions of an email",
		Long:  "Display the list subscriptions and opt-in state of an email address",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := emailParams(email, filters)
			if err != nil {
				return err
			}

			return runObjectCall(cmd, "failed to get subscriptions", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Subscriptions().List(ctx, params, nil)
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "extra query parameter as KEY=VALUE (repeatable)")

	return cmd
}

func newSubscriptionsOptInCommand() *cobra.Command {
	var (
		email  string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "opt-in",
		Short: "Opt an email in",
		Long:  "Set the global opt-in state of an email address",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := emailParams(email, fields)
			if err != nil {
				return err
			}

			return runObjectCall(cmd, "failed to opt in", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Subscriptions().OptIn(ctx, params, nil)
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "extra field as KEY=VALUE or KEY:=JSON (repeatable)")

	return cmd
}

func newSubscriptionsOptOutCommand() *cobra.Command {
	var (
		email  string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "opt-out",
		Short: "Opt an email out",
		Long:  "Clear the global opt-in state of an email address",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := emailParams(email, fields)
			if err != nil {
				return err
			}

			return runObjectCall(cmd, "failed to opt out", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Subscriptions().OptOut(ctx, params, nil)
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "extra field as KEY=VALUE or KEY:=JSON (repeatable)")

	return cmd
}

func newSubscriptionsUpdateCommand() *cobra.Command {
	var (
		email        string
		listID       string
		unsubscribed bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change a list subscription",
		Long:  "Subscribe an email to a list, or unsubscribe it with --unsubscribe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return constants.ErrEmailFlagRequired
			}

			if strings.TrimSpace(listID) == "" {
				return constants.ErrListIDFlagRequired
			}

			update := &zaius.SubscriptionUpdate{Email: email, ListID: listID, Subscribed: !unsubscribed}

			return runObjectCall(cmd, "failed to update subscription", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Subscriptions().Update(ctx, update, nil)
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&listID, "list-id", "l", "", "list identifier")
	cmd.Flags().BoolVar(&unsubscribed, "unsubscribe", false, "unsubscribe instead of subscribing")

	return cmd
}

func emailParams(email string, fields []string) (zaius.Params, error) {
	if strings.TrimSpace(email) == "" {
		return nil, constants.ErrEmailFlagRequired
	}

	params, err := parseFields(fields)
	if err != nil {
		return nil, err
	}

	params["email"] = email

	return params, nil
}
