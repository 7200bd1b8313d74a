package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
	"github.com/fivetwenty-io/zaius-go/pkg/zaiusclient"
)

// NewCustomersCommand creates the customers command group.
func NewCustomersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer", "profiles"},
		Short:   "Manage customer profiles",
		Long:    "Look up, create and update Zaius customer profiles",
	}

	cmd.AddCommand(newCustomersGetCommand())
	cmd.AddCommand(newCustomersCreateCommand())
	cmd.AddCommand(newCustomersUpdateCommand())
	cmd.AddCommand(newCustomersRetrieveCommand())

	return cmd
}

func newCustomersGetCommand() *cobra.Command {
	var (
		emails  []string
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Look up customers by email",
		Long:  "Look up one or more customer profiles by email. Several emails are looked up concurrently.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(emails) == 0 {
				return constants.ErrEmailFlagRequired
			}

			params, err := parseFields(filters)
			if err != nil {
				return err
			}

			config, closer, err := loadClientConfig()
			if err != nil {
				return err
			}
			defer closer()

			customers, err := lookupCustomers(cmd.Context(), config, emails, params)
			if err != nil {
				return err
			}

			if len(customers) == 1 {
				return renderObject(cmd.OutOrStdout(), customers[0])
			}

			return renderObjects(cmd.OutOrStdout(), customers)
		},
	}

	cmd.Flags().StringSliceVarP(&emails, "email", "e", nil, "customer email (repeatable)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "extra query parameter as KEY=VALUE (repeatable)")

	return cmd
}

// lookupCustomers fetches one profile per email. Each worker owns its own
// client and connection; results keep the order of emails.
func lookupCustomers(ctx context.Context, config *zaius.Config, emails []string, params zaius.Params) ([]*zaius.Object, error) {
	results := make([]*zaius.Object, len(emails))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(constants.DefaultConcurrencyLimit)

	for i, email := range emails {
		group.Go(func() error {
			client, err := zaiusclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			customer, err := client.Customers().Get(ctx, params.Merge(zaius.Params{"email": email}), nil)
			if err != nil {
				return fmt.Errorf("failed to get customer %s: %w", email, err)
			}

			results[i] = customer

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

func newCustomersCreateCommand() *cobra.Command {
	var (
		fields []string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer profile",
		Long:  "Create a customer profile from --data and --field values",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseData(data, fields)
			if err != nil {
				return err
			}

			return runObjectCall(cmd, "failed to create customer", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Customers().Create(ctx, params, nil)
			})
		},
	}

	addFieldFlags(cmd, &fields, &data)

	return cmd
}

func newCustomersUpdateCommand() *cobra.Command {
	var (
		fields []string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a customer profile",
		Long:  "Upsert a customer profile identified by the fields in the body",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseData(data, fields)
			if err != nil {
				return err
			}

			return runObjectCall(cmd, "failed to update customer", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Customers().Update(ctx, params, nil)
			})
		},
	}

	addFieldFlags(cmd, &fields, &data)

	return cmd
}

func newCustomersRetrieveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve CUSTOMER_ID",
		Short: "Retrieve a customer by id",
		Long:  "Retrieve a single customer profile by its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectCall(cmd, "failed to retrieve customer", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Customers().Retrieve(ctx, args[0], nil)
			})
		},
	}
}
