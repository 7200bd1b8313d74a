package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// NewListsCommand creates the lists command group.
func NewListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Manage marketing lists",
		Long:    "List, create and inspect Zaius marketing lists",
	}

	cmd.AddCommand(newListsListCommand())
	cmd.AddCommand(newListsCreateCommand())
	cmd.AddCommand(newListsGetCommand())

	return cmd
}

func newListsListCommand() *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketing lists",
		Long:  "List marketing lists, optionally filtered by query parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseFields(filters)
			if err != nil {
				return err
			}

			client, closer, err := newClient()
			if err != nil {
				return err
			}
			defer closer()

			lists, err := client.Lists().List(cmd.Context(), params, nil)
			if err != nil {
				return fmt.Errorf("failed to list lists: %w", err)
			}

			return renderObjects(cmd.OutOrStdout(), lists.Data())
		},
	}

	cmd.Flags().StringArrayVar(&filters, "filter", nil, "query parameter as KEY=VALUE (repeatable)")

	return cmd
}

func newListsCreateCommand() *cobra.Command {
	var (
		name   string
		fields []string
		data   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a marketing list",
		Long:  "Create a marketing list with the given name",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseData(data, fields)
			if err != nil {
				return err
			}

			if name != "" {
				params["name"] = name
			}

			if _, ok := params["name"]; !ok {
				return constants.ErrListNameRequired
			}

			return runObjectCall(cmd, "failed to create list", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Lists().Create(ctx, params, nil)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "list name")
	addFieldFlags(cmd, &fields, &data)

	return cmd
}

func newListsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LIST_ID",
		Short: "Get a marketing list",
		Long:  "Display a single marketing list by its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjectCall(cmd, "failed to get list", func(ctx context.Context, client zaius.Client) (*zaius.Object, error) {
				return client.Lists().Retrieve(ctx, args[0], nil)
			})
		},
	}
}
