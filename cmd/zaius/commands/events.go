package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "Send events",
		Long:    "Send customer events and list subscription events",
	}

	cmd.AddCommand(newEventsCreateCommand())
	cmd.AddCommand(newEventsSubscribeCommand())

	return cmd
}

func newEventsCreateCommand() *cobra.Command {
	var (
		data        string
		eventType   string
		action      string
		identifiers []string
		fields      []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Send one or more events",
		Long: `Send events. --data accepts a JSON object or array of events and is sent as-is.
Otherwise a single event is built from --type, --action, --identifier and --field.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := buildEventPayload(data, eventType, action, identifiers, fields)
			if err != nil {
				return err
			}

			client, closer, err := newClient()
			if err != nil {
				return err
			}
			defer closer()

			result, err := client.Events().Create(cmd.Context(), payload, nil)
			if err != nil {
				return fmt.Errorf("failed to send events: %w", err)
			}

			return renderObject(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "events as a JSON object or array")
	cmd.Flags().StringVarP(&eventType, "type", "t", "", "event type")
	cmd.Flags().StringVarP(&action, "action", "a", "", "event action")
	cmd.Flags().StringArrayVarP(&identifiers, "identifier", "i", nil, "identifier as KEY=VALUE (repeatable)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "event data as KEY=VALUE or KEY:=JSON (repeatable)")

	return cmd
}

// buildEventPayload returns the raw --data document or a single event object.
func buildEventPayload(data, eventType, action string, identifiers, fields []string) (interface{}, error) {
	if data != "" {
		value, err := zaius.DecodeValue([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("invalid --data: %w", err)
		}

		return value, nil
	}

	if eventType == "" {
		return nil, constants.ErrEventRequired
	}

	ids, err := parseFields(identifiers)
	if err != nil {
		return nil, err
	}

	eventData, err := parseFields(fields)
	if err != nil {
		return nil, err
	}

	event := zaius.NewObject()
	event.Set("type", eventType)

	if action != "" {
		event.Set("action", action)
	}

	event.Set("identifiers", ids)
	event.Set("data", eventData)

	return event, nil
}

func newEventsSubscribeCommand() *cobra.Command {
	var (
		listID string
		email  string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Subscribe an email to a list",
		Long:  "Send a list subscribe event for an email address",
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseFields(fields)
			if err != nil {
				return err
			}

			request := &zaius.SubscribeRequest{ListID: listID, Email: email, Fields: extra}

			err = request.Validate()
			if err != nil {
				return err
			}

			client, closer, err := newClient()
			if err != nil {
				return err
			}
			defer closer()

			result, err := client.Events().Subscribe(cmd.Context(), request, nil)
			if err != nil {
				return fmt.Errorf("failed to subscribe %s: %w", email, err)
			}

			return renderObject(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&listID, "list-id", "l", "", "list identifier")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "extra event data as KEY=VALUE or KEY:=JSON (repeatable)")

	return cmd
}
