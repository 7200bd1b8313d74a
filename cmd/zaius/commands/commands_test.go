package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomersCommand(t *testing.T) {
	cmd := NewCustomersCommand()
	assert.Equal(t, "customers", cmd.Use)
	assert.Equal(t, []string{"customer", "profiles"}, cmd.Aliases)
	assert.Equal(t, "Manage customer profiles", cmd.Short)

	requireSubcommands(t, cmd, "get", "create", "update", "retrieve")

	get := findSubcommand(cmd, "get")
	emailFlag := get.Flags().Lookup("email")
	assert.NotNil(t, emailFlag)
	assert.Equal(t, "e", emailFlag.Shorthand)
	assert.NotNil(t, get.Flags().Lookup("filter"))

	for _, name := range []string{"create", "update"} {
		sub := findSubcommand(cmd, name)
		assert.NotNil(t, sub.Flags().Lookup("field"), "Flag field should exist on %s", name)
		assert.NotNil(t, sub.Flags().Lookup("data"), "Flag data should exist on %s", name)
	}

	assert.Equal(t, "retrieve CUSTOMER_ID", findSubcommand(cmd, "retrieve").Use)
}

func TestNewEventsCommand(t *testing.T) {
	cmd := NewEventsCommand()
	assert.Equal(t, "events", cmd.Use)

	requireSubcommands(t, cmd, "create", "subscribe")

	create := findSubcommand(cmd, "create")
	for _, flagName := range []string{"data", "type", "action", "identifier", "field"} {
		assert.NotNil(t, create.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	subscribe := findSubcommand(cmd, "subscribe")
	for _, flagName := range []string{"list-id", "email", "field"} {
		assert.NotNil(t, subscribe.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestNewListsCommand(t *testing.T) {
	cmd := NewListsCommand()
	assert.Equal(t, "lists", cmd.Use)

	requireSubcommands(t, cmd, "list", "create", "get")

	assert.Equal(t, "get LIST_ID", findSubcommand(cmd, "get").Use)
	assert.NotNil(t, findSubcommand(cmd, "create").Flags().Lookup("name"))
}

func TestNewSubscriptionsCommand(t *testing.T) {
	cmd := NewSubscriptionsCommand()
	assert.Equal(t, "subscriptions", cmd.Use)
	assert.Equal(t, []string{"subscription", "subs"}, cmd.Aliases)

	requireSubcommands(t, cmd, "get", "opt-in", "opt-out", "update")

	update := findSubcommand(cmd, "update")
	unsubscribe := update.Flags().Lookup("unsubscribe")
	assert.NotNil(t, unsubscribe)
	assert.Equal(t, "false", unsubscribe.DefValue)
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	requireSubcommands(t, cmd, "show", "set", "set-key")
	assert.Equal(t, "set KEY VALUE", findSubcommand(cmd, "set").Use)
}

func TestNewVersionCommand(t *testing.T) {
	useViper(t, "", "json")

	cmd := NewVersionCommand("1.0.0", "abc123", "2024-01-01")
	assert.Equal(t, "version", cmd.Use)

	out, err := runCommand(t, cmd)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.0.0","commit":"abc123","built":"2024-01-01","user_agent":"Zaius/v1 GoBindings/1.2.0"}`, out)
}
