package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// useViper points the CLI configuration at base and resets it afterwards.
func useViper(t *testing.T, base, output string) {
	t.Helper()

	viper.Reset()
	viper.Set("api_key", "test-api-key")
	viper.Set("api_base", base)
	viper.Set("output", output)
	t.Cleanup(viper.Reset)
}

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// recordingServer answers every request with body and records it.
func recordingServer(t *testing.T, body string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []capturedRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		mu.Lock()
		requests = append(requests, capturedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.RawQuery,
			Body:   string(data),
		})
		mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, body)
	}))
	t.Cleanup(server.Close)

	return server, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()

		return append([]capturedRequest(nil), requests...)
	}
}

// runCommand executes cmd with args and returns its standard output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func requireSubcommands(t *testing.T, cmd *cobra.Command, names ...string) {
	t.Helper()

	require.Len(t, cmd.Commands(), len(names))

	for _, name := range names {
		sub := findSubcommand(cmd, name)
		require.NotNil(t, sub, "subcommand %s should exist", name)
		require.NotNil(t, sub.RunE, "subcommand %s should be runnable", name)
	}
}
