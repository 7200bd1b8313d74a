package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	zhttp "github.com/fivetwenty-io/zaius-go/internal/http"
	"github.com/fivetwenty-io/zaius-go/pkg/natslog"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
	"github.com/fivetwenty-io/zaius-go/pkg/zaiusclient"
)

const (
	// JSON formatting.
	defaultJSONIndent = 2
)

// loadClientConfig builds the library configuration from flags, environment
// and the config file. The returned function releases the NATS connection,
// if one was opened.
func loadClientConfig() (*zaius.Config, func(), error) {
	config := &zaius.Config{
		APIKey:   viper.GetString("api_key"),
		APIBase:  viper.GetString("api_base"),
		LogLevel: zaius.LogLevel(viper.GetString("log_level")),
		RetryMax: viper.GetInt("retry_max"),
	}

	natsURL := viper.GetString("nats_url")
	if natsURL == "" {
		return config, func() {}, nil
	}

	logger, closer, err := natslog.Connect(natsURL, viper.GetString("nats_subject"))
	if err != nil {
		return nil, nil, err
	}

	config.Logger = logger

	return config, closer, nil
}

// newClient creates a client from the current configuration.
func newClient() (zaius.Client, func(), error) {
	config, closer, err := loadClientConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := zaiusclient.New(config)
	if err != nil {
		closer()

		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, closer, nil
}

// runObjectCall creates a client, performs call and renders the resulting object.
func runObjectCall(cmd *cobra.Command, action string, call func(context.Context, zaius.Client) (*zaius.Object, error)) error {
	client, closer, err := newClient()
	if err != nil {
		return err
	}
	defer closer()

	result, err := call(cmd.Context(), client)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	return renderObject(cmd.OutOrStdout(), result)
}

// parseFields converts KEY=VALUE and KEY:=JSON arguments into params.
func parseFields(fields []string) (zaius.Params, error) {
	params := zaius.Params{}

	for _, field := range fields {
		if key, raw, ok := strings.Cut(field, ":="); ok && key != "" && !strings.Contains(key, "=") {
			value, err := zaius.DecodeValue([]byte(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", constants.ErrInvalidKeyValue, field, err)
			}

			params[key] = value

			continue
		}

		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidKeyValue, field)
		}

		params[key] = value
	}

	return params, nil
}

// parseData decodes a --data JSON object and overlays fields on top.
func parseData(data string, fields []string) (zaius.Params, error) {
	params := zaius.Params{}

	if data != "" {
		value, err := zaius.DecodeValue([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", constants.ErrInvalidDataPayload, err)
		}

		obj, ok := value.(*zaius.Object)
		if !ok {
			return nil, constants.ErrInvalidDataPayload
		}

		for _, key := range obj.Keys() {
			params[key] = obj.Get(key)
		}
	}

	overlay, err := parseFields(fields)
	if err != nil {
		return nil, err
	}

	return params.Merge(overlay), nil
}

// addFieldFlags registers the --field and --data flags shared by write commands.
func addFieldFlags(cmd *cobra.Command, fields *[]string, data *string) {
	cmd.Flags().StringArrayVarP(fields, "field", "f", nil, "field as KEY=VALUE (string) or KEY:=JSON (repeatable)")
	cmd.Flags().StringVarP(data, "data", "d", "", "request body as a JSON object")
}

// renderObject writes obj in the configured output format.
func renderObject(out io.Writer, obj *zaius.Object) error {
	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		return renderJSON(out, obj)
	case constants.FormatYAML:
		return renderYAML(out, obj)
	case constants.FormatTable, "":
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")

		for _, key := range obj.Keys() {
			err := table.Append([]string{key, formatValue(obj.Get(key))})
			if err != nil {
				return fmt.Errorf("failed to append row to table: %w", err)
			}
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, format)
	}
}

// renderObjects writes a sequence of objects. Table columns are the union
// of the objects' fields in first-seen order.
func renderObjects(out io.Writer, objs []*zaius.Object) error {
	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		return renderJSON(out, objs)
	case constants.FormatYAML:
		return renderYAML(out, objs)
	case constants.FormatTable, "":
		columns := columnsOf(objs)
		if len(columns) == 0 {
			_, err := io.WriteString(out, "No results\n")

			return err
		}

		table := tablewriter.NewWriter(out)
		header := make([]any, len(columns))
		for i, column := range columns {
			header[i] = column
		}

		table.Header(header...)

		for _, obj := range objs {
			row := make([]string, len(columns))
			for i, column := range columns {
				row[i] = formatValue(obj.Get(column))
			}

			err := table.Append(row)
			if err != nil {
				return fmt.Errorf("failed to append row to table: %w", err)
			}
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, format)
	}
}

func columnsOf(objs []*zaius.Object) []string {
	seen := make(map[string]bool)

	var columns []string

	for _, obj := range objs {
		for _, key := range obj.Keys() {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	return columns
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	}
}

func renderJSON(out io.Writer, data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

func renderYAML(out io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// maskKey keeps the last characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return constants.NotAvailable
	}

	return zhttp.RedactKey(key)
}
