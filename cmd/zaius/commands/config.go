package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Config represents the CLI configuration file.
type Config struct {
	APIKey      string `json:"api_key,omitempty"      yaml:"api_key,omitempty"`
	APIBase     string `json:"api_base,omitempty"     yaml:"api_base,omitempty"`
	Output      string `json:"output,omitempty"       yaml:"output,omitempty"`
	LogLevel    string `json:"log_level,omitempty"    yaml:"log_level,omitempty"`
	RetryMax    int    `json:"retry_max,omitempty"    yaml:"retry_max,omitempty"`
	NATSURL     string `json:"nats_url,omitempty"     yaml:"nats_url,omitempty"`
	NATSSubject string `json:"nats_subject,omitempty" yaml:"nats_subject,omitempty"`
}

// configSetters validate and apply `config set` values.
var configSetters = map[string]func(*Config, string) error{
	"api_key": func(c *Config, v string) error {
		c.APIKey = v

		return nil
	},
	"api_base": func(c *Config, v string) error {
		c.APIBase = v

		return nil
	},
	"output": func(c *Config, v string) error {
		switch v {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			c.Output = v

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, v)
		}
	},
	"log_level": func(c *Config, v string) error {
		level, err := zaius.ParseLogLevel(v)
		if err != nil {
			return err
		}

		c.LogLevel = string(level)

		return nil
	},
	"retry_max": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("retry_max must be an integer: %w", err)
		}

		c.RetryMax = n

		return nil
	},
	"nats_url": func(c *Config, v string) error {
		c.NATSURL = v

		return nil
	},
	"nats_subject": func(c *Config, v string) error {
		c.NATSSubject = v

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the Zaius CLI configuration stored in ~/.zaius/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigSetKeyCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = maskKey(config.APIKey)

			out := cmd.OutOrStdout()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return renderJSON(out, config)
			case constants.FormatYAML:
				return renderYAML(out, config)
			default:
				return displayConfigTable(out, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	keys := make([]string, 0, len(configSetters))
	for key := range configSetters {
		keys = append(keys, key)
	}

	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Set a configuration value",
		Long:      "Set a configuration value in the config file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config := loadConfig()

			err := setter(config, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			if key == "api_key" {
				value = maskKey(value)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return err
		},
	}
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key",
		Long:  "Prompt for the API key without echoing it and store it in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := readAPIKey(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			config := loadConfig()
			config.APIKey = key

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored API key %s\n", maskKey(key))

			return err
		},
	}
}

// readAPIKey reads the key without echo from a terminal, or as one line
// from any other input.
func readAPIKey(in io.Reader, out io.Writer) (string, error) {
	var (
		raw string
		err error
	)

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		_, _ = io.WriteString(out, "API Key: ")

		var keyBytes []byte

		keyBytes, err = term.ReadPassword(int(file.Fd()))

		_, _ = io.WriteString(out, "\n")
		raw = string(keyBytes)
	} else {
		raw, err = bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}

	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	key := strings.TrimSpace(raw)
	if key == "" {
		return "", constants.ErrEmptyAPIKey
	}

	return key, nil
}

func loadConfig() *Config {
	return &Config{
		APIKey:      viper.GetString("api_key"),
		APIBase:     viper.GetString("api_base"),
		Output:      viper.GetString("output"),
		LogLevel:    viper.GetString("log_level"),
		RetryMax:    viper.GetInt("retry_max"),
		NATSURL:     viper.GetString("nats_url"),
		NATSSubject: viper.GetString("nats_subject"),
	}
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".zaius")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(out io.Writer, config *Config) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	rows := [][]string{
		{"API Key", config.APIKey},
		{"API Base", valueOrDefault(config.APIBase, constants.DefaultAPIBase)},
		{"Output", valueOrDefault(config.Output, constants.FormatTable)},
		{"Log Level", valueOrDefault(config.LogLevel, "none")},
		{"Retry Max", strconv.Itoa(config.RetryMax)},
		{"NATS URL", valueOrDefault(config.NATSURL, constants.NotAvailable)},
		{"NATS Subject", valueOrDefault(config.NATSSubject, constants.DefaultNATSSubject)},
	}

	for _, row := range rows {
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
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
