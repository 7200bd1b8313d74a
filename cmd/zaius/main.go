package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/zaius-go/cmd/zaius/commands"
	"github.com/fivetwenty-io/zaius-go/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "zaius",
	Short: "Zaius API CLI",
	Long: `A command-line interface for the Zaius marketing API.

Manage customer profiles, events, marketing lists and list subscriptions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.zaius/config.yml)")
	rootCmd.PersistentFlags().StringP("api-key", "k", "", "Zaius API key")
	rootCmd.PersistentFlags().String("api-base", "", "API base URL (default "+constants.DefaultAPIBase+")")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "request log level (debug, info, error)")
	rootCmd.PersistentFlags().Int("retry-max", constants.DefaultRetryMax, "additional attempts after a network failure")
	rootCmd.PersistentFlags().String("nats-url", "", "publish request logs to this NATS server")
	rootCmd.PersistentFlags().String("nats-subject", constants.DefaultNATSSubject, "NATS subject for request logs")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("api_base", rootCmd.PersistentFlags().Lookup("api-base"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("retry_max", rootCmd.PersistentFlags().Lookup("retry-max"))
	_ = viper.BindPFlag("nats_url", rootCmd.PersistentFlags().Lookup("nats-url"))
	_ = viper.BindPFlag("nats_subject", rootCmd.PersistentFlags().Lookup("nats-subject"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewCustomersCommand())
	rootCmd.AddCommand(commands.NewEventsCommand())
	rootCmd.AddCommand(commands.NewListsCommand())
	rootCmd.AddCommand(commands.NewSubscriptionsCommand())
}

func initConfig() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.zaius/config.yml
		viper.AddConfigPath(filepath.Join(home, ".zaius"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// ZAIUS_API_KEY, ZAIUS_API_BASE, ...
	viper.SetEnvPrefix("ZAIUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetString("log_level") == "debug" {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
