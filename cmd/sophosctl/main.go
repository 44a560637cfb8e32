package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/sophos-partner-client/cmd/sophosctl/commands"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "sophosctl",
	Short: "Sophos Central partner CLI",
	Long: `A command-line interface for Sophos Central partner accounts.

Lists tenant accounts, managed endpoints, and tenant account health, renders
them as tables, and exports them to timestamped CSV files. Run without a
subcommand for the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.RunMenu(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("client-id", "", "Sophos Central API client ID (SOPHOS_CLIENT_ID)")
	rootCmd.PersistentFlags().String("client-secret", "", "Sophos Central API client secret (SOPHOS_CLIENT_SECRET)")
	rootCmd.PersistentFlags().String("api", "", "partner API endpoint URL")
	rootCmd.PersistentFlags().String("token-url", "", "OAuth2 token endpoint URL")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("csv-dir", "output", "directory for CSV exports")
	rootCmd.PersistentFlags().Bool("no-csv", false, "skip CSV export")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "log HTTP requests and responses")

	// Bind flags to viper
	_ = viper.BindPFlag("client-id", rootCmd.PersistentFlags().Lookup("client-id"))
	_ = viper.BindPFlag("client-secret", rootCmd.PersistentFlags().Lookup("client-secret"))
	_ = viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("token-url", rootCmd.PersistentFlags().Lookup("token-url"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("csv-dir", rootCmd.PersistentFlags().Lookup("csv-dir"))
	_ = viper.BindPFlag("no-csv", rootCmd.PersistentFlags().Lookup("no-csv"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewMenuCommand())
	rootCmd.AddCommand(commands.NewTenantsCommand())
	rootCmd.AddCommand(commands.NewEndpointsCommand())
	rootCmd.AddCommand(commands.NewHealthCommand())
}

func initConfig() {
	// Credentials may live in a .env file next to the working directory,
	// mirroring how the API credentials are usually handed out.
	_ = godotenv.Load()

	// SOPHOS_CLIENT_ID and SOPHOS_CLIENT_SECRET resolve through this prefix.
	viper.SetEnvPrefix("SOPHOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
