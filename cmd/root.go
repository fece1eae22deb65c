package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-blockidx/internal/config"
	"github.com/deploymenttheory/go-blockidx/pkg/app"
	"github.com/deploymenttheory/go-blockidx/pkg/services"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	noColor      bool
	outputFormat string
	configFile   string

	// Loaded in PersistentPreRunE
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "blockidx",
	Short: "Disk-resident B-tree index of unsigned 64-bit keys",
	Long: `blockidx maintains a persistent B-tree index in a single file of
fixed 512-byte blocks. Block 0 holds the header; every other block holds
one node of minimum degree 10 (up to 19 keys).

Commands:
  create      Create a new, empty index file
  insert      Insert one key/value pair
  search      Look up the value for a key
  print       Print every key,value pair in ascending key order
  extract     Write every key,value pair to a new file
  load        Insert key,value records from a file or stdin
  stat        Report tree structure and verify its invariants`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.New(), configFile)
		if err != nil {
			return err
		}
		settings = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored status messages")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default searches ./blockidx-config.yaml)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format. The flag wins over the config
// file when given explicitly.
func GetOutputFormat() string {
	if settings != nil && !rootCmd.PersistentFlags().Changed("output") {
		return settings.Output
	}
	return outputFormat
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	if settings == nil {
		return config.Default()
	}
	return settings
}

// newContext builds the application context shared by every command
func newContext() (*app.Context, error) {
	format := GetOutputFormat()
	if err := app.ValidateOutputFormat(format); err != nil {
		return nil, err
	}

	cfg := GetConfig()
	ctx := app.NewContext()
	ctx.OutputFormat = format
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	ctx.NoColor = noColor || cfg.NoColor

	factory := services.NewServiceFactoryFromConfig(cfg)
	factory.Initialize()
	ctx.Services = factory
	return ctx, nil
}
