// Package commands provides the CLI commands for the import sorter.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bovan/import-sorter/internal/config"
	"github.com/bovan/import-sorter/internal/logging"
	"github.com/bovan/import-sorter/internal/processor"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel   string
	prettyLogs bool

	workspaceRoot string
	processorCmd  string
	settingsFile  string
)

var rootCmd = &cobra.Command{
	Use:   "import-sorter",
	Short: "Import sorter backend for TypeScript projects",
	Long: `import-sorter keeps TypeScript import blocks ordered.

Run 'import-sorter serve' to start the HTTP backend an editor connects
to, or 'import-sorter sort <directory>' to rewrite a project tree in
place.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; flags beat it when both set a level.
		_ = godotenv.Load()

		cfg := logging.DefaultConfig()
		if cmd.Flags().Changed("log-level") {
			cfg.Level = logging.ParseLevel(logLevel)
		}
		cfg.Pretty = prettyLogs
		logging.Init(cfg)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "Human-readable log output")
	rootCmd.PersistentFlags().StringVar(&workspaceRoot, "workspace", "", "Workspace root (defaults to the current directory)")
	rootCmd.PersistentFlags().StringVar(&processorCmd, "processor", "import-sorter-service", "Import processor command line")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Editor settings snapshot (JSON file)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("import-sorter %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveWorkspace returns the workspace root from flag or current directory.
func resolveWorkspace() (string, error) {
	if workspaceRoot != "" {
		return workspaceRoot, nil
	}
	return os.Getwd()
}

// newProcessor builds the subprocess service from the --processor flag.
func newProcessor(workDir string) *processor.Service {
	return processor.New(strings.Fields(processorCmd), workDir, nil)
}

// loadSettings reads the optional --settings snapshot.
func loadSettings() (config.Settings, error) {
	if settingsFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(settingsFile)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var settings config.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", settingsFile, err)
	}
	return settings, nil
}
