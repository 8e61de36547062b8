package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bovan/import-sorter/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Resolve and print the effective configuration: built-in defaults,
the editor settings snapshot, and the project configuration file
merged in ascending precedence.`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root, err := resolveWorkspace()
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	resolver := config.NewResolver(root, settings)
	resolver.OnWarning = func(msg string) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}

	cfg, err := resolver.Resolve()
	if err != nil {
		return err
	}

	out := map[string]any{
		"configuration": cfg,
		"file":          resolver.Presence(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
