package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bovan/import-sorter/internal/config"
	"github.com/bovan/import-sorter/internal/event"
	"github.com/bovan/import-sorter/internal/sorter"
)

var sortCmd = &cobra.Command{
	Use:   "sort <directory>",
	Short: "Sort imports across a directory tree",
	Long: `Walk a directory tree and rewrite every TypeScript file whose import
block is out of order. Files are processed one at a time; the first
failure aborts the remainder of the walk.`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	root, err := resolveWorkspace()
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := event.NewBus()
	defer bus.Close()

	unsub := bus.SubscribeAll(func(e event.Event) {
		switch data := e.Data.(type) {
		case event.BatchFileData:
			marker := " "
			if data.Changed {
				marker = "*"
			}
			fmt.Fprintf(os.Stderr, "%s %s\n", marker, data.FilePath)
		case event.ConfigWarningData:
			fmt.Fprintf(os.Stderr, "warning: %s\n", data.Message)
		}
	})
	defer unsub()

	resolver := config.NewResolver(root, settings)
	resolver.OnWarning = func(msg string) {
		bus.PublishSync(event.Event{Type: event.ConfigWarning, Data: event.ConfigWarningData{Message: msg}})
	}

	ctrl := sorter.NewController(resolver, newProcessor(root), sorter.Deps{Bus: bus})

	count, err := ctrl.SortDirectory(ctx, args[0])
	if err != nil {
		return fmt.Errorf("sorted %d files before failing: %w", count, err)
	}

	fmt.Fprintf(os.Stderr, "sorted imports in %d files\n", count)
	return nil
}
