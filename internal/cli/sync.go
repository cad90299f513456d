package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"LinguaNews/internal/leveled"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the latest stories and print them",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	application, err := buildApp(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Sync(cmd.Context()); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	news := application.Store.News()
	level := application.Store.Settings().Level
	fmt.Printf("%d stories (level %s)\n\n", len(news.Items), level)

	for _, item := range news.Items {
		summary := leveled.Truncate(leveled.Plaintext(leveled.ContentFor(item, level)), 120)
		fmt.Printf("%s  %s\n    %s\n", item.ID, item.Title, summary)
	}
	return nil
}
