package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"LinguaNews/internal/domain"
	"LinguaNews/internal/leveled"
	"LinguaNews/internal/newsapi"
)

var readLevel string

var readCmd = &cobra.Command{
	Use:   "read <article-id>",
	Short: "Print one story at your level",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

var speakCmd = &cobra.Command{
	Use:   "speak <article-id>",
	Short: "Read one story aloud",
	Args:  cobra.ExactArgs(1),
	RunE:  runSpeak,
}

func init() {
	readCmd.Flags().StringVar(&readLevel, "level", "", "CEFR level override (A1-C2)")
	speakCmd.Flags().StringVar(&readLevel, "level", "", "CEFR level override (A1-C2)")
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(speakCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	application, err := buildApp(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	level := application.Store.Settings().Level
	if readLevel != "" {
		if level, err = domain.ParseLevel(readLevel); err != nil {
			return err
		}
	}

	article, err := application.News.FetchDetail(cmd.Context(), args[0])
	if errors.Is(err, newsapi.ErrNotFound) {
		fmt.Printf("No story with id %q.\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n%s\n", article.Title, leveled.Plaintext(leveled.ContentFor(article, level)))
	return nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	application, err := buildApp(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	level := application.Store.Settings().Level
	if readLevel != "" {
		if level, err = domain.ParseLevel(readLevel); err != nil {
			return err
		}
	}

	article, err := application.News.FetchDetail(cmd.Context(), args[0])
	if errors.Is(err, newsapi.ErrNotFound) {
		fmt.Printf("No story with id %q.\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	text := leveled.Plaintext(leveled.ContentFor(article, level))
	if text == "" {
		fmt.Println("Nothing to read for this story.")
		return nil
	}

	// Ctrl+C stops playback before the process exits.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return application.Speech.Speak(ctx, text)
}
