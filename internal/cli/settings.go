package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"LinguaNews/internal/domain"
)

var levelCmd = &cobra.Command{
	Use:   "level [A1|A2|B1|B2|C1|C2]",
	Short: "Show or set the reading level",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLevel,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources [name on|off]",
	Short: "Show or toggle news sources",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runLevel(cmd *cobra.Command, args []string) error {
	application, err := buildApp(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	if len(args) == 0 {
		fmt.Println(application.Store.Settings().Level)
		return nil
	}

	level, err := domain.ParseLevel(args[0])
	if err != nil {
		return err
	}

	application.SetLevel(level)
	fmt.Printf("Level set to %s.\n", level)
	return nil
}

func runSources(cmd *cobra.Command, args []string) error {
	application, err := buildApp(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	if len(args) == 0 {
		settings := application.Store.Settings()
		for _, src := range domain.Sources() {
			state := "on"
			if !settings.SourceEnabled(src) {
				state = "off"
			}
			fmt.Printf("%-10s %s\n", src, state)
		}
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("usage: sources <name> <on|off>")
	}

	var target domain.Source
	for _, src := range domain.Sources() {
		if string(src) == args[0] {
			target = src
		}
	}
	if target == "" {
		return fmt.Errorf("unknown source %q", args[0])
	}

	enabled, err := parseOnOff(args[1])
	if err != nil {
		return err
	}

	application.SetSourceEnabled(cmd.Context(), target, enabled)
	fmt.Printf("%s is now %s.\n", target, args[1])
	return nil
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", value)
}
