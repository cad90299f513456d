package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"LinguaNews/internal/notify"
)

var notifyCmd = &cobra.Command{
	Use:   "notify [on|off|test]",
	Short: "Control the daily notification",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	application, err := buildApp(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	switch args[0] {
	case "on":
		err := application.EnableNotifications(cmd.Context())
		if errors.Is(err, notify.ErrPermissionDenied) {
			fmt.Println("Permission denied; notifications stay off.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Daily notification scheduled (%s).\n", application.Notifications.ScheduleID())
		return nil

	case "off":
		application.DisableNotifications()
		fmt.Println("Daily notification cancelled.")
		return nil

	case "test":
		if err := application.Notifications.SendNow(cmd.Context()); err != nil {
			return fmt.Errorf("send test notification: %w", err)
		}
		fmt.Println("Test notification sent.")
		return nil
	}

	return fmt.Errorf("expected on, off, or test, got %q", args[0])
}
