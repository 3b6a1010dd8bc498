package main

import (
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/filamentd/filament/internal/dbus"
)

var sendOpts struct {
	appName   string
	icon      string
	urgency   string
	timeout   int32
	replaces  uint32
	soundFile string
}

// sendCmd posts a notification over D-Bus, mainly for trying out
// templates and timeouts against a running daemon.
var sendCmd = &cobra.Command{
	Use:   "send <summary> [body]",
	Short: "Send a test notification",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary := args[0]
		body := ""
		if len(args) == 2 {
			body = args[1]
		}

		urgency, err := urgencyByte(sendOpts.urgency)
		if err != nil {
			return err
		}

		conn, err := godbus.SessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}

		hints := map[string]godbus.Variant{
			"urgency": godbus.MakeVariant(urgency),
		}
		if sendOpts.soundFile != "" {
			hints["sound-file"] = godbus.MakeVariant(sendOpts.soundFile)
		}

		obj := conn.Object(dbus.BusName, dbus.Path)
		call := obj.Call(dbus.Interface+".Notify", 0,
			sendOpts.appName,
			sendOpts.replaces,
			sendOpts.icon,
			summary,
			body,
			[]string{},
			hints,
			sendOpts.timeout,
		)
		if call.Err != nil {
			return fmt.Errorf("notify call failed: %w", call.Err)
		}

		var id uint32
		if err := call.Store(&id); err != nil {
			return fmt.Errorf("failed to read notification id: %w", err)
		}

		fmt.Println(id)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendOpts.appName, "app-name", "a", "filamentd", "Application name")
	sendCmd.Flags().StringVarP(&sendOpts.icon, "icon", "i", "", "Application icon path")
	sendCmd.Flags().StringVarP(&sendOpts.urgency, "urgency", "u", "normal", "Urgency: low, normal or critical")
	sendCmd.Flags().Int32VarP(&sendOpts.timeout, "timeout", "t", -1, "Expire timeout in ms (-1 default, 0 never)")
	sendCmd.Flags().Uint32VarP(&sendOpts.replaces, "replaces", "r", 0, "Notification id to replace")
	sendCmd.Flags().StringVar(&sendOpts.soundFile, "sound-file", "", "Sound file to play")
	rootCmd.AddCommand(sendCmd)
}

func urgencyByte(s string) (byte, error) {
	switch s {
	case "low":
		return 0, nil
	case "normal":
		return 1, nil
	case "critical":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown urgency %q", s)
	}
}
