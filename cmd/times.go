// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var timesCmd = &cobra.Command{
	Use:   "times <on|off|watch>",
	Short: "Control the once-a-second play time reports",
	Long: `Turns the module's unsolicited elapsed-time reports on or off, or
watches them live until interrupted:

  phonostat times on      enable reports
  phonostat times off     disable reports
  phonostat times watch   enable reports and print each one (Ctrl+C stops)

Reports are only sent while a track is playing.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off", "watch"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "on", "off", "watch":
		default:
			return fmt.Errorf("expected on, off or watch, got %q", args[0])
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		switch args[0] {
		case "on":
			return dev.StartTimeReports()
		case "off":
			return dev.StopTimeReports()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		defer signal.Stop(sigCh)

		if err := dev.StartTimeReports(); err != nil {
			return err
		}
		fmt.Println("Watching play time reports (Ctrl+C to stop)...")

		for {
			select {
			case <-sigCh:
				fmt.Println()
				return dev.StopTimeReports()
			default:
			}

			t, ok, err := dev.NextTimeReport()
			if err != nil {
				if errors.Is(err, ErrConnectionClosed) {
					fmt.Println("Connection closed")
					return nil
				}
				return err
			}
			if ok {
				fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), t)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(timesCmd)
}
