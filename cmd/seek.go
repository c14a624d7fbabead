// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var seekCmd = &cobra.Command{
	Use:   "seek <+seconds|-seconds>",
	Short: "Seek within the current track",
	Long: `Seeks relative to the current position. A leading + (or no sign) moves
forward, a leading - moves backward. Negative offsets need -- so they are
not read as flags:

  phonostat seek +30
  phonostat seek -- -10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]
		backward := strings.HasPrefix(arg, "-")
		arg = strings.TrimPrefix(strings.TrimPrefix(arg, "+"), "-")

		seconds, err := strconv.Atoi(arg)
		if err != nil || seconds < 0 {
			return fmt.Errorf("invalid seek offset %q", args[0])
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		if backward {
			return dev.SeekBackward(seconds)
		}
		return dev.SeekForward(seconds)
	},
}

var repeatCmd = &cobra.Command{
	Use:   "repeat <start> <end> | repeat end",
	Short: "Loop a section of the current track",
	Long: `Starts an A-B repeat between two mm:ss positions of the current track,
or ends a running repeat:

  phonostat repeat 00:15 01:02
  phonostat repeat end`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if args[0] != "end" {
				return fmt.Errorf("expected two mm:ss positions or \"end\"")
			}

			dev, conn, _, err := openDevice()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
				os.Exit(2)
			}
			defer conn.Close()

			return dev.EndRepeat()
		}

		startMin, startSec, err := parseClock(args[0])
		if err != nil {
			return err
		}
		endMin, endSec, err := parseClock(args[1])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.RepeatRange(startMin, startSec, endMin, endSec)
	},
}

func init() {
	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(repeatCmd)
}
