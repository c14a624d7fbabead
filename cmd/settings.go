// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode <name>",
	Short: "Set the play mode",
	Long: `Sets how the module sequences tracks. Modes:

  full-loop     play all tracks, loop forever
  single-loop   repeat the current track forever
  single-stop   play the current track once, then stop (factory default)
  full-random   shuffle across the whole disk
  dir-loop      loop the current folder
  dir-random    shuffle within the current folder
  dir-sequence  play the current folder once, then stop
  sequence      play all tracks once, then stop

The setting persists across power cycles.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parsePlayMode(args[0])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.SetPlayMode(mode)
	},
}

var loopCmd = &cobra.Command{
	Use:   "loop <count>",
	Short: "Set the loop count for the current loop mode",
	Long: `Sets how many times the current loop mode repeats before stopping.
Only meaningful in a looping play mode; the command is refused otherwise.

The check runs against the driver's view of the module: the play_mode
from the config file, or an earlier "mode" in the same console session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid loop count %q", args[0])
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.SetLoopCount(count)
	},
}

var eqCmd = &cobra.Command{
	Use:   "eq <preset>",
	Short: "Set the equalizer preset",
	Long: `Sets the equalizer preset: normal, pop, rock, jazz, classic.
The setting persists across power cycles.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eq, err := parseEQ(args[0])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.SetEQ(eq)
	},
}

var channelCmd = &cobra.Command{
	Use:   "channel <name>",
	Short: "Set the DAC output channel",
	Long: `Selects the DAC output source: mp3 (decoded playback), aux (line input
passthrough), or mp3+aux (both mixed).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, err := parseChannel(args[0])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.SetChannel(ch)
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(eqCmd)
	rootCmd.AddCommand(channelCmd)
}
