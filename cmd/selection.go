// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <track>",
	Short: "Preselect a track without starting playback",
	Long: `Preselects a track by its 1-based physical order number. Playback does
not start until a play command follows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		track, err := parseTrack(args[0])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.SelectTrack(track)
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <disk> <path>",
	Short: "Play a file or folder by path",
	Long: `Plays a file or folder addressed by an 8.3 short path on the given disk
(usb, sd, flash).

Paths use / separators and uppercase 8.3 names. The extension dot may be
written normally; it travels as '*' on the wire. A trailing * plays a
whole folder:

  phonostat path usb /SFX/ALARM01.MP3
  phonostat path sd /VOICE/*`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := parseDisk(args[0])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.PlayPath(disk, args[1])
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Interrupt playback with another track, then resume",
	Long: `Inserts a track into the middle of whatever is playing. The interrupted
track resumes from where it left off once the inserted one finishes or an
"insert done" is sent.`,
}

var insertTrackCmd = &cobra.Command{
	Use:   "track <disk> <track>",
	Short: "Insert a track by number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := parseDisk(args[0])
		if err != nil {
			return err
		}
		track, err := parseTrack(args[1])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.InsertTrack(disk, track)
	},
}

var insertPathCmd = &cobra.Command{
	Use:   "path <disk> <path>",
	Short: "Insert a track by path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, err := parseDisk(args[0])
		if err != nil {
			return err
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.InsertPath(disk, args[1])
	},
}

var insertDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "End the insertion and resume the interrupted track",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		return dev.EndInsert()
	},
}

func init() {
	insertCmd.AddCommand(insertTrackCmd)
	insertCmd.AddCommand(insertPathCmd)
	insertCmd.AddCommand(insertDoneCmd)

	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(insertCmd)
}
