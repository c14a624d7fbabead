// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <field>",
	Short: "Query a single status field",
	Long: `Queries one status field and prints the value on a line by itself.
Fields:

  state         play state (STOPPED, PLAYING, PAUSED)
  disks         online disk bitmap (for example "USB, FLASH")
  disk          currently selected disk
  tracks        total track count on the current disk
  track         current 1-based track number
  folder-first  first track number of the current folder
  folder-count  track count of the current folder
  name          8.3 short name of the current file
  time          elapsed play time of the current track (hh:mm:ss)

Exit codes:
  0 - Query answered
  1 - No reply before the timeout
  2 - Connection error`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := strings.ToLower(args[0])
		switch field {
		case "state", "disks", "disk", "tracks", "track",
			"folder-first", "folder-count", "name", "time":
		default:
			return fmt.Errorf("unknown field %q", args[0])
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		value, ok, err := queryField(dev, field)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "No reply")
			os.Exit(1)
		}

		fmt.Println(value)
		return nil
	},
}

// queryField runs one named query and renders the reply as a string
func queryField(dev *dysv19t.Device, field string) (string, bool, error) {
	switch field {
	case "state":
		v, ok, err := dev.QueryPlayState()
		return v.String(), ok, err
	case "disks":
		v, ok, err := dev.QueryOnlineDisks()
		return v.String(), ok, err
	case "disk":
		v, ok, err := dev.QueryCurrentDisk()
		return v.String(), ok, err
	case "tracks":
		v, ok, err := dev.QueryTrackCount()
		return strconv.Itoa(v), ok, err
	case "track":
		v, ok, err := dev.QueryCurrentTrack()
		return strconv.Itoa(v), ok, err
	case "folder-first":
		v, ok, err := dev.QueryFolderFirstTrack()
		return strconv.Itoa(v), ok, err
	case "folder-count":
		v, ok, err := dev.QueryFolderTrackCount()
		return strconv.Itoa(v), ok, err
	case "name":
		v, ok, err := dev.QueryShortName()
		return v, ok, err
	case "time":
		v, ok, err := dev.QueryPlayTime()
		return v.String(), ok, err
	}
	return "", false, fmt.Errorf("unknown field %q", field)
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
