// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query and print the module's full status",
	Long: `Queries every readable status field and prints a summary. Fields the
module does not answer within the timeout show "no reply".

Volume, play mode, equalizer and channel are not queryable; the values
shown are the assumed settings, seeded from the config file defaults.

Exit codes:
  0 - At least one query was answered
  1 - No response to any query
  2 - Connection error`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, conn, connInfo, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		fmt.Printf("Connected: %s\n\n", connInfo)

		replies := 0
		reply := func(value string, ok bool) string {
			if !ok {
				return "no reply"
			}
			replies++
			return value
		}

		state, ok, err := dev.QueryPlayState()
		if err != nil {
			return err
		}
		fmt.Printf("Play state:     %s\n", reply(state.String(), ok))

		disks, ok, err := dev.QueryOnlineDisks()
		if err != nil {
			return err
		}
		fmt.Printf("Online disks:   %s\n", reply(disks.String(), ok))

		disk, ok, err := dev.QueryCurrentDisk()
		if err != nil {
			return err
		}
		fmt.Printf("Current disk:   %s\n", reply(disk.String(), ok))

		tracks, ok, err := dev.QueryTrackCount()
		if err != nil {
			return err
		}
		fmt.Printf("Track count:    %s\n", reply(strconv.Itoa(tracks), ok))

		track, ok, err := dev.QueryCurrentTrack()
		if err != nil {
			return err
		}
		fmt.Printf("Current track:  %s\n", reply(strconv.Itoa(track), ok))

		name, ok, err := dev.QueryShortName()
		if err != nil {
			return err
		}
		fmt.Printf("Track name:     %s\n", reply(name, ok))

		t, ok, err := dev.QueryPlayTime()
		if err != nil {
			return err
		}
		fmt.Printf("Play time:      %s\n", reply(t.String(), ok))

		st := dev.State()
		fmt.Println("\nAssumed settings:")
		fmt.Printf("  Volume:     %d\n", st.Volume)
		fmt.Printf("  Play mode:  %s\n", st.Mode)
		fmt.Printf("  EQ:         %s\n", st.EQ)
		fmt.Printf("  Channel:    %s\n", st.Channel)

		if replies == 0 {
			fmt.Fprintln(os.Stderr, "\nNo response from module")
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
