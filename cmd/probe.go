// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var probeCount int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check module liveness with timed status queries",
	Long: `Sends play-state queries and measures the response round-trip time.
Useful for verifying wiring and baud rate before anything else.

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

		fmt.Printf("Probing module via %s\n\n", connInfo)

		responses := 0
		for i := 1; i <= probeCount; i++ {
			startTime := time.Now()
			state, ok, err := dev.QueryPlayState()
			if err != nil {
				fmt.Printf("probe %d: error: %v\n", i, err)
				break
			}
			if !ok {
				fmt.Printf("probe %d: no reply\n", i)
				continue
			}

			rtt := time.Since(startTime).Round(time.Millisecond)
			fmt.Printf("probe %d: state=%s time=%v\n", i, state, rtt)
			responses++

			if i < probeCount {
				time.Sleep(100 * time.Millisecond)
			}
		}

		loss := float64(probeCount-responses) / float64(probeCount) * 100
		fmt.Printf("\n--- Probe statistics ---\n")
		fmt.Printf("%d queries sent, %d responses received, %.0f%% packet loss\n",
			probeCount, responses, loss)

		if responses == 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	probeCmd.Flags().IntVarP(&probeCount, "count", "c", 3, "Number of queries to send")
	rootCmd.AddCommand(probeCmd)
}
