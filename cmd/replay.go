// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/spf13/cobra"
)

var (
	replayTx    bool
	replaySpeed float64
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay or inspect a capture file",
	Long: `Prints the records of a capture file with their timing deltas.

With --tx, frames captured in the transmit direction are re-sent over the
connection with the captured pacing, scaled by --speed (2 plays twice as
fast, 0 sends with no delays). Without --tx no connection is needed.

Exit codes:
  0 - Capture replayed
  1 - Capture file unreadable
  2 - Connection error`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open capture: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		var conn Connection
		if replayTx {
			var connInfo string
			conn, connInfo, err = OpenConnection()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
				os.Exit(2)
			}
			defer conn.Close()
			fmt.Printf("Re-sending TX frames via %s\n\n", connInfo)
		}

		cr := dysv19t.NewCaptureReader(f)

		var prev time.Time
		prevValid := false
		records := 0
		sent := 0

		for {
			rec, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Capture read failed: %v\n", err)
				os.Exit(1)
			}
			records++

			delta := time.Duration(0)
			if prevValid {
				delta = rec.Time.Sub(prev)
			}
			if replayTx && prevValid && replaySpeed > 0 && delta > 0 {
				time.Sleep(time.Duration(float64(delta) / replaySpeed))
			}
			prev = rec.Time
			prevValid = true

			stamp := rec.Time.Format("15:04:05.000")
			switch {
			case rec.Note != "":
				fmt.Printf("[%s] %s +%.3fs  -- %s\n", stamp, rec.Dir, delta.Seconds(), rec.Note)
				continue
			default:
				if frame, err := dysv19t.Decode(rec.Raw); err == nil {
					fmt.Printf("[%s] %s +%.3fs  %-18s % X\n",
						stamp, rec.Dir, delta.Seconds(), frame.Command(), rec.Raw)
				} else {
					fmt.Printf("[%s] %s +%.3fs  %-18s % X\n",
						stamp, rec.Dir, delta.Seconds(), "UNDECODABLE", rec.Raw)
				}
			}

			if replayTx && rec.Dir == dysv19t.DirTx {
				if _, err := conn.Write(rec.Raw); err != nil {
					return fmt.Errorf("re-send failed: %w", err)
				}
				sent++
			}
		}

		fmt.Printf("\n%d records", records)
		if replayTx {
			fmt.Printf(", %d TX frames re-sent", sent)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayTx, "tx", false, "Re-send TX frames over the connection")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Pacing multiplier for --tx (0 = no delays)")
	rootCmd.AddCommand(replayCmd)
}
