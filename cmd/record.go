// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/spf13/cobra"
)

var (
	recordDuration      int
	recordProbeInterval int
)

var recordCmd = &cobra.Command{
	Use:   "record <file>",
	Short: "Record bus traffic to a capture file",
	Long: `Records decoded frames from the bus into a capture file for later
replay or offline analysis. Records are written as they arrive, so an
interrupted recording keeps everything captured up to that point.

With --probe-interval N a play-state query is sent every N seconds and
recorded as transmitted traffic, giving the capture both directions.

Recording runs until --duration seconds elapse, or until Ctrl+C.

Exit codes:
  0 - Capture written
  2 - Connection error`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating capture file: %w", err)
		}
		defer f.Close()

		conn, connInfo, err := OpenConnection()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		cw := dysv19t.NewCaptureWriter(f)
		if err := cw.Note(dysv19t.DirRx, "capture start: "+connInfo); err != nil {
			return err
		}

		fmt.Printf("Recording %s to %s\n", connInfo, args[0])
		if recordDuration > 0 {
			fmt.Printf("Stopping after %d seconds (or Ctrl+C)\n\n", recordDuration)
		} else {
			fmt.Printf("Ctrl+C to stop\n\n")
		}

		decoder := dysv19t.NewDecoder()
		serialBuf := make(chan []byte, 10)
		readerErr := readIntoChunks(conn, serialBuf)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		defer signal.Stop(sigCh)

		var probeCh <-chan time.Time
		if recordProbeInterval > 0 {
			probeTicker := time.NewTicker(time.Duration(recordProbeInterval) * time.Second)
			defer probeTicker.Stop()
			probeCh = probeTicker.C
		}

		var durationCh <-chan time.Time
		if recordDuration > 0 {
			durationCh = time.After(time.Duration(recordDuration) * time.Second)
		}

		start := time.Now()
		framesRecorded := 0
		decodeErrors := 0

		done := false
		for !done {
			select {
			case <-sigCh:
				done = true

			case <-durationCh:
				done = true

			case err := <-readerErr:
				if errors.Is(err, ErrConnectionClosed) {
					fmt.Println("Connection closed")
					done = true
					break
				}
				return fmt.Errorf("read error: %w", err)

			case <-probeCh:
				raw := dysv19t.MustEncodeFrame(dysv19t.NewPlayStateQuery())
				if _, err := conn.Write(raw); err == nil {
					if err := cw.Record(dysv19t.DirTx, raw); err != nil {
						return err
					}
				}

			case data := <-serialBuf:
				for _, b := range data {
					frame, err := decoder.DecodeByte(b)
					if err != nil {
						decodeErrors++
						if err := cw.Note(dysv19t.DirRx, "decode error: "+err.Error()); err != nil {
							return err
						}
						continue
					}
					if frame == nil {
						continue
					}
					if err := cw.Record(dysv19t.DirRx, frame.Raw()); err != nil {
						return err
					}
					framesRecorded++
				}
			}
		}

		if err := cw.Note(dysv19t.DirRx, "capture end"); err != nil {
			return err
		}

		elapsed := time.Since(start).Round(time.Second)
		fmt.Printf("\nRecorded %d frames (%d decode errors) in %s\n", framesRecorded, decodeErrors, elapsed)
		return nil
	},
}

func init() {
	recordCmd.Flags().IntVar(&recordDuration, "duration", 0, "Seconds to record (0 = until interrupt)")
	recordCmd.Flags().IntVar(&recordProbeInterval, "probe-interval", 0, "Send a recorded play-state query every N seconds (0 = passive)")
	rootCmd.AddCommand(recordCmd)
}
