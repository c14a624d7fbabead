// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	monitorShowAll       bool
	monitorStatsInterval int
	monitorUseTUI        bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch bus traffic with validation and statistics",
	Long: `Passively decodes every frame seen on the bus, validates each one
against the command table, and keeps running statistics. Tap both bus
directions onto the receive pin to watch controller traffic too.

With --tui (the default) a full-screen dashboard shows statistics, the
playback picture assembled from observed frames, and recent events. With
--tui=false problems are printed as plain text, suitable for logging to
a file; --show-all prints clean frames as well.

Press Ctrl+C (or q in the TUI) to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, connInfo, err := OpenConnection()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		if monitorUseTUI {
			return runMonitorTUI(conn, connInfo)
		}
		return runMonitorText(conn, connInfo)
	},
}

// readIntoChunks pumps reads from the connection into a channel of byte
// chunks. The returned error channel yields exactly one error.
func readIntoChunks(conn Connection, chunks chan<- []byte) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				chunks <- data
			}
			if err != nil {
				errCh <- err
				return
			}
			if n == 0 {
				time.Sleep(time.Millisecond)
			}
		}
	}()
	return errCh
}

func runMonitorText(conn Connection, connInfo string) error {
	fmt.Printf("Monitoring %s\n", connInfo)
	fmt.Printf("Statistics every %d seconds; Ctrl+C for the final summary\n\n", monitorStatsInterval)

	decoder := dysv19t.NewDecoder()
	stats := dysv19t.NewStatistics()

	synchronized := false
	invalidBytesBeforeSync := 0

	serialBuf := make(chan []byte, 10)
	readerErr := readIntoChunks(conn, serialBuf)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	statsTicker := time.NewTicker(time.Duration(monitorStatsInterval) * time.Second)
	defer statsTicker.Stop()

	for {
		select {
		case <-sigCh:
			fmt.Println("\nStopping...")
			fmt.Print(stats.String())
			return nil

		case err := <-readerErr:
			if errors.Is(err, ErrConnectionClosed) {
				fmt.Println("\nConnection closed")
				fmt.Print(stats.String())
				return nil
			}
			return fmt.Errorf("read error: %w", err)

		case <-statsTicker.C:
			fmt.Print(stats.String())

		case data := <-serialBuf:
			for _, b := range data {
				frame, err := decoder.DecodeByte(b)
				if err != nil {
					stats.Update(nil, err, nil)
					printDecodeError(err)
					continue
				}
				if frame == nil {
					if !synchronized && len(decoder.RawBytes()) == 0 {
						invalidBytesBeforeSync++
					}
					continue
				}

				if !synchronized {
					synchronized = true
					if invalidBytesBeforeSync > 0 {
						fmt.Printf("[SYNC] Synchronized after skipping %d invalid bytes\n\n", invalidBytesBeforeSync)
					}
				}

				validationErrors := dysv19t.ValidateFrame(frame)
				stats.Update(frame, nil, validationErrors)

				switch {
				case len(validationErrors) > 0:
					printValidationErrors(frame, validationErrors)
				case frame.IsTimeReport():
					printTimeReport(frame)
				case monitorShowAll:
					fmt.Println(dysv19t.FormatFrame(frame))
				}
			}
		}
	}
}

func printDecodeError(err error) {
	now := time.Now().Format("15:04:05.000")
	fmt.Printf("\033[1;31mDECODE ERROR:\033[0m [%s] %v\n", now, err)
	fmt.Println(">>> DECODE FAILED <<<")
	fmt.Println()
}

func printValidationErrors(frame *dysv19t.Frame, validationErrors []dysv19t.ValidationError) {
	fmt.Printf("\033[1;33mVALIDATION ERROR:\033[0m %s\n", dysv19t.FormatFrame(frame))
	fmt.Println("  Checksum: OK")
	for _, ve := range validationErrors {
		fmt.Printf("  %s\n", ve.Message)
	}
	fmt.Println(">>> FRAME REJECTED <<<")
	fmt.Println()
}

// Elapsed-time pushes are the module's liveness signal; always show them.
func printTimeReport(frame *dysv19t.Frame) {
	fmt.Println(dysv19t.FormatFrame(frame))
}

func runMonitorTUI(conn Connection, connInfo string) error {
	p := tea.NewProgram(newMonitorModel(connInfo))

	go func() {
		buf := make([]byte, 256)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				p.Send(monitorDataMsg{data: data})
			}
			if err != nil {
				p.Send(monitorClosedMsg{err: err})
				return
			}
			if n == 0 {
				time.Sleep(time.Millisecond)
			}
		}
	}()

	_, err := p.Run()
	return err
}

func init() {
	monitorCmd.Flags().BoolVar(&monitorShowAll, "show-all", false, "Print clean frames too (text mode)")
	monitorCmd.Flags().IntVar(&monitorStatsInterval, "stats-interval", 10, "Seconds between statistics summaries (text mode)")
	monitorCmd.Flags().BoolVar(&monitorUseTUI, "tui", true, "Full-screen dashboard (use --tui=false for plain text)")
	rootCmd.AddCommand(monitorCmd)
}
