// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/spf13/cobra"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Print sample frames for every command code",
	Long: `Encodes a sample frame for every protocol command, decodes each one
back, and prints the wire bytes. Works offline; useful as a wire format
reference and as a codec self-check.

Exit codes:
  0 - All frames round-tripped
  1 - A frame failed to decode back to itself`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		type sample struct {
			name  string
			frame *dysv19t.Frame
		}

		samples := []sample{
			{"play", dysv19t.NewPlayCommand()},
			{"pause", dysv19t.NewPauseCommand()},
			{"stop", dysv19t.NewStopCommand()},
			{"prev", dysv19t.NewPrevTrackCommand()},
			{"next", dysv19t.NewNextTrackCommand()},
			{"play-track", dysv19t.NewPlayTrackCommand(7)},
			{"select-track", dysv19t.NewSelectTrackCommand(7)},
			{"play-path", dysv19t.NewPlayPathCommand(dysv19t.DiskUSB, []byte("/SFX/ALARM01*MP3"))},
			{"insert-track", dysv19t.NewInsertTrackCommand(dysv19t.DiskUSB, 3)},
			{"insert-path", dysv19t.NewInsertPathCommand(dysv19t.DiskSD, []byte("/VOICE/HELLO00*MP3"))},
			{"insert-done", dysv19t.NewEndInsertCommand()},
			{"volume", dysv19t.NewVolumeCommand(24)},
			{"volume-up", dysv19t.NewVolumeUpCommand()},
			{"volume-down", dysv19t.NewVolumeDownCommand()},
			{"play-mode", dysv19t.NewPlayModeCommand(dysv19t.PlayModeSingleStop)},
			{"loop-count", dysv19t.NewLoopCountCommand(5)},
			{"eq", dysv19t.NewEQCommand(dysv19t.EQRock)},
			{"channel", dysv19t.NewChannelCommand(dysv19t.ChannelMP3)},
			{"combo-start", dysv19t.NewCombinationStartCommand([]byte("0102"))},
			{"combo-end", dysv19t.NewCombinationEndCommand()},
			{"repeat-range", dysv19t.NewRepeatRangeCommand(0, 15, 1, 2)},
			{"repeat-end", dysv19t.NewRepeatEndCommand()},
			{"seek-back", dysv19t.NewSeekBackwardCommand(10)},
			{"seek-fwd", dysv19t.NewSeekForwardCommand(30)},
			{"q-state", dysv19t.NewPlayStateQuery()},
			{"q-disks", dysv19t.NewOnlineDisksQuery()},
			{"q-disk", dysv19t.NewCurrentDiskQuery()},
			{"q-tracks", dysv19t.NewTrackCountQuery()},
			{"q-track", dysv19t.NewCurrentTrackQuery()},
			{"q-folder-first", dysv19t.NewFolderFirstTrackQuery()},
			{"q-folder-count", dysv19t.NewFolderTrackCountQuery()},
			{"q-name", dysv19t.NewShortNameQuery()},
			{"q-time", dysv19t.NewPlayTimeQuery()},
			{"times-on", dysv19t.NewTimeReportOnCommand()},
			{"times-off", dysv19t.NewTimeReportOffCommand()},
		}

		failures := 0
		for _, s := range samples {
			raw := dysv19t.MustEncodeFrame(s.frame)

			decoded, err := dysv19t.Decode(raw)
			bad := err != nil ||
				decoded.Command() != s.frame.Command() ||
				!bytes.Equal(decoded.Data(), s.frame.Data())

			fmt.Printf("%-15s 0x%02X  % X", s.name, byte(s.frame.Command()), raw)
			if bad {
				failures++
				fmt.Print("  FAIL")
			}
			fmt.Println()
		}

		if failures > 0 {
			fmt.Fprintf(os.Stderr, "\n%d of %d frames failed to round-trip\n", failures, len(samples))
			os.Exit(1)
		}
		fmt.Printf("\n%d frames, all round-tripped\n", len(samples))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(framesCmd)
}
