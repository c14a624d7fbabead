// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/spf13/cobra"
)

var volumeCmd = &cobra.Command{
	Use:   "volume <level|up|down>",
	Short: "Set or step the output volume",
	Long: fmt.Sprintf(`Sets the output volume to an absolute level (%d..%d) or steps it one
notch with "up" or "down". The level persists across power cycles.`,
		dysv19t.VolumeMin, dysv19t.VolumeMax),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := -1
		switch args[0] {
		case "up", "down":
		default:
			var err error
			level, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid volume %q (level, up, down)", args[0])
			}
			if err := dysv19t.ValidateVolume(level); err != nil {
				return err
			}
		}

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		switch args[0] {
		case "up":
			return dev.VolumeUp()
		case "down":
			return dev.VolumeDown()
		}
		return dev.SetVolume(level)
	},
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}
