// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var comboCmd = &cobra.Command{
	Use:   "combo <name>... | combo end",
	Short: "Play a combination of named segments",
	Long: `Starts combination playback of files from the ZH folder, named by
two-character codes, in the order given:

  phonostat combo 01 02 A1

Combination playback loops until ended:

  phonostat combo end`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		end := len(args) == 1 && args[0] == "end"

		dev, conn, _, err := openDevice()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}
		defer conn.Close()

		if end {
			return dev.EndCombination()
		}
		return dev.StartCombination(args)
	},
}

func init() {
	rootCmd.AddCommand(comboCmd)
}
