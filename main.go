// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Phonostat - DY-SV19T Serial Control Tool
//
// A CLI tool for driving and monitoring DY-SV19T style UART audio
// playback modules.

package main

import (
	"os"

	"github.com/Thermoquad/phonostat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
