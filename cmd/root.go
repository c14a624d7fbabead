// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Behavior flags
	configPath string
	timeoutMS  int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "phonostat",
	Short: "DY-SV19T Serial Control Tool",
	Long: `Phonostat - A CLI tool for driving and monitoring DY-SV19T style UART
audio playback modules.

Provides playback control, track selection, volume and settings commands,
status queries, passive bus monitoring, an interactive control panel, and
capture recording/replay to help integrate and debug the module.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 9600]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the PHONOSTAT_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.

Defaults can be placed in a TOML config file (--config, ./phonostat.toml, or
the phonostat directory under the user config dir). Flags set on the command
line always win over the file.`,
	Version: "1.2.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		return loadConfig(cmd)
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", dysv19t.DefaultBaudRate, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Behavior flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (TOML)")
	rootCmd.PersistentFlags().IntVar(&timeoutMS, "timeout", 500, "Response timeout in milliseconds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
