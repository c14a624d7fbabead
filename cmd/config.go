// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// fileConfig mirrors the TOML config file layout. Every key is optional;
// only keys actually present in the file are applied.
type fileConfig struct {
	Port        string `toml:"port"`
	Baud        int    `toml:"baud"`
	URL         string `toml:"url"`
	Username    string `toml:"username"`
	NoSSLVerify bool   `toml:"no_ssl_verify"`
	TimeoutMS   int    `toml:"timeout_ms"`
	Volume      int    `toml:"volume"`
	Disk        string `toml:"disk"`
	PlayMode    string `toml:"play_mode"`
}

// deviceDefaults carries optional module settings from the config file.
// Nil means the file did not set the key and the module's own power-on
// state is assumed.
type deviceDefaults struct {
	volume   *int
	disk     *dysv19t.Disk
	playMode *dysv19t.PlayMode
}

var deviceConfig deviceDefaults

// configFilePath resolves which config file to load. An explicit --config
// path must exist; the default locations are optional.
func configFilePath() (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", configPath, err)
		}
		return configPath, nil
	}

	if _, err := os.Stat("phonostat.toml"); err == nil {
		return "phonostat.toml", nil
	}

	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "phonostat", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// loadConfig reads the TOML config file, if any, and fills in flags the
// user did not set on the command line.
func loadConfig(cmd *cobra.Command) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := applyConfig(cmd.Flags().Changed, meta, raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("loaded config file")
	return nil
}

// applyConfig merges file keys into the flag variables. A key only wins
// when it is present in the file and the matching flag was not set.
func applyConfig(flagChanged func(string) bool, meta toml.MetaData, raw fileConfig) error {
	if meta.IsDefined("port") && !flagChanged("port") {
		portName = raw.Port
	}
	if meta.IsDefined("baud") && !flagChanged("baud") {
		baudRate = raw.Baud
	}
	if meta.IsDefined("url") && !flagChanged("url") {
		wsURL = raw.URL
	}
	if meta.IsDefined("username") && !flagChanged("username") {
		wsUsername = raw.Username
	}
	if meta.IsDefined("no_ssl_verify") && !flagChanged("no-ssl-verify") {
		wsNoSSLVerify = raw.NoSSLVerify
	}
	if meta.IsDefined("timeout_ms") && !flagChanged("timeout") {
		timeoutMS = raw.TimeoutMS
	}

	if meta.IsDefined("volume") {
		if err := dysv19t.ValidateVolume(raw.Volume); err != nil {
			return fmt.Errorf("volume: %w", err)
		}
		v := raw.Volume
		deviceConfig.volume = &v
	}
	if meta.IsDefined("disk") {
		d, err := parseDisk(raw.Disk)
		if err != nil {
			return fmt.Errorf("disk: %w", err)
		}
		deviceConfig.disk = &d
	}
	if meta.IsDefined("play_mode") {
		m, err := parsePlayMode(raw.PlayMode)
		if err != nil {
			return fmt.Errorf("play_mode: %w", err)
		}
		deviceConfig.playMode = &m
	}

	return nil
}
