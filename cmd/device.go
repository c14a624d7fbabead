// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
)

// openDevice opens the configured transport and wraps it in a module
// handle seeded with any config file defaults.
func openDevice() (*dysv19t.Device, Connection, string, error) {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return nil, nil, "", err
	}

	opts := dysv19t.DefaultOptions()
	opts.Timeout = time.Duration(timeoutMS) * time.Millisecond
	if deviceConfig.volume != nil {
		opts.Volume = *deviceConfig.volume
	}
	if deviceConfig.disk != nil {
		opts.Disk = *deviceConfig.disk
	}
	if deviceConfig.playMode != nil {
		opts.PlayMode = *deviceConfig.playMode
	}

	dev, err := dysv19t.NewDevice(conn, opts)
	if err != nil {
		conn.Close()
		return nil, nil, "", err
	}
	return dev, conn, connInfo, nil
}

// parseDisk maps a disk name to its wire value
func parseDisk(s string) (dysv19t.Disk, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "usb":
		return dysv19t.DiskUSB, nil
	case "sd":
		return dysv19t.DiskSD, nil
	case "flash":
		return dysv19t.DiskFlash, nil
	}
	return 0, fmt.Errorf("unknown disk %q (usb, sd, flash)", s)
}

// parsePlayMode maps a play mode name to its wire value
func parsePlayMode(s string) (dysv19t.PlayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full-loop":
		return dysv19t.PlayModeFullLoop, nil
	case "single-loop":
		return dysv19t.PlayModeSingleLoop, nil
	case "single-stop":
		return dysv19t.PlayModeSingleStop, nil
	case "full-random":
		return dysv19t.PlayModeFullRandom, nil
	case "dir-loop":
		return dysv19t.PlayModeDirLoop, nil
	case "dir-random":
		return dysv19t.PlayModeDirRandom, nil
	case "dir-sequence":
		return dysv19t.PlayModeDirSequence, nil
	case "sequence":
		return dysv19t.PlayModeSequence, nil
	}
	return 0, fmt.Errorf("unknown play mode %q (full-loop, single-loop, single-stop, full-random, dir-loop, dir-random, dir-sequence, sequence)", s)
}

// parseEQ maps an equalizer preset name to its wire value
func parseEQ(s string) (dysv19t.EQ, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return dysv19t.EQNormal, nil
	case "pop":
		return dysv19t.EQPop, nil
	case "rock":
		return dysv19t.EQRock, nil
	case "jazz":
		return dysv19t.EQJazz, nil
	case "classic":
		return dysv19t.EQClassic, nil
	}
	return 0, fmt.Errorf("unknown equalizer preset %q (normal, pop, rock, jazz, classic)", s)
}

// parseChannel maps a DAC channel name to its wire value
func parseChannel(s string) (dysv19t.Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mp3":
		return dysv19t.ChannelMP3, nil
	case "aux":
		return dysv19t.ChannelAUX, nil
	case "mp3+aux", "both":
		return dysv19t.ChannelMP3AUX, nil
	}
	return 0, fmt.Errorf("unknown channel %q (mp3, aux, mp3+aux)", s)
}

// parseTrack parses a 1-based track number
func parseTrack(s string) (int, error) {
	track, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid track number %q", s)
	}
	if track < 1 || track > 65535 {
		return 0, fmt.Errorf("track number %d out of range 1..65535", track)
	}
	return track, nil
}

// parseClock parses an mm:ss position for A-B repeat points. Both fields
// are single clock digits on the wire, 0..59.
func parseClock(s string) (min, sec int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid position %q, want mm:ss", s)
	}
	min, err = strconv.Atoi(parts[0])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in %q", s)
	}
	sec, err = strconv.Atoi(parts[1])
	if err != nil || sec < 0 || sec > 59 {
		return 0, 0, fmt.Errorf("invalid seconds in %q", s)
	}
	return min, sec, nil
}
