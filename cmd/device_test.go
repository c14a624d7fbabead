// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"testing"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
)

func TestParseDisk(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dysv19t.Disk
		wantErr bool
	}{
		{name: "usb", input: "usb", want: dysv19t.DiskUSB},
		{name: "sd", input: "sd", want: dysv19t.DiskSD},
		{name: "flash", input: "flash", want: dysv19t.DiskFlash},
		{name: "uppercase", input: "USB", want: dysv19t.DiskUSB},
		{name: "padded", input: "  sd  ", want: dysv19t.DiskSD},
		{name: "unknown", input: "floppy", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDisk(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDisk(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseDisk(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePlayMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dysv19t.PlayMode
		wantErr bool
	}{
		{name: "full loop", input: "full-loop", want: dysv19t.PlayModeFullLoop},
		{name: "single loop", input: "single-loop", want: dysv19t.PlayModeSingleLoop},
		{name: "single stop", input: "single-stop", want: dysv19t.PlayModeSingleStop},
		{name: "full random", input: "full-random", want: dysv19t.PlayModeFullRandom},
		{name: "dir loop", input: "dir-loop", want: dysv19t.PlayModeDirLoop},
		{name: "dir random", input: "dir-random", want: dysv19t.PlayModeDirRandom},
		{name: "dir sequence", input: "dir-sequence", want: dysv19t.PlayModeDirSequence},
		{name: "sequence", input: "sequence", want: dysv19t.PlayModeSequence},
		{name: "uppercase", input: "Single-Stop", want: dysv19t.PlayModeSingleStop},
		{name: "unknown", input: "shuffle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlayMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePlayMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parsePlayMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEQ(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dysv19t.EQ
		wantErr bool
	}{
		{name: "normal", input: "normal", want: dysv19t.EQNormal},
		{name: "pop", input: "pop", want: dysv19t.EQPop},
		{name: "rock", input: "rock", want: dysv19t.EQRock},
		{name: "jazz", input: "jazz", want: dysv19t.EQJazz},
		{name: "classic", input: "classic", want: dysv19t.EQClassic},
		{name: "uppercase", input: "ROCK", want: dysv19t.EQRock},
		{name: "unknown", input: "metal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEQ(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEQ(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseEQ(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dysv19t.Channel
		wantErr bool
	}{
		{name: "mp3", input: "mp3", want: dysv19t.ChannelMP3},
		{name: "aux", input: "aux", want: dysv19t.ChannelAUX},
		{name: "mp3+aux", input: "mp3+aux", want: dysv19t.ChannelMP3AUX},
		{name: "both alias", input: "both", want: dysv19t.ChannelMP3AUX},
		{name: "unknown", input: "spdif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseChannel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseChannel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseChannel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTrack(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "first track", input: "1", want: 1},
		{name: "typical", input: "42", want: 42},
		{name: "max", input: "65535", want: 65535},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "too large", input: "65536", wantErr: true},
		{name: "not a number", input: "seven", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTrack(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTrack(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseTrack(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin int
		wantSec int
		wantErr bool
	}{
		{name: "zero", input: "0:00", wantMin: 0, wantSec: 0},
		{name: "typical", input: "1:30", wantMin: 1, wantSec: 30},
		{name: "padded seconds", input: "02:05", wantMin: 2, wantSec: 5},
		{name: "max clock", input: "59:59", wantMin: 59, wantSec: 59},
		{name: "seconds overflow", input: "0:60", wantErr: true},
		{name: "minutes overflow", input: "60:00", wantErr: true},
		{name: "negative minutes", input: "-1:00", wantErr: true},
		{name: "no colon", input: "130", wantErr: true},
		{name: "garbage", input: "a:b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, sec, err := parseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if min != tt.wantMin || sec != tt.wantSec {
				t.Errorf("parseClock(%q) = %d:%d, want %d:%d", tt.input, min, sec, tt.wantMin, tt.wantSec)
			}
		})
	}
}
