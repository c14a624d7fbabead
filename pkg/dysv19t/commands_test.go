// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"bytes"
	"testing"
)

func TestZeroDataCommands(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
		cmd   Command
	}{
		{"play", NewPlayCommand(), CmdPlay},
		{"pause", NewPauseCommand(), CmdPause},
		{"stop", NewStopCommand(), CmdStop},
		{"prev track", NewPrevTrackCommand(), CmdPrevTrack},
		{"next track", NewNextTrackCommand(), CmdNextTrack},
		{"end insert", NewEndInsertCommand(), CmdEndInsert},
		{"volume up", NewVolumeUpCommand(), CmdVolumeUp},
		{"volume down", NewVolumeDownCommand(), CmdVolumeDown},
		{"combination end", NewCombinationEndCommand(), CmdCombinationEnd},
		{"repeat end", NewRepeatEndCommand(), CmdRepeatEnd},
		{"time report on", NewTimeReportOnCommand(), CmdTimeReportOn},
		{"time report off", NewTimeReportOffCommand(), CmdTimeReportOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.frame.Command() != tt.cmd {
				t.Errorf("Command() = 0x%02X, want 0x%02X", byte(tt.frame.Command()), byte(tt.cmd))
			}
			if len(tt.frame.Data()) != 0 {
				t.Errorf("Data() should be empty, got % X", tt.frame.Data())
			}
		})
	}
}

func TestQueryCommands(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
		cmd   Command
	}{
		{"play state", NewPlayStateQuery(), CmdQueryPlayState},
		{"online disks", NewOnlineDisksQuery(), CmdQueryOnlineDisks},
		{"current disk", NewCurrentDiskQuery(), CmdQueryCurrentDisk},
		{"track count", NewTrackCountQuery(), CmdQueryTrackCount},
		{"current track", NewCurrentTrackQuery(), CmdQueryCurrentTrack},
		{"folder first track", NewFolderFirstTrackQuery(), CmdQueryFolderFirstTrack},
		{"folder track count", NewFolderTrackCountQuery(), CmdQueryFolderTrackCount},
		{"short name", NewShortNameQuery(), CmdQueryShortName},
		{"play time", NewPlayTimeQuery(), CmdQueryPlayTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.frame.Command() != tt.cmd {
				t.Errorf("Command() = 0x%02X, want 0x%02X", byte(tt.frame.Command()), byte(tt.cmd))
			}
			if len(tt.frame.Data()) != 0 {
				t.Errorf("query requests carry no data, got % X", tt.frame.Data())
			}
		})
	}
}

func TestNewPlayTrackCommand(t *testing.T) {
	tests := []struct {
		name  string
		track uint16
		data  []byte
	}{
		{"track 1", 1, []byte{0x00, 0x01}},
		{"track 261 spans both bytes", 261, []byte{0x01, 0x05}},
		{"track 65535", 0xFFFF, []byte{0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPlayTrackCommand(tt.track)
			if f.Command() != CmdPlayTrack {
				t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdPlayTrack))
			}
			if !bytes.Equal(f.Data(), tt.data) {
				t.Errorf("Data() = % X, want % X", f.Data(), tt.data)
			}
		})
	}
}

func TestNewSelectTrackCommand(t *testing.T) {
	f := NewSelectTrackCommand(7)
	if f.Command() != CmdSelectTrack {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdSelectTrack))
	}
	if !bytes.Equal(f.Data(), []byte{0x00, 0x07}) {
		t.Errorf("Data() = % X, want 00 07", f.Data())
	}
}

func TestNewPlayPathCommand(t *testing.T) {
	f := NewPlayPathCommand(DiskSD, []byte("/MUSIC/01*MP3"))
	if f.Command() != CmdPlayDiskPath {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdPlayDiskPath))
	}

	data := f.Data()
	if data[0] != byte(DiskSD) {
		t.Errorf("disk byte = 0x%02X, want 0x%02X", data[0], byte(DiskSD))
	}
	if string(data[1:]) != "/MUSIC/01*MP3" {
		t.Errorf("path bytes = %q", string(data[1:]))
	}
}

func TestNewInsertTrackCommand(t *testing.T) {
	f := NewInsertTrackCommand(DiskUSB, 9)
	if f.Command() != CmdInsertTrack {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdInsertTrack))
	}
	if !bytes.Equal(f.Data(), []byte{0x00, 0x00, 0x09}) {
		t.Errorf("Data() = % X, want 00 00 09", f.Data())
	}
}

func TestNewInsertPathCommand(t *testing.T) {
	f := NewInsertPathCommand(DiskFlash, []byte("/ALERT*MP3"))
	if f.Command() != CmdInsertPath {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdInsertPath))
	}
	if f.Data()[0] != byte(DiskFlash) {
		t.Errorf("disk byte = 0x%02X, want 0x%02X", f.Data()[0], byte(DiskFlash))
	}
}

func TestNewVolumeCommand(t *testing.T) {
	f := NewVolumeCommand(25)
	if f.Command() != CmdSetVolume {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdSetVolume))
	}
	if !bytes.Equal(f.Data(), []byte{25}) {
		t.Errorf("Data() = % X, want 19", f.Data())
	}
}

func TestSingleByteSettingCommands(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
		cmd   Command
		value byte
	}{
		{"play mode", NewPlayModeCommand(PlayModeSingleLoop), CmdSetPlayMode, 0x01},
		{"equalizer", NewEQCommand(EQRock), CmdSetEQ, 0x02},
		{"channel", NewChannelCommand(ChannelAUX), CmdSetChannel, 0x01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.frame.Command() != tt.cmd {
				t.Errorf("Command() = 0x%02X, want 0x%02X", byte(tt.frame.Command()), byte(tt.cmd))
			}
			if !bytes.Equal(tt.frame.Data(), []byte{tt.value}) {
				t.Errorf("Data() = % X, want %02X", tt.frame.Data(), tt.value)
			}
		})
	}
}

func TestNewLoopCountCommand(t *testing.T) {
	f := NewLoopCountCommand(3)
	if f.Command() != CmdSetLoopCount {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdSetLoopCount))
	}
	if !bytes.Equal(f.Data(), []byte{0x00, 0x03}) {
		t.Errorf("Data() = % X, want 00 03", f.Data())
	}
}

func TestNewCombinationStartCommand(t *testing.T) {
	f := NewCombinationStartCommand([]byte("01A2"))
	if f.Command() != CmdCombinationStart {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdCombinationStart))
	}
	if string(f.Data()) != "01A2" {
		t.Errorf("Data() = %q, want 01A2", string(f.Data()))
	}
}

func TestNewRepeatRangeCommand(t *testing.T) {
	f := NewRepeatRangeCommand(0, 5, 1, 30)
	if f.Command() != CmdRepeatRange {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(f.Command()), byte(CmdRepeatRange))
	}
	if !bytes.Equal(f.Data(), []byte{0x00, 0x05, 0x01, 0x1E}) {
		t.Errorf("Data() = % X, want 00 05 01 1E", f.Data())
	}
}

func TestSeekCommands(t *testing.T) {
	back := NewSeekBackwardCommand(10)
	if back.Command() != CmdSeekBackward {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(back.Command()), byte(CmdSeekBackward))
	}
	if !bytes.Equal(back.Data(), []byte{0x00, 0x0A}) {
		t.Errorf("Data() = % X, want 00 0A", back.Data())
	}

	fwd := NewSeekForwardCommand(300)
	if fwd.Command() != CmdSeekForward {
		t.Errorf("Command() = 0x%02X, want 0x%02X", byte(fwd.Command()), byte(CmdSeekForward))
	}
	if !bytes.Equal(fwd.Data(), []byte{0x01, 0x2C}) {
		t.Errorf("Data() = % X, want 01 2C", fwd.Data())
	}
}

func TestNewPlayTrackCommand_RoundTrip(t *testing.T) {
	encoded := MustEncodeFrame(NewPlayTrackCommand(261))

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Command() != CmdPlayTrack {
		t.Errorf("decoded Command() = 0x%02X, want 0x%02X", byte(decoded.Command()), byte(CmdPlayTrack))
	}
	if u16From(decoded.Data()[0], decoded.Data()[1]) != 261 {
		t.Errorf("decoded track = %d, want 261", u16From(decoded.Data()[0], decoded.Data()[1]))
	}
}
