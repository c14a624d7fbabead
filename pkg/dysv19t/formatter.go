// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"fmt"
	"strings"
)

// FormatFrame formats a decoded frame into a human-readable string
func FormatFrame(f *Frame) string {
	timestamp := f.Timestamp().Format("15:04:05.000")
	result := fmt.Sprintf("[%s] %s (0x%02X) len=%d\n",
		timestamp, f.Command(), byte(f.Command()), len(f.Data()))
	result += FormatData(f.Command(), f.Data())
	return result
}

// String returns the human-readable name for a command code
func (c Command) String() string {
	switch c {
	// Playback control (0x02-0x06)
	case CmdPlay:
		return "PLAY"
	case CmdPause:
		return "PAUSE"
	case CmdStop:
		return "STOP"
	case CmdPrevTrack:
		return "PREV_TRACK"
	case CmdNextTrack:
		return "NEXT_TRACK"

	// Selection and insertion
	case CmdPlayTrack:
		return "PLAY_TRACK"
	case CmdPlayDiskPath:
		return "PLAY_DISK_PATH"
	case CmdSelectTrack:
		return "SELECT_TRACK"
	case CmdEndInsert:
		return "END_INSERT"
	case CmdInsertTrack:
		return "INSERT_TRACK"
	case CmdInsertPath:
		return "INSERT_PATH"

	// Volume, mode, EQ, channel
	case CmdSetVolume:
		return "SET_VOLUME"
	case CmdVolumeUp:
		return "VOLUME_UP"
	case CmdVolumeDown:
		return "VOLUME_DOWN"
	case CmdSetPlayMode:
		return "SET_PLAY_MODE"
	case CmdSetLoopCount:
		return "SET_LOOP_COUNT"
	case CmdSetEQ:
		return "SET_EQ"
	case CmdSetChannel:
		return "SET_CHANNEL"

	// Combination playback
	case CmdCombinationStart:
		return "COMBINATION_START"
	case CmdCombinationEnd:
		return "COMBINATION_END"

	// A-B repeat and seek
	case CmdRepeatRange:
		return "REPEAT_RANGE"
	case CmdRepeatEnd:
		return "REPEAT_END"
	case CmdSeekBackward:
		return "SEEK_BACKWARD"
	case CmdSeekForward:
		return "SEEK_FORWARD"

	// Queries
	case CmdQueryPlayState:
		return "QUERY_PLAY_STATE"
	case CmdQueryOnlineDisks:
		return "QUERY_ONLINE_DISKS"
	case CmdQueryCurrentDisk:
		return "QUERY_CURRENT_DISK"
	case CmdQueryTrackCount:
		return "QUERY_TRACK_COUNT"
	case CmdQueryCurrentTrack:
		return "QUERY_CURRENT_TRACK"
	case CmdQueryFolderFirstTrack:
		return "QUERY_FOLDER_FIRST_TRACK"
	case CmdQueryFolderTrackCount:
		return "QUERY_FOLDER_TRACK_COUNT"
	case CmdQueryShortName:
		return "QUERY_SHORT_NAME"
	case CmdQueryPlayTime:
		return "QUERY_PLAY_TIME"

	// Time reports
	case CmdTimeReportOn:
		return "TIME_REPORT_ON"
	case CmdTimeReportOff:
		return "TIME_REPORT_OFF"

	default:
		return "UNKNOWN"
	}
}

// FormatData renders frame data based on the command code. Request and
// response shapes share a code, so the length picks the rendering.
func FormatData(cmd Command, data []byte) string {
	if len(data) == 0 {
		return "  (no data)\n"
	}

	switch cmd {
	case CmdQueryPlayState:
		if len(data) == 1 {
			return fmt.Sprintf("  State: %v (%d)\n", PlayState(data[0]), data[0])
		}

	case CmdPlayTrack, CmdSelectTrack:
		if len(data) == 2 {
			return fmt.Sprintf("  Track: %d\n", u16From(data[0], data[1]))
		}

	case CmdPlayDiskPath, CmdInsertPath:
		if len(data) >= 2 {
			return fmt.Sprintf("  Disk: %v (%d), Path: %q\n",
				Disk(data[0]), data[0], string(data[1:]))
		}

	case CmdQueryOnlineDisks:
		if len(data) == 1 {
			return fmt.Sprintf("  Online: %v (0x%02X)\n", DiskSet(data[0]), data[0])
		}

	case CmdQueryCurrentDisk:
		if len(data) == 1 {
			return fmt.Sprintf("  Disk: %v (%d)\n", Disk(data[0]), data[0])
		}

	case CmdQueryTrackCount, CmdQueryFolderTrackCount:
		if len(data) == 2 {
			return fmt.Sprintf("  Tracks: %d\n", u16From(data[0], data[1]))
		}

	case CmdQueryCurrentTrack:
		if len(data) == 2 {
			return fmt.Sprintf("  Track: %d\n", u16From(data[0], data[1]))
		}

	case CmdQueryFolderFirstTrack:
		if len(data) == 2 {
			return fmt.Sprintf("  First Track: %d\n", u16From(data[0], data[1]))
		}

	case CmdSetVolume:
		if len(data) == 1 {
			return fmt.Sprintf("  Volume: %d\n", data[0])
		}

	case CmdInsertTrack:
		if len(data) == 3 {
			return fmt.Sprintf("  Disk: %v (%d), Track: %d\n",
				Disk(data[0]), data[0], u16From(data[1], data[2]))
		}

	case CmdSetPlayMode:
		if len(data) == 1 {
			return fmt.Sprintf("  Mode: %v (0x%02X)\n", PlayMode(data[0]), data[0])
		}

	case CmdSetLoopCount:
		if len(data) == 2 {
			return fmt.Sprintf("  Count: %d\n", u16From(data[0], data[1]))
		}

	case CmdSetEQ:
		if len(data) == 1 {
			return fmt.Sprintf("  EQ: %v (%d)\n", EQ(data[0]), data[0])
		}

	case CmdCombinationStart:
		if len(data)%2 == 0 {
			names := make([]string, 0, len(data)/2)
			for i := 0; i+1 < len(data); i += 2 {
				names = append(names, string(data[i:i+2]))
			}
			return fmt.Sprintf("  Names: %s\n", strings.Join(names, ", "))
		}

	case CmdSetChannel:
		if len(data) == 1 {
			return fmt.Sprintf("  Channel: %v (%d)\n", Channel(data[0]), data[0])
		}

	case CmdQueryShortName:
		return fmt.Sprintf("  Name: %q\n", string(data))

	case CmdRepeatRange:
		if len(data) == 4 {
			return fmt.Sprintf("  Start: %02d:%02d, End: %02d:%02d\n",
				data[0], data[1], data[2], data[3])
		}

	case CmdSeekBackward, CmdSeekForward:
		if len(data) == 2 {
			return fmt.Sprintf("  Seconds: %d\n", u16From(data[0], data[1]))
		}

	case CmdQueryPlayTime, CmdTimeReportOn:
		if t, ok := playTimeFrom(data); ok {
			return fmt.Sprintf("  Time: %v\n", t)
		}
	}

	// Unexpected shape: show raw data
	return fmt.Sprintf("  Data: % X\n", data)
}

// String returns a human-readable disk name
func (d Disk) String() string {
	switch d {
	case DiskUSB:
		return "USB"
	case DiskSD:
		return "SD"
	case DiskFlash:
		return "FLASH"
	case DiskNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// String lists the online disks in the bitmap
func (s DiskSet) String() string {
	parts := []string{}
	if s&DiskSetUSB != 0 {
		parts = append(parts, "USB")
	}
	if s&DiskSetSD != 0 {
		parts = append(parts, "SD")
	}
	if s&DiskSetFlash != 0 {
		parts = append(parts, "FLASH")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, ", ")
}

// String returns a human-readable play state name
func (s PlayState) String() string {
	names := []string{"STOPPED", "PLAYING", "PAUSED"}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "UNKNOWN"
}

// String returns a human-readable play mode name
func (m PlayMode) String() string {
	names := []string{"FULL_LOOP", "SINGLE_LOOP", "SINGLE_STOP", "FULL_RANDOM",
		"DIR_LOOP", "DIR_RANDOM", "DIR_SEQUENCE", "SEQUENCE"}
	if m >= 0 && int(m) < len(names) {
		return names[m]
	}
	return "UNKNOWN"
}

// String returns a human-readable equalizer preset name
func (e EQ) String() string {
	names := []string{"NORMAL", "POP", "ROCK", "JAZZ", "CLASSIC"}
	if e >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "UNKNOWN"
}

// String returns a human-readable DAC channel name
func (c Channel) String() string {
	names := []string{"MP3", "AUX", "MP3_AUX"}
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "UNKNOWN"
}
