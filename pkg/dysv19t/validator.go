// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import "fmt"

// AnomalyType represents different types of frame anomalies
type AnomalyType int

const (
	AnomalyLengthMismatch AnomalyType = iota
	AnomalyInvalidValue
	AnomalyNonASCII
	AnomalyUnknownCommand
	AnomalyChecksumError
	AnomalyDecodeError
)

// ValidationError represents a frame validation failure
type ValidationError struct {
	Type    AnomalyType
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return v.Message
}

// ValidateFrame checks a decoded frame against the command table and
// returns a slice of validation errors (empty if the frame is clean).
// Command codes travel in both directions, so for each code both the
// request shape and the response shape are accepted.
func ValidateFrame(f *Frame) []ValidationError {
	errors := []ValidationError{}

	switch f.Command() {
	case CmdQueryPlayState:
		errors = append(errors, validatePlayStateFrame(f)...)
	case CmdPlay, CmdPause, CmdStop, CmdPrevTrack, CmdNextTrack,
		CmdEndInsert, CmdVolumeUp, CmdVolumeDown, CmdCombinationEnd,
		CmdRepeatEnd, CmdTimeReportOff:
		errors = append(errors, expectLength(f, "command", 0)...)
	case CmdPlayTrack, CmdSelectTrack, CmdSetLoopCount, CmdSeekBackward, CmdSeekForward:
		errors = append(errors, expectLength(f, "command", 2)...)
	case CmdPlayDiskPath, CmdInsertPath:
		errors = append(errors, validateDiskPathFrame(f)...)
	case CmdQueryOnlineDisks:
		errors = append(errors, validateOnlineDisksFrame(f)...)
	case CmdQueryCurrentDisk:
		errors = append(errors, validateCurrentDiskFrame(f)...)
	case CmdQueryTrackCount, CmdQueryCurrentTrack,
		CmdQueryFolderFirstTrack, CmdQueryFolderTrackCount:
		errors = append(errors, expectLength(f, "query", 0, 2)...)
	case CmdSetVolume:
		errors = append(errors, validateVolumeFrame(f)...)
	case CmdInsertTrack:
		errors = append(errors, validateInsertTrackFrame(f)...)
	case CmdSetPlayMode:
		errors = append(errors, validatePlayModeFrame(f)...)
	case CmdSetEQ:
		errors = append(errors, validateEQFrame(f)...)
	case CmdCombinationStart:
		errors = append(errors, validateCombinationFrame(f)...)
	case CmdSetChannel:
		errors = append(errors, validateChannelFrame(f)...)
	case CmdQueryShortName:
		errors = append(errors, validateShortNameFrame(f)...)
	case CmdRepeatRange:
		errors = append(errors, validateRepeatRangeFrame(f)...)
	case CmdQueryPlayTime, CmdTimeReportOn:
		errors = append(errors, validatePlayTimeFrame(f)...)
	default:
		errors = append(errors, ValidationError{
			Type:    AnomalyUnknownCommand,
			Message: fmt.Sprintf("Unknown command code 0x%02X", byte(f.Command())),
			Details: map[string]interface{}{"command": byte(f.Command()), "length": len(f.Data())},
		})
	}

	return errors
}

// expectLength checks the data length against the accepted lengths for
// the frame's command
func expectLength(f *Frame, kind string, accepted ...int) []ValidationError {
	got := len(f.Data())
	for _, want := range accepted {
		if got == want {
			return nil
		}
	}
	return []ValidationError{{
		Type:    AnomalyLengthMismatch,
		Message: fmt.Sprintf("%s 0x%02X data length mismatch (got %d, accepted %v)", kind, byte(f.Command()), got, accepted),
		Details: map[string]interface{}{"command": byte(f.Command()), "length": got, "accepted": accepted},
	}}
}

// validatePlayStateFrame validates QUERY_PLAY_STATE request/response
func validatePlayStateFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "QUERY_PLAY_STATE", 0, 1)
	if len(errors) > 0 || len(f.Data()) == 0 {
		return errors
	}

	state := f.Data()[0]
	if !PlayState(state).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid play state=%d (max %d)", state, int(PlayStatePaused)),
			Details: map[string]interface{}{"state": state, "max": int(PlayStatePaused)},
		})
	}

	return errors
}

// validateOnlineDisksFrame validates QUERY_ONLINE_DISKS request/response
func validateOnlineDisksFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "QUERY_ONLINE_DISKS", 0, 1)
	if len(errors) > 0 || len(f.Data()) == 0 {
		return errors
	}

	bitmap := f.Data()[0]
	if bitmap&^byte(DiskSetUSB|DiskSetSD|DiskSetFlash) != 0 {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Unknown bits in disk bitmap 0x%02X", bitmap),
			Details: map[string]interface{}{"bitmap": bitmap},
		})
	}

	return errors
}

// validateCurrentDiskFrame validates QUERY_CURRENT_DISK request/response
func validateCurrentDiskFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "QUERY_CURRENT_DISK", 0, 1)
	if len(errors) > 0 || len(f.Data()) == 0 {
		return errors
	}

	disk := f.Data()[0]
	if !Disk(disk).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Unknown disk code 0x%02X", disk),
			Details: map[string]interface{}{"disk": disk},
		})
	}

	return errors
}

// validateDiskPathFrame validates PLAY_DISK_PATH and INSERT_PATH commands
func validateDiskPathFrame(f *Frame) []ValidationError {
	errors := []ValidationError{}
	data := f.Data()

	if len(data) < 2 {
		return []ValidationError{{
			Type:    AnomalyLengthMismatch,
			Message: fmt.Sprintf("Path command 0x%02X too short (expected disk byte plus path)", byte(f.Command())),
			Details: map[string]interface{}{"command": byte(f.Command()), "length": len(data)},
		}}
	}

	if !Disk(data[0]).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Unknown disk code 0x%02X", data[0]),
			Details: map[string]interface{}{"disk": data[0]},
		})
	}

	for _, b := range data[1:] {
		if b > 0x7F {
			errors = append(errors, ValidationError{
				Type:    AnomalyNonASCII,
				Message: fmt.Sprintf("Non-ASCII byte 0x%02X in path", b),
				Details: map[string]interface{}{"byte": b},
			})
			break
		}
	}

	return errors
}

// validateVolumeFrame validates SET_VOLUME
func validateVolumeFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "SET_VOLUME", 1)
	if len(errors) > 0 {
		return errors
	}

	vol := f.Data()[0]
	if int(vol) > VolumeMax {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid volume=%d (max %d)", vol, VolumeMax),
			Details: map[string]interface{}{"volume": vol, "max": VolumeMax},
		})
	}

	return errors
}

// validateInsertTrackFrame validates INSERT_TRACK
func validateInsertTrackFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "INSERT_TRACK", 3)
	if len(errors) > 0 {
		return errors
	}

	if disk := f.Data()[0]; !Disk(disk).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Unknown disk code 0x%02X", disk),
			Details: map[string]interface{}{"disk": disk},
		})
	}

	return errors
}

// validatePlayModeFrame validates SET_PLAY_MODE
func validatePlayModeFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "SET_PLAY_MODE", 1)
	if len(errors) > 0 {
		return errors
	}

	mode := f.Data()[0]
	if !PlayMode(mode).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid play mode=0x%02X (max 0x%02X)", mode, int(PlayModeSequence)),
			Details: map[string]interface{}{"mode": mode, "max": int(PlayModeSequence)},
		})
	}

	return errors
}

// validateEQFrame validates SET_EQ
func validateEQFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "SET_EQ", 1)
	if len(errors) > 0 {
		return errors
	}

	eq := f.Data()[0]
	if !EQ(eq).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid equalizer=%d (max %d)", eq, int(EQClassic)),
			Details: map[string]interface{}{"eq": eq, "max": int(EQClassic)},
		})
	}

	return errors
}

// validateCombinationFrame validates COMBINATION_START: pairs of
// two-character A-Z/0-9 names
func validateCombinationFrame(f *Frame) []ValidationError {
	errors := []ValidationError{}
	data := f.Data()

	if len(data) == 0 || len(data)%2 != 0 {
		return []ValidationError{{
			Type:    AnomalyLengthMismatch,
			Message: fmt.Sprintf("COMBINATION_START data length %d (expected a non-zero multiple of 2)", len(data)),
			Details: map[string]interface{}{"length": len(data)},
		}}
	}

	for _, b := range data {
		if (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') {
			continue
		}
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid combination name byte 0x%02X (A-Z/0-9 only)", b),
			Details: map[string]interface{}{"byte": b},
		})
		break
	}

	return errors
}

// validateChannelFrame validates SET_CHANNEL
func validateChannelFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "SET_CHANNEL", 1)
	if len(errors) > 0 {
		return errors
	}

	ch := f.Data()[0]
	if !Channel(ch).Valid() {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid channel=%d (max %d)", ch, int(ChannelMP3AUX)),
			Details: map[string]interface{}{"channel": ch, "max": int(ChannelMP3AUX)},
		})
	}

	return errors
}

// validateShortNameFrame validates QUERY_SHORT_NAME request/response
func validateShortNameFrame(f *Frame) []ValidationError {
	errors := []ValidationError{}

	for _, b := range f.Data() {
		if b > 0x7F {
			errors = append(errors, ValidationError{
				Type:    AnomalyNonASCII,
				Message: fmt.Sprintf("Non-ASCII byte 0x%02X in short name", b),
				Details: map[string]interface{}{"byte": b},
			})
			break
		}
	}

	return errors
}

// validateRepeatRangeFrame validates REPEAT_RANGE: four minute/second
// fields, each 0..59
func validateRepeatRangeFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "REPEAT_RANGE", 4)
	if len(errors) > 0 {
		return errors
	}

	names := []string{"start minute", "start second", "end minute", "end second"}
	for i, b := range f.Data() {
		if b > 59 {
			errors = append(errors, ValidationError{
				Type:    AnomalyInvalidValue,
				Message: fmt.Sprintf("Invalid %s=%d (max 59)", names[i], b),
				Details: map[string]interface{}{"field": names[i], "value": b, "max": 59},
			})
		}
	}

	return errors
}

// validatePlayTimeFrame validates QUERY_PLAY_TIME and TIME_REPORT
// request/response: hours, minutes 0..59, seconds 0..59
func validatePlayTimeFrame(f *Frame) []ValidationError {
	errors := expectLength(f, "play time", 0, 3)
	if len(errors) > 0 || len(f.Data()) == 0 {
		return errors
	}

	data := f.Data()
	if data[1] > 59 {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid minutes=%d (max 59)", data[1]),
			Details: map[string]interface{}{"minutes": data[1], "max": 59},
		})
	}
	if data[2] > 59 {
		errors = append(errors, ValidationError{
			Type:    AnomalyInvalidValue,
			Message: fmt.Sprintf("Invalid seconds=%d (max 59)", data[2]),
			Details: map[string]interface{}{"seconds": data[2], "max": 59},
		})
	}

	return errors
}
