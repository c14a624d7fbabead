// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import "fmt"

// ValidateU16 bounds-checks a 16-bit protocol value
func ValidateU16(v int) (uint16, error) {
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("%w: %d not in 0..65535", ErrValueOutOfRange, v)
	}
	return uint16(v), nil
}

// ValidateVolume bounds-checks a volume level
func ValidateVolume(v int) error {
	if v < VolumeMin || v > VolumeMax {
		return fmt.Errorf("%w: volume %d not in %d..%d", ErrValueOutOfRange, v, VolumeMin, VolumeMax)
	}
	return nil
}

// ValidatePath checks a storage path and returns its wire bytes.
//
// Paths start with '/' and name folders in uppercase 8.3 style: A-Z, 0-9,
// and '_', with segments of 1 to 8 characters between separators. '*' and
// '.' are protocol format symbols; the first one ends folder-segment
// checking, since the remainder addresses a file name or wildcard pattern.
// A trailing folder segment with no terminator after it is not length
// checked.
func ValidatePath(path string) ([]byte, error) {
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: must start with '/'", ErrInvalidPath)
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '/' || c == '*' || c == '.' || c == '_':
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		default:
			return nil, fmt.Errorf("%w: illegal character %q", ErrInvalidPath, rune(c))
		}
	}

	seg := 0
	for i := 1; i < len(path); i++ {
		switch c := path[i]; {
		case c == '/':
			if seg < 1 || seg > 8 {
				return nil, fmt.Errorf("%w: folder name length %d not in 1..8", ErrInvalidPath, seg)
			}
			seg = 0
		case c == '*' || c == '.':
			return []byte(path), nil
		default:
			seg++
		}
	}
	return []byte(path), nil
}

// ValidateCombinationName checks a combination-playlist short name:
// exactly two characters, each A-Z or 0-9
func ValidateCombinationName(name string) error {
	if len(name) != 2 {
		return fmt.Errorf("%w: combination name %q must be exactly 2 characters", ErrInvalidValue, name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return fmt.Errorf("%w: combination name %q may only contain A-Z and 0-9", ErrInvalidValue, name)
	}
	return nil
}

// validateClockField checks a repeat-range minute or second field
func validateClockField(name string, v int) error {
	if v < 0 || v > 59 {
		return fmt.Errorf("%w: %s %d not in 0..59", ErrValueOutOfRange, name, v)
	}
	return nil
}

// Valid reports whether the disk can be named in a command.
// DiskNone is a report-only value.
func (d Disk) Valid() bool {
	switch d {
	case DiskUSB, DiskSD, DiskFlash:
		return true
	}
	return false
}

// Valid reports whether the value is a known play state
func (s PlayState) Valid() bool {
	return s >= PlayStateStopped && s <= PlayStatePaused
}

// Valid reports whether the value is a known play mode
func (m PlayMode) Valid() bool {
	return m >= PlayModeFullLoop && m <= PlayModeSequence
}

// SupportsLoopCount reports whether the mode honors a loop count.
// The stop, random, and sequential modes ignore counts.
func (m PlayMode) SupportsLoopCount() bool {
	switch m {
	case PlayModeFullLoop, PlayModeSingleLoop, PlayModeDirLoop:
		return true
	}
	return false
}

// Valid reports whether the value is a known equalizer preset
func (e EQ) Valid() bool {
	return e >= EQNormal && e <= EQClassic
}

// Valid reports whether the value is a known DAC channel
func (c Channel) Valid() bool {
	return c >= ChannelMP3 && c <= ChannelMP3AUX
}
