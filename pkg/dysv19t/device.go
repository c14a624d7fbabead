// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Options configure a Device. The cache fields seed the device state
// mirror; they are not transmitted.
type Options struct {
	// Timeout bounds each wait for a response frame. Must be positive.
	Timeout time.Duration

	// Volume is the assumed power-on volume level, 0..30.
	Volume int

	// Disk is the assumed power-on disk. DiskNone is allowed here and
	// means the disk is unknown until a query reports one.
	Disk Disk

	// PlayMode is the assumed power-on play mode.
	PlayMode PlayMode

	// Channel is the assumed power-on DAC output channel.
	Channel Channel
}

// DefaultOptions returns the module's power-on defaults: 500ms timeout,
// full volume, USB disk, single-play-then-stop mode, MP3 channel.
func DefaultOptions() Options {
	return Options{
		Timeout:  DefaultTimeout,
		Volume:   VolumeMax,
		Disk:     DiskUSB,
		PlayMode: PlayModeSingleStop,
		Channel:  ChannelMP3,
	}
}

// State is a snapshot of the device state mirror
type State struct {
	Play    PlayState
	Disk    Disk
	Volume  int
	Mode    PlayMode
	EQ      EQ
	Channel Channel
}

// PlayTime is an elapsed play time as reported by the module
type PlayTime struct {
	Hours   int
	Minutes int
	Seconds int
}

func (t PlayTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// Duration converts the play time to a time.Duration
func (t PlayTime) Duration() time.Duration {
	return time.Duration(t.Hours)*time.Hour +
		time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second
}

func playTimeFrom(data []byte) (PlayTime, bool) {
	if len(data) != 3 {
		return PlayTime{}, false
	}
	return PlayTime{
		Hours:   int(data[0]),
		Minutes: int(data[1]),
		Seconds: int(data[2]),
	}, true
}

// Device drives one DY-SV19T audio module over a byte transport.
//
// The device answers queries but never acknowledges commands, so a state
// mirror tracks what the module should be doing: command methods update it
// after a successful write, query methods overwrite it with what the
// module reports, and a failed write or quiet line leaves it untouched.
//
// Methods are not safe for concurrent use. Response scans and mirror
// updates assume one caller owns the transport.
type Device struct {
	conn  io.ReadWriter
	rx    *Receiver
	state State
}

// NewDevice validates the options and wraps the transport. Nothing is
// transmitted; the mirror starts from the options with playback stopped
// and the equalizer at normal.
func NewDevice(conn io.ReadWriter, opts Options) (*Device, error) {
	if opts.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", ErrInvalidValue)
	}
	if err := ValidateVolume(opts.Volume); err != nil {
		return nil, err
	}
	if !opts.Disk.Valid() && opts.Disk != DiskNone {
		return nil, fmt.Errorf("%w: disk %d", ErrInvalidValue, opts.Disk)
	}
	if !opts.PlayMode.Valid() {
		return nil, fmt.Errorf("%w: play mode %d", ErrInvalidValue, opts.PlayMode)
	}
	if !opts.Channel.Valid() {
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidValue, opts.Channel)
	}
	return &Device{
		conn: conn,
		rx:   NewReceiver(conn, opts.Timeout),
		state: State{
			Play:    PlayStateStopped,
			Disk:    opts.Disk,
			Volume:  opts.Volume,
			Mode:    opts.PlayMode,
			EQ:      EQNormal,
			Channel: opts.Channel,
		},
	}, nil
}

// State returns a snapshot of the device state mirror
func (d *Device) State() State {
	return d.state
}

func (d *Device) send(f *Frame) error {
	raw, err := EncodeFrame(f)
	if err != nil {
		return err
	}
	if _, err := d.conn.Write(raw); err != nil {
		return fmt.Errorf("transport write: %w", err)
	}
	return nil
}

// query sends a frame and waits for the response echoing its command
// code. A quiet line is reported as ok=false with a nil error.
func (d *Device) query(f *Frame) (*Frame, bool, error) {
	if err := d.send(f); err != nil {
		return nil, false, err
	}
	resp, err := d.rx.Receive(f.Command())
	if err != nil {
		if errors.Is(err, ErrNoReply) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return resp, true, nil
}

// queryU16 runs a query whose response carries one big-endian 16-bit
// value. Malformed responses count as no answer.
func (d *Device) queryU16(f *Frame) (int, bool, error) {
	resp, ok, err := d.query(f)
	if err != nil || !ok {
		return 0, false, err
	}
	data := resp.Data()
	if len(data) != 2 {
		return 0, false, nil
	}
	return int(u16From(data[0], data[1])), true, nil
}

// ---- Playback transport ----

// Play starts playback of the selected track
func (d *Device) Play() error {
	if err := d.send(NewPlayCommand()); err != nil {
		return err
	}
	d.state.Play = PlayStatePlaying
	return nil
}

// Pause toggles pause on the module. The mirror records paused either
// way; query the play state to resolve which side of the toggle the
// module landed on.
func (d *Device) Pause() error {
	if err := d.send(NewPauseCommand()); err != nil {
		return err
	}
	d.state.Play = PlayStatePaused
	return nil
}

// Stop stops playback
func (d *Device) Stop() error {
	if err := d.send(NewStopCommand()); err != nil {
		return err
	}
	d.state.Play = PlayStateStopped
	return nil
}

// PrevTrack skips to the previous track
func (d *Device) PrevTrack() error {
	return d.send(NewPrevTrackCommand())
}

// NextTrack skips to the next track
func (d *Device) NextTrack() error {
	return d.send(NewNextTrackCommand())
}

// PlayTrack selects a track number and starts playing it
func (d *Device) PlayTrack(track int) error {
	v, err := ValidateU16(track)
	if err != nil {
		return err
	}
	if err := d.send(NewPlayTrackCommand(v)); err != nil {
		return err
	}
	d.state.Play = PlayStatePlaying
	return nil
}

// SelectTrack selects a track number without starting playback
func (d *Device) SelectTrack(track int) error {
	v, err := ValidateU16(track)
	if err != nil {
		return err
	}
	return d.send(NewSelectTrackCommand(v))
}

// PlayPath plays a file addressed by disk and path, such as
// "/MUSIC/01.MP3". Dots are rewritten to the module's '*' form before
// the path is checked.
func (d *Device) PlayPath(disk Disk, path string) error {
	path = strings.ReplaceAll(path, ".", "*")
	if !disk.Valid() {
		return fmt.Errorf("%w: disk %d", ErrInvalidValue, disk)
	}
	pb, err := ValidatePath(path)
	if err != nil {
		return err
	}
	if err := d.send(NewPlayPathCommand(disk, pb)); err != nil {
		return err
	}
	d.state.Play = PlayStatePlaying
	d.state.Disk = disk
	return nil
}

// ---- Interjection ----

// InsertTrack interrupts the current track with another track; the
// interrupted track resumes when it finishes
func (d *Device) InsertTrack(disk Disk, track int) error {
	if !disk.Valid() {
		return fmt.Errorf("%w: disk %d", ErrInvalidValue, disk)
	}
	v, err := ValidateU16(track)
	if err != nil {
		return err
	}
	return d.send(NewInsertTrackCommand(disk, v))
}

// InsertPath interrupts the current track with a file addressed by disk
// and path
func (d *Device) InsertPath(disk Disk, path string) error {
	path = strings.ReplaceAll(path, ".", "*")
	if !disk.Valid() {
		return fmt.Errorf("%w: disk %d", ErrInvalidValue, disk)
	}
	pb, err := ValidatePath(path)
	if err != nil {
		return err
	}
	return d.send(NewInsertPathCommand(disk, pb))
}

// EndInsert cuts an interjection short
func (d *Device) EndInsert() error {
	return d.send(NewEndInsertCommand())
}

// ---- Volume, equalizer, channel, mode ----

// SetVolume sets the volume level, 0..30
func (d *Device) SetVolume(level int) error {
	if err := ValidateVolume(level); err != nil {
		return err
	}
	if err := d.send(NewVolumeCommand(byte(level))); err != nil {
		return err
	}
	d.state.Volume = level
	return nil
}

// VolumeUp steps the volume up one level. The module clamps at the top,
// so the mirror volume is left alone.
func (d *Device) VolumeUp() error {
	return d.send(NewVolumeUpCommand())
}

// VolumeDown steps the volume down one level
func (d *Device) VolumeDown() error {
	return d.send(NewVolumeDownCommand())
}

// SetPlayMode sets the play mode
func (d *Device) SetPlayMode(mode PlayMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: play mode %d", ErrInvalidValue, mode)
	}
	if err := d.send(NewPlayModeCommand(mode)); err != nil {
		return err
	}
	d.state.Mode = mode
	return nil
}

// SetLoopCount sets how many times the looping modes repeat, 1..65535.
// Fails without transmitting when the count is out of range or the
// mirrored play mode ignores loop counts.
func (d *Device) SetLoopCount(count int) error {
	if count < 1 || count > 0xFFFF {
		return fmt.Errorf("%w: loop count %d not in 1..65535", ErrValueOutOfRange, count)
	}
	if !d.state.Mode.SupportsLoopCount() {
		return fmt.Errorf("%w: %v does not loop", ErrIncompatibleMode, d.state.Mode)
	}
	return d.send(NewLoopCountCommand(uint16(count)))
}

// SetEQ selects an equalizer preset
func (d *Device) SetEQ(eq EQ) error {
	if !eq.Valid() {
		return fmt.Errorf("%w: equalizer %d", ErrInvalidValue, eq)
	}
	if err := d.send(NewEQCommand(eq)); err != nil {
		return err
	}
	d.state.EQ = eq
	return nil
}

// SetChannel selects the DAC output channel
func (d *Device) SetChannel(ch Channel) error {
	if !ch.Valid() {
		return fmt.Errorf("%w: channel %d", ErrInvalidValue, ch)
	}
	if err := d.send(NewChannelCommand(ch)); err != nil {
		return err
	}
	d.state.Channel = ch
	return nil
}

// ---- Combination playlists ----

// StartCombination plays the named tracks from the disk's ZH folder in
// order. Each name is the two-character A-Z/0-9 file prefix.
func (d *Device) StartCombination(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: combination needs at least one name", ErrInvalidValue)
	}
	data := make([]byte, 0, len(names)*2)
	for _, n := range names {
		if err := ValidateCombinationName(n); err != nil {
			return err
		}
		data = append(data, n...)
	}
	return d.send(NewCombinationStartCommand(data))
}

// EndCombination ends combination play
func (d *Device) EndCombination() error {
	return d.send(NewCombinationEndCommand())
}

// ---- Repeat ranges and seeking ----

// RepeatRange loops the stretch between two minute/second marks in the
// current track. All four fields must be 0..59.
func (d *Device) RepeatRange(startMin, startSec, endMin, endSec int) error {
	if err := validateClockField("start minute", startMin); err != nil {
		return err
	}
	if err := validateClockField("start second", startSec); err != nil {
		return err
	}
	if err := validateClockField("end minute", endMin); err != nil {
		return err
	}
	if err := validateClockField("end second", endSec); err != nil {
		return err
	}
	return d.send(NewRepeatRangeCommand(
		byte(startMin), byte(startSec), byte(endMin), byte(endSec)))
}

// EndRepeat ends repeat play
func (d *Device) EndRepeat() error {
	return d.send(NewRepeatEndCommand())
}

// SeekBackward rewinds by a number of seconds
func (d *Device) SeekBackward(seconds int) error {
	v, err := ValidateU16(seconds)
	if err != nil {
		return err
	}
	return d.send(NewSeekBackwardCommand(v))
}

// SeekForward fast-forwards by a number of seconds
func (d *Device) SeekForward(seconds int) error {
	v, err := ValidateU16(seconds)
	if err != nil {
		return err
	}
	return d.send(NewSeekForwardCommand(v))
}

// ---- Queries ----

// QueryPlayState asks the module whether it is stopped, playing, or
// paused, and mirrors the answer
func (d *Device) QueryPlayState() (PlayState, bool, error) {
	resp, ok, err := d.query(NewPlayStateQuery())
	if err != nil || !ok {
		return 0, false, err
	}
	data := resp.Data()
	if len(data) != 1 {
		return 0, false, nil
	}
	st := PlayState(data[0])
	d.state.Play = st
	return st, true, nil
}

// QueryOnlineDisks asks which disks are attached
func (d *Device) QueryOnlineDisks() (DiskSet, bool, error) {
	resp, ok, err := d.query(NewOnlineDisksQuery())
	if err != nil || !ok {
		return 0, false, err
	}
	data := resp.Data()
	if len(data) != 1 {
		return 0, false, nil
	}
	return DiskSet(data[0]), true, nil
}

// QueryCurrentDisk asks which disk is selected, and mirrors the answer
func (d *Device) QueryCurrentDisk() (Disk, bool, error) {
	resp, ok, err := d.query(NewCurrentDiskQuery())
	if err != nil || !ok {
		return 0, false, err
	}
	data := resp.Data()
	if len(data) != 1 {
		return 0, false, nil
	}
	disk := Disk(data[0])
	d.state.Disk = disk
	return disk, true, nil
}

// QueryTrackCount asks how many tracks the current disk holds
func (d *Device) QueryTrackCount() (int, bool, error) {
	return d.queryU16(NewTrackCountQuery())
}

// QueryCurrentTrack asks for the current track number
func (d *Device) QueryCurrentTrack() (int, bool, error) {
	return d.queryU16(NewCurrentTrackQuery())
}

// QueryFolderFirstTrack asks for the first track number in the current
// folder
func (d *Device) QueryFolderFirstTrack() (int, bool, error) {
	return d.queryU16(NewFolderFirstTrackQuery())
}

// QueryFolderTrackCount asks how many tracks the current folder holds
func (d *Device) QueryFolderTrackCount() (int, bool, error) {
	return d.queryU16(NewFolderTrackCountQuery())
}

// QueryShortName asks for the current file's 8.3 short name. A response
// carrying non-ASCII bytes counts as no answer.
func (d *Device) QueryShortName() (string, bool, error) {
	resp, ok, err := d.query(NewShortNameQuery())
	if err != nil || !ok {
		return "", false, err
	}
	data := resp.Data()
	if len(data) == 0 {
		return "", false, nil
	}
	for _, b := range data {
		if b > 0x7F {
			return "", false, nil
		}
	}
	return string(data), true, nil
}

// QueryPlayTime asks for the elapsed play time of the current track
func (d *Device) QueryPlayTime() (PlayTime, bool, error) {
	resp, ok, err := d.query(NewPlayTimeQuery())
	if err != nil || !ok {
		return PlayTime{}, false, err
	}
	t, ok := playTimeFrom(resp.Data())
	if !ok {
		return PlayTime{}, false, nil
	}
	return t, true, nil
}

// ---- Time reports ----

// StartTimeReports asks the module to push an elapsed-time report every
// second while playing. Collect them with NextTimeReport.
func (d *Device) StartTimeReports() error {
	return d.send(NewTimeReportOnCommand())
}

// StopTimeReports stops the once-a-second reports
func (d *Device) StopTimeReports() error {
	return d.send(NewTimeReportOffCommand())
}

// NextTimeReport waits one timeout window for a pushed elapsed-time
// report. ok is false when none arrived in time.
func (d *Device) NextTimeReport() (PlayTime, bool, error) {
	resp, err := d.rx.Receive(CmdTimeReportOn)
	if err != nil {
		if errors.Is(err, ErrNoReply) {
			return PlayTime{}, false, nil
		}
		return PlayTime{}, false, err
	}
	t, ok := playTimeFrom(resp.Data())
	if !ok {
		return PlayTime{}, false, nil
	}
	return t, true, nil
}
