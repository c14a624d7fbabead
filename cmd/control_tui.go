// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus order of the panel controls. The button values double as indexes
// into the rendered button row.
const (
	focusPlayButton = iota
	focusPauseButton
	focusStopButton
	focusPrevButton
	focusNextButton
	focusTrackInput
	focusVolumeInput
	focusFieldCount
)

const (
	pollIntervalSeconds = 2
	eventLogLines       = 8
)

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")).
			Padding(0, 2)

	focusedButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("10")).
				Padding(0, 2)
)

type controlModel struct {
	manager  *connectionManager
	connInfo string

	width  int
	height int
	focus  int

	trackInput  textinput.Model
	volumeInput textinput.Model

	stats    *dysv19t.Statistics
	playback playbackData

	logEntries []errorLogEntry

	synchronized   bool
	connectionLost bool
	tickCount      int
}

func newControlModel(manager *connectionManager) controlModel {
	trackInput := textinput.New()
	trackInput.Placeholder = "track"
	trackInput.CharLimit = 5
	trackInput.Width = 10

	volumeInput := textinput.New()
	volumeInput.Placeholder = "0-30"
	volumeInput.CharLimit = 2
	volumeInput.Width = 10

	return controlModel{
		manager:     manager,
		connInfo:    manager.connInfo,
		trackInput:  trackInput,
		volumeInput: volumeInput,
		stats:       dysv19t.NewStatistics(),
	}
}

func (m controlModel) Init() tea.Cmd {
	return tea.Batch(controlTickCmd(), textinput.Blink)
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case controlTickMsg:
		m.tickCount++
		m.stats.CalculateRates()
		if !m.connectionLost && m.tickCount%pollIntervalSeconds == 0 {
			m.manager.queryStatus()
		}
		return m, controlTickCmd()

	case controlBatchMsg:
		for _, ev := range msg.events {
			m = m.processEvent(ev)
		}
		return m, nil

	case controlSyncMsg:
		m.synchronized = true
		if msg.skipped > 0 {
			m = m.addLogEntry(fmt.Sprintf("synchronized after skipping %d invalid bytes", msg.skipped), false)
		}
		return m, nil

	case connectionLostMsg:
		m.connectionLost = true
		m.synchronized = false
		m = m.addLogEntry("connection lost, reconnecting...", true)
		return m, nil

	case reconnectedMsg:
		m.connectionLost = false
		m.connInfo = msg.connInfo
		m = m.addLogEntry("reconnected via "+msg.connInfo, false)
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m controlModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		// q only quits from a button; in an input it is just a keystroke
		if m.focus < focusTrackInput {
			return m, tea.Quit
		}
	case "tab", "down":
		return m.cycleFocus(1), nil
	case "shift+tab", "up":
		return m.cycleFocus(-1), nil
	case "enter":
		return m.handleEnter()
	}
	return m.updateInputs(msg)
}

func (m controlModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTrackInput:
		m.trackInput, cmd = m.trackInput.Update(msg)
	case focusVolumeInput:
		m.volumeInput, cmd = m.volumeInput.Update(msg)
	}
	return m, cmd
}

func (m controlModel) cycleFocus(delta int) controlModel {
	m.focus = (m.focus + delta + focusFieldCount) % focusFieldCount

	m.trackInput.Blur()
	m.volumeInput.Blur()
	switch m.focus {
	case focusTrackInput:
		m.trackInput.Focus()
	case focusVolumeInput:
		m.volumeInput.Focus()
	}
	return m
}

func (m controlModel) handleEnter() (tea.Model, tea.Cmd) {
	if m.connectionLost {
		return m.addLogEntry("not connected", true), nil
	}

	switch m.focus {
	case focusPlayButton:
		m = m.sendFrame(dysv19t.NewPlayCommand(), "PLAY")
	case focusPauseButton:
		m = m.sendFrame(dysv19t.NewPauseCommand(), "PAUSE")
	case focusStopButton:
		m = m.sendFrame(dysv19t.NewStopCommand(), "STOP")
	case focusPrevButton:
		m = m.sendFrame(dysv19t.NewPrevTrackCommand(), "PREV_TRACK")
	case focusNextButton:
		m = m.sendFrame(dysv19t.NewNextTrackCommand(), "NEXT_TRACK")
	case focusTrackInput:
		m = m.sendTrack()
	case focusVolumeInput:
		m = m.sendVolume()
	}
	return m, nil
}

func (m controlModel) sendFrame(frame *dysv19t.Frame, name string) controlModel {
	conn := m.manager.getConn()
	if conn == nil {
		return m.addLogEntry("not connected", true)
	}
	if _, err := conn.Write(dysv19t.MustEncodeFrame(frame)); err != nil {
		return m.addLogEntry(fmt.Sprintf("send %s: %v", name, err), true)
	}
	return m.addLogEntry("sent "+name, false)
}

func (m controlModel) sendTrack() controlModel {
	value := strings.TrimSpace(m.trackInput.Value())
	track, err := strconv.Atoi(value)
	if err != nil || track < 1 || track > 65535 {
		return m.addLogEntry(fmt.Sprintf("bad track number %q", value), true)
	}
	m = m.sendFrame(dysv19t.NewPlayTrackCommand(uint16(track)), fmt.Sprintf("PLAY_TRACK %d", track))
	m.trackInput.SetValue("")
	return m
}

func (m controlModel) sendVolume() controlModel {
	value := strings.TrimSpace(m.volumeInput.Value())
	level, err := strconv.Atoi(value)
	if err != nil || level < dysv19t.VolumeMin || level > dysv19t.VolumeMax {
		return m.addLogEntry(fmt.Sprintf("bad volume %q", value), true)
	}
	m = m.sendFrame(dysv19t.NewVolumeCommand(byte(level)), fmt.Sprintf("SET_VOLUME %d", level))
	m.volumeInput.SetValue("")
	return m
}

func (m controlModel) processEvent(ev controlEvent) controlModel {
	if ev.decodeErr != nil {
		m.stats.Update(nil, ev.decodeErr, nil)
		return m.addLogEntry("decode error: "+ev.decodeErr.Error(), true)
	}

	frame := ev.frame
	validationErrors := dysv19t.ValidateFrame(frame)
	m.stats.Update(frame, nil, validationErrors)
	if len(validationErrors) > 0 {
		for _, ve := range validationErrors {
			m = m.addLogEntry(ve.Message, true)
		}
		return m
	}

	m.playback = m.playback.note(frame)
	return m
}

func (m controlModel) addLogEntry(message string, isError bool) controlModel {
	m.logEntries = append(m.logEntries, errorLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.logEntries) > maxLogEntries {
		m.logEntries = m.logEntries[len(m.logEntries)-maxLogEntries:]
	}
	return m
}

func (m controlModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Phonostat Control"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(m.connInfo))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")
	b.WriteString(m.renderStatisticsBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderEventLog())
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("tab: move focus   enter: press   q: quit"))

	return b.String()
}

func (m controlModel) statusLine() string {
	switch {
	case m.connectionLost:
		return errorStyle.Render("✗ Connection lost, reconnecting...")
	case !m.synchronized:
		return warningStyle.Render("⏳ Waiting for module traffic...")
	default:
		return statsValueStyle.Render("✓ Synchronized")
	}
}

func (m controlModel) renderStatus() string {
	p := m.playback

	state := "--"
	if p.hasState {
		state = p.state.String()
	}
	disk := "--"
	if p.hasDisk {
		disk = p.disk.String()
	}
	track := "--"
	if p.hasTrack {
		track = strconv.Itoa(p.track)
	}
	elapsed := "--"
	if p.hasTime {
		elapsed = p.time.String()
	}

	pair := func(label, value string) string {
		return statsLabelStyle.Render(label) + " " + statsValueStyle.Render(fmt.Sprintf("%-10s", value))
	}

	content := pair("State:", state) + pair("Disk:", disk) + pair("Track:", track) + pair("Time:", elapsed)
	return boxStyle.Width(m.width - 4).Render(content)
}

func (m controlModel) renderControls() string {
	labels := []string{"Play", "Pause", "Stop", "Prev", "Next"}
	buttons := make([]string, len(labels))
	for i, label := range labels {
		style := buttonStyle
		if m.focus == i {
			style = focusedButtonStyle
		}
		buttons[i] = style.Render(label)
	}

	inputs := statsLabelStyle.Render("Track:") + " " + m.trackInput.View() + "   " +
		statsLabelStyle.Render("Volume:") + " " + m.volumeInput.View()

	return boxStyle.Width(m.width - 4).Render(strings.Join(buttons, " ") + "\n" + inputs)
}

func (m controlModel) renderStatisticsBar() string {
	s := m.stats
	errorCount := s.ChecksumErrors + s.DecodeErrors + s.MalformedFrames + s.AnomalousValues
	return headerStyle.Render(fmt.Sprintf("frames %d   valid %d   errors %d   %.1f/s",
		s.TotalFrames, s.ValidFrames, errorCount, s.FrameRate))
}

func (m controlModel) renderEventLog() string {
	var b strings.Builder
	b.WriteString(statsLabelStyle.Render("Events"))
	b.WriteString("\n")

	start := 0
	if len(m.logEntries) > eventLogLines {
		start = len(m.logEntries) - eventLogLines
	}
	entries := m.logEntries[start:]

	if len(entries) == 0 {
		b.WriteString(headerStyle.Render("(none)"))
	}
	for i, entry := range entries {
		ts := entry.timestamp.Format("15:04:05.000")
		if entry.isError {
			b.WriteString(errorStyle.Render(fmt.Sprintf("x %s %s", ts, entry.message)))
		} else {
			b.WriteString(headerStyle.Render(fmt.Sprintf("i %s %s", ts, entry.message)))
		}
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}

	return boxStyle.Width(m.width - 4).Render(b.String())
}
