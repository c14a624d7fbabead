// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shared dashboard styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

const maxLogEntries = 100

// errorLogEntry is one line in the recent events log
type errorLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// playbackData is the playback picture assembled from observed frames
type playbackData struct {
	state    dysv19t.PlayState
	hasState bool

	disk    dysv19t.Disk
	hasDisk bool

	track    int
	hasTrack bool

	trackCount    int
	hasTrackCount bool

	time    dysv19t.PlayTime
	hasTime bool

	lastSeen time.Time
}

type tickMsg time.Time

type monitorDataMsg struct {
	data []byte
}

type monitorClosedMsg struct {
	err error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type monitorModel struct {
	connInfo string
	width    int
	height   int

	decoder *dysv19t.Decoder
	stats   *dysv19t.Statistics

	synchronized           bool
	invalidBytesBeforeSync int
	closed                 bool

	playback   playbackData
	logEntries []errorLogEntry
}

func newMonitorModel(connInfo string) monitorModel {
	return monitorModel{
		connInfo: connInfo,
		decoder:  dysv19t.NewDecoder(),
		stats:    dysv19t.NewStatistics(),
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.EnterAltScreen)
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.stats.CalculateRates()
		return m, tickCmd()

	case monitorDataMsg:
		m = m.processBytes(msg.data)

	case monitorClosedMsg:
		m.closed = true
		m = m.addLogEntry(fmt.Sprintf("connection closed: %v", msg.err), true)
	}

	return m, nil
}

func (m monitorModel) processBytes(data []byte) monitorModel {
	for _, b := range data {
		frame, err := m.decoder.DecodeByte(b)
		if err != nil {
			m.stats.Update(nil, err, nil)
			m = m.addLogEntry(err.Error(), true)
			continue
		}
		if frame == nil {
			if !m.synchronized && len(m.decoder.RawBytes()) == 0 {
				m.invalidBytesBeforeSync++
			}
			continue
		}

		if !m.synchronized {
			m.synchronized = true
			if m.invalidBytesBeforeSync > 0 {
				m = m.addLogEntry(fmt.Sprintf("synchronized after skipping %d invalid bytes", m.invalidBytesBeforeSync), false)
			}
		}

		validationErrors := dysv19t.ValidateFrame(frame)
		m.stats.Update(frame, nil, validationErrors)
		if len(validationErrors) > 0 {
			for _, ve := range validationErrors {
				m = m.addLogEntry(ve.Message, true)
			}
			continue
		}

		m.playback = m.playback.note(frame)
	}
	return m
}

// note folds a clean frame into the playback picture. Query codes carry
// data only in the response direction, so empty requests fall through.
func (p playbackData) note(frame *dysv19t.Frame) playbackData {
	data := frame.Data()

	switch frame.Command() {
	case dysv19t.CmdQueryPlayState:
		if len(data) == 1 {
			p.state = dysv19t.PlayState(data[0])
			p.hasState = true
			p.lastSeen = frame.Timestamp()
		}
	case dysv19t.CmdQueryCurrentDisk:
		if len(data) == 1 {
			p.disk = dysv19t.Disk(data[0])
			p.hasDisk = true
			p.lastSeen = frame.Timestamp()
		}
	case dysv19t.CmdQueryCurrentTrack:
		if len(data) == 2 {
			p.track = int(data[0])<<8 | int(data[1])
			p.hasTrack = true
			p.lastSeen = frame.Timestamp()
		}
	case dysv19t.CmdQueryTrackCount:
		if len(data) == 2 {
			p.trackCount = int(data[0])<<8 | int(data[1])
			p.hasTrackCount = true
			p.lastSeen = frame.Timestamp()
		}
	case dysv19t.CmdQueryPlayTime, dysv19t.CmdTimeReportOn:
		if len(data) == 3 {
			p.time = dysv19t.PlayTime{Hours: int(data[0]), Minutes: int(data[1]), Seconds: int(data[2])}
			p.hasTime = true
			p.lastSeen = frame.Timestamp()
		}
	}

	return p
}

func (m monitorModel) addLogEntry(message string, isError bool) monitorModel {
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

func formatUptime(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}

func (m monitorModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Phonostat Monitor"))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s | up %s | q to quit", m.connInfo, formatUptime(time.Since(m.stats.StartTime)))))
	b.WriteString("\n\n")

	switch {
	case m.closed:
		b.WriteString(errorStyle.Render("✗ Connection closed"))
	case !m.synchronized:
		b.WriteString(warningStyle.Render("⏳ Waiting for synchronization..."))
	default:
		b.WriteString(statsValueStyle.Render("✓ Synchronized"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderPlayback())
	b.WriteString("\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m monitorModel) renderStats() string {
	s := m.stats

	pair := func(label string, value string) string {
		return statsLabelStyle.Render(label) + " " + statsValueStyle.Render(value)
	}

	lines := []string{
		pair("Total:", fmt.Sprintf("%-8d", s.TotalFrames)) +
			pair("Valid:", fmt.Sprintf("%-8d", s.ValidFrames)) +
			pair("Rate:", fmt.Sprintf("%.1f/s", s.FrameRate)),
	}

	errorCount := s.ChecksumErrors + s.DecodeErrors + s.MalformedFrames + s.AnomalousValues
	if errorCount > 0 {
		lines = append(lines,
			pair("Checksum:", fmt.Sprintf("%-5d", s.ChecksumErrors))+
				pair("Decode:", fmt.Sprintf("%-5d", s.DecodeErrors))+
				pair("Malformed:", fmt.Sprintf("%-5d", s.MalformedFrames))+
				pair("Anomalous:", fmt.Sprintf("%-5d", s.AnomalousValues)))
	}
	if s.TimeReports > 0 || s.QueryResponses > 0 {
		lines = append(lines,
			pair("Time reports:", fmt.Sprintf("%-6d", s.TimeReports))+
				pair("Query responses:", fmt.Sprintf("%d", s.QueryResponses)))
	}

	return boxStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m monitorModel) renderPlayback() string {
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
		track = fmt.Sprintf("%d", p.track)
		if p.hasTrackCount {
			track = fmt.Sprintf("%d / %d", p.track, p.trackCount)
		}
	}
	elapsed := "--"
	if p.hasTime {
		elapsed = p.time.String()
	}

	pair := func(label string, value string) string {
		return statsLabelStyle.Render(label) + " " + statsValueStyle.Render(fmt.Sprintf("%-12s", value))
	}

	content := pair("State:", state) + pair("Disk:", disk) + "\n" +
		pair("Track:", track) + pair("Time:", elapsed)

	return boxStyle.Width(m.width - 4).Render(content)
}

func (m monitorModel) renderEvents() string {
	logHeight := m.height - 15
	if logHeight < 5 {
		logHeight = 5
	}

	var b strings.Builder
	b.WriteString(statsLabelStyle.Render("Recent Events:"))
	b.WriteString("\n")

	start := 0
	if len(m.logEntries) > logHeight {
		start = len(m.logEntries) - logHeight
	}

	if len(m.logEntries) == 0 {
		b.WriteString(headerStyle.Render("  (none)"))
	}

	for i, entry := range m.logEntries[start:] {
		ts := entry.timestamp.Format("01/02/06 15:04:05.000")
		line := fmt.Sprintf("%s %s", ts, entry.message)
		if entry.isError {
			b.WriteString(errorStyle.Render("✗ " + line))
		} else {
			b.WriteString(headerStyle.Render("ℹ " + line))
		}
		if i < len(m.logEntries[start:])-1 {
			b.WriteString("\n")
		}
	}

	return boxStyle.Width(m.width - 4).Render(b.String())
}
