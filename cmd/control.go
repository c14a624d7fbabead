// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Thermoquad/phonostat/pkg/dysv19t"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive control panel",
	Long: `Opens a full-screen control panel with transport buttons, track and
volume entry, a live status readout, and an event log.

The module's status is polled every few seconds. If the connection drops
the panel keeps running and reconnects with backoff.

Keys: tab/shift+tab move focus, enter presses the focused control,
q or Ctrl+C quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, connInfo, err := OpenConnection()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
			os.Exit(2)
		}

		manager := &connectionManager{
			conn:     conn,
			connInfo: connInfo,
			done:     make(chan struct{}),
		}
		defer manager.shutdown()

		m := newControlModel(manager)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		manager.p = p

		go manager.readerLoop()
		manager.queryStatus()

		_, err = p.Run()
		return err
	},
}

// controlEvent is one decoded item from the bus: a frame, or a decode
// failure
type controlEvent struct {
	frame     *dysv19t.Frame
	decodeErr error
}

type controlTickMsg time.Time

type controlBatchMsg struct {
	events []controlEvent
}

type controlSyncMsg struct {
	skipped int
}

type connectionLostMsg struct{}

type reconnectedMsg struct {
	connInfo string
}

func controlTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return controlTickMsg(t)
	})
}

// connectionManager owns the transport on behalf of the control panel:
// it feeds decoded frames into the program and reconnects with backoff
// when the link drops.
type connectionManager struct {
	mu       sync.RWMutex
	conn     Connection
	connInfo string

	p    *tea.Program
	done chan struct{}
}

func (cm *connectionManager) getConn() Connection {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.conn
}

func (cm *connectionManager) setConn(conn Connection, connInfo string) {
	cm.mu.Lock()
	cm.conn = conn
	cm.connInfo = connInfo
	cm.mu.Unlock()
}

func (cm *connectionManager) shutdown() {
	close(cm.done)
	if conn := cm.getConn(); conn != nil {
		conn.Close()
	}
}

// queryStatus asks for the status fields shown in the panel. Write
// failures are ignored; the reader notices a dead link soon enough.
func (cm *connectionManager) queryStatus() {
	conn := cm.getConn()
	if conn == nil {
		return
	}
	for _, f := range []*dysv19t.Frame{
		dysv19t.NewPlayStateQuery(),
		dysv19t.NewCurrentDiskQuery(),
		dysv19t.NewCurrentTrackQuery(),
		dysv19t.NewPlayTimeQuery(),
	} {
		if _, err := conn.Write(dysv19t.MustEncodeFrame(f)); err != nil {
			return
		}
	}
}

func (cm *connectionManager) readerLoop() {
	for {
		select {
		case <-cm.done:
			return
		default:
		}

		conn := cm.getConn()
		if conn == nil {
			return
		}

		if err := cm.readFromConnection(conn); err == nil {
			return
		}

		select {
		case <-cm.done:
			return
		default:
		}

		cm.reconnect()
	}
}

// readFromConnection decodes the stream until the connection fails or the
// panel shuts down (nil return). Decoded events are batched to the
// program on a short tick so a burst of frames costs one render, not one
// per frame.
func (cm *connectionManager) readFromConnection(conn Connection) error {
	decoder := dysv19t.NewDecoder()
	synchronized := false
	invalidBytesBeforeSync := 0

	batchChan := make(chan controlEvent, 100)
	syncChan := make(chan int, 1)
	readerDone := make(chan struct{})
	defer close(readerDone)

	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		var pending []controlEvent
		flush := func() {
			if len(pending) == 0 {
				return
			}
			events := pending
			pending = nil
			cm.p.Send(controlBatchMsg{events: events})
		}

		for {
			select {
			case ev := <-batchChan:
				pending = append(pending, ev)
			case skipped := <-syncChan:
				cm.p.Send(controlSyncMsg{skipped: skipped})
			case <-ticker.C:
				flush()
			case <-readerDone:
				flush()
				return
			}
		}
	}()

	buf := make([]byte, 256)
	for {
		select {
		case <-cm.done:
			return nil
		default:
		}

		n, err := conn.Read(buf)
		if n > 0 {
			for _, b := range buf[:n] {
				frame, decErr := decoder.DecodeByte(b)
				if decErr != nil {
					select {
					case batchChan <- controlEvent{decodeErr: decErr}:
					default:
					}
					continue
				}
				if frame == nil {
					if !synchronized && len(decoder.RawBytes()) == 0 {
						invalidBytesBeforeSync++
					}
					continue
				}

				if !synchronized {
					synchronized = true
					select {
					case syncChan <- invalidBytesBeforeSync:
					default:
					}
				}

				select {
				case batchChan <- controlEvent{frame: frame}:
				default:
				}
			}
		}
		if err != nil {
			return err
		}
		if n == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// reconnect retries the transport with exponential backoff, capped at
// 30 seconds, until it comes back or the panel shuts down.
func (cm *connectionManager) reconnect() {
	cm.p.Send(connectionLostMsg{})

	if conn := cm.getConn(); conn != nil {
		conn.Close()
	}
	cm.setConn(nil, "")

	backoff := time.Second
	for {
		select {
		case <-cm.done:
			return
		case <-time.After(backoff):
		}

		conn, connInfo, err := OpenConnection()
		if err == nil {
			cm.setConn(conn, connInfo)
			cm.p.Send(reconnectedMsg{connInfo: connInfo})
			cm.queryStatus()
			return
		}

		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
}

func init() {
	rootCmd.AddCommand(controlCmd)
}
