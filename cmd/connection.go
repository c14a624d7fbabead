// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// Connection abstracts a bidirectional byte stream transport
type Connection interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// ByteReader is kept for call sites that only consume the stream
type ByteReader = Connection

// ErrConnectionClosed is returned when reading from a closed connection
var ErrConnectionClosed = errors.New("connection closed")

// serialReadTimeout bounds each serial read so a quiet line yields empty
// reads instead of blocking forever. Response waits poll on top of this.
const serialReadTimeout = 20 * time.Millisecond

// SerialConnection wraps a serial port
type SerialConnection struct {
	port serial.Port
}

func (s *SerialConnection) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

func (s *SerialConnection) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *SerialConnection) Close() error {
	return s.port.Close()
}

// OpenSerialConnection opens a serial port in the module's framing:
// 8 data bits, no parity, one stop bit.
func OpenSerialConnection(portName string, baudRate int) (*SerialConnection, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", portName, err)
	}

	if err := port.SetReadTimeout(serialReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("setting read timeout on %s: %w", portName, err)
	}

	log.Debug().Str("port", portName).Int("baud", baudRate).Msg("serial port opened")
	return &SerialConnection{port: port}, nil
}

// WebSocketConnection adapts a WebSocket carrying binary messages to the
// byte stream Connection. A background goroutine pumps messages into a
// channel so reads can be bounded; non-binary messages are skipped.
type WebSocketConnection struct {
	conn *websocket.Conn

	frames chan []byte
	done   chan struct{}
	buf    []byte

	mu      sync.Mutex
	readErr error
	closed  bool
}

func newWebSocketConnection(conn *websocket.Conn) *WebSocketConnection {
	w := &WebSocketConnection{
		conn:   conn,
		frames: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go w.pump()
	return w
}

func (w *WebSocketConnection) pump() {
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.mu.Lock()
			if w.closed || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.readErr = ErrConnectionClosed
			} else {
				w.readErr = err
			}
			w.mu.Unlock()
			close(w.frames)
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		select {
		case w.frames <- data:
		case <-w.done:
			return
		}
	}
}

// Read returns buffered bytes from the most recent binary message. When
// nothing arrives within a short wait it returns 0 bytes and no error,
// the same contract a serial port with a read timeout provides.
func (w *WebSocketConnection) Read(p []byte) (int, error) {
	if len(w.buf) == 0 {
		select {
		case data, ok := <-w.frames:
			if !ok {
				w.mu.Lock()
				err := w.readErr
				w.mu.Unlock()
				return 0, err
			}
			w.buf = data
		case <-time.After(serialReadTimeout):
			return 0, nil
		}
	}

	n := copy(p, w.buf)
	w.buf = w.buf[n:]
	return n, nil
}

func (w *WebSocketConnection) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, ErrConnectionClosed
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *WebSocketConnection) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()
	return w.conn.Close()
}

// OpenWebSocketConnection dials a ws:// or wss:// URL, optionally with
// HTTP Basic auth credentials.
func OpenWebSocketConnection(rawURL, username, password string, skipTLSVerify bool) (*WebSocketConnection, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("URL scheme must be ws:// or wss://, got %s://", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if u.Scheme == "wss" && skipTLSVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	header := http.Header{}
	if username != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		header.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	log.Debug().Str("url", rawURL).Msg("websocket connected")
	return newWebSocketConnection(conn), nil
}

var (
	cachedPassword string
	passwordCached bool
)

// GetPassword reads the WebSocket password from the PHONOSTAT_PASSWORD
// environment variable, falling back to an interactive prompt. The value
// is cached so reconnects never prompt mid-session.
func GetPassword() (string, error) {
	if passwordCached {
		return cachedPassword, nil
	}

	if password := os.Getenv("PHONOSTAT_PASSWORD"); password != "" {
		cachedPassword, passwordCached = password, true
		return password, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err == nil {
		cachedPassword, passwordCached = string(passwordBytes), true
		return cachedPassword, nil
	}

	// Not a terminal; read a line from stdin instead
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	cachedPassword, passwordCached = strings.TrimSpace(password), true
	return cachedPassword, nil
}

// OpenConnection opens whichever transport the root flags select and
// returns it with a printable description.
func OpenConnection() (ByteReader, string, error) {
	if wsURL != "" {
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}
		conn, err := OpenWebSocketConnection(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		conn, err := OpenSerialConnection(portName, baudRate)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil
	}

	return nil, "", fmt.Errorf("either --port or --url must be specified")
}
