// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"bytes"
	"io"
	"testing"
	"time"
)

func TestCapture_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewCaptureWriter(&buf)

	records := []CaptureRecord{
		{Time: time.Date(2025, 6, 1, 12, 0, 0, 250000, time.UTC), Dir: DirTx, Raw: []byte{0xAA, 0x02, 0x00, 0xAC}},
		{Time: time.Date(2025, 6, 1, 12, 0, 1, 500000, time.UTC), Dir: DirRx, Raw: []byte{0xAA, 0x01, 0x01, 0x01, 0xAD}},
		{Time: time.Date(2025, 6, 1, 12, 0, 2, 0, time.UTC), Dir: DirTx, Note: "port reopened"},
	}

	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	r := NewCaptureReader(&buf)
	for i, want := range records {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read record %d: %v", i, err)
		}
		if got.Dir != want.Dir {
			t.Errorf("Record %d: direction = %v, want %v", i, got.Dir, want.Dir)
		}
		if !bytes.Equal(got.Raw, want.Raw) {
			t.Errorf("Record %d: raw = % X, want % X", i, got.Raw, want.Raw)
		}
		if got.Note != want.Note {
			t.Errorf("Record %d: note = %q, want %q", i, got.Note, want.Note)
		}

		// Timestamps survive to microsecond precision
		if diff := got.Time.Sub(want.Time); diff < -time.Microsecond || diff > time.Microsecond {
			t.Errorf("Record %d: time drifted by %v", i, diff)
		}
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Expected io.EOF at end of stream, got %v", err)
	}
}

func TestCapture_RecordAndNote(t *testing.T) {
	var buf bytes.Buffer
	w := NewCaptureWriter(&buf)

	before := time.Now()
	if err := w.Record(DirRx, []byte{0xAA, 0x04, 0x00, 0xAE}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := w.Note(DirTx, "probe start"); err != nil {
		t.Fatalf("Note: %v", err)
	}

	r := NewCaptureReader(&buf)

	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rec.Dir != DirRx || len(rec.Raw) != 4 || rec.Note != "" {
		t.Errorf("Unexpected raw record: %+v", rec)
	}
	if rec.Time.Before(before.Add(-time.Second)) {
		t.Error("Record should be stamped with the current time")
	}

	note, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if note.Dir != DirTx || note.Note != "probe start" || len(note.Raw) != 0 {
		t.Errorf("Unexpected note record: %+v", note)
	}
}

func TestCaptureReader_TruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewCaptureWriter(&buf)
	if err := w.Record(DirRx, []byte{0xAA, 0x02, 0x00, 0xAC}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	cut := buf.Bytes()[:buf.Len()-3]
	r := NewCaptureReader(bytes.NewReader(cut))

	_, err := r.Read()
	if err == nil || err == io.EOF {
		t.Errorf("Expected an error for a cut-off record, got %v", err)
	}
}

func TestDirection_String(t *testing.T) {
	if DirRx.String() != "RX" || DirTx.String() != "TX" {
		t.Error("Direction tags wrong")
	}
	if Direction(9).String() != "??" {
		t.Error("Unknown direction should read ??")
	}
}
