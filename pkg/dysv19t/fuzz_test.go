// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// randomFrame builds a wire-valid frame with a random command and random data
func randomFrame(rng *rand.Rand) (Command, []byte, []byte) {
	cmd := Command(rng.Intn(256))
	data := make([]byte, rng.Intn(32))
	rng.Read(data)
	encoded, _ := Encode(cmd, data)
	return cmd, data, encoded
}

// ============================================================
// Decoder Fuzz Tests
// ============================================================

// TestFuzzDecoder_RandomBytes feeds random bytes to the decoder
// and verifies it doesn't crash or panic
func TestFuzzDecoder_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()

		// Generate random byte sequence of random length (1-512 bytes)
		length := rng.Intn(512) + 1
		data := make([]byte, length)
		rng.Read(data)

		// Feed all bytes to decoder - should not panic
		for _, b := range data {
			d.DecodeByte(b)
		}
	}
}

// TestFuzzDecoder_RandomFrames generates random valid frames and
// verifies they decode back to the same command and data
func TestFuzzDecoder_RandomFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()
		cmd, data, encoded := randomFrame(rng)

		var frame *Frame
		for _, b := range encoded {
			f, err := d.DecodeByte(b)
			if err != nil {
				t.Fatalf("Round %d: unexpected decode error: %v", i, err)
			}
			if f != nil {
				frame = f
			}
		}

		if frame == nil {
			t.Fatalf("Round %d: expected frame, got nil", i)
		}
		if frame.Command() != cmd {
			t.Errorf("Round %d: command mismatch: expected 0x%02X, got 0x%02X", i, byte(cmd), byte(frame.Command()))
		}
		if !bytes.Equal(frame.Data(), data) {
			t.Errorf("Round %d: data mismatch: expected % X, got % X", i, data, frame.Data())
		}
	}
}

// TestFuzzDecoder_CorruptedFrames corrupts one byte of a valid frame and
// verifies the decoder rejects it. The additive checksum shifts by the
// byte delta, so any single-byte change outside the length byte must
// surface as a checksum mismatch.
func TestFuzzDecoder_CorruptedFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()
		_, _, encoded := randomFrame(rng)

		// Corrupt the command byte, a data byte, or the checksum byte.
		// The start byte would stop the frame from being seen at all and
		// the length byte shifts the framing, so both stay intact.
		corruptIdx := 1 + rng.Intn(len(encoded)-1)
		for corruptIdx == 2 {
			corruptIdx = 1 + rng.Intn(len(encoded)-1)
		}
		encoded[corruptIdx] ^= byte(rng.Intn(255) + 1)

		var frame *Frame
		var decodeErr error
		for _, b := range encoded {
			f, err := d.DecodeByte(b)
			if f != nil {
				frame = f
			}
			if err != nil {
				decodeErr = err
			}
		}

		if frame != nil {
			t.Errorf("Round %d: corrupted frame decoded at index %d: % X", i, corruptIdx, encoded)
		}
		if !errors.Is(decodeErr, ErrChecksumMismatch) {
			t.Errorf("Round %d: expected checksum mismatch, got %v", i, decodeErr)
		}
	}
}

// TestFuzzDecoder_MissingBytes tests frames with missing bytes
func TestFuzzDecoder_MissingBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()
		_, _, encoded := randomFrame(rng)

		// Remove random bytes
		numToRemove := rng.Intn(5) + 1
		for j := 0; j < numToRemove && len(encoded) > 1; j++ {
			idx := rng.Intn(len(encoded))
			encoded = append(encoded[:idx], encoded[idx+1:]...)
		}

		// Feed truncated frame - should not panic
		for _, b := range encoded {
			d.DecodeByte(b)
		}
	}
}

// TestFuzzDecoder_ExtraBytes tests frames with extra random bytes inserted
func TestFuzzDecoder_ExtraBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()
		_, _, encoded := randomFrame(rng)

		// Insert random bytes at random positions
		numToInsert := rng.Intn(5) + 1
		for j := 0; j < numToInsert; j++ {
			idx := rng.Intn(len(encoded) + 1)
			extraByte := byte(rng.Intn(256))
			encoded = append(encoded[:idx], append([]byte{extraByte}, encoded[idx:]...)...)
		}

		// Feed modified frame - should not panic
		for _, b := range encoded {
			d.DecodeByte(b)
		}
	}
}

// TestFuzzDecoder_LeadingNoise prefixes a valid frame with line noise and
// verifies the frame still decodes. Noise excludes the start byte, which
// would open a bogus frame and swallow the real one.
func TestFuzzDecoder_LeadingNoise(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()

		numNoise := rng.Intn(100) + 1
		for j := 0; j < numNoise; j++ {
			b := byte(rng.Intn(256))
			if b == StartByte {
				b++
			}
			d.DecodeByte(b)
		}

		cmd, data, encoded := randomFrame(rng)

		var frame *Frame
		for _, b := range encoded {
			f, err := d.DecodeByte(b)
			if err != nil {
				t.Fatalf("Round %d: unexpected error after noise: %v", i, err)
			}
			if f != nil {
				frame = f
			}
		}

		if frame == nil {
			t.Fatalf("Round %d: expected frame after leading noise", i)
		}
		if frame.Command() != cmd || !bytes.Equal(frame.Data(), data) {
			t.Errorf("Round %d: frame mangled by leading noise", i)
		}
	}
}

// TestFuzzDecoder_BackToBackFrames decodes several concatenated frames
// and verifies each one comes out intact and in order
func TestFuzzDecoder_BackToBackFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		d := NewDecoder()

		numFrames := rng.Intn(5) + 2
		var stream []byte
		var cmds []Command

		for j := 0; j < numFrames; j++ {
			cmd, _, encoded := randomFrame(rng)
			stream = append(stream, encoded...)
			cmds = append(cmds, cmd)
		}

		var got []Command
		for _, b := range stream {
			f, err := d.DecodeByte(b)
			if err != nil {
				t.Fatalf("Round %d: unexpected decode error: %v", i, err)
			}
			if f != nil {
				got = append(got, f.Command())
			}
		}

		if len(got) != numFrames {
			t.Fatalf("Round %d: expected %d frames, got %d", i, numFrames, len(got))
		}
		for j := range cmds {
			if got[j] != cmds[j] {
				t.Errorf("Round %d: frame %d command mismatch: expected 0x%02X, got 0x%02X",
					i, j, byte(cmds[j]), byte(got[j]))
			}
		}
	}
}

// ============================================================
// Checksum Fuzz Tests
// ============================================================

// TestFuzzChecksum_RandomData tests checksum calculation with random data
func TestFuzzChecksum_RandomData(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		// Generate random data
		length := rng.Intn(1000) + 1
		data := make([]byte, length)
		rng.Read(data)

		// Calculate checksum - should not panic
		sm1 := Checksum(data)
		sm2 := Checksum(data)

		// Checksum should be deterministic
		if sm1 != sm2 {
			t.Errorf("Round %d: checksum not deterministic: 0x%02X != 0x%02X", i, sm1, sm2)
		}

		// Modify one byte - the sum shifts by the byte delta, which is
		// never zero mod 256, so the checksum always changes
		idx := rng.Intn(len(data))
		original := data[idx]
		data[idx] ^= byte(rng.Intn(255) + 1)
		sm3 := Checksum(data)
		data[idx] = original

		if sm3 == sm1 {
			t.Errorf("Round %d: single-byte corruption not reflected in checksum", i)
		}
	}
}

// ============================================================
// Validation Fuzz Tests
// ============================================================

// TestFuzzValidation_RandomFrames tests validation with random frame contents
func TestFuzzValidation_RandomFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		cmd := Command(rng.Intn(256))
		data := make([]byte, rng.Intn(32))
		rng.Read(data)

		f := NewFrame(cmd, data)

		// Validate - should not panic
		errs := ValidateFrame(f)

		// Errors slice should be non-nil
		if errs == nil {
			t.Errorf("Round %d: ValidateFrame returned nil slice", i)
		}
	}
}

// ============================================================
// Formatter Fuzz Tests
// ============================================================

// TestFuzzFormatter_RandomFrames tests formatting with random frames
func TestFuzzFormatter_RandomFrames(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		cmd := Command(rng.Intn(256))
		data := make([]byte, rng.Intn(32))
		rng.Read(data)

		f := NewFrame(cmd, data)

		// Format - should not panic
		result := FormatFrame(f)
		if result == "" {
			t.Errorf("Round %d: FormatFrame returned empty string", i)
		}

		// Command name - should not panic
		if cmd.String() == "" {
			t.Errorf("Round %d: Command.String returned empty string", i)
		}

		// Data rendering - should not panic
		if FormatData(cmd, data) == "" {
			t.Errorf("Round %d: FormatData returned empty string", i)
		}
	}
}
