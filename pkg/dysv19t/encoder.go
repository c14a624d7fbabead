package dysv19t

import "fmt"

// Encode builds the wire bytes for a command and its data payload:
// [0xAA][CMD][LEN][DATA...][SM]. The checksum is the low byte of the sum of
// everything before it.
func Encode(cmd Command, data []byte) ([]byte, error) {
	if len(data) > MaxDataSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrDataTooLong, len(data), MaxDataSize)
	}

	frame := make([]byte, 0, FrameOverhead+len(data))
	frame = append(frame, StartByte, byte(cmd), byte(len(data)))
	frame = append(frame, data...)
	frame = append(frame, Checksum(frame))

	return frame, nil
}

// EncodeFrame serializes a frame to wire format.
func EncodeFrame(f *Frame) ([]byte, error) {
	return Encode(f.Command(), f.Data())
}

// MustEncodeFrame serializes a frame to wire format.
// Panics on encoding error (use EncodeFrame for error handling).
func MustEncodeFrame(f *Frame) []byte {
	raw, err := EncodeFrame(f)
	if err != nil {
		panic(fmt.Sprintf("dysv19t: encode error: %v", err))
	}
	return raw
}

// Multi-byte values travel big-endian on this wire.

// u16Bytes splits a 16-bit value into its wire bytes, high byte first
func u16Bytes(v uint16) (hi, lo byte) {
	return byte(v >> 8), byte(v)
}

// u16From assembles a 16-bit value from its wire bytes
func u16From(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
