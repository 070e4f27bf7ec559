package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the length of the big-endian length prefix on every frame.
const HeaderSize = 4

// MaxFrameSize bounds a single payload. A full snapshot of the default map
// is a few tens of kilobytes.
const MaxFrameSize = 16 << 20

var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// WriteFrame writes payload prefixed with its length as a 4-byte big-endian
// unsigned integer. Header and payload go out in a single Write call so
// concurrent writers guarded by the same lock never interleave.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("writing %d byte frame: %w", len(payload), ErrFrameTooLarge)
	}

	buf := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[HeaderSize:], payload)

	_, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// ReadFrame reads exactly one frame. A stream that closes cleanly between
// frames returns io.EOF; one that closes mid-frame returns
// io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [HeaderSize]byte
	_, err := io.ReadFull(r, header[:])
	if err != nil {
		return nil, err
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return nil, fmt.Errorf("reading %d byte frame: %w", size, ErrFrameTooLarge)
	}

	payload := make([]byte, size)
	_, err = io.ReadFull(r, payload)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	return payload, nil
}
