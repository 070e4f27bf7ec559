package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Tag names the sender's state and determines the shape of an envelope body.
type Tag string

const (
	TagMatching  Tag = "MATCHING"
	TagPreparing Tag = "PREPARING"
	TagGaming    Tag = "GAMING"
	TagReady     Tag = "READY"
	TagGameOver  Tag = "GAMEOVER"
)

func (t Tag) Valid() bool {
	switch t {
	case TagMatching, TagPreparing, TagGaming, TagReady, TagGameOver:
		return true
	}
	return false
}

var ErrUnknownTag = errors.New("unknown message tag")

// Envelope is the payload of every frame: the array [tag, body], or just
// [tag] when there is no body. The body is kept encoded so that a receiver
// can dispatch on the tag before choosing a concrete type.
type Envelope struct {
	Tag  Tag
	Body msgpack.RawMessage
}

var (
	_ msgpack.CustomEncoder = Envelope{}
	_ msgpack.CustomDecoder = (*Envelope)(nil)
)

// NewEnvelope encodes body and wraps it under tag. A nil body leaves the
// envelope bare, which is how READY is sent.
func NewEnvelope(tag Tag, body any) (Envelope, error) {
	if body == nil {
		return Envelope{Tag: tag}, nil
	}
	data, err := msgpack.Marshal(body)
	if err != nil {
		return Envelope{}, fmt.Errorf("encoding %s body: %w", tag, err)
	}
	return Envelope{Tag: tag, Body: data}, nil
}

// Decode unmarshals the body into v.
func (e Envelope) Decode(v any) error {
	if len(e.Body) == 0 {
		return fmt.Errorf("decoding %s body: empty body", e.Tag)
	}
	err := msgpack.Unmarshal(e.Body, v)
	if err != nil {
		return fmt.Errorf("decoding %s body: %w", e.Tag, err)
	}
	return nil
}

func (e Envelope) EncodeMsgpack(enc *msgpack.Encoder) error {
	if len(e.Body) == 0 {
		if err := enc.EncodeArrayLen(1); err != nil {
			return err
		}
		return enc.EncodeString(string(e.Tag))
	}

	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(string(e.Tag)); err != nil {
		return err
	}
	return enc.Encode(e.Body)
}

func (e *Envelope) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("envelope has %d elements", n)
	}

	tag, err := dec.DecodeString()
	if err != nil {
		return err
	}
	e.Tag = Tag(tag)
	e.Body = nil

	for i := 1; i < n; i++ {
		if i > 1 {
			if err := dec.Skip(); err != nil {
				return err
			}
			continue
		}
		raw, err := dec.DecodeRaw()
		if err != nil {
			return err
		}
		e.Body = raw
	}
	return nil
}

// Marshal encodes the envelope into a frame payload.
func (e Envelope) Marshal() ([]byte, error) {
	data, err := msgpack.Marshal(&e)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return data, nil
}

// Unmarshal parses a frame payload into an envelope.
func Unmarshal(payload []byte) (Envelope, error) {
	var e Envelope
	err := msgpack.Unmarshal(payload, &e)
	if err != nil {
		return Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	if !e.Tag.Valid() {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownTag, e.Tag)
	}
	return e, nil
}

// Send encodes body under tag and writes it as one frame.
func Send(w io.Writer, tag Tag, body any) error {
	env, err := NewEnvelope(tag, body)
	if err != nil {
		return err
	}
	return SendEnvelope(w, env)
}

// SendEnvelope writes an already built envelope as one frame.
func SendEnvelope(w io.Writer, env Envelope) error {
	payload, err := env.Marshal()
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}

// Receive reads one frame and parses its envelope.
func Receive(r io.Reader) (Envelope, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		return Envelope{}, err
	}
	return Unmarshal(payload)
}
