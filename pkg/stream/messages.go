// ABOUTME: Stream wire message definitions
// ABOUTME: JSON hello envelope and float32 sample frame codec
package stream

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// TypeHello is the message type announcing a stream
const TypeHello = "stream/hello"

// Message is the top-level wrapper for text messages
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hello announces a stream and its format
type Hello struct {
	StreamID   string `json:"stream_id"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format returns the audio format described by the hello
func (h Hello) Format() audio.Format {
	return audio.Format{Codec: "float32", SampleRate: h.SampleRate, Channels: h.Channels, BitDepth: 32}
}

func encodeHello(h Hello) ([]byte, error) {
	payload, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: TypeHello, Payload: payload})
}

func decodeHello(data []byte) (Hello, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Hello{}, fmt.Errorf("invalid message: %w", err)
	}
	if msg.Type != TypeHello {
		return Hello{}, fmt.Errorf("expected %s, got %q", TypeHello, msg.Type)
	}

	var h Hello
	if err := json.Unmarshal(msg.Payload, &h); err != nil {
		return Hello{}, fmt.Errorf("invalid hello payload: %w", err)
	}
	if err := h.Format().Validate(); err != nil {
		return Hello{}, fmt.Errorf("invalid hello: %w", err)
	}
	return h, nil
}

// appendSample encodes one sample as little-endian float32
func appendSample(b []byte, s audio.Sample) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(s)))
}

// sampleAt decodes the i-th float32 sample of a frame
func sampleAt(b []byte, i int) audio.Sample {
	return audio.Sample(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
}
