// ABOUTME: Forwarding destination that writes samples to a WebSocket
// ABOUTME: Batches samples into binary frames after a hello message
package stream

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// DefaultBatch is the number of samples per binary message
const DefaultBatch = 960

const closeTimeout = time.Second

// Sender forwards samples over a WebSocket connection
type Sender struct {
	conn  *websocket.Conn
	hello Hello
	buf   []byte
}

// NewSender announces a new stream on conn and returns its Sender. batch is
// the number of samples per message; zero selects DefaultBatch.
func NewSender(conn *websocket.Conn, format audio.Format, batch int) (*Sender, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if batch <= 0 {
		batch = DefaultBatch
	}

	hello := Hello{
		StreamID:   uuid.NewString(),
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
	}
	data, err := encodeHello(hello)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hello: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("failed to send hello: %w", err)
	}

	return &Sender{
		conn:  conn,
		hello: hello,
		buf:   make([]byte, 0, batch*4),
	}, nil
}

// StreamID returns the id announced in the hello
func (s *Sender) StreamID() string {
	return s.hello.StreamID
}

// Play buffers one sample and sends a message when the batch is full
func (s *Sender) Play(sample audio.Sample) error {
	s.buf = appendSample(s.buf, sample)
	if len(s.buf) == cap(s.buf) {
		if err := s.Flush(); err != nil {
			return audio.Playbackf("%v", err)
		}
	}
	return nil
}

// Flush sends buffered samples immediately
func (s *Sender) Flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	err := s.conn.WriteMessage(websocket.BinaryMessage, s.buf)
	s.buf = s.buf[:0]
	if err != nil {
		return fmt.Errorf("stream write failed: %w", err)
	}
	return nil
}

// Close flushes, ends the stream with a normal close frame and closes the
// connection
func (s *Sender) Close() error {
	flushErr := s.Flush()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeTimeout))

	// Wait briefly for the peer's close reply so it sees the whole stream
	_ = s.conn.SetReadDeadline(time.Now().Add(closeTimeout))
	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			break
		}
	}

	if err := s.conn.Close(); err != nil && flushErr == nil {
		return err
	}
	return flushErr
}
