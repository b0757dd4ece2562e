// ABOUTME: Network producer that reads samples from a WebSocket
// ABOUTME: Reads the hello, then yields samples until the peer closes
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gorilla/websocket"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// Receiver reads a sample stream from a WebSocket connection
type Receiver struct {
	conn  *websocket.Conn
	hello *Hello
	frame []byte
	pos   int // next sample index in frame
	err   error
}

// NewReceiver wraps an established connection. The hello is read lazily.
func NewReceiver(conn *websocket.Conn) *Receiver {
	return &Receiver{conn: conn}
}

// Dial connects to a stream URL and reads its hello
func Dial(ctx context.Context, url string) (*Receiver, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	r := NewReceiver(conn)
	if err := r.readHello(); err != nil {
		conn.Close()
		return nil, err
	}
	return r, nil
}

func (r *Receiver) readHello() error {
	if r.hello != nil {
		return nil
	}
	kind, data, err := r.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read hello: %w", err)
	}
	if kind != websocket.TextMessage {
		return errors.New("stream did not start with a hello")
	}
	h, err := decodeHello(data)
	if err != nil {
		return err
	}
	r.hello = &h
	return nil
}

// Format returns the announced format, reading the hello if needed
func (r *Receiver) Format() audio.Format {
	if err := r.readHello(); err != nil {
		return audio.Format{}
	}
	return r.hello.Format()
}

// StreamID returns the announced stream id
func (r *Receiver) StreamID() string {
	if r.hello == nil {
		return ""
	}
	return r.hello.StreamID
}

// ReadSample returns the next sample, or io.EOF after a normal close
func (r *Receiver) ReadSample() (audio.Sample, error) {
	if r.err != nil {
		return 0, r.err
	}
	if err := r.readHello(); err != nil {
		r.err = err
		return 0, err
	}

	for r.pos*4 == len(r.frame) {
		kind, data, err := r.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.err = io.EOF
			} else {
				r.err = fmt.Errorf("stream read failed: %w", err)
			}
			return 0, r.err
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		if len(data)%4 != 0 {
			r.err = fmt.Errorf("malformed sample frame of %d bytes", len(data))
			return 0, r.err
		}
		r.frame, r.pos = data, 0
	}

	s := sampleAt(r.frame, r.pos)
	r.pos++
	return s, nil
}

// Close closes the connection
func (r *Receiver) Close() error {
	return r.conn.Close()
}
