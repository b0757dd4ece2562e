// ABOUTME: WebSocket transport for sample streams
// ABOUTME: Sender forwards samples, Receiver produces them, Handler serves them
// Package stream carries samples between processes over WebSocket.
//
// A stream starts with a JSON text message of type "stream/hello" announcing
// the stream id and format. Every following binary message holds
// little-endian float32 samples, interleaved. A normal close frame ends the
// stream.
//
// Example (server):
//
//	http.Handle("/stream", &stream.Handler{Open: func(*http.Request) (audio.Reader, audio.Format, error) {
//	    tone := generate.NewTone(440, 0.2, 48000, 1)
//	    return generate.Take(tone, 48000), audio.Format{SampleRate: 48000, Channels: 1}, nil
//	}})
//
// Example (client):
//
//	r, err := stream.Dial(ctx, "ws://localhost:8928/stream")
//	n, err := audio.CopyAll(out, r)
package stream
