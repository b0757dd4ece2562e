// ABOUTME: Finite sample producers decoding files and packet streams
// ABOUTME: PCM, WAV, MP3, FLAC and Opus readers behind one Stream interface
// Package decode turns encoded audio into normalized samples.
//
// Supports: raw PCM (16-bit and 24-bit), WAV, MP3, FLAC, Opus packets
//
// Every decoder is an audio.Reader: it yields one interleaved sample per
// ReadSample call and returns io.EOF at the end of input.
//
// Example:
//
//	s, err := decode.Open("take1.flac")
//	if err != nil { ... }
//	defer s.Close()
//	n, err := audio.CopyAll(out, s)
package decode
