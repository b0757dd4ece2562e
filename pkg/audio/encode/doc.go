// ABOUTME: Sample consumers that encode to files and packet streams
// ABOUTME: PCM, WAV and Opus writers implementing audio.Destination
// Package encode provides destinations that persist or forward samples.
//
// Supports: raw PCM (16-bit and 24-bit), WAV, Opus packets
//
// Every encoder is an audio.Destination whose Close must be called to flush
// pending data. Write failures surface from Play as *audio.PlaybackError.
//
// Example:
//
//	sink, err := encode.Create("tone.wav", audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 16})
//	_, err = audio.CopyAll(sink, generate.Take(tone, n))
//	err = sink.Close()
package encode
