// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides device-backed Destination implementations
// Package output provides audio playback devices as audio.Destination.
//
// Supports oto (default), PortAudio (build with -tags portaudio) and a null
// device that discards samples.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(audio.Format{SampleRate: 48000, Channels: 2})
//	_, err = audio.CopyAll(out, generate.Take(tone, n))
//	err = out.Drain()
//	err = out.Close()
package output
