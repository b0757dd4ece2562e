// ABOUTME: Core sample contracts for building audio pipelines
// ABOUTME: Defines Sample, Source, Reader, Destination and PlaybackError
// Package audio defines the two roles every sampleflow pipeline is built from:
//   - Source: yields the next sample on demand, infallibly
//   - Destination: accepts one sample or rejects it with a PlaybackError
//
// Finite producers (files, network streams, bounded generators) implement
// Reader instead, which reports io.EOF once exhausted.
//
// Nothing in this package owns a loop. Callers pull from a producer and push
// into a consumer themselves, or use Copy/CopyAll for the plain case:
//
//	src := generate.NewRamp(0, 1)
//	rec := &audiotest.Recorder{}
//	n, err := audio.Copy(rec, src, 10)
//
// Multi-channel signals are interleaved: one call carries one channel's value
// for one frame.
package audio
