// ABOUTME: Signal generators implementing audio.Source
// ABOUTME: Tones, chords, sweeps, ramps and bounded takes
// Package generate provides infallible sample producers.
//
// Every generator is an audio.Source. Multi-channel generators duplicate each
// frame's value across channels, interleaved. Take bounds any Source into an
// audio.Reader that ends with io.EOF:
//
//	tone := generate.NewTone(440, 0.2, 48000, 2)
//	r := generate.Take(tone, generate.Samples(250*time.Millisecond, 48000, 2))
package generate
