// ABOUTME: Caller-side loops that move samples from a producer to a consumer
// ABOUTME: One sample at a time, in call order, stopping at the first failure
package audio

import (
	"errors"
	"io"
)

// Copy pulls n samples from src and plays each on dst in order. It returns
// the number of samples dst accepted. The first playback error stops the
// loop and is returned as-is.
func Copy(dst Destination, src Source, n int) (int, error) {
	for i := 0; i < n; i++ {
		if err := dst.Play(src.Sample()); err != nil {
			return i, err
		}
	}
	return n, nil
}

// CopyAll plays samples from r on dst until r returns io.EOF. A clean end of
// input returns a nil error. Reader and playback errors are returned as-is.
func CopyAll(dst Destination, r Reader) (int64, error) {
	var written int64
	for {
		s, err := r.ReadSample()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return written, nil
			}
			return written, err
		}
		if err := dst.Play(s); err != nil {
			return written, err
		}
		written++
	}
}
