// ABOUTME: Function adapters and bridges between the producer roles
// ABOUTME: Lifts a Source into a Reader and back with an explicit sentinel
package audio

// SourceFunc adapts a function to Source
type SourceFunc func() Sample

func (f SourceFunc) Sample() Sample { return f() }

// ReaderFunc adapts a function to Reader
type ReaderFunc func() (Sample, error)

func (f ReaderFunc) ReadSample() (Sample, error) { return f() }

// DestinationFunc adapts a function to Destination
type DestinationFunc func(Sample) error

func (f DestinationFunc) Play(s Sample) error { return f(s) }

// SourceReader wraps an infallible Source as a Reader that never fails.
func SourceReader(src Source) Reader {
	return ReaderFunc(func() (Sample, error) {
		return src.Sample(), nil
	})
}

// FallbackSource is a Source backed by a Reader. Once the reader fails, every
// further call yields the sentinel and the reader is not called again.
type FallbackSource struct {
	r        Reader
	sentinel Sample
	err      error
}

// Fallback returns a Source that reads from r and yields sentinel after r
// returns its first error (io.EOF included).
func Fallback(r Reader, sentinel Sample) *FallbackSource {
	return &FallbackSource{r: r, sentinel: sentinel}
}

func (f *FallbackSource) Sample() Sample {
	if f.err != nil {
		return f.sentinel
	}
	s, err := f.r.ReadSample()
	if err != nil {
		f.err = err
		return f.sentinel
	}
	return s
}

// Err returns the error that ended the underlying reader, or nil.
func (f *FallbackSource) Err() error {
	return f.err
}
