package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// CombinedWriter copies every write to all of its writers. One failing writer
// does not fail the write as long as another one took it, the failure is kept
// in Err instead.
type CombinedWriter struct {
	mu      sync.Mutex
	Writers []io.Writer
	Err     error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	var err error
	written := false
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		written = true
	}

	if err != nil {
		cw.Err = err
		if !written {
			return 0, err
		}
	}
	return len(p), nil
}
