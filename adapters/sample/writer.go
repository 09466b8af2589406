package sample

import (
	"bufio"
	"os"

	"trngaudit/internal/errors"
)

// Writer appends symbols in the persisted format. Each Write keeps only '0'/'1',
// and the data is flushed and synced before Write returns, so an interrupted run
// still leaves a loadable prefix on disk.
type Writer struct {
	f       *os.File
	w       *bufio.Writer
	written int
}

// Create truncates path and returns a writer for it
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create sample %s", path)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Write filters p, appends the binary characters and makes them durable
func (w *Writer) Write(p []byte) (int, error) {
	clean := make([]byte, 0, len(p))
	for _, c := range p {
		if c == '0' || c == '1' {
			clean = append(clean, c)
		}
	}
	if len(clean) == 0 {
		return len(p), nil
	}
	if _, err := w.w.Write(clean); err != nil {
		return 0, err
	}
	if err := w.w.Flush(); err != nil {
		return 0, err
	}
	if err := w.f.Sync(); err != nil {
		return 0, err
	}
	w.written += len(clean)
	return len(p), nil
}

// Written returns the number of symbols persisted so far
func (w *Writer) Written() int {
	return w.written
}

// Close flushes and closes the underlying file
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
