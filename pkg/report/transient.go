package report

import (
	"fmt"
	"os"
)

// TransientFile removes itself from disk when closed. The HTTP layer hands
// it to the response body stream, so deletion happens once the body is
// fully written (or the connection drops), never before.
type TransientFile struct {
	*os.File
}

func (t *TransientFile) Close() error {
	err := t.File.Close()
	if rmErr := os.Remove(t.File.Name()); err == nil {
		err = rmErr
	}
	return err
}

// OpenTransient opens path for a one-shot read-and-delete transmission and
// reports its size.
func OpenTransient(path string) (*TransientFile, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open report: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, 0, fmt.Errorf("stat report: %w", err)
	}
	return &TransientFile{f}, int(info.Size()), nil
}
