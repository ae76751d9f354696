// Package export writes presentation outputs to one or more sinks and
// records a manifest with a digest of every file.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// ErrMismatch is returned by Verify when a previous export differs from the
// current table.
var ErrMismatch = errors.New("export: previous export does not match")

// Sink stores named flat files.
type Sink interface {
	Name() string
	Put(ctx context.Context, name string, data []byte) error
}

// FileSink writes files into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates dir if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Name() string { return "file" }

// Path returns where name is written.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Put writes data atomically through a temporary file in the same directory.
func (s *FileSink) Put(ctx context.Context, name string, data []byte) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("export: create temp for %s: %w", name, err)
	}
	defer func() {
		if retErr != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("export: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("export: rename %s: %w", name, err)
	}
	return nil
}

// SnappySink compresses every payload with the snappy framing format before
// handing it to the wrapped sink under name + ".sz".
type SnappySink struct {
	next Sink
}

// NewSnappySink wraps next.
func NewSnappySink(next Sink) *SnappySink {
	return &SnappySink{next: next}
}

func (s *SnappySink) Name() string { return s.next.Name() + "+snappy" }

func (s *SnappySink) Put(ctx context.Context, name string, data []byte) error {
	compressed, err := Compress(data)
	if err != nil {
		return fmt.Errorf("export: compress %s: %w", name, err)
	}
	return s.next.Put(ctx, name+SnappySuffix, compressed)
}

// SnappySuffix is appended to the names of compressed files.
const SnappySuffix = ".sz"

// Compress encodes data in the snappy framing format.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
