package export

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/regnet-monotone/pkg/logging"
	"github.com/dd0wney/regnet-monotone/pkg/metrics"
)

// Manifest describes one run's exports.
type Manifest struct {
	RunID      string       `yaml:"run_id"`
	CreatedAt  time.Time    `yaml:"created_at"`
	SpaceSize  int          `yaml:"space_size"`
	Candidates uint64       `yaml:"candidates"`
	Retained   int          `yaml:"retained"`
	Files      []FileDigest `yaml:"files"`
}

// FileDigest is the BLAKE2b-256 digest of an exported payload, taken before
// any sink-side compression.
type FileDigest struct {
	Name    string `yaml:"name"`
	Bytes   int    `yaml:"bytes"`
	Blake2b string `yaml:"blake2b"`
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Exporter fans each file out to every sink and builds the manifest.
type Exporter struct {
	sinks    []Sink
	logger   logging.Logger
	metrics  *metrics.Registry
	manifest Manifest
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records every sink write.
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Exporter) { e.metrics = r }
}

// NewExporter creates an exporter. The manifest header is taken from m;
// its Files are replaced as files are written.
func NewExporter(m Manifest, sinks []Sink, opts ...Option) *Exporter {
	m.Files = nil
	e := &Exporter{
		sinks:    sinks,
		logger:   logging.NewNopLogger(),
		manifest: m,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Put writes data to every sink. A failing sink does not stop the others;
// all failures are returned joined.
func (e *Exporter) Put(ctx context.Context, name string, data []byte) error {
	var errs []error
	for _, s := range e.sinks {
		err := s.Put(ctx, name, data)
		if e.metrics != nil {
			e.metrics.RecordExport(s.Name(), int64(len(data)), err)
		}
		if err != nil {
			e.logger.Warn("export failed", logging.String("sink", s.Name()), logging.String("file", name), logging.Error(err))
			errs = append(errs, err)
			continue
		}
		e.logger.Info("exported", logging.String("sink", s.Name()), logging.String("file", name), logging.Int("bytes", len(data)))
	}

	e.manifest.Files = append(e.manifest.Files, FileDigest{
		Name:    name,
		Bytes:   len(data),
		Blake2b: Digest(data),
	})
	return errors.Join(errs...)
}

// Manifest returns the manifest built so far.
func (e *Exporter) Manifest() Manifest {
	m := e.manifest
	m.Files = append([]FileDigest(nil), e.manifest.Files...)
	return m
}

// Finish writes the manifest as YAML under name to every sink.
func (e *Exporter) Finish(ctx context.Context, name string) (Manifest, error) {
	m := e.Manifest()
	data, err := yaml.Marshal(m)
	if err != nil {
		return m, fmt.Errorf("export: marshal manifest: %w", err)
	}
	var errs []error
	for _, s := range e.sinks {
		err := s.Put(ctx, name, data)
		if e.metrics != nil {
			e.metrics.RecordExport(s.Name(), int64(len(data)), err)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return m, errors.Join(errs...)
}
