// Package analysis ties the sampling engine, the interesting-bytes
// configuration and the executable annotator together behind a single
// entry point.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"entgraph/internal/binannotate"
	"entgraph/internal/ibytes"
	"entgraph/internal/sampling"
	"entgraph/internal/utils"
)

// Config carries the caller-supplied parameters for one analysis run.
// Defaults are the caller's responsibility; the zero value is invalid.
type Config struct {
	// ChunkCount is the requested number of chunks the file is split
	// into. Must be at least 1. Fewer chunks may be produced when the
	// rounded chunk size does not divide the file evenly.
	ChunkCount int

	// IBytes names the byte groups whose occurrence rate is tracked per
	// chunk. An empty or nil spec disables occurrence tracking.
	IBytes ibytes.Spec

	// Mode selects format-aware (Binary) or raw (Blob) analysis.
	Mode Mode
}

// Analyze runs a single sequential sampling pass over the file at path
// and returns the assembled result. Configuration is validated before any
// file I/O happens. A read failure aborts the run; a file that is not a
// recognized executable container does not.
func Analyze(ctx context.Context, path string, cfg Config) (*Result, error) {
	if cfg.ChunkCount < 1 {
		return nil, fmt.Errorf("chunk count must be at least 1, got %d", cfg.ChunkCount)
	}
	if err := cfg.IBytes.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	layout := sampling.PlanLayout(info.Size(), cfg.ChunkCount)
	slog.DebugContext(ctx, "planned chunk layout",
		"file_size", info.Size(),
		"requested_chunks", cfg.ChunkCount,
		"chunk_size", layout.ChunkSize,
		"scale", layout.Scale)

	var counter *sampling.Counter
	if len(cfg.IBytes) > 0 {
		counter = sampling.NewCounter(cfg.IBytes)
	}

	series, err := sampling.Build(ctx, f, layout, counter)
	if err != nil {
		return nil, fmt.Errorf("sampling %s: %w", path, err)
	}

	format := binannotate.FormatBlob
	var annotations []binannotate.Annotation
	if cfg.Mode != Blob {
		format, annotations = binannotate.File(ctx, path, layout)
	}
	if annotations == nil {
		annotations = []binannotate.Annotation{}
	}

	// Hashing failures are logged rather than fatal, to maximise the
	// amount of data returned.
	sha256Sum, err := utils.HashFile(path)
	if err != nil {
		slog.ErrorContext(ctx, "Error hashing file", "path", path, "error", err)
	}

	return &Result{
		Filename:    filepath.Base(path),
		Size:        info.Size(),
		SHA256:      sha256Sum,
		Format:      format,
		ChunkSize:   layout.ChunkSize,
		Scale:       layout.Scale,
		Entropy:     series.Entropy,
		ByteGroups:  series.Groups,
		Annotations: annotations,
	}, nil
}
