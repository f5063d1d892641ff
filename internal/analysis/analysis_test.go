package analysis_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"entgraph/internal/analysis"
	"entgraph/internal/ibytes"
)

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o666); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestAnalyzeAllZeroFile(t *testing.T) {
	path := writeTestFile(t, "zeros.bin", make([]byte, 1000))

	result, err := analysis.Analyze(context.Background(), path, analysis.Config{
		ChunkCount: 10,
		IBytes:     ibytes.Spec{"0's": {0}},
		Mode:       analysis.Blob,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.ChunkSize != 100 {
		t.Errorf("ChunkSize = %d; want 100", result.ChunkSize)
	}
	if len(result.Entropy) != 10 {
		t.Fatalf("entropy series has %d entries; want 10", len(result.Entropy))
	}
	for i, e := range result.Entropy {
		if e != 0 {
			t.Errorf("entropy[%d] = %f; want 0", i, e)
		}
	}

	zeros := result.ByteGroups["0's"]
	if len(zeros) != 10 {
		t.Fatalf("0's series has %d entries; want 10", len(zeros))
	}
	for i, pct := range zeros {
		if pct != 100 {
			t.Errorf("0's[%d] = %f; want 100", i, pct)
		}
	}
}

func TestAnalyzeMoreChunksThanBytes(t *testing.T) {
	path := writeTestFile(t, "tiny.bin", []byte{1, 2, 3, 4, 5})

	result, err := analysis.Analyze(context.Background(), path, analysis.Config{
		ChunkCount: 100,
		Mode:       analysis.Blob,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.ChunkSize != 1 {
		t.Errorf("ChunkSize = %d; want 1", result.ChunkSize)
	}
	if len(result.Entropy) != 5 {
		t.Errorf("entropy series has %d entries; want one per byte (5)", len(result.Entropy))
	}
	// One-byte chunks have exactly one distinct value each.
	for i, e := range result.Entropy {
		if e != 0 {
			t.Errorf("entropy[%d] = %f; want 0", i, e)
		}
	}
}

func TestAnalyzeRoundedChunkCount(t *testing.T) {
	// ceil(1000 / 750) = 2 bytes per chunk, so only 500 chunks appear.
	path := writeTestFile(t, "medium.bin", make([]byte, 1000))

	result, err := analysis.Analyze(context.Background(), path, analysis.Config{
		ChunkCount: 750,
		Mode:       analysis.Blob,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.ChunkSize != 2 {
		t.Errorf("ChunkSize = %d; want 2", result.ChunkSize)
	}
	if len(result.Entropy) != 500 {
		t.Errorf("entropy series has %d entries; want 500", len(result.Entropy))
	}
}

func TestAnalyzeEmptySpecSkipsTracking(t *testing.T) {
	path := writeTestFile(t, "data.bin", []byte("some file content"))

	result, err := analysis.Analyze(context.Background(), path, analysis.Config{
		ChunkCount: 4,
		IBytes:     ibytes.Spec{},
		Mode:       analysis.Blob,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.ByteGroups != nil {
		t.Errorf("ByteGroups = %v; want none for an empty spec", result.ByteGroups)
	}
}

func TestAnalyzeInvalidSpecBeforeIO(t *testing.T) {
	// Validation failure must surface even though the path does not exist,
	// proving it happens before any file I/O.
	_, err := analysis.Analyze(context.Background(), "/nonexistent/file", analysis.Config{
		ChunkCount: 10,
		IBytes:     ibytes.Spec{"g": {}},
	})
	var cfgErr *ibytes.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Analyze() error = %v; want *ibytes.ConfigError", err)
	}
}

func TestAnalyzeInvalidChunkCount(t *testing.T) {
	path := writeTestFile(t, "data.bin", []byte("content"))
	if _, err := analysis.Analyze(context.Background(), path, analysis.Config{ChunkCount: 0}); err == nil {
		t.Errorf("Analyze() with zero chunk count: got nil error")
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := analysis.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing"), analysis.Config{
		ChunkCount: 10,
	})
	if err == nil {
		t.Errorf("Analyze() on missing file: got nil error")
	}
}

func TestAnalyzeUnrecognizedBinaryDegradesToBlob(t *testing.T) {
	// Format-aware mode over a non-executable still yields a full result
	// with an empty annotation list.
	path := writeTestFile(t, "notanexe.bin", []byte{0x7f, 'E', 'L', 'F', 0, 0, 0})

	result, err := analysis.Analyze(context.Background(), path, analysis.Config{
		ChunkCount: 3,
		Mode:       analysis.Binary,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Format != "blob" {
		t.Errorf("Format = %q; want %q", result.Format, "blob")
	}
	if result.Annotations == nil || len(result.Annotations) != 0 {
		t.Errorf("Annotations = %v; want empty non-nil list", result.Annotations)
	}
	if len(result.Entropy) == 0 {
		t.Errorf("entropy series is empty; want full result despite parse failure")
	}
}

func TestAnalyzeResultMetadata(t *testing.T) {
	path := writeTestFile(t, "meta.bin", []byte("hello world"))

	result, err := analysis.Analyze(context.Background(), path, analysis.Config{
		ChunkCount: 2,
		Mode:       analysis.Blob,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Filename != "meta.bin" {
		t.Errorf("Filename = %q; want %q", result.Filename, "meta.bin")
	}
	if result.Size != 11 {
		t.Errorf("Size = %d; want 11", result.Size)
	}
	if result.SHA256 != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("SHA256 = %q; want sha256 of %q", result.SHA256, "hello world")
	}
}
