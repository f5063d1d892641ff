package sampling

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Series holds the sample series produced by one pass over a file: one
// entropy value per chunk, plus one occurrence percentage per configured
// byte group per chunk, all aligned by chunk index.
type Series struct {
	Entropy []float64
	Groups  map[string][]float64
}

// Build drives a single sequential pass over r: each chunk contributes
// one entropy sample and, when counter is non-nil, one occurrence
// percentage per group. A read failure aborts the pass and discards any
// partially built series.
func Build(ctx context.Context, r io.Reader, layout Layout, counter *Counter) (*Series, error) {
	series := &Series{}

	var names []string
	if counter != nil {
		names = counter.Names()
		series.Groups = make(map[string][]float64, len(names))
	}

	chunker := NewChunker(r, layout.ChunkSize)
	for chunker.Scan() {
		chunk := chunker.Bytes()
		series.Entropy = append(series.Entropy, Entropy(chunk))
		if counter != nil {
			for i, pct := range counter.Percentages(chunk) {
				series.Groups[names[i]] = append(series.Groups[names[i]], pct)
			}
		}
	}
	if err := chunker.Err(); err != nil {
		return nil, fmt.Errorf("reading chunks: %w", err)
	}

	slog.DebugContext(ctx, "sampling pass complete",
		"chunks", len(series.Entropy),
		"chunk_size", layout.ChunkSize)
	return series, nil
}
