// Package sampling implements the chunked sampling engine: a file's bytes
// are split into a fixed number of contiguous chunks, and per chunk a
// normalized Shannon entropy value and occurrence percentages of named
// byte groups are computed.
package sampling

// Layout describes how a file of a given size is partitioned into chunks,
// and how chunk indices map back to raw file offsets.
type Layout struct {
	// FileSize is the size of the file being partitioned, in bytes.
	FileSize int64

	// ChunkSize is the number of bytes actually read per chunk,
	// ceil(FileSize / chunk count). The final chunk may be shorter.
	ChunkSize int

	// Scale is the nominal, non-rounded chunk width FileSize / chunk count.
	// It is used only for converting between chunk indices and raw file
	// offsets, never for reading.
	Scale float64
}

// PlanLayout computes the chunk layout for a file. When the requested
// chunk count meets or exceeds the file size, finer splitting is
// meaningless and the file is read one byte per chunk.
//
// Because ChunkSize is rounded up, a sequential read can produce fewer
// chunks than requested; NumChunks reports the actual count.
func PlanLayout(fileSize int64, chunkCount int) Layout {
	if chunkCount < 1 {
		chunkCount = 1
	}
	n := int64(chunkCount)
	if fileSize <= n {
		return Layout{FileSize: fileSize, ChunkSize: 1, Scale: 1}
	}
	return Layout{
		FileSize:  fileSize,
		ChunkSize: int((fileSize + n - 1) / n),
		Scale:     float64(fileSize) / float64(n),
	}
}

// NumChunks returns the number of chunks a full sequential read of the
// file will produce.
func (l Layout) NumChunks() int {
	if l.FileSize == 0 {
		return 0
	}
	size := int64(l.ChunkSize)
	return int((l.FileSize + size - 1) / size)
}

// ChunkIndexOf converts an absolute file offset into a chunk-index
// coordinate, for placing offset landmarks on the same axis as the
// sample series.
func (l Layout) ChunkIndexOf(offset int64) float64 {
	return float64(offset) / l.Scale
}

// OffsetOf converts a chunk-index coordinate back into an approximate raw
// file offset, for axis labeling.
func (l Layout) OffsetOf(chunkIndex float64) int64 {
	return int64(chunkIndex * l.Scale)
}
