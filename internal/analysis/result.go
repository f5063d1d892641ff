package analysis

import (
	"fmt"
	"strings"

	"entgraph/internal/binannotate"
)

/*
Result is the aggregate output of one analysis run, handed to the
rendering layer: entropy and byte-group series aligned by chunk index,
structural annotations on the same axis, and the scale factor needed to
convert chunk indices back into raw file offsets for axis labels. No
further computation is required to draw it.
*/
type Result struct {
	// Filename is the base name of the analyzed file.
	Filename string `json:"filename"`

	// Size records the size of the file (as reported by the filesystem).
	Size int64 `json:"size"`

	// SHA256 records the SHA256 hashsum of the file. Empty if hashing
	// failed; a hashing failure does not abort the analysis.
	SHA256 string `json:"sha256,omitempty"`

	// Format is the detected executable container format, or "blob".
	Format string `json:"format"`

	// ChunkSize is the number of bytes sampled per chunk.
	ChunkSize int `json:"chunk_size"`

	// Scale converts a chunk-index coordinate into a raw file offset:
	// offset = index * Scale.
	Scale float64 `json:"scale"`

	// Entropy holds one normalized entropy value in [0, 1] per chunk.
	Entropy []float64 `json:"entropy"`

	// ByteGroups maps each interesting-byte group name to its per-chunk
	// occurrence percentage series. Absent when no groups are configured.
	ByteGroups map[string][]float64 `json:"byte_groups,omitempty"`

	// Annotations are structural landmarks in chunk-index coordinates.
	// Empty for blobs and for container types without an annotation rule.
	Annotations []binannotate.Annotation `json:"annotations"`
}

func (r *Result) String() string {
	groupNames := make([]string, 0, len(r.ByteGroups))
	for name := range r.ByteGroups {
		groupNames = append(groupNames, name)
	}

	parts := []string{
		fmt.Sprintf("file: %v (%d bytes)", r.Filename, r.Size),
		fmt.Sprintf("format: %v", r.Format),
		fmt.Sprintf("chunks: %d of %d bytes", len(r.Entropy), r.ChunkSize),
		fmt.Sprintf("byte groups: %v", groupNames),
		fmt.Sprintf("annotations: %d", len(r.Annotations)),
	}
	return strings.Join(parts, "\n")
}
