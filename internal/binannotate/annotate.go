// Package binannotate derives structural landmarks (entry point, section
// boundaries) from executable files, so spikes or dips in the sampled
// series can be correlated with program structure. Landmarks are placed
// in chunk-index coordinates, the same axis the sample series use.
package binannotate

import (
	"context"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"errors"
	"fmt"
	"log/slog"

	"entgraph/internal/sampling"
)

// Detected container formats. FormatBlob means no parser recognized the
// file and it was analyzed as a raw byte stream.
const (
	FormatPE    = "PE"
	FormatELF   = "ELF"
	FormatMachO = "Mach-O"
	FormatBlob  = "blob"
)

// Annotation is a labeled landmark positioned in chunk-index coordinates.
type Annotation struct {
	Label string  `json:"label"`
	Chunk float64 `json:"chunk"`
}

// landmark is a structural landmark at a raw file offset, before mapping
// onto the chunk axis.
type landmark struct {
	label  string
	offset int64
}

// File inspects the executable container at path and returns the detected
// format along with its landmark annotations mapped through layout.
//
// A file no parser recognizes degrades to blob treatment: a warning is
// logged and an empty annotation list returned, never an error. A
// recognized container without an annotation rule (currently Mach-O)
// yields the format name and zero annotations.
func File(ctx context.Context, path string, layout sampling.Layout) (string, []Annotation) {
	format, landmarks, err := parse(path)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse executable format, analyzing as blob",
			"path", path, "error", err)
		return FormatBlob, nil
	}
	if landmarks == nil {
		slog.InfoContext(ctx, "no landmark rule for this container type", "format", format)
		return format, nil
	}

	annotations := make([]Annotation, 0, len(landmarks))
	for _, lm := range landmarks {
		annotations = append(annotations, Annotation{
			Label: lm.label,
			Chunk: layout.ChunkIndexOf(lm.offset),
		})
	}
	return format, annotations
}

func parse(path string) (string, []landmark, error) {
	if f, err := pe.Open(path); err == nil {
		defer f.Close()
		return FormatPE, peLandmarks(f), nil
	}
	if f, err := elf.Open(path); err == nil {
		defer f.Close()
		return FormatELF, elfLandmarks(f), nil
	}
	if f, err := macho.Open(path); err == nil {
		f.Close()
		return FormatMachO, nil, nil
	}
	return "", nil, errors.New("not a recognized executable container")
}

// sectionLabel returns a section's display label. Some samples carry
// empty or corrupt section names; those get a deterministic fallback name
// derived from the section's zero-based position.
func sectionLabel(name string, index int) string {
	if name == "" {
		return fmt.Sprintf("sect_%d", index)
	}
	return name
}

// peLandmarks always returns a non-nil slice; a nil slice from parse
// means the container type has no landmark rule at all.
func peLandmarks(f *pe.File) []landmark {
	landmarks := make([]landmark, 0, len(f.Sections)+1)
	if offset, ok := peEntryOffset(f); ok {
		landmarks = append(landmarks, landmark{label: "EP", offset: offset})
	}
	for i, section := range f.Sections {
		landmarks = append(landmarks, landmark{
			label:  sectionLabel(section.Name, i),
			offset: int64(section.Offset),
		})
	}
	return landmarks
}

// peEntryOffset resolves the entry point RVA to a raw file offset via the
// section containing it.
func peEntryOffset(f *pe.File) (int64, bool) {
	var rva uint32
	switch header := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		rva = header.AddressOfEntryPoint
	case *pe.OptionalHeader64:
		rva = header.AddressOfEntryPoint
	default:
		return 0, false
	}
	for _, s := range f.Sections {
		if rva >= s.VirtualAddress && rva < s.VirtualAddress+s.VirtualSize {
			return int64(rva - s.VirtualAddress + s.Offset), true
		}
	}
	return 0, false
}

func elfLandmarks(f *elf.File) []landmark {
	landmarks := make([]landmark, 0, len(f.Sections)+1)
	if offset, ok := elfEntryOffset(f); ok {
		landmarks = append(landmarks, landmark{label: "EP", offset: offset})
	}
	for i, section := range f.Sections {
		landmarks = append(landmarks, landmark{
			label:  sectionLabel(section.Name, i),
			offset: int64(section.Offset),
		})
	}
	return landmarks
}

// elfEntryOffset resolves the virtual entry address to a raw file offset
// via the loadable segment containing it.
func elfEntryOffset(f *elf.File) (int64, bool) {
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		if f.Entry >= p.Vaddr && f.Entry < p.Vaddr+p.Filesz {
			return int64(f.Entry - p.Vaddr + p.Off), true
		}
	}
	return 0, false
}
