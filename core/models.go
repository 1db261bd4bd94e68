package core

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// UploadedFile is a caller-owned handle to an uploaded document.
// The pipeline only reads from Data and restores the stream position
// to the start after inspection so the caller can re-read it later.
type UploadedFile struct {
	// Name is the original filename, including its extension.
	Name string

	// Data is the file content. It must support seeking so the file
	// can be inspected (metric counting) and then re-read (extraction).
	Data io.ReadSeeker
}

// ID returns a deterministic identifier derived from the file name.
func (f *UploadedFile) ID() ID {
	return IDFromContent(f.Name)
}

// Ext returns the lowercased extension after the last dot, without the dot.
// Returns an empty string if the name contains no dot.
func (f *UploadedFile) Ext() string {
	return FileExt(f.Name)
}

// BaseName returns the file name with its extension stripped.
func (f *UploadedFile) BaseName() string {
	idx := strings.LastIndex(f.Name, ".")
	if idx < 0 {
		return f.Name
	}
	return f.Name[:idx]
}
