package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Maximum accepted case attachment size (50 MB).
const MaxModelFileSize = 50 << 20

// ValidateModelFile performs a header sanity check on an uploaded dental scan
// before it is sent to storage. Supported formats are binary/ASCII STL and OBJ.
// It is a defence against mislabelled uploads, not a full parser.
func ValidateModelFile(filename string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("model file %q is empty", filename)
	}
	if len(data) > MaxModelFileSize {
		return fmt.Errorf("model file %q exceeds %d bytes", filename, MaxModelFileSize)
	}

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".stl"):
		return validateSTL(filename, data)
	case strings.HasSuffix(lower, ".obj"):
		return validateOBJ(filename, data)
	default:
		return fmt.Errorf("unsupported model file extension for %q (expected .stl or .obj)", filename)
	}
}

func validateSTL(filename string, data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) {
		// ASCII STL must contain at least one facet.
		if !bytes.Contains(data, []byte("facet")) {
			return fmt.Errorf("ascii STL %q contains no facets", filename)
		}
		return nil
	}

	// Binary STL: 80-byte header + uint32 triangle count + 50 bytes per triangle.
	if len(data) < 84 {
		return fmt.Errorf("binary STL %q is truncated (%d bytes)", filename, len(data))
	}
	count := binary.LittleEndian.Uint32(data[80:84])
	expected := 84 + int64(count)*50
	if int64(len(data)) != expected {
		return fmt.Errorf("binary STL %q size mismatch: %d triangles imply %d bytes, got %d",
			filename, count, expected, len(data))
	}
	if count == 0 {
		return fmt.Errorf("binary STL %q declares zero triangles", filename)
	}
	return nil
}

func validateOBJ(filename string, data []byte) error {
	// An OBJ worth accepting has at least one vertex line.
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("v ")) {
			return nil
		}
	}
	return fmt.Errorf("OBJ %q contains no vertex data", filename)
}
