package utils

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binarySTL(triangles int) []byte {
	data := make([]byte, 84+triangles*50)
	binary.LittleEndian.PutUint32(data[80:84], uint32(triangles))
	return data
}

func TestValidateModelFileAsciiSTL(t *testing.T) {
	good := []byte("solid cap\n facet normal 0 0 1\n endfacet\nendsolid cap\n")
	require.NoError(t, ValidateModelFile("crown.stl", good))

	empty := []byte("solid cap\nendsolid cap\n")
	assert.Error(t, ValidateModelFile("crown.stl", empty), "ascii STL without facets is rejected")
}

func TestValidateModelFileBinarySTL(t *testing.T) {
	require.NoError(t, ValidateModelFile("scan.stl", binarySTL(2)))

	assert.Error(t, ValidateModelFile("scan.stl", binarySTL(0)), "zero triangles")
	assert.Error(t, ValidateModelFile("scan.stl", binarySTL(2)[:100]), "truncated body")
	assert.Error(t, ValidateModelFile("scan.stl", make([]byte, 40)), "truncated header")

	// Declared count disagreeing with the byte length is rejected.
	lying := binarySTL(2)
	binary.LittleEndian.PutUint32(lying[80:84], 5)
	assert.Error(t, ValidateModelFile("scan.stl", lying))
}

func TestValidateModelFileOBJ(t *testing.T) {
	good := []byte("# exported scan\nv 0.1 0.2 0.3\nv 0.4 0.5 0.6\nf 1 2 1\n")
	require.NoError(t, ValidateModelFile("scan.obj", good))

	noVerts := []byte("# empty export\nf 1 2 3\n")
	assert.Error(t, ValidateModelFile("scan.obj", noVerts))
}

func TestValidateModelFileRejectsUnknownAndEmpty(t *testing.T) {
	assert.Error(t, ValidateModelFile("xray.png", []byte("not a scan")))
	assert.Error(t, ValidateModelFile("scan.stl", nil))
}
