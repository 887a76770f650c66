package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestdataFS holds the embedded VSV test documents.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test document.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// MustRead returns the embedded document as a string and fails tb if it
// is missing.
func MustRead(tb testing.TB, name string) string {
	tb.Helper()
	data, err := ReadTestData(name)
	require.NoError(tb, err)
	return string(data)
}
