package colson

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden canonicalizes every testdata document and compares the result
// against its .golden neighbor. Run with -update to regenerate the golden
// files after an intentional formatting change.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.colson")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			actual, err := Format(src)
			require.NoError(t, err)

			goldenFile := strings.Replace(file, ".colson", ".golden", 1)
			if *update {
				require.NoError(t, os.WriteFile(goldenFile, append(actual, '\n'), 0o644))
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "golden file not found, run with -update to create it")

			// The golden files end in a newline; the formatter's output
			// does not.
			expected = bytes.TrimSuffix(expected, []byte("\n"))
			require.Equal(t, string(expected), string(actual))
		})
	}
}

// Every testdata document must also survive a decode into plain Go values
// and a re-encode without error.
func TestGoldenRoundTrip(t *testing.T) {
	files, err := filepath.Glob("testdata/*.colson")
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			var v1 any
			require.NoError(t, Unmarshal(src, &v1))

			data, err := Marshal(v1)
			require.NoError(t, err)

			var v2 any
			require.NoError(t, Unmarshal(data, &v2))
			require.Equal(t, v1, v2)
		})
	}
}
