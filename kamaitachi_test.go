package kamaitachi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFile_RootAlias(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(in, []byte(`<html><body>hi</body></html>`), 0o644))
	out := filepath.Join(dir, "out.pdf")

	require.NoError(t, ConvertFile(in, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
