package kamaitachi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiya01/kamaitachi/internal/displaylist"
)

func writeTempDoc(t *testing.T, html, css string) string {
	t.Helper()
	dir := t.TempDir()
	if css != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte(css), 0o644))
	}
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))
	return path
}

func TestConvert_EndToEnd(t *testing.T) {
	path := writeTempDoc(t, `<html><head><link rel="stylesheet" href="style.css"></head>
		<body><div class="box">hello world</div></body></html>`,
		`.box { background-color: #00ff00; padding: 4px; }`)

	c := New()
	cmds, err := c.Convert(path)
	require.NoError(t, err)
	require.NotEmpty(t, cmds)

	var sawGreenBackground, sawText bool
	for _, cmd := range cmds {
		if cmd.Kind == displaylist.SolidColor && cmd.Color.G == 255 && cmd.Color.R == 0 {
			sawGreenBackground = true
		}
		if cmd.Kind == displaylist.Text && cmd.TextContent != "" {
			sawText = true
		}
	}
	assert.True(t, sawGreenBackground, "external stylesheet's background-color must apply")
	assert.True(t, sawText)
}

func TestConvert_RenderBackgroundsToggleSuppressesBackgroundCommands(t *testing.T) {
	path := writeTempDoc(t, `<html><body><div style="background-color: #00ff00; width: 10px; height: 10px;">x</div></body></html>`, "")

	c := New(WithRenderBackgrounds(false))
	cmds, err := c.Convert(path)
	require.NoError(t, err)

	for _, cmd := range cmds {
		assert.NotEqual(t, displaylist.SolidColor, cmd.Kind, "background painting was disabled")
	}
}

func TestConvertFile_WritesPDF(t *testing.T) {
	path := writeTempDoc(t, `<html><body>hi</body></html>`, "")
	out := filepath.Join(t.TempDir(), "out.pdf")

	c := New(WithPageSize(300, 300))
	require.NoError(t, c.ConvertFile(path, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestInlineStyleElement_IsCollected(t *testing.T) {
	path := writeTempDoc(t, `<html><head><style>body { color: #0000ff; }</style></head><body>x</body></html>`, "")

	c := New()
	cmds, err := c.Convert(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cmds)
}
