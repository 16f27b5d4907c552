package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/keiya01/kamaitachi/internal/parser/html"
	"github.com/keiya01/kamaitachi/internal/style"
)

func styledTextNode(t *testing.T, styleAttr, text string) *style.StyledNode {
	t.Helper()
	doc, err := html.NewParser().ParseString(`<div style="` + styleAttr + `">` + text + `</div>`)
	require.NoError(t, err)
	root := style.BuildStyledTree(doc, style.NewEngine())

	var find func(n *style.StyledNode) *style.StyledNode
	find = func(n *style.StyledNode) *style.StyledNode {
		if n.Node.Data == "div" {
			return n
		}
		for _, c := range n.Children {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	return find(root)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("a   b\t\nc"))
	assert.Equal(t, " a ", collapseWhitespace("  a\n"))
}

// P5: whitespace idempotence — collapsing twice yields the same result as
// collapsing once.
func TestCollapseWhitespace_Idempotent(t *testing.T) {
	input := "a \t\n  b   c\n\n"
	once := collapseWhitespace(input)
	twice := collapseWhitespace(once)
	assert.Equal(t, once, twice)
}

func TestScan_SingleRunForHomogeneousLatinText(t *testing.T) {
	node := styledTextNode(t, "font-family: serif;", "hello world")
	runs := Scan("hello world", node, font.Shared())
	require.Len(t, runs, 1)
	assert.Equal(t, "hello world", runs[0].Text)
}

func TestScan_EmptyContentYieldsNoRuns(t *testing.T) {
	node := styledTextNode(t, "", "")
	runs := Scan("", node, font.Shared())
	assert.Empty(t, runs)
}

// spec 4.1: word-break's resolved value is carried onto the scanned Run
// so SplitGlyphRuns downstream can act on it.
func TestScan_WordBreakDefaultsToNormal(t *testing.T) {
	node := styledTextNode(t, "", "hi")
	runs := Scan("hi", node, font.Shared())
	require.Len(t, runs, 1)
	assert.Equal(t, "normal", runs[0].WordBreak)
}

func TestScan_WordBreakResolvedOntoRun(t *testing.T) {
	node := styledTextNode(t, "word-break: break-all;", "hi")
	runs := Scan("hi", node, font.Shared())
	require.Len(t, runs, 1)
	assert.Equal(t, "break-all", runs[0].WordBreak)
}
