// Package kamaitachi is the glue layer: it wires the HTML/CSS parsers, the
// style cascade, block/inline layout, and display-list generation into a
// single Convert pipeline, then hands the resulting display list to the
// fpdf-backed PDF renderer. The algorithmic core (internal/style,
// internal/layout, internal/text, internal/displaylist) stays pure and
// silent; this package is where conversion failures get logged and where
// I/O happens.
package kamaitachi

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/keiya01/kamaitachi/internal/displaylist"
	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/keiya01/kamaitachi/internal/layout"
	"github.com/keiya01/kamaitachi/internal/parser/css"
	xhtmlparser "github.com/keiya01/kamaitachi/internal/parser/html"
	"github.com/keiya01/kamaitachi/internal/render/pdf"
	"github.com/keiya01/kamaitachi/internal/res"
	"github.com/keiya01/kamaitachi/internal/style"
	xhtml "golang.org/x/net/html"
)

// Converter holds the resolved Options for a conversion pipeline. It carries
// no per-document state, so a single Converter can run many conversions
// (the font context it drives is itself a package-wide singleton).
type Converter struct {
	opts Options
}

// New creates a Converter, applying opts over DefaultOptions().
func New(opts ...Option) *Converter {
	return &Converter{opts: applyOptions(opts...)}
}

// ConvertFile runs the full pipeline against the HTML file at inputPath and
// writes a single-page PDF to outputPath.
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	cmds, err := c.Convert(inputPath)
	if err != nil {
		return err
	}

	renderer := pdf.NewRenderer(c.opts.PageWidth, c.opts.PageHeight)
	renderer.Debug = c.opts.Debug

	if err := renderer.Render(cmds, outputPath, pdf.RenderOptions{
		Creator:  "kamaitachi",
		Producer: "kamaitachi",
	}); err != nil {
		c.opts.Logger.Error("render failed", zap.String("input", inputPath), zap.Error(err))
		return err
	}

	c.opts.Logger.Info("converted", zap.String("input", inputPath), zap.String("output", outputPath))
	return nil
}

// Convert runs the pipeline through display-list generation without
// painting anything, for callers (the CLI's "inspect" subcommand, tests)
// that want the commands directly.
func (c *Converter) Convert(inputPath string) ([]displaylist.Command, error) {
	loader := res.NewLoader(filepath.Dir(inputPath))
	for _, p := range c.opts.ResourceSearchPaths {
		loader.AddSearchPath(p)
	}

	htmlRes, err := loader.LoadHTML(filepath.Base(inputPath))
	if err != nil {
		return nil, fmt.Errorf("kamaitachi: loading %s: %w", inputPath, err)
	}

	doc, err := xhtmlparser.NewParser().ParseString(htmlRes.GetString())
	if err != nil {
		return nil, fmt.Errorf("kamaitachi: parsing HTML: %w", err)
	}
	c.opts.Logger.Debug("parsed document", zap.String("input", inputPath))

	engine := style.NewEngine()
	for _, sheetSrc := range collectDocumentStylesheets(doc, loader) {
		sheet, err := css.NewParser().ParseString(sheetSrc)
		if err != nil {
			c.opts.Logger.Warn("skipping unparsable stylesheet", zap.Error(err))
			continue
		}
		engine.AddStylesheet(sheet)
	}

	styledRoot := style.BuildStyledTree(doc, engine)

	viewport := layout.Rect{Width: c.opts.PageWidth, Height: c.opts.PageHeight}
	root, err := layout.LayoutTree(styledRoot, viewport)
	if err != nil {
		c.opts.Logger.Error("layout failed", zap.Error(err))
		return nil, fmt.Errorf("kamaitachi: layout: %w", err)
	}
	c.opts.Logger.Debug("laid out document", zap.Float64("width", viewport.Width), zap.Float64("height", viewport.Height))

	cmds := displaylist.BuildWithOptions(root, displaylist.Options{
		Backgrounds: c.opts.RenderBackgrounds,
		Borders:     c.opts.RenderBorders,
	})
	c.opts.Logger.Debug("built display list", zap.Int("commands", len(cmds)))
	return cmds, nil
}

// collectDocumentStylesheets walks doc for <style> elements (returning their
// text content directly) and <link rel="stylesheet" href="..."> elements
// (resolving and loading href through loader). Declaration order is
// preserved so later sheets cascade over earlier ones, per spec.
func collectDocumentStylesheets(doc *xhtmlparser.Document, loader *res.Loader) []string {
	var sheets []string
	var walk func(n *xhtmlparser.Node)
	walk = func(n *xhtmlparser.Node) {
		if n == nil {
			return
		}
		if n.Type == xhtml.ElementNode {
			switch n.Data {
			case "style":
				sheets = append(sheets, nodeText(n))
			case "link":
				if attrVal(n, "rel") == "stylesheet" {
					href := attrVal(n, "href")
					if href != "" {
						if res, err := loader.LoadCSS(href); err == nil {
							sheets = append(sheets, res.GetString())
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc.Root)
	return sheets
}

func attrVal(n *xhtmlparser.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *xhtmlparser.Node) string {
	var out string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.TextNode {
			out += c.Data
		}
	}
	return out
}

// WarmFontCache forces the shared font context to resolve the core font
// families up front, so the first real conversion in a long-lived process
// doesn't pay the singleflight resolution cost mid-layout.
func WarmFontCache() {
	fc := font.Shared()
	fc.Resolve([]string{"Times New Roman"}, 400, "normal")
	fc.Resolve([]string{"Helvetica"}, 400, "normal")
	fc.Resolve([]string{"Courier New"}, 400, "normal")
}
