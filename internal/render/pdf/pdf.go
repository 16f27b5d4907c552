// Package pdf is a demo display-list consumer: it paints the commands
// produced by internal/displaylist onto a single PDF page using fpdf.
// It is deliberately the simplest possible backend for this repo's
// layout core — proof that the display list is a complete, renderer-
// agnostic description of the page, not the layout engine's real
// deliverable.
package pdf

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/keiya01/kamaitachi/internal/displaylist"
)

// RenderOptions carries the PDF document metadata set on the output file.
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// Renderer paints a display list onto a PDF page sized to the viewport
// the layout was computed against.
type Renderer struct {
	PageWidth, PageHeight float64
	Debug                 bool
}

// NewRenderer creates a Renderer for a page of the given size, in px.
func NewRenderer(pageWidth, pageHeight float64) *Renderer {
	return &Renderer{PageWidth: pageWidth, PageHeight: pageHeight}
}

// Render paints cmds onto a single new page and writes the result to
// outputPath.
func (r *Renderer) Render(cmds []displaylist.Command, outputPath string, options RenderOptions) error {
	pdf := fpdf.New("P", "pt", []float64{r.PageWidth, r.PageHeight}, "")
	pdf.SetTitle(options.Title, false)
	pdf.SetAuthor(options.Author, false)
	pdf.SetSubject(options.Subject, false)
	pdf.SetKeywords(options.Keywords, false)
	creator := options.Creator
	if creator == "" {
		creator = "kamaitachi"
	}
	pdf.SetCreator(creator, false)
	producer := options.Producer
	if producer == "" {
		producer = "kamaitachi"
	}
	pdf.SetProducer(producer, false)

	pdf.AddPage()

	for _, cmd := range cmds {
		r.paint(pdf, cmd)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("pdf: failed to write %s: %w", outputPath, err)
	}
	return nil
}

func (r *Renderer) paint(pdf *fpdf.Fpdf, cmd displaylist.Command) {
	switch cmd.Kind {
	case displaylist.SolidColor:
		r.paintSolidColor(pdf, cmd)
	case displaylist.Text:
		r.paintText(pdf, cmd)
	}
}

func (r *Renderer) paintSolidColor(pdf *fpdf.Fpdf, cmd displaylist.Command) {
	if cmd.Rect.Width <= 0 || cmd.Rect.Height <= 0 {
		return
	}
	pdf.SetFillColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	pdf.Rect(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.Width, cmd.Rect.Height, "F")
}

func (r *Renderer) paintText(pdf *fpdf.Fpdf, cmd displaylist.Command) {
	style := fpdfStyleCode(cmd.FontWeight, cmd.FontStyle)
	pdf.SetFont(corePDFFont(cmd.FontFamily), style, cmd.FontSizePx)
	pdf.SetTextColor(int(cmd.Color.R), int(cmd.Color.G), int(cmd.Color.B))
	baseline := cmd.Rect.Y + cmd.Rect.Height
	pdf.Text(cmd.Rect.X, baseline, cmd.TextContent)
}

func fpdfStyleCode(weight int, style string) string {
	code := ""
	if weight >= 600 {
		code += "B"
	}
	if style == "italic" || style == "oblique" {
		code += "I"
	}
	return code
}

// corePDFFont maps a resolved CSS font family name to one of fpdf's 14
// built-in core fonts, mirroring internal/font's own resolution table so
// the measured widths used during layout match what gets painted.
func corePDFFont(family string) string {
	switch family {
	case "Helvetica", "Courier", "Times":
		return family
	}
	return "Times"
}
