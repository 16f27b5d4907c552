// Package kamaitachi re-exports the pkg/kamaitachi conversion API at the
// module root, so `import "github.com/keiya01/kamaitachi"` is enough for
// the common case of converting a single HTML file to a PDF.
package kamaitachi

import "github.com/keiya01/kamaitachi/pkg/kamaitachi"

// Converter, Options and Option are aliased so callers never need to import
// the pkg/kamaitachi subpackage directly.
type (
	Converter = kamaitachi.Converter
	Options   = kamaitachi.Options
	Option    = kamaitachi.Option
)

// New creates a Converter with opts layered over the defaults.
func New(opts ...Option) *Converter {
	return kamaitachi.New(opts...)
}

// DefaultOptions returns the baseline conversion options.
func DefaultOptions() Options {
	return kamaitachi.DefaultOptions()
}

var (
	WithPageSize           = kamaitachi.WithPageSize
	WithFontDir            = kamaitachi.WithFontDir
	WithResourceSearchPath = kamaitachi.WithResourceSearchPath
	WithRenderBackgrounds  = kamaitachi.WithRenderBackgrounds
	WithRenderBorders      = kamaitachi.WithRenderBorders
	WithDebug              = kamaitachi.WithDebug
	WithLogger             = kamaitachi.WithLogger
)

// ConvertFile converts the HTML file at inputPath to a PDF at outputPath
// using the default options.
func ConvertFile(inputPath, outputPath string) error {
	return New().ConvertFile(inputPath, outputPath)
}
