package kamaitachi

import "go.uber.org/zap"

// DefaultPageWidthPx and DefaultPageHeightPx describe a US Letter page at
// the conventional 96px/in CSS reference pixel density.
const (
	DefaultPageWidthPx  = 816.0
	DefaultPageHeightPx = 1056.0
)

// Options configures a Converter. Use DefaultOptions and layer With*
// functions over it rather than constructing the struct directly, so new
// fields don't break existing callers.
type Options struct {
	PageWidth  float64
	PageHeight float64

	FontDirs            []string
	ResourceSearchPaths []string

	RenderBackgrounds bool
	RenderBorders     bool
	Debug             bool

	Logger *zap.Logger
}

// Option mutates an Options in place; New applies a chain of them over
// DefaultOptions().
type Option func(*Options)

// DefaultOptions returns the baseline configuration: a single US Letter
// page, backgrounds and borders painted, no debug logging.
func DefaultOptions() Options {
	return Options{
		PageWidth:         DefaultPageWidthPx,
		PageHeight:        DefaultPageHeightPx,
		RenderBackgrounds: true,
		RenderBorders:     true,
		Logger:            zap.NewNop(),
	}
}

// WithPageSize overrides the page dimensions, in px.
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithFontDir registers an additional directory to search for embedded
// fonts. Reserved for a future font-service extension; the current
// fpdf-core-font-only font service does not yet consult it.
func WithFontDir(dir string) Option {
	return func(o *Options) {
		o.FontDirs = append(o.FontDirs, dir)
	}
}

// WithResourceSearchPath adds a directory the resource loader falls back
// to when a referenced stylesheet isn't found relative to the input file.
func WithResourceSearchPath(path string) Option {
	return func(o *Options) {
		o.ResourceSearchPaths = append(o.ResourceSearchPaths, path)
	}
}

// WithRenderBackgrounds toggles background-colour painting.
func WithRenderBackgrounds(enabled bool) Option {
	return func(o *Options) { o.RenderBackgrounds = enabled }
}

// WithRenderBorders toggles border painting.
func WithRenderBorders(enabled bool) Option {
	return func(o *Options) { o.RenderBorders = enabled }
}

// WithDebug sets the Debug flag, which ConvertFile copies onto the PDF
// renderer. It does not change logging; that goes through the logger set
// with WithLogger.
func WithDebug(enabled bool) Option {
	return func(o *Options) { o.Debug = enabled }
}

// WithLogger overrides the zap logger used for pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func applyOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
