package imgii

// DefaultFontSize is the font size, in pixels, used when none is configured.
const DefaultFontSize = 16

// DefaultWidth is the output width in characters used when neither a width
// nor a height is configured.
const DefaultWidth = 128

// Options holds the immutable configuration for one conversion run. Fields
// are private so a built Options can never be mutated mid-run; build one
// with NewOptions and pass it by pointer through the pipeline.
type Options struct {
	fontSize     int
	background   bool
	width        int
	height       int
	invert       bool
	charset      []string
	charOverride []string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions builds an Options with the given settings applied over the
// defaults: font size 16, no background, minimal charset, width chosen
// automatically when neither dimension is set.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		fontSize: DefaultFontSize,
		charset:  CharsetByName("minimal"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFontSize sets the glyph font size in pixels. Sizes below 2 fall back
// to the default, since a cell must be at least one pixel wide.
func WithFontSize(size int) Option {
	return func(o *Options) {
		if size < 2 {
			size = DefaultFontSize
		}
		o.fontSize = size
	}
}

// WithBackground sets whether cells are filled with opaque black instead of
// being transparent.
func WithBackground(background bool) Option {
	return func(o *Options) {
		o.background = background
	}
}

// WithWidth sets the output width in characters. Zero means derive it from
// the height (or use the default width if both are zero).
func WithWidth(width int) Option {
	return func(o *Options) {
		o.width = width
	}
}

// WithHeight sets the output height in characters. Zero means derive it
// from the width and the source aspect ratio.
func WithHeight(height int) Option {
	return func(o *Options) {
		o.height = height
	}
}

// WithInvert inverts the charset weights, for bright backgrounds.
func WithInvert(invert bool) Option {
	return func(o *Options) {
		o.invert = invert
	}
}

// WithCharset selects a built-in charset by name. Unknown names fall back
// to the minimal charset.
func WithCharset(name string) Option {
	return func(o *Options) {
		o.charset = CharsetByName(name)
	}
}

// WithCharOverride sets literal characters to render with instead of the
// named charset. The override acts as a custom charset, ordered from
// transparent to opaque and picked by luminance like any other. An empty
// slice disables the override.
func WithCharOverride(chars []string) Option {
	return func(o *Options) {
		o.charOverride = chars
	}
}

// FontSize returns the configured font size in pixels.
func (o *Options) FontSize() int {
	return o.fontSize
}

// Background reports whether cells get an opaque black fill.
func (o *Options) Background() bool {
	return o.background
}

// Width returns the configured output width in characters, 0 if unset.
func (o *Options) Width() int {
	return o.width
}

// Height returns the configured output height in characters, 0 if unset.
func (o *Options) Height() int {
	return o.height
}

// Invert reports whether charset weights are inverted.
func (o *Options) Invert() bool {
	return o.invert
}

// Charset returns the characters used for rendering, from transparent to
// opaque. The char override takes precedence over the charset.
func (o *Options) Charset() []string {
	if len(o.charOverride) > 0 {
		return o.charOverride
	}
	return o.charset
}

// CellSize returns the pixel dimensions of one character cell for this
// configuration.
func (o *Options) CellSize() (width, height int) {
	return CharDimensions(o.fontSize)
}
