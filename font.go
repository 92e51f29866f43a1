package imgii

import (
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

// Font is a read-only handle to a parsed TrueType font. It is loaded once
// at startup and safely shared by reference across all parallel rendering
// tasks.
type Font struct {
	ttf *truetype.Font
}

// LoadFont parses TrueType font data into a Font handle. Invalid font data
// is a fatal setup error.
func LoadFont(data []byte) (*Font, error) {
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, wrapError(KindFont, err, "could not parse font data")
	}
	return &Font{ttf: ttf}, nil
}

// LoadFontFile reads and parses a TrueType font from disk.
func LoadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(KindFont, err, "could not read font %s", path)
	}
	return LoadFont(data)
}
