package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Stattek/imgii"
)

func main() {
	width := flag.Int("width", 0,
		"Width of the output image in characters (defaults to 128 if "+
			"neither width nor height is set)")
	height := flag.Int("height", 0,
		"Height of the output image in characters (derived from the "+
			"aspect ratio if unset)")
	fontSize := flag.Int("font-size", imgii.DefaultFontSize,
		"Font size of the output image; larger sizes render slower")
	invert := flag.Bool("invert", false,
		"Invert the charset weights, for images on white backgrounds")
	background := flag.Bool("background", false,
		"Fill cells with an opaque black background instead of transparency")
	charset := flag.String("charset", "minimal",
		"Charset used to render the image, from transparent to opaque "+
			"(block, emoji, default, russian, slight, minimal)")
	charOverride := flag.String("char", "",
		"Literal characters to render with, overriding the charset")
	fontPath := flag.String("font", "",
		"Path to a TrueType font used for glyph rendering (required); a "+
			"monospaced font gives the cleanest output")
	finalIndex := flag.Int("final-index", 0,
		"Convert a numbered sequence of input images; both paths must "+
			"contain %d (PNG output only)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: imgii -font <path.ttf> [flags] <input> <output>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "imgii: -font is required (path to a TrueType font)")
		os.Exit(2)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)
	isGIF := strings.HasSuffix(strings.ToLower(outputPath), ".gif")

	if isGIF && *finalIndex > 0 {
		fmt.Fprintln(os.Stderr, "imgii: batch mode is only supported for PNG output")
		os.Exit(2)
	}

	font, err := imgii.LoadFontFile(*fontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imgii: %v\n", err)
		os.Exit(1)
	}

	var override []string
	if *charOverride != "" {
		for _, r := range *charOverride {
			override = append(override, string(r))
		}
	}

	opts := imgii.NewOptions(
		imgii.WithWidth(*width),
		imgii.WithHeight(*height),
		imgii.WithFontSize(*fontSize),
		imgii.WithInvert(*invert),
		imgii.WithBackground(*background),
		imgii.WithCharset(*charset),
		imgii.WithCharOverride(override),
	)

	start := time.Now()
	switch {
	case isGIF:
		if err := imgii.ConvertGIFToAsciiGIF(inputPath, outputPath, font, opts); err != nil {
			fmt.Fprintf(os.Stderr, "imgii: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved GIF %s (%v)\n", outputPath, time.Since(start).Round(time.Millisecond))
	case *finalIndex > 0:
		res := imgii.ConvertImageBatch(inputPath, outputPath, *finalIndex, font, opts)
		fmt.Printf("Converted %d image(s), %d failed (%v)\n",
			res.Succeeded, res.Failed, time.Since(start).Round(time.Millisecond))
		if res.Succeeded == 0 {
			os.Exit(1)
		}
	default:
		if err := imgii.ConvertImageToAsciiPNG(inputPath, outputPath, font, opts); err != nil {
			fmt.Fprintf(os.Stderr, "imgii: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved PNG %s (%v)\n", outputPath, time.Since(start).Round(time.Millisecond))
	}
}
