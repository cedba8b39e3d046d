// SPDX-License-Identifier: MIT

// Command lvfilter applies a convolution kernel or a tone filter to an image.
//
// Usage:
//
//	lvfilter -in photo.png -out sharp.png -kernel sharpen
//	lvfilter -in photo.png -out edge.png -custom "-1,-1,-1, -1,8,-1, -1,-1,-1"
//	lvfilter -in photo.png -out soft.tiff -presets kernels.json -kernel soft -full -parallel
//	lvfilter -in photo.jpg -out bw.jpg -grayscale luma
//	lvfilter -in photo.jpg -out old.jpg -tone "#704214"
//	lvfilter -list
//	lvfilter -export-presets > kernels.json
//
// Exactly one filter flag (-kernel, -custom, -negative, -grayscale, -tone)
// is required unless -list or -export-presets is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/pkg/profile"

	"github.com/katalvlaran/lvfilter"
	"github.com/katalvlaran/lvfilter/convolve"
	"github.com/katalvlaran/lvfilter/imageio"
	"github.com/katalvlaran/lvfilter/raster"
	"github.com/katalvlaran/lvfilter/session"
	"github.com/katalvlaran/lvfilter/tone"
)

// errUsage marks command-line mistakes; run prints usage for them.
var errUsage = errors.New("usage")

// config holds parsed flags.
type config struct {
	in, out      string
	kernel       string
	custom       string
	presets      string
	negative     bool
	grayscale    string
	tint         string
	full         bool
	parallel     bool
	verbose      bool
	cpuProfile   string
	jpegQuality  int
	list         bool
	exportPreset bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lvfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var c config
	fs.StringVar(&c.in, "in", "", "Input image (png, jpeg, gif, bmp, tiff, webp)")
	fs.StringVar(&c.out, "out", "", "Output image; format from extension (png, jpg, gif, bmp, tif)")
	fs.StringVar(&c.kernel, "kernel", "", "Kernel name: a built-in or a name from -presets")
	fs.StringVar(&c.custom, "custom", "", "Custom kernel: comma-separated N*N weights, N odd in [3,15]")
	fs.StringVar(&c.presets, "presets", "", "JSON file with named kernels")
	fs.BoolVar(&c.negative, "negative", false, "Invert colors")
	fs.StringVar(&c.grayscale, "grayscale", "", "Grayscale mode: average, luma or desaturate")
	fs.StringVar(&c.tint, "tone", "", "Tone the luma grayscale with a #rrggbb color")
	fs.BoolVar(&c.full, "full", false, "Convolve every pixel (unit stride) instead of stepping by the kernel offset")
	fs.BoolVar(&c.parallel, "parallel", false, "Convolve the three color channels concurrently")
	fs.BoolVar(&c.verbose, "v", false, "Debug logging to stderr")
	fs.StringVar(&c.cpuProfile, "cpuprofile", "", "Write a CPU profile into this directory")
	fs.IntVar(&c.jpegQuality, "quality", imageio.DefaultJPEGQuality, "JPEG quality for -out *.jpg")
	fs.BoolVar(&c.list, "list", false, "List available kernels and exit")
	fs.BoolVar(&c.exportPreset, "export-presets", false, "Write the built-in kernels as a preset file to stdout and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	lvfilter.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer lvfilter.SetLogger(nil)

	if c.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(c.cpuProfile), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	if err := execute(c, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
			return 2
		}
		return 1
	}

	return 0
}

// execute dispatches on the parsed configuration.
func execute(c config, stdout io.Writer) error {
	presets, err := loadPresets(c.presets)
	if err != nil {
		return err
	}

	if c.exportPreset {
		return exportBuiltins(stdout)
	}
	if c.list {
		listKernels(stdout, presets)
		return nil
	}

	if c.in == "" || c.out == "" {
		return fmt.Errorf("-in and -out are required: %w", errUsage)
	}
	filters := 0
	for _, set := range []bool{c.kernel != "", c.custom != "", c.negative, c.grayscale != "", c.tint != ""} {
		if set {
			filters++
		}
	}
	if filters != 1 {
		return fmt.Errorf("exactly one of -kernel, -custom, -negative, -grayscale, -tone is required: %w", errUsage)
	}

	var filterOpts []raster.Option
	filterOpts = append(filterOpts, raster.WithParallel(c.parallel))
	if c.full {
		filterOpts = append(filterOpts, raster.WithConvolveOptions(convolve.WithFullCoverage()))
	}
	doc := session.New(
		session.WithFilterOptions(filterOpts...),
		session.WithSaveOptions(imageio.WithJPEGQuality(c.jpegQuality)),
	)
	if err = doc.Open(c.in); err != nil {
		return err
	}

	switch {
	case c.kernel != "":
		if k, ok := presets[c.kernel]; ok {
			_, err = doc.ApplyKernel(k)
		} else {
			_, err = doc.ApplyBuiltin(c.kernel)
		}
	case c.custom != "":
		_, err = doc.ApplyCustom(c.custom)
	case c.negative:
		_, err = doc.Negative()
	case c.grayscale != "":
		var mode tone.Mode
		if mode, err = tone.ParseMode(c.grayscale); err == nil {
			_, err = doc.Grayscale(mode)
		}
	case c.tint != "":
		var tint color.NRGBA
		if tint, err = tone.ParseColor(c.tint); err == nil {
			_, err = doc.Toning(tint)
		}
	}
	if err != nil {
		return err
	}

	return doc.Save(c.out)
}

// loadPresets reads the preset file at path, or returns nil for an empty path.
func loadPresets(path string) (map[string]*convolve.Kernel, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	defer func() { _ = f.Close() }()

	return convolve.LoadPresets(f)
}

// listKernels prints built-in and preset kernels, one per line.
func listKernels(w io.Writer, presets map[string]*convolve.Kernel) {
	for _, name := range convolve.BuiltinNames() {
		fmt.Fprintf(w, "%s\tbuiltin\n", name)
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		k := presets[name]
		fmt.Fprintf(w, "%s\tpreset %dx%d\n", name, k.Size(), k.Size())
	}
}

// exportBuiltins writes every built-in kernel as a preset document.
func exportBuiltins(w io.Writer) error {
	names := convolve.BuiltinNames()
	kernels := make([]*convolve.Kernel, 0, len(names))
	for _, name := range names {
		k, err := convolve.Builtin(name)
		if err != nil {
			return err
		}
		kernels = append(kernels, k)
	}

	return convolve.WritePresets(w, kernels...)
}
