// Command svgrender renders an SVG file to PNG or PDF.
//
//	svgrender input.svg output.png
//
// Settings are read from SVGRENDER_* environment variables, see
// package internal/config.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgscene/internal/config"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/benoitkugler/svgscene/svgpdf"
	"github.com/benoitkugler/svgscene/svgraster"
	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/benoitkugler/svgscene/svgxml"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: svgrender input.svg output.(png|pdf)")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, err := cfg.Level()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	svgscene.SetLogger(logger)

	if err := run(cfg, os.Args[1], os.Args[2]); err != nil {
		slog.Error("render", "input", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, input, output string) error {
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}
	format, err := outputFormat(cfg.Format, output)
	if err != nil {
		return err
	}

	doc, err := svgxml.ParseFile(input)
	if err != nil {
		return err
	}
	tree, err := doc.Build(mode)
	if err != nil {
		return err
	}
	if err := applyTarget(cfg, tree); err != nil {
		return err
	}

	vb := viewBox(doc)
	w, h := outputSize(vb, cfg.Width, cfg.Height)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid output size %gx%g", w, h)
	}
	m := viewMatrix(vb, w, h)
	slog.Debug("rendering", "nodes", tree.Len(), "width", w, "height", h, "format", format)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "png":
		img := svgraster.RenderToImage(tree, int(math.Ceil(w)), int(math.Ceil(h)), m)
		err = png.Encode(f, img)
	case "pdf":
		err = svgpdf.RenderToPDF(tree, w, h, m, f)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// outputFormat returns the explicit format, or the one deduced from the
// extension of `output`.
func outputFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
	}
	switch format = strings.ToLower(format); format {
	case "png", "pdf":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

var errNoRootGroup = errors.New("target box requires a single root group")

// applyTarget moves and resizes the root group to the configured box.
func applyTarget(cfg *config.Config, tree *svgscene.Tree) error {
	box, ok, err := cfg.TargetBox()
	if err != nil || !ok {
		return err
	}
	root, isGroup := tree.Root().(*svgscene.Group)
	if !isGroup {
		return errNoRootGroup
	}
	for _, fv := range [...]struct {
		f svgscene.Field
		v float64
	}{
		{svgscene.X, box.X},
		{svgscene.Y, box.Y},
		{svgscene.Width, box.Width},
		{svgscene.Height, box.Height},
	} {
		if err := root.Set(fv.f, fv.v); err != nil {
			return err
		}
	}
	return nil
}

// viewBox returns the region of the document to render.
func viewBox(doc *svgxml.Document) svgxml.Bounds {
	if doc.ViewBox.W > 0 && doc.ViewBox.H > 0 {
		return doc.ViewBox
	}
	return svgxml.Bounds{W: doc.Width, H: doc.Height}
}

// outputSize fills a missing dimension, keeping the aspect ratio of `vb`.
func outputSize(vb svgxml.Bounds, w, h float64) (float64, float64) {
	switch {
	case w <= 0 && h <= 0:
		return vb.W, vb.H
	case w <= 0 && vb.H != 0:
		return h * vb.W / vb.H, h
	case h <= 0 && vb.W != 0:
		return w, w * vb.H / vb.W
	}
	return w, h
}

// viewMatrix maps `vb` onto the rectangle (0, 0, w, h).
func viewMatrix(vb svgxml.Bounds, w, h float64) svgpath.Matrix2D {
	sx, sy := 1., 1.
	if vb.W != 0 {
		sx = w / vb.W
	}
	if vb.H != 0 {
		sy = h / vb.H
	}
	return svgpath.Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
}
