// Package reference renders Markdown with goldmark, a complete CommonMark
// implementation. Its output is the baseline that the subset engine is
// compared against.
package reference

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Flavors understood by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options configures the reference renderer.
type Options struct {
	// Flavor is "commonmark" or "gfm". Anything else means "commonmark".
	Flavor string

	// HeadingIDs enables goldmark's automatic heading ids.
	HeadingIDs bool
}

// Renderer wraps a configured goldmark instance.
// It is safe for concurrent use.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a Renderer. Output is XHTML style ("<hr />") and raw HTML
// passes through, matching the subset engine.
func New(opts Options) *Renderer {
	flavor := opts.Flavor
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	gmOpts := []goldmark.Option{
		goldmark.WithRendererOptions(html.WithXHTML(), html.WithUnsafe()),
	}
	if flavor == FlavorGFM {
		gmOpts = append(gmOpts, goldmark.WithExtensions(extension.GFM))
	}
	if opts.HeadingIDs {
		gmOpts = append(gmOpts, goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	}

	return &Renderer{flavor: flavor, md: goldmark.New(gmOpts...)}
}

// Flavor returns the effective flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts src to HTML.
func (r *Renderer) Render(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}

	return buf.String(), nil
}
