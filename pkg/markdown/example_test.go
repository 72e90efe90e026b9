package markdown_test

import (
	"fmt"

	"github.com/yaklabco/mdhtml/pkg/markdown"
)

func ExampleRender() {
	fmt.Print(markdown.Render("# Hello\n\nSome **bold** and a [link](https://example.com)."))
	// Output:
	// <h1>Hello</h1>
	// <p>Some <strong>bold</strong> and a <a href="https://example.com">link</a>.</p>
}

func ExampleNewRenderer() {
	renderer := markdown.NewRenderer(markdown.Options{HeadingIDs: true})
	fmt.Print(renderer.Render("## Getting Started"))
	// Output:
	// <h2 id="getting-started">Getting Started</h2>
}
