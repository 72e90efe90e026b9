// Package markdown renders a working subset of CommonMark to HTML.
//
// Rendering is a two phase pipeline. The block segmenter walks the document
// line by line, classifies each line into a block kind and hands each block
// to a block renderer. Renderers that carry prose run it through the inline
// transformer, which applies three ordered passes: code spans, links and
// images, emphasis. Blockquotes re-enter the segmenter on their dedented
// content.
//
// The engine never fails. Malformed or unterminated constructs degrade to
// literal text and unrecognized blocks degrade to paragraphs. Inline passes
// do not rescan the rest of a line for every failed opener, so long runs of
// brackets or delimiters still render in linear time.
//
// Supported constructs:
//   - ATX headings (# to ######) and setext headings (=== and ---)
//   - fenced (```) and indented (4 spaces) code blocks
//   - blockquotes, nested to a configurable depth
//   - unordered lists (-, *, +)
//   - thematic breaks (***, ---, ___)
//   - raw HTML lines opening <pre, <code, <script or <style
//   - code spans, links, images, emphasis and strong emphasis
//
// Reference links, entity decoding, ordered lists, tables and the CommonMark
// flanking rules for emphasis are not supported.
package markdown
