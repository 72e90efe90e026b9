package markdown

import "strings"

// segmenter walks a Document with a cursor that only moves forward.
type segmenter struct {
	doc Document
	pos int
}

// Segment splits doc into blocks in source order.
//
// Each line is classified by the first matching rule, in priority order:
// blockquote, fenced or indented code, ATX heading, setext heading, thematic
// break, list, raw HTML, paragraph. Blank lines between blocks are dropped.
// Every other line belongs to exactly one block.
func Segment(doc Document) []Block {
	seg := &segmenter{doc: doc}

	var blocks []Block
	for seg.pos < len(seg.doc) {
		if isBlank(seg.doc[seg.pos]) {
			seg.pos++
			continue
		}
		blocks = append(blocks, seg.next())
	}

	return blocks
}

// next consumes the block starting at the cursor, which must not be blank.
func (s *segmenter) next() Block {
	line := s.doc[s.pos]

	switch {
	case isBlockquoteLine(line):
		return s.blockquote()
	case isFence(line):
		return s.fencedCode()
	case isIndentedCode(line):
		return s.indentedCode()
	case atxLevel(line) > 0:
		return s.atxHeading()
	case s.setextAt(s.pos) > 0:
		return s.setextHeading()
	case isThematicBreak(line):
		return s.single(Block{Kind: KindThematicBreak})
	}

	if _, ok := listItemText(line); ok {
		return s.list()
	}

	if isHTMLLine(line) {
		return s.single(Block{Kind: KindHTML, Text: line})
	}

	return s.paragraph()
}

// startsBlock reports whether the line at idx matches any rule that ranks
// above the paragraph fallback.
func (s *segmenter) startsBlock(idx int) bool {
	line := s.doc[idx]

	if isBlockquoteLine(line) || isFence(line) || isIndentedCode(line) {
		return true
	}
	if atxLevel(line) > 0 || s.setextAt(idx) > 0 || isThematicBreak(line) {
		return true
	}
	if _, ok := listItemText(line); ok {
		return true
	}

	return isHTMLLine(line)
}

// setextAt returns the setext level of the heading starting at idx, or 0.
func (s *segmenter) setextAt(idx int) int {
	if idx+1 >= len(s.doc) || isBlank(s.doc[idx]) {
		return 0
	}
	return setextLevel(s.doc[idx+1])
}

// single consumes one line as block.
func (s *segmenter) single(block Block) Block {
	block.Start = s.pos
	s.pos++
	block.End = s.pos
	return block
}

func (s *segmenter) blockquote() Block {
	block := Block{Kind: KindBlockquote, Start: s.pos}

	for s.pos < len(s.doc) && isBlockquoteLine(s.doc[s.pos]) {
		block.Inner = append(block.Inner, dedentBlockquote(s.doc[s.pos]))
		s.pos++
	}

	block.End = s.pos
	return block
}

// fencedCode collects lines up to the closing fence or the end of the
// document. A missing closing fence is not an error.
func (s *segmenter) fencedCode() Block {
	block := Block{
		Kind:     KindCodeBlock,
		Start:    s.pos,
		Fenced:   true,
		Language: strings.TrimSpace(s.doc[s.pos][len(fenceDelimiter):]),
	}
	s.pos++

	for s.pos < len(s.doc) && !isFence(s.doc[s.pos]) {
		block.Lines = append(block.Lines, s.doc[s.pos])
		s.pos++
	}

	// Consume the closing fence.
	if s.pos < len(s.doc) {
		s.pos++
	}

	block.End = s.pos
	return block
}

func (s *segmenter) indentedCode() Block {
	block := Block{Kind: KindCodeBlock, Start: s.pos}

	for s.pos < len(s.doc) && isIndentedCode(s.doc[s.pos]) {
		block.Lines = append(block.Lines, s.doc[s.pos][len(codeIndent):])
		s.pos++
	}

	block.End = s.pos
	return block
}

func (s *segmenter) atxHeading() Block {
	line := s.doc[s.pos]
	level := atxLevel(line)
	return s.single(Block{Kind: KindHeading, Level: level, Text: atxText(line, level)})
}

func (s *segmenter) setextHeading() Block {
	block := Block{
		Kind:  KindHeading,
		Start: s.pos,
		Level: s.setextAt(s.pos),
		Text:  strings.TrimRight(s.doc[s.pos], " \t"),
	}
	s.pos += 2
	block.End = s.pos
	return block
}

func (s *segmenter) list() Block {
	block := Block{Kind: KindList, Start: s.pos}

	for s.pos < len(s.doc) {
		item, ok := listItemText(s.doc[s.pos])
		if !ok {
			break
		}
		block.Items = append(block.Items, item)
		s.pos++
	}

	block.End = s.pos
	return block
}

// paragraph collects lines until a blank line or a line that starts a
// higher priority block. The first line is always taken, which guarantees
// progress on any input.
func (s *segmenter) paragraph() Block {
	block := Block{Kind: KindParagraph, Start: s.pos}

	lines := []string{strings.TrimSpace(s.doc[s.pos])}
	s.pos++

	for s.pos < len(s.doc) && !isBlank(s.doc[s.pos]) && !s.startsBlock(s.pos) {
		lines = append(lines, strings.TrimSpace(s.doc[s.pos]))
		s.pos++
	}

	block.Text = strings.Join(lines, " ")
	block.End = s.pos
	return block
}
