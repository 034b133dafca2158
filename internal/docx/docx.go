// Package docx renders transcripts and Markdown summaries as Word documents.
package docx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/audioscribe/internal/transcript"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	textColor = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
)

type block struct {
	kind  blockKind
	level int
	text  string
}

// FromTranscript writes a document with the title followed by one paragraph
// per segment, each prefixed with its start time. A result without segments
// is written as a single paragraph of its full text.
func FromTranscript(path, title string, r transcript.Result) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)

	if len(r.Segments) == 0 {
		if text := strings.TrimSpace(r.Text); text != "" {
			addRun(doc.AddParagraph(""), text, false, fontSize)
		}
	}
	for _, seg := range r.Segments {
		p := doc.AddParagraph("")
		addRun(p, "["+transcript.FormatTime(seg.Start)+"] ", true, fontSize)
		addRun(p, strings.TrimSpace(seg.Text), false, fontSize)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// FromMarkdown converts a Markdown summary into a styled document. Headings,
// bullets and **bold** spans are recognised; everything else
// becomes a plain paragraph.
func FromMarkdown(path, title, markdown string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)

	for _, b := range parseMarkdown(markdown) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			addRun(p, b.text, true, headingSize(b.level))
		case blockBullet:
			addRichText(p, "• "+b.text)
		default:
			addRichText(p, b.text)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func parseMarkdown(markdown string) []block {
	var blocks []block
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			blocks = append(blocks, block{kind: blockBullet, text: m[1]})
			continue
		}
		blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
	}
	return blocks
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanInline(text)).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	for _, s := range splitBold(text) {
		addRun(p, s.text, s.bold, fontSize)
	}
}

type span struct {
	text string
	bold bool
}

// splitBold breaks text into alternating plain and **bold** spans, dropping empty plain spans.
func splitBold(text string) []span {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	var spans []span
	for i, part := range parts {
		if part != "" {
			spans = append(spans, span{text: part})
		}
		if i < len(matches) {
			spans = append(spans, span{text: matches[i][1], bold: true})
		}
	}
	return spans
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
