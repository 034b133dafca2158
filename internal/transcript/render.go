package transcript

import (
	"fmt"
	"strings"
)

// Title names the transcript of baseName.
func Title(baseName string) string {
	return "Transcription for " + baseName
}

// MarkdownHeader is the first line of a transcript document.
func MarkdownHeader(baseName string) string {
	return "# " + Title(baseName)
}

// RenderMarkdown returns the header line, a blank line and the raw text verbatim.
func RenderMarkdown(baseName string, r Result) string {
	var b strings.Builder
	b.WriteString(MarkdownHeader(baseName))
	b.WriteString("\n\n")
	b.WriteString(r.Text)
	return b.String()
}

// RenderSRT writes one numbered cue per segment, in segment order. Every cue,
// including the last, is followed by a blank line.
func RenderSRT(r Result) string {
	var b strings.Builder
	for i, seg := range r.Segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTime(seg.Start),
			FormatTime(seg.End),
			strings.TrimSpace(seg.Text),
		)
	}
	return b.String()
}
