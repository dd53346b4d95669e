package report

import (
	"fmt"
	"regexp"
	"strings"
)

// The narrative model is instructed to structure its output with a
// constrained markdown subset: ## / ### headings, * or - bullets and
// **bold** spans. FormatNarrative converts that subset to the inline-
// styled HTML dialect the email renderer uses.

var boldRegex = regexp.MustCompile(`\*\*(.+?)\*\*`)

type lineKind int

const (
	lineHeading3 lineKind = iota
	lineHeading2
	lineBullet
	lineBlank
	lineText
)

// classifyLine matches leading tokens in a fixed order: heading-3,
// heading-2, bullet, blank, plain text. First match wins.
func classifyLine(trimmed string) (lineKind, string) {
	switch {
	case strings.HasPrefix(trimmed, "### "):
		return lineHeading3, trimmed[4:]
	case strings.HasPrefix(trimmed, "## "):
		return lineHeading2, trimmed[3:]
	case strings.HasPrefix(trimmed, "* "), strings.HasPrefix(trimmed, "- "):
		return lineBullet, trimmed[2:]
	case trimmed == "":
		return lineBlank, ""
	default:
		return lineText, trimmed
	}
}

// FormatNarrative converts the language model's markdown-subset output
// to HTML. It is a single line-oriented pass with two states (normal,
// inside-list): consecutive bullet lines are grouped into one <ul>,
// which closes on the first non-bullet line or at end of input. Inline
// **bold** spans are converted before line-level processing. Blank
// lines become explicit <br/> markers; anything unrecognized becomes a
// paragraph.
func FormatNarrative(markdown string) string {
	if markdown == "" {
		return ""
	}

	converted := boldRegex.ReplaceAllString(markdown, "<strong>$1</strong>")

	var out []string
	inList := false

	closeList := func() {
		if inList {
			out = append(out, "</ul>")
			inList = false
		}
	}

	for _, line := range strings.Split(converted, "\n") {
		kind, content := classifyLine(strings.TrimSpace(line))

		switch kind {
		case lineHeading3:
			closeList()
			out = append(out, fmt.Sprintf(`<h4 style="color: #2ea3f2; margin: 15px 0 10px 0; font-weight: 600;">%s</h4>`, content))
		case lineHeading2:
			closeList()
			out = append(out, fmt.Sprintf(`<h3 style="color: #1d1973; margin: 15px 0 10px 0; font-weight: 600;">%s</h3>`, content))
		case lineBullet:
			if !inList {
				out = append(out, `<ul style="margin: 10px 0; padding-left: 20px;">`)
				inList = true
			}
			out = append(out, fmt.Sprintf(`<li style="margin: 5px 0;">%s</li>`, content))
		case lineBlank:
			closeList()
			out = append(out, "<br/>")
		case lineText:
			closeList()
			out = append(out, fmt.Sprintf(`<p style="margin: 10px 0;">%s</p>`, content))
		}
	}
	closeList()

	return strings.Join(out, "\n")
}
