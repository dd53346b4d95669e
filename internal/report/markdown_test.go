package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNarrativeHeadingAndList(t *testing.T) {
	html := FormatNarrative("### Title\n* a\n* b\n")

	lines := strings.Split(html, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "<h4")
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[1], "<ul")
	assert.Contains(t, lines[2], "<li")
	assert.Contains(t, lines[2], ">a</li>")
	assert.Contains(t, lines[3], ">b</li>")
	assert.Equal(t, "</ul>", lines[4])
	// Trailing empty line becomes a break after the list closes
	assert.Equal(t, "<br/>", lines[5])
}

func TestFormatNarrativeListClosesOnText(t *testing.T) {
	html := FormatNarrative("* one\n* two\nplain text")

	ulPos := strings.Index(html, "<ul")
	closePos := strings.Index(html, "</ul>")
	pPos := strings.Index(html, "<p")
	require.True(t, ulPos >= 0 && closePos > ulPos)
	assert.True(t, closePos < pPos, "list must close before the paragraph")
	assert.Equal(t, 2, strings.Count(html, "<li"))
}

func TestFormatNarrativeHeadingLevels(t *testing.T) {
	html := FormatNarrative("## Section\n### Subsection")

	assert.Contains(t, html, ">Section</h3>")
	assert.Contains(t, html, ">Subsection</h4>")
}

func TestFormatNarrativeBold(t *testing.T) {
	html := FormatNarrative("Les sessions **Email** ont progressé de **12%**.")

	assert.Contains(t, html, "<strong>Email</strong>")
	assert.Contains(t, html, "<strong>12%</strong>")
	assert.Contains(t, html, "<p")
}

func TestFormatNarrativeBoldInsideBullet(t *testing.T) {
	html := FormatNarrative("- **Point fort** : trafic en hausse")

	assert.Contains(t, html, "<li")
	assert.Contains(t, html, "<strong>Point fort</strong>")
}

func TestFormatNarrativeBlankLines(t *testing.T) {
	html := FormatNarrative("premier\n\nsecond")

	lines := strings.Split(html, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "premier")
	assert.Equal(t, "<br/>", lines[1])
	assert.Contains(t, lines[2], "second")
}

func TestFormatNarrativeDashBullets(t *testing.T) {
	html := FormatNarrative("- a\n- b")
	assert.Equal(t, 1, strings.Count(html, "<ul"))
	assert.Equal(t, 2, strings.Count(html, "<li"))
	assert.True(t, strings.HasSuffix(html, "</ul>"), "list must close at end of input")
}

func TestFormatNarrativeEmpty(t *testing.T) {
	assert.Equal(t, "", FormatNarrative(""))
}
