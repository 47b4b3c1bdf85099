package compose

import (
	"bytes"
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	mdRenderer   goldmark.Markdown
	tagStripper  *bluemonday.Policy
	ellipsisRune = '…'
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)

	tagStripper = bluemonday.StrictPolicy()
}

// Postprocess turns raw model output into publishable plain text:
// markdown and HTML are flattened away, control and format characters are
// stripped, surrounding quotes are removed, whitespace runs collapse to
// single spaces, and the result is capped at maxChars runes (truncation
// replaces the last visible character with an ellipsis).
//
// An empty result is valid and means "suppress this reply". Postprocess is
// idempotent: applying it to its own output changes nothing.
func Postprocess(raw string, maxChars int) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	text = flattenMarkup(text)
	text = stripNonPrinting(text)
	text = strings.Trim(text, `"' `)
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	runes := []rune(text)
	if maxChars > 0 && len(runes) > maxChars {
		text = strings.TrimRight(string(runes[:maxChars-1]), " ")
		text += string(ellipsisRune)
	}

	return text
}

// maxFlattenPasses bounds the flatten loop for pathological input.
const maxFlattenPasses = 8

// flattenMarkup reduces markdown and HTML to plain text. Local models
// answer in markdown often enough that posting raw output would leak
// asterisks and backticks to end users. Unescaping can re-materialize
// entity-encoded markup ("&lt;b&gt;" becomes "<b>"), so the pass repeats
// until the text stops changing. Newlines become spaces here, before the
// control-character strip, so multi-line output keeps its word boundaries.
func flattenMarkup(text string) string {
	for i := 0; i < maxFlattenPasses; i++ {
		flat := flattenOnce(text)
		if flat == text {
			break
		}
		text = flat
	}
	return text
}

// flattenOnce renders markdown to HTML, strips every tag, and unescapes
// entities.
func flattenOnce(text string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(text), &buf); err == nil {
		text = buf.String()
	}
	text = tagStripper.Sanitize(text)
	text = html.UnescapeString(text)
	return whitespaceRun.ReplaceAllString(text, " ")
}

// stripNonPrinting removes Unicode control and format category characters.
// Zero-width and bidi characters survive the markup pass and can render a
// reply as blank on some clients.
func stripNonPrinting(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.In(r, unicode.C) {
			return -1
		}
		return r
	}, text)
}
