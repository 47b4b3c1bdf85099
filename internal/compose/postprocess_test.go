package compose

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPostprocess_StripsQuotesAndWhitespace(t *testing.T) {
	got := Postprocess("  \"Thanks for reaching out!\"  ", 700)
	assert.Equal(t, "Thanks for reaching out!", got)
}

func TestPostprocess_SingleQuotes(t *testing.T) {
	got := Postprocess("'We appreciate the feedback.'", 700)
	assert.Equal(t, "We appreciate the feedback.", got)
}

func TestPostprocess_CollapsesWhitespace(t *testing.T) {
	got := Postprocess("Hello   there,\n\nwelcome  back!", 700)
	assert.Equal(t, "Hello there, welcome back!", got)
}

func TestPostprocess_TruncatesWithEllipsis(t *testing.T) {
	got := Postprocess("This is a very long reply text", 10)
	assert.Equal(t, 10, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, "This is a…", got)
}

func TestPostprocess_CapHoldsForAllInputs(t *testing.T) {
	inputs := []string{
		"short",
		strings.Repeat("word ", 200),
		"no spaces at all in this rather long single token reply",
		"ünïcödé réply with àccénts and émöjis 🎉🎉🎉 padding padding padding",
	}
	for _, in := range inputs {
		for _, max := range []int{1, 5, 20, 700} {
			got := Postprocess(in, max)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), max, "input %q max %d", in, max)
		}
	}
}

func TestPostprocess_StripsControlCharacters(t *testing.T) {
	got := Postprocess("Hi\x00 there\u200b, wel\acome!", 700)
	for _, r := range got {
		assert.False(t, unicode.In(r, unicode.C), "control character %U survived", r)
	}
	assert.Contains(t, got, "Hi")
	assert.Contains(t, got, "welcome")
}

func TestPostprocess_Idempotent(t *testing.T) {
	inputs := []string{
		"  \"Thanks for reaching out!\"  ",
		"**Bold** reply with `code`",
		"'quoted' and \"double quoted\"",
		"multi\nline\nreply",
		"This is a very long reply text",
		"\u200bzero width\u200b",
		"''\"nested quotes\"''",
		"&lt;b&gt;hi&lt;/b&gt;",
		"&gt; hello world",
		"Bed &amp; breakfast",
	}
	for _, in := range inputs {
		for _, max := range []int{10, 700} {
			once := Postprocess(in, max)
			twice := Postprocess(once, max)
			assert.Equal(t, once, twice, "input %q max %d", in, max)
		}
	}
}

func TestPostprocess_FlattensMarkdown(t *testing.T) {
	got := Postprocess("**Thanks!** We will check your `order` soon.", 700)
	assert.Equal(t, "Thanks! We will check your order soon.", got)
}

func TestPostprocess_FlattensMarkdownList(t *testing.T) {
	got := Postprocess("Here you go:\n- open the app\n- tap settings", 700)
	assert.NotContains(t, got, "-")
	assert.Contains(t, got, "open the app")
	assert.Contains(t, got, "tap settings")
}

func TestPostprocess_StripsHTML(t *testing.T) {
	got := Postprocess("<b>Hello</b> <script>alert(1)</script>friend", 700)
	assert.NotContains(t, got, "<")
	assert.Contains(t, got, "Hello")
	assert.Contains(t, got, "friend")
}

func TestPostprocess_FlattensEntityEncodedMarkup(t *testing.T) {
	// Unescaping entities can surface markup that was not visible to the
	// first strip; nothing tag-shaped may reach the published text.
	got := Postprocess("&lt;b&gt;hi&lt;/b&gt;", 700)
	assert.Equal(t, "hi", got)

	got = Postprocess("&gt; hello world", 700)
	assert.Equal(t, "hello world", got)

	got = Postprocess("&lt;script&gt;alert(1)&lt;/script&gt;ok", 700)
	assert.NotContains(t, got, "<")
	assert.Contains(t, got, "ok")
}

func TestPostprocess_KeepsAmpersand(t *testing.T) {
	got := Postprocess("Bed & breakfast opens at 8.", 700)
	assert.Equal(t, "Bed & breakfast opens at 8.", got)
}

func TestPostprocess_EmptyMeansSuppress(t *testing.T) {
	assert.Equal(t, "", Postprocess("", 700))
	assert.Equal(t, "", Postprocess("   \n\t ", 700))
	assert.Equal(t, "", Postprocess("\"\"", 700))
}

func TestPostprocess_TrimsSpaceBeforeEllipsis(t *testing.T) {
	// Truncation lands on a space; the ellipsis must not follow one.
	got := Postprocess("abcd efgh ijkl", 10)
	assert.NotContains(t, got, " …")
	assert.True(t, strings.HasSuffix(got, "…"))
}
