package mails

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareData struct {
	Title string
	Text  string
}

func TestParseReviewShareTemplate(t *testing.T) {
	partials, err := parseEmailTmpl("review_share.tmpl", shareData{
		Title: "Dune",
		Text:  "🎬 Dune\n⭐ Rating: 4/5 stars",
	})
	require.NoError(t, err)
	assert.Equal(t, "A movie review for you: Dune", partials["subject"])
	assert.Contains(t, partials["plainBody"], "⭐ Rating: 4/5 stars")
	assert.Contains(t, partials["htmlBody"], "<strong>Dune</strong>")
}

func TestTemplateEscapesHTML(t *testing.T) {
	partials, err := parseEmailTmpl("review_share.tmpl", shareData{Title: "<script>", Text: "x"})
	require.NoError(t, err)
	assert.NotContains(t, partials["htmlBody"], "<script>")
}

func TestPlainPartsAreNotEscaped(t *testing.T) {
	partials, err := parseEmailTmpl("review_share.tmpl", shareData{
		Title: "Schindler's List",
		Text:  "Reactions: 😢 & 🔥",
	})
	require.NoError(t, err)
	assert.Equal(t, "A movie review for you: Schindler's List", partials["subject"])
	assert.Contains(t, partials["plainBody"], "what they thought of Schindler's List:")
	assert.Contains(t, partials["plainBody"], "Reactions: 😢 & 🔥")
	assert.Contains(t, partials["htmlBody"], "Schindler&#39;s List")
	assert.Contains(t, partials["htmlBody"], "😢 &amp; 🔥")
}

func TestUnknownTemplate(t *testing.T) {
	_, err := parseEmailTmpl("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestMessageHeaders(t *testing.T) {
	m := New("localhost", 1025, 0, "", "", "MovieDeck <no-reply@moviedeck.local>", 0)
	assert.Equal(t, 1, m.RetriesCount)

	msg, err := m.message("friend@example.com", "review_share.tmpl", shareData{Title: "Up", Text: "🎬 Up"})
	require.NoError(t, err)
	assert.Equal(t, []string{"friend@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"A movie review for you: Up"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}
