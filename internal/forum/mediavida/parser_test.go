package mediavida

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPost(id, author, authorID, unixTime, bodyHTML string) string {
	return fmt.Sprintf(`<div id="post-%s" data-autor="%s" data-id="%s">
<span class="rd" data-time="%s"></span>
<div class="post-contents">%s</div>
</div>`, id, author, authorID, unixTime, bodyHTML)
}

func buildPage(title, pagination string, posts ...string) string {
	return fmt.Sprintf(`<html><head><title>%s - Mediavida</title></head><body>
<h1 class="thread-title">%s</h1>
%s
%s
</body></html>`, title, title, pagination, strings.Join(posts, "\n"))
}

const pgThreePages = `<ul class="pg"><li><span class="current">1</span></li><li><a href="/2">2</a></li><li><a href="/3">3</a></li></ul>`

func TestParsePage_WellFormedPosts(t *testing.T) {
	// 1767312000 is 2026-01-02 00:00:00 UTC.
	page := buildPage("Hilo de prueba", pgThreePages,
		buildPost("1", "alice", "11", "1767312000", "primer mensaje"),
		buildPost("2", "bob", "22", "1767312000", "segundo mensaje"),
	)

	result := NewParser().ParsePage(page, 1)

	assert.Equal(t, "Hilo de prueba", result.Title)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Posts, 2)

	first := result.Posts[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "alice", first.Author)
	assert.Equal(t, "11", first.AuthorID)
	assert.Equal(t, "2 ene 2026", first.Date)
	assert.Equal(t, "primer mensaje", first.Content)
	assert.Equal(t, 0, first.Likes)
	assert.Equal(t, 1, first.PageNumber)

	assert.Equal(t, "2", result.Posts[1].ID)
	assert.Equal(t, "segundo mensaje", result.Posts[1].Content)
}

func TestParsePage_QuoteSeparation(t *testing.T) {
	body := `<blockquote class="quote"><a href="/id/77">Alice</a> original text</blockquote> my reply`
	page := buildPage("Quotes", "", buildPost("5", "carol", "33", "1767312000", body))

	result := NewParser().ParsePage(page, 1)
	require.Len(t, result.Posts, 1)
	post := result.Posts[0]

	require.Len(t, post.Quotes, 1)
	assert.Contains(t, post.Quotes[0], "original text")
	assert.Equal(t, "my reply", post.Content)
}

func TestParsePage_LikesAndTrailingCounter(t *testing.T) {
	post := `<div id="post-9" data-autor="dave" data-id="44">
<div class="post-contents">buen mensaje 12</div>
<a class="btnmola" href="#"><i></i><span>12</span></a>
</div>`
	page := buildPage("Likes", "", post)

	result := NewParser().ParsePage(page, 1)
	require.Len(t, result.Posts, 1)

	// The counter renders both inside and after the body text; the
	// trailing copy must not survive into content.
	assert.Equal(t, 12, result.Posts[0].Likes)
	assert.Equal(t, "buen mensaje", result.Posts[0].Content)
}

func TestParsePage_MissingFieldsDegrade(t *testing.T) {
	page := `<html><body><div id="post-3"><p>no attributes here</p></div></body></html>`

	result := NewParser().ParsePage(page, 4)
	require.Len(t, result.Posts, 1)

	post := result.Posts[0]
	assert.Equal(t, "3", post.ID)
	assert.Equal(t, "Unknown", post.Author)
	assert.Equal(t, "0", post.AuthorID)
	assert.Equal(t, "", post.Date)
	assert.Equal(t, "", post.Content)
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, 4, post.PageNumber)
	assert.Equal(t, "Unknown", result.Title)
	assert.Equal(t, 1, result.TotalPages)
}

func TestParsePage_NoPostsIsValid(t *testing.T) {
	result := NewParser().ParsePage("<html><body>vacio</body></html>", 1)
	assert.Empty(t, result.Posts)
	assert.Equal(t, 1, result.TotalPages)
}

func TestParsePage_TitleFallsBackToPageTitle(t *testing.T) {
	result := NewParser().ParsePage("<html><head><title>Sin h1 - Mediavida</title></head><body></body></html>", 1)
	assert.Equal(t, "Sin h1", result.Title)
}

func TestFormatSpanishDate(t *testing.T) {
	tests := []struct {
		unix int64
		want string
	}{
		{1767312000, "2 ene 2026"},
		{1756339200, "28 ago 2025"},
		{1765152000, "8 dic 2025"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSpanishDate(tt.unix))
	}
}

func TestBuildPageURL(t *testing.T) {
	p := NewParser()

	assert.Equal(t, "https://www.mediavida.com/foro/ot/hilo-123",
		p.BuildPageURL("https://www.mediavida.com/foro/ot/hilo-123", 1))
	assert.Equal(t, "https://www.mediavida.com/foro/ot/hilo-123/2",
		p.BuildPageURL("https://www.mediavida.com/foro/ot/hilo-123", 2))
	assert.Equal(t, "https://www.mediavida.com/foro/ot/hilo-123/5",
		p.BuildPageURL("https://www.mediavida.com/foro/ot/hilo-123/", 5))
}

func TestExtractThreadID(t *testing.T) {
	p := NewParser()

	assert.Equal(t, "123456", p.ExtractThreadID("https://www.mediavida.com/foro/ot/hilo-interesante-123456"))
	assert.Equal(t, "123456", p.ExtractThreadID("https://www.mediavida.com/foro/ot/hilo-2024-123456#post-9"))
	assert.Equal(t, "123456", p.ExtractThreadID("https://www.mediavida.com/foro/ot/hilo-123456?x=1"))
	assert.Equal(t, "", p.ExtractThreadID("https://www.mediavida.com/foro/"))
}

func TestParseSearchResults(t *testing.T) {
	html := `<html><body>
<a href="/foro/off-topic/hilo-interesante-123456">Hilo interesante</a>
<a href="/foro/off-topic/hilo-interesante-123456">Hilo interesante duplicado</a>
<a href="/foro/off-topic">subforo, no hilo</a>
<a href="/foro/juegos/otro-hilo-789">Otro hilo</a>
</body></html>`

	results, err := parseSearchResults(html)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "123456", results[0].ID)
	assert.Equal(t, "Hilo interesante", results[0].Title)
	assert.Equal(t, "https://www.mediavida.com/foro/off-topic/hilo-interesante-123456", results[0].URL)
	assert.Equal(t, "789", results[1].ID)
}
