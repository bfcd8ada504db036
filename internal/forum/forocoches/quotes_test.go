package forocoches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotesPageHTML = `<html><body><ul>
<li>
  <a href="member.php?u=77">Alice</a> te ha citado en
  <a href="showthread.php?p=9002#post9002">Hilo sobre coches</a>
  <span>10-feb-2026, 18:30</span>
  <div class="alt2">esto es lo que dijo sobre tu mensaje</div>
</li>
<li>
  <a href="member.php?u=88">Bob</a> te ha citado en
  <a href="showthread.php?p=9001#post9001">Otro hilo</a>
  <span>Ayer, 09:15</span>
</li>
<li>
  Duplicated link to the same post:
  <a href="showthread.php?p=9002">Hilo sobre coches</a>
</li>
</ul></body></html>`

func TestParseQuotesPage(t *testing.T) {
	quotes, err := ParseQuotesPage(quotesPageHTML)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	first := quotes[0]
	assert.Equal(t, "9002", first.PostID)
	assert.Equal(t, "Alice", first.Author)
	assert.Equal(t, "Hilo sobre coches", first.ThreadTitle)
	assert.Equal(t, "https://forocoches.com/foro/showthread.php?p=9002#post9002", first.ThreadURL)
	assert.Equal(t, "10-feb-2026", first.Date)
	assert.Equal(t, "18:30", first.Time)
	assert.Equal(t, "esto es lo que dijo sobre tu mensaje", first.Preview)

	second := quotes[1]
	assert.Equal(t, "9001", second.PostID)
	assert.Equal(t, "Bob", second.Author)
	assert.Equal(t, "Ayer", second.Date)
	assert.Equal(t, "09:15", second.Time)
	assert.Empty(t, second.Preview)
}

func TestParseQuotesPage_Empty(t *testing.T) {
	quotes, err := ParseQuotesPage("<html><body>sin citas</body></html>")
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestParseQuotesPage_PreviewTruncated(t *testing.T) {
	long := ""
	for range 30 {
		long += "palabras "
	}
	html := `<li><a href="showthread.php?p=1">T</a><div class="alt2">` + long + `</div></li>`

	quotes, err := ParseQuotesPage(html)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.LessOrEqual(t, len([]rune(quotes[0].Preview)), previewMaxLen+1)
	assert.Contains(t, quotes[0].Preview, "…")
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute passthrough", "https://forocoches.com/foro/showthread.php?p=1", "https://forocoches.com/foro/showthread.php?p=1"},
		{"rooted", "/foro/showthread.php?p=1", "https://forocoches.com/foro/showthread.php?p=1"},
		{"relative", "showthread.php?p=1", "https://forocoches.com/foro/showthread.php?p=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, absoluteURL(tt.href))
		})
	}
}
