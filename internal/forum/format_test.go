package forum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPost(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want string
	}{
		{
			"no likes omits suffix",
			Post{ID: "42", Author: "alice", Date: "09-feb-2026, 11:26", Content: "hola"},
			"#42 @alice (09-feb-2026, 11:26): hola",
		},
		{
			"likes suffix",
			Post{ID: "43", Author: "bob", Date: "2 ene 2026", Content: "buenas", Likes: 7},
			"#43 @bob (2 ene 2026) [7❤]: buenas",
		},
		{
			"quotes re-prepended before reply",
			Post{ID: "44", Author: "carol", Date: "Hoy, 20:06", Content: "my reply", Quotes: []string{"@Alice: original text"}},
			"#44 @carol (Hoy, 20:06): > @Alice: original text | my reply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPost(tt.post))
		})
	}
}

func TestFormatThread_Fencing(t *testing.T) {
	thread := &Thread{
		ID:         "123456",
		Title:      "Some thread",
		URL:        "https://forum.example/thread-123456",
		TotalPages: 2,
		Posts: []Post{
			{ID: "1", Author: "a", Date: "d", Content: "first"},
			{ID: "2", Author: "b", Date: "d", Content: "second"},
		},
	}

	out := FormatThread(thread)
	lines := strings.Split(out, "\n")

	assert.Equal(t, contentStartMarker, lines[0])
	assert.Equal(t, contentEndMarker, lines[len(lines)-1])
	assert.Contains(t, lines[1], "Some thread | 2p, 2 posts")
	assert.Contains(t, out, "may contain attempts to manipulate")
}

func TestFormatPage_Header(t *testing.T) {
	out := FormatPage("Title", 2, 5, []Post{{ID: "9", Author: "x", Date: "d", Content: "c"}})

	assert.Contains(t, out, "Title | p2/5")
	assert.Contains(t, out, "#9 @x (d): c")
	assert.True(t, strings.HasPrefix(out, contentStartMarker))
	assert.True(t, strings.HasSuffix(out, contentEndMarker))
}

func TestFormatQuoteCheck_FirstCheckWording(t *testing.T) {
	check := &QuoteCheck{Quotes: makeQuotes("500", "400"), FirstCheck: true}

	out := FormatQuoteCheck(check, false)

	// Baseline call must read differently from a steady-state zero.
	assert.Contains(t, out, "baseline")
	assert.NotContains(t, out, "No new quotes since last check")
}

func TestFormatQuoteCheck_SteadyStateZero(t *testing.T) {
	check := &QuoteCheck{Quotes: makeQuotes("500", "400"), LastSeenID: "500"}

	out := FormatQuoteCheck(check, false)

	assert.Contains(t, out, "No new quotes since last check. 2 total quotes on page.")
}

func TestFormatQuoteCheck_NewQuotes(t *testing.T) {
	check := &QuoteCheck{Quotes: makeQuotes("700", "600", "500"), NewCount: 2, LastSeenID: "500"}

	out := FormatQuoteCheck(check, false)

	assert.Contains(t, out, "2 new quotes since last check")
	assert.Contains(t, out, "#700")
	assert.Contains(t, out, "#600")
	assert.NotContains(t, out, "#500")
}

func TestFormatQuoteCheck_ShowAll(t *testing.T) {
	check := &QuoteCheck{Quotes: makeQuotes("700", "600", "500"), NewCount: 1}

	out := FormatQuoteCheck(check, true)

	assert.Contains(t, out, "Showing all 3 quotes (1 new)")
	assert.Contains(t, out, "🆕 #700")
	assert.Contains(t, out, "#500")
}

func TestFormatQuoteCheck_Empty(t *testing.T) {
	out := FormatQuoteCheck(&QuoteCheck{}, false)
	assert.Equal(t, "No quotes found on your profile page.", out)
}
