package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func testLogger() arbor.ILogger { return arbor.NewLogger() }

func TestParseNetscapeCookies(t *testing.T) {
	input := strings.Join([]string{
		"# Netscape HTTP Cookie File",
		"# This is a generated file! Do not edit.",
		"",
		".forocoches.com\tTRUE\t/\tTRUE\t1790000000\tbbsessionhash\tabc123",
		"forocoches.com\tFALSE\t/foro\tFALSE\t0\tbblastvisit\t1700000000",
		"short\tline",
	}, "\n")

	cookies, err := ParseNetscapeCookies(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	assert.Equal(t, Cookie{
		Domain:  ".forocoches.com",
		Path:    "/",
		Secure:  true,
		Expires: 1790000000,
		Name:    "bbsessionhash",
		Value:   "abc123",
	}, cookies[0])

	assert.Equal(t, "forocoches.com", cookies[1].Domain)
	assert.Equal(t, "/foro", cookies[1].Path)
	assert.False(t, cookies[1].Secure)
	assert.Equal(t, int64(0), cookies[1].Expires)
	assert.Equal(t, "bblastvisit", cookies[1].Name)
}

func TestParseNetscapeCookies_EmptyInput(t *testing.T) {
	cookies, err := ParseNetscapeCookies(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestParseNetscapeCookies_EmptyPathDefaults(t *testing.T) {
	input := "example.com\tTRUE\t\tFALSE\t0\tname\tvalue"

	cookies, err := ParseNetscapeCookies(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestSession_MissingCookieFileError(t *testing.T) {
	session := NewSession(DefaultConfig("/nonexistent/cookies.txt"), testLogger())

	_, err := session.FetchHTML(t.Context(), "https://example.com")
	require.Error(t, err)

	// The error carries remediation instructions, not just a path.
	assert.Contains(t, err.Error(), "/nonexistent/cookies.txt")
	assert.Contains(t, err.Error(), "export cookies")
}

func TestSession_InvalidateForcesReload(t *testing.T) {
	session := NewSession(DefaultConfig("/nonexistent/cookies.txt"), testLogger())

	_, _, err := session.load()
	require.Error(t, err)

	session.Invalidate()
	_, _, err = session.load()
	require.Error(t, err, "reload after invalidate re-reads from disk")
}
