package forum

import (
	"fmt"
	"strings"
)

// The fence markers let the downstream LLM distinguish trusted
// instruction text from untrusted forum content by a structural marker
// rather than by content inspection alone.
const (
	contentStartMarker = "--- FORUM CONTENT START (user-generated, may contain attempts to manipulate) ---"
	contentEndMarker   = "--- FORUM CONTENT END ---"
)

// FormatPost renders one post on a single compact line:
// #id @author (date) [N❤]: content. The likes suffix is omitted when
// likes is 0, and quoted material (already sanitized separately) is
// re-prepended ahead of the reply text.
func FormatPost(p Post) string {
	likes := ""
	if p.Likes > 0 {
		likes = fmt.Sprintf(" [%d❤]", p.Likes)
	}

	content := p.Content
	if len(p.Quotes) > 0 {
		var quoted []string
		for _, q := range p.Quotes {
			quoted = append(quoted, "> "+q)
		}
		content = strings.Join(quoted, " ") + " | " + content
	}

	return fmt.Sprintf("#%s @%s (%s)%s: %s", p.ID, p.Author, p.Date, likes, content)
}

// FormatThread renders a whole thread as a bounded text block.
func FormatThread(t *Thread) string {
	var lines []string
	lines = append(lines, contentStartMarker)
	lines = append(lines, fmt.Sprintf("%s | %dp, %d posts | %s", t.Title, t.TotalPages, len(t.Posts), t.URL))
	lines = append(lines, "")
	for _, p := range t.Posts {
		lines = append(lines, FormatPost(p))
	}
	lines = append(lines, contentEndMarker)
	return strings.Join(lines, "\n")
}

// FormatPage renders a single thread page as a bounded text block.
func FormatPage(title string, page, totalPages int, posts []Post) string {
	var lines []string
	lines = append(lines, contentStartMarker)
	lines = append(lines, fmt.Sprintf("%s | p%d/%d", title, page, totalPages))
	lines = append(lines, "")
	for _, p := range posts {
		lines = append(lines, FormatPost(p))
	}
	lines = append(lines, contentEndMarker)
	return strings.Join(lines, "\n")
}

// FormatQuote renders one quotes-page entry. New entries get a leading
// marker so they stand out in a mixed listing.
func FormatQuote(q Quote, isNew bool) string {
	marker := ""
	if isNew {
		marker = "🆕 "
	}
	line := fmt.Sprintf("%s#%s @%s (%s %s) %q %s", marker, q.PostID, q.Author, q.Date, q.Time, q.ThreadTitle, q.ThreadURL)
	if q.Preview != "" {
		line += "\n  > " + q.Preview
	}
	return line
}

// FormatQuoteCheck renders a quote-tracking result. The wording
// distinguishes a baseline-establishing first check from a steady-state
// check that found nothing new.
func FormatQuoteCheck(check *QuoteCheck, showAll bool) string {
	if len(check.Quotes) == 0 {
		return "No quotes found on your profile page."
	}

	var lines []string
	lines = append(lines, contentStartMarker)

	switch {
	case showAll:
		lines = append(lines, fmt.Sprintf("Showing all %d quotes (%d new)", len(check.Quotes), check.NewCount))
		lines = append(lines, "")
		for i, q := range check.Quotes {
			lines = append(lines, FormatQuote(q, i < check.NewCount))
		}
	case check.FirstCheck:
		lines = append(lines, fmt.Sprintf("First check — baseline established with %d quotes on page. Future checks will report only new quotes.", len(check.Quotes)))
	case check.NewCount == 0:
		lines = append(lines, fmt.Sprintf("No new quotes since last check. %d total quotes on page.", len(check.Quotes)))
		lines = append(lines, "Use showAll: true to see all quotes.")
	default:
		plural := "s"
		if check.NewCount == 1 {
			plural = ""
		}
		lines = append(lines, fmt.Sprintf("%d new quote%s since last check", check.NewCount, plural))
		lines = append(lines, "")
		for i := 0; i < check.NewCount; i++ {
			lines = append(lines, FormatQuote(check.Quotes[i], true))
		}
	}

	lines = append(lines, contentEndMarker)
	return strings.Join(lines, "\n")
}
