package forocoches

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/sanitize"
)

var (
	quotePostIDRe = regexp.MustCompile(`showthread\.php\?p=(\d+)`)
	quoteDateRe   = regexp.MustCompile(`(?i)(\d{1,2}-\w{3}-\d{4}|Hoy|Ayer|Today|Yesterday)[,\s]+(\d{1,2}:\d{2})`)
)

const previewMaxLen = 160

// ParseQuotesPage extracts the quote/mention entries from a profile
// quotes tab. Entries are listed newest first by the forum; that order
// is preserved. Entries without a resolvable post link are skipped.
func ParseQuotesPage(html string) ([]forum.Quote, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse quotes page: %w", err)
	}

	var quotes []forum.Quote
	seen := make(map[string]bool)

	doc.Find(`a[href*="showthread.php?p="]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		m := quotePostIDRe.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}

		// The enclosing list item or table row carries the rest of the
		// entry: author link, date text, preview.
		entry := link.Closest("li, tr, .quote-entry")
		if entry.Length() == 0 {
			return
		}
		seen[m[1]] = true

		quote := forum.Quote{
			PostID:      m[1],
			Author:      "Unknown",
			ThreadTitle: sanitize.Clean(strings.TrimSpace(link.Text())),
			ThreadURL:   absoluteURL(href),
		}

		if author := entry.Find(`a[href*="member.php?u="]`).First(); author.Length() > 0 {
			if name := strings.TrimSpace(author.Text()); name != "" {
				quote.Author = name
			}
		}
		quote.Author = sanitize.Clean(quote.Author)

		if m := quoteDateRe.FindStringSubmatch(entry.Text()); m != nil {
			quote.Date = m[1]
			quote.Time = m[2]
		}

		if preview := entry.Find(".quote-preview, .alt2, blockquote").First(); preview.Length() > 0 {
			quote.Preview = sanitize.Clean(truncate(strings.TrimSpace(preview.Text()), previewMaxLen))
		}

		quotes = append(quotes, quote)
	})

	return quotes, nil
}

func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return BaseURL + href
	}
	return BaseURL + "/foro/" + href
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
