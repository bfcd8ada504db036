// -----------------------------------------------------------------------
// Mediavida thread parser. Same heuristic contract as the Forocoches
// one, over a different grammar: posts are keyed by id="post-N"
// attributes, dates come from unix data-time attributes, quotes live in
// blockquote elements.
// -----------------------------------------------------------------------

package mediavida

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/htmlutil"
	"github.com/jvidalv/lo-claude/internal/sanitize"
)

var (
	threadTitleRe = regexp.MustCompile(`(?i)<h1[^>]*class="[^"]*thread-title[^"]*"[^>]*>([^<]+)</h1>`)
	pageTitleRe   = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)
	titleSuffixRe = regexp.MustCompile(`(?i)\s*-\s*Mediavida.*$`)

	// Pagination: total is the highest number among the page links and
	// the current-page span inside <ul class="pg">.
	pagBlockRe   = regexp.MustCompile(`(?is)<ul[^>]*class="pg"[^>]*>(.*?)</ul>`)
	pagLinkRe    = regexp.MustCompile(`(?i)<a[^>]*>(\d+)</a>`)
	pagCurrentRe = regexp.MustCompile(`(?i)<span[^>]*class="current"[^>]*>(\d+)</span>`)

	postIDRe = regexp.MustCompile(`id="post-(\d+)"`)

	authorAttrRe  = regexp.MustCompile(`(?i)data-autor="([^"]+)"`)
	authorClassRe = regexp.MustCompile(`(?i)class="autor[^"]*"[^>]*>([^<]+)<`)
	authorIDRe    = regexp.MustCompile(`(?i)data-id="(\d+)"`)
	authorHrefRe  = regexp.MustCompile(`(?i)/id/(\d+)`)
	dateTimeRe    = regexp.MustCompile(`(?i)data-time="(\d+)"`)

	quoteBlockRe = regexp.MustCompile(`(?is)<blockquote[^>]*class="[^"]*quote[^"]*"[^>]*>(.*?)</blockquote>`)

	likesMolaRe  = regexp.MustCompile(`(?is)class="[^"]*btnmola[^"]*"[^>]*>.*?<span>(\d+)</span>`)
	likesVotesRe = regexp.MustCompile(`(?i)class="numvotes"[^>]*>(\d+)<`)
	likesAttrRe  = regexp.MustCompile(`(?i)data-likes="(\d+)"`)

	trailingNumberRe = regexp.MustCompile(`\s*\d+$`)

	threadIDRe = regexp.MustCompile(`(\d+)(?:\?|#|$)`)
)

// Short Spanish month names as the forum renders dates.
var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// formatSpanishDate renders a unix timestamp the way the forum displays
// post dates, e.g. "2 ene 2026".
func formatSpanishDate(unix int64) string {
	t := time.Unix(unix, 0).UTC()
	return fmt.Sprintf("%d %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// Parser implements forum.Parser for Mediavida.
type Parser struct{}

// NewParser returns the Mediavida page parser.
func NewParser() *Parser { return &Parser{} }

// ParsePage extracts posts from one thread page. Posts are segmented by
// the id="post-N" attribute; each segment runs until the next post id or
// the end of the page.
func (p *Parser) ParsePage(html string, pageNumber int) forum.PageResult {
	result := forum.PageResult{TotalPages: 1, Title: "Unknown"}

	if m := threadTitleRe.FindStringSubmatch(html); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			result.Title = title
		}
	} else if m := pageTitleRe.FindStringSubmatch(html); m != nil {
		title := strings.TrimSpace(titleSuffixRe.ReplaceAllString(m[1], ""))
		if title != "" {
			result.Title = title
		}
	}
	result.Title = sanitize.Clean(result.Title)

	if n := parseTotalPages(html); n > 1 {
		result.TotalPages = n
	}

	markers := postIDRe.FindAllStringSubmatchIndex(html, -1)
	for i, m := range markers {
		postID := html[m[2]:m[3]]
		end := len(html)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		segment := html[m[1]:end]

		result.Posts = append(result.Posts, parsePost(segment, postID, pageNumber))
	}

	return result
}

func parseTotalPages(html string) int {
	m := pagBlockRe.FindStringSubmatch(html)
	if m == nil {
		return 1
	}

	max := 1
	for _, link := range pagLinkRe.FindAllStringSubmatch(m[1], -1) {
		if n, err := strconv.Atoi(link[1]); err == nil && n > max {
			max = n
		}
	}
	if cur := pagCurrentRe.FindStringSubmatch(m[1]); cur != nil {
		if n, err := strconv.Atoi(cur[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

func parsePost(segment, postID string, pageNumber int) forum.Post {
	author := "Unknown"
	if m := authorAttrRe.FindStringSubmatch(segment); m != nil {
		author = strings.TrimSpace(m[1])
	} else if m := authorClassRe.FindStringSubmatch(segment); m != nil {
		author = strings.TrimSpace(m[1])
	}

	authorID := "0"
	if m := authorIDRe.FindStringSubmatch(segment); m != nil {
		authorID = m[1]
	} else if m := authorHrefRe.FindStringSubmatch(segment); m != nil {
		authorID = m[1]
	}

	date := ""
	if m := dateTimeRe.FindStringSubmatch(segment); m != nil {
		if unix, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			date = formatSpanishDate(unix)
		}
	}

	bodyHTML := htmlutil.ExtractBalancedBlock(segment, `class="post-contents`)

	var quotes []string
	for _, q := range quoteBlockRe.FindAllStringSubmatch(bodyHTML, -1) {
		if text := htmlutil.StripTags(q[1]); text != "" {
			quotes = append(quotes, sanitize.Clean(text))
		}
	}

	// Excise quote blocks so content holds only the reply text. The
	// vote counter renders inside the body as a bare trailing number;
	// strip it so it does not leak into the text.
	replyHTML := quoteBlockRe.ReplaceAllString(bodyHTML, "")
	content := htmlutil.StripTags(replyHTML)
	content = strings.TrimSpace(trailingNumberRe.ReplaceAllString(content, ""))
	content = sanitize.Clean(content)

	likes := 0
	if m := likesMolaRe.FindStringSubmatch(segment); m != nil {
		likes, _ = strconv.Atoi(m[1])
	} else if m := likesVotesRe.FindStringSubmatch(segment); m != nil {
		likes, _ = strconv.Atoi(m[1])
	} else if m := likesAttrRe.FindStringSubmatch(segment); m != nil {
		likes, _ = strconv.Atoi(m[1])
	}

	return forum.Post{
		ID:         postID,
		Author:     sanitize.Clean(author),
		AuthorID:   authorID,
		Date:       date,
		Content:    content,
		Quotes:     quotes,
		Likes:      likes,
		PageNumber: pageNumber,
	}
}

// BuildPageURL appends the page as a path segment; page 1 is the thread
// URL itself.
func (p *Parser) BuildPageURL(threadURL string, page int) string {
	if page <= 1 {
		return threadURL
	}
	return strings.TrimRight(threadURL, "/") + "/" + strconv.Itoa(page)
}

// ExtractThreadID reads the trailing numeric run before a query string,
// fragment or the end of the URL.
func (p *Parser) ExtractThreadID(threadURL string) string {
	if m := threadIDRe.FindStringSubmatch(threadURL); m != nil {
		return m[1]
	}
	return ""
}
