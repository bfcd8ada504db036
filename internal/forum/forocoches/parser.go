// -----------------------------------------------------------------------
// Forocoches thread parser (vBulletin markup). Heuristic extraction over
// uncontrolled HTML: every field degrades to a documented default and
// parsing never fails.
// -----------------------------------------------------------------------

package forocoches

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/htmlutil"
	"github.com/jvidalv/lo-claude/internal/sanitize"
)

var (
	titleRe       = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)
	titleSuffixRe = regexp.MustCompile(`(?i)\s*-\s*ForoCoches.*$`)
	pageNavRe     = regexp.MustCompile(`(?i)Page\s+\d+\s+of\s+(\d+)`)
	postOpenRe    = regexp.MustCompile(`<!-- post #(\d+) -->`)
	authorRe      = regexp.MustCompile(`(?i)<a[^>]*class="bigusername"[^>]*>([^<]+)</a>`)
	authorIDRe    = regexp.MustCompile(`(?i)member\.php\?u=(\d+)`)

	// Date heuristics, tried in this fixed order: absolute date with
	// time, relative day ("Hoy"/"Ayer") with time, bare long date.
	dateAbsRe  = regexp.MustCompile(`(?i)(\d{1,2}-\w{3}-\d{4}),?\s*(\d{1,2}:\d{2})`)
	dateRelRe  = regexp.MustCompile(`(?i)(Hoy|Ayer|Today|Yesterday),?\s*(\d{1,2}:\d{2})`)
	dateLongRe = regexp.MustCompile(`(?i)(\d{1,2}\s+\w+\s+\d{4})`)

	// Quote containers: <div style="margin:20px ..."> ... <table> with a
	// "Cita de <b>author</b>" header and an italic div holding the
	// quoted text.
	quoteBlockRe  = regexp.MustCompile(`(?is)<div[^>]*style="margin:20px[^"]*"[^>]*>.*?</table>\s*</div>`)
	quoteAuthorRe = regexp.MustCompile(`(?i)Cita de\s+<b>([^<]+)</b>`)
	quoteTextRe   = regexp.MustCompile(`(?is)<div[^>]*style="font-style:italic"[^>]*>(.*?)</div>`)

	urlNumberRe = regexp.MustCompile(`(\d+)`)
)

// Parser implements forum.Parser for Forocoches.
type Parser struct{}

// NewParser returns the Forocoches page parser.
func NewParser() *Parser { return &Parser{} }

// ParsePage extracts posts from one vBulletin thread page. Post blocks
// are delimited by the <!-- post #ID --> / <!-- / post #ID --> comment
// pair; segments without an extractable id are discarded.
func (p *Parser) ParsePage(html string, pageNumber int) forum.PageResult {
	result := forum.PageResult{TotalPages: 1, Title: "Unknown"}

	if m := titleRe.FindStringSubmatch(html); m != nil {
		title := strings.TrimSpace(m[1])
		title = strings.TrimSpace(titleSuffixRe.ReplaceAllString(title, ""))
		if title != "" {
			result.Title = title
		}
	}
	result.Title = sanitize.Clean(result.Title)

	if m := pageNavRe.FindStringSubmatch(html); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			result.TotalPages = n
		}
	}

	for _, m := range postOpenRe.FindAllStringSubmatchIndex(html, -1) {
		postID := html[m[2]:m[3]]
		closeMarker := "<!-- / post #" + postID + " -->"
		closeIdx := strings.Index(html[m[1]:], closeMarker)
		if closeIdx == -1 {
			continue
		}
		block := html[m[1] : m[1]+closeIdx]

		result.Posts = append(result.Posts, p.parsePost(html, block, postID, pageNumber))
	}

	return result
}

// parsePost extracts one post. The message body is pulled from the full
// page HTML via the balanced block extractor, since the post_message div
// contains nested divs (quotes) that slice-local regexes truncate on.
func (p *Parser) parsePost(pageHTML, block, postID string, pageNumber int) forum.Post {
	author := "Unknown"
	if m := authorRe.FindStringSubmatch(block); m != nil {
		author = strings.TrimSpace(m[1])
	}

	authorID := "0"
	if m := authorIDRe.FindStringSubmatch(block); m != nil {
		authorID = m[1]
	}

	date := ""
	if m := dateAbsRe.FindString(block); m != "" {
		date = strings.TrimSpace(m)
	} else if m := dateRelRe.FindString(block); m != "" {
		date = strings.TrimSpace(m)
	} else if m := dateLongRe.FindString(block); m != "" {
		date = strings.TrimSpace(m)
	}

	messageHTML := htmlutil.ExtractBalancedBlock(pageHTML, `id="post_message_`+postID+`"`)

	var quotes []string
	for _, qBlock := range quoteBlockRe.FindAllString(messageHTML, -1) {
		quoteAuthor := ""
		if m := quoteAuthorRe.FindStringSubmatch(qBlock); m != nil {
			quoteAuthor = strings.TrimSpace(m[1])
		}
		quoteText := ""
		if m := quoteTextRe.FindStringSubmatch(qBlock); m != nil {
			quoteText = htmlutil.StripTags(m[1])
		} else {
			quoteText = htmlutil.StripTags(qBlock)
		}
		if quoteAuthor != "" {
			quotes = append(quotes, sanitize.Clean("@"+quoteAuthor+": "+quoteText))
		} else {
			quotes = append(quotes, sanitize.Clean(quoteText))
		}
	}

	// Excise quote blocks so content holds only the reply text.
	replyHTML := quoteBlockRe.ReplaceAllString(messageHTML, "")
	content := sanitize.Clean(htmlutil.StripTags(replyHTML))

	return forum.Post{
		ID:         postID,
		Author:     sanitize.Clean(author),
		AuthorID:   authorID,
		Date:       date,
		Content:    content,
		Quotes:     quotes,
		Likes:      0, // no like feature on this forum
		PageNumber: pageNumber,
	}
}

// BuildPageURL sets the page query parameter (omitted for page 1) and
// strips any fragment.
func (p *Parser) BuildPageURL(threadURL string, page int) string {
	u, err := url.Parse(threadURL)
	if err != nil {
		return threadURL
	}
	u.Fragment = ""
	if page > 1 {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ExtractThreadID reads the t= query parameter; falls back to the p=
// post-id parameter prefixed with "p", then to the first number found
// anywhere in the URL.
func (p *Parser) ExtractThreadID(threadURL string) string {
	u, err := url.Parse(threadURL)
	if err == nil {
		if t := u.Query().Get("t"); t != "" {
			return t
		}
		if post := u.Query().Get("p"); post != "" {
			return "p" + post
		}
	}
	if m := urlNumberRe.FindString(threadURL); m != "" {
		return m
	}
	return ""
}
