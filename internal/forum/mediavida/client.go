package mediavida

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/sanitize"
	"github.com/jvidalv/lo-claude/internal/services/browser"
)

// BaseURL is the forum root.
const BaseURL = "https://www.mediavida.com"

// Thread links in search results end in a slug-number pair, e.g.
// /foro/off-topic/hilo-interesante-123456.
var threadLinkRe = regexp.MustCompile(`^/foro/[^/]+/[^/]+-(\d+)$`)

// Client bundles the Mediavida thread and search operations behind one
// authenticated session.
type Client struct {
	parser       *Parser
	session      *browser.Session
	orchestrator *forum.Orchestrator
	logger       arbor.ILogger
}

// NewClient creates a Mediavida client.
func NewClient(session *browser.Session, pageDelay time.Duration, logger arbor.ILogger) *Client {
	parser := NewParser()
	return &Client{
		parser:       parser,
		session:      session,
		orchestrator: forum.NewOrchestrator(parser, session, pageDelay, logger),
		logger:       logger,
	}
}

// GetThread fetches up to maxPages pages of a thread.
func (c *Client) GetThread(ctx context.Context, threadURL string, maxPages int) (*forum.Thread, error) {
	return c.orchestrator.GetThread(ctx, threadURL, maxPages)
}

// GetPage fetches a single thread page.
func (c *Client) GetPage(ctx context.Context, threadURL string, page int) (*forum.PageResult, error) {
	return c.orchestrator.GetPage(ctx, threadURL, page)
}

// Search runs the subforum search and returns the thread links found on
// the results page, in page order.
func (c *Client) Search(ctx context.Context, subforum, query string) ([]forum.SearchResult, error) {
	searchURL := fmt.Sprintf("%s/foro/%s/buscar?q=%s", BaseURL, url.PathEscape(subforum), url.QueryEscape(query))

	html, err := c.session.FetchHTML(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	return parseSearchResults(html)
}

func parseSearchResults(html string) ([]forum.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var results []forum.SearchResult
	seen := make(map[string]bool)

	doc.Find(`a[href^="/foro/"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		m := threadLinkRe.FindStringSubmatch(href)
		if m == nil || seen[m[1]] {
			return
		}
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}
		seen[m[1]] = true

		results = append(results, forum.SearchResult{
			ID:    m[1],
			Title: sanitize.Clean(title),
			URL:   BaseURL + href,
		})
	})

	return results, nil
}

// Invalidate drops cached session credentials.
func (c *Client) Invalidate() {
	c.session.Invalidate()
}
