package forocoches

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/interfaces"
	"github.com/jvidalv/lo-claude/internal/services/browser"
)

// BaseURL is the forum root.
const BaseURL = "https://forocoches.com"

// signature is appended to outgoing posts, as BBCode.
const signature = "\n\n[size=1][img]https://claude.ai/favicon.ico[/img] Posted using [url=https://github.com/jvidalv/lo-claude]lo-claude[/url][/size]"

// vBulletin selectors for the quick-reply and edit forms.
const (
	lastPageLinkSelector = `.pagenav a[title="Last Page"]`
	quickReplySelector   = "#vB_Editor_QR_textarea"
	quickSubmitSelector  = "#qr_submit"
	editTextareaSelector = "#vB_Editor_001_textarea"
	editReasonSelector   = `input[name="reason"]`
	editSubmitSelector   = `input[name="sbutton"]`
	errorPanelSelector   = ".panel .blockrow.error, .standard_error"
)

// Client bundles the Forocoches thread, posting, and quote-tracking
// operations behind one authenticated session.
type Client struct {
	parser       *Parser
	session      *browser.Session
	orchestrator *forum.Orchestrator
	tracker      *forum.QuoteTracker
	logger       arbor.ILogger
}

// NewClient creates a Forocoches client.
func NewClient(session *browser.Session, cursors interfaces.CursorStorage, pageDelay time.Duration, logger arbor.ILogger) *Client {
	parser := NewParser()
	return &Client{
		parser:       parser,
		session:      session,
		orchestrator: forum.NewOrchestrator(parser, session, pageDelay, logger),
		tracker:      forum.NewQuoteTracker(cursors, logger),
		logger:       logger,
	}
}

// GetThread fetches up to maxPages pages of a thread.
func (c *Client) GetThread(ctx context.Context, url string, maxPages int) (*forum.Thread, error) {
	return c.orchestrator.GetThread(ctx, url, maxPages)
}

// GetPage fetches a single thread page.
func (c *Client) GetPage(ctx context.Context, url string, page int) (*forum.PageResult, error) {
	return c.orchestrator.GetPage(ctx, url, page)
}

// PostReply posts a reply via the quick-reply form on the thread's last
// page. BBCode formatting is passed through as-is.
func (c *Client) PostReply(ctx context.Context, threadURL, message string) (string, error) {
	result, err := c.session.Submit(ctx, browser.FormSubmission{
		URL:                threadURL,
		FollowLinkSelector: lastPageLinkSelector,
		WaitSelector:       quickReplySelector,
		Fields: map[string]string{
			quickReplySelector: message + signature,
		},
		SubmitSelector: quickSubmitSelector,
		ErrorSelector:  errorPanelSelector,
	})
	if err != nil {
		return "", err
	}
	if result.ErrorText != "" {
		return "", fmt.Errorf("forum rejected the reply: %s", result.ErrorText)
	}
	return result.FinalURL, nil
}

// EditPost replaces the body of an existing post (own posts only).
func (c *Client) EditPost(ctx context.Context, postID, newMessage, reason string) (string, error) {
	fields := map[string]string{
		editTextareaSelector: newMessage + signature,
	}
	if reason != "" {
		fields[editReasonSelector] = reason
	}

	result, err := c.session.Submit(ctx, browser.FormSubmission{
		URL:            fmt.Sprintf("%s/foro/editpost.php?do=editpost&p=%s", BaseURL, postID),
		WaitSelector:   editTextareaSelector,
		Fields:         fields,
		SubmitSelector: editSubmitSelector,
		ErrorSelector:  errorPanelSelector,
	})
	if err != nil {
		return "", err
	}
	if result.ErrorText != "" {
		return "", fmt.Errorf("forum rejected the edit: %s", result.ErrorText)
	}
	if result.FinalURL == "" {
		result.FinalURL = fmt.Sprintf("%s/foro/showthread.php?p=%s#post%s", BaseURL, postID, postID)
	}
	return result.FinalURL, nil
}

// GetQuotes fetches the profile quotes page and classifies entries as
// new vs already seen via the persisted per-URL cursor.
func (c *Client) GetQuotes(ctx context.Context, profileURL string) (*forum.QuoteCheck, error) {
	html, err := c.session.FetchHTML(ctx, profileURL)
	if err != nil {
		return nil, err
	}

	quotes, err := ParseQuotesPage(html)
	if err != nil {
		return nil, err
	}

	return c.tracker.Classify(ctx, profileURL, quotes)
}

// Invalidate drops cached session credentials.
func (c *Client) Invalidate() {
	c.session.Invalidate()
}
