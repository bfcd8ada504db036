// -----------------------------------------------------------------------
// Authenticated browser session - cookie-authenticated chromedp fetches
// against the forums. Each page fetch opens and tears down one browser
// to reduce anti-bot fingerprinting (cost over speed, on purpose).
// -----------------------------------------------------------------------

package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
)

// DefaultUserAgent mimics Chrome on macOS; overridable via the
// user-agent file.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36"

// Config holds session configuration for one forum site.
type Config struct {
	// CookiesPath points to the exported cookie file. Required.
	CookiesPath string

	// UserAgentPath points to an optional user-agent override file.
	UserAgentPath string

	// PageTimeout bounds a single page navigation.
	PageTimeout time.Duration

	// SubmitTimeout bounds the navigation following a form submit.
	// vBulletin redirects can be slow, so this is longer and a timeout
	// here is non-fatal.
	SubmitTimeout time.Duration

	// Headless runs Chrome headless (default true).
	Headless bool
}

// DefaultConfig returns session defaults for the given cookie file.
func DefaultConfig(cookiesPath string) Config {
	return Config{
		CookiesPath:   cookiesPath,
		PageTimeout:   30 * time.Second,
		SubmitTimeout: 60 * time.Second,
		Headless:      true,
	}
}

// Session is a cookie-authenticated browser session for one forum.
// Cookies and user agent are read once and cached until Invalidate.
type Session struct {
	config Config
	logger arbor.ILogger

	mu        sync.Mutex
	cookies   []Cookie
	userAgent string
	loaded    bool
}

// NewSession creates a session; credentials are loaded lazily on first
// use.
func NewSession(config Config, logger arbor.ILogger) *Session {
	if config.PageTimeout <= 0 {
		config.PageTimeout = 30 * time.Second
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = 60 * time.Second
	}
	return &Session{config: config, logger: logger}
}

// Invalidate drops the cached cookies and user agent so the next call
// re-reads them from disk.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = nil
	s.userAgent = ""
	s.loaded = false
}

// load reads the cookie and user-agent files once per process.
func (s *Session) load() ([]Cookie, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cookies, s.userAgent, nil
	}

	f, err := os.Open(s.config.CookiesPath)
	if err != nil {
		return nil, "", fmt.Errorf("cookies file not found: %s\n"+
			"Please export cookies from your browser:\n"+
			"1. Install the \"Get cookies.txt LOCALLY\" extension\n"+
			"2. Log in to the forum in your browser\n"+
			"3. Export cookies and save them to the path above", s.config.CookiesPath)
	}
	defer f.Close()

	cookies, err := ParseNetscapeCookies(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse cookies file %s: %w", s.config.CookiesPath, err)
	}

	userAgent := DefaultUserAgent
	if s.config.UserAgentPath != "" {
		if data, err := os.ReadFile(s.config.UserAgentPath); err == nil {
			if ua := strings.TrimSpace(string(data)); ua != "" {
				userAgent = ua
			}
		}
	}

	s.cookies = cookies
	s.userAgent = userAgent
	s.loaded = true

	s.logger.Debug().
		Int("cookie_count", len(cookies)).
		Str("cookies_path", s.config.CookiesPath).
		Msg("Session credentials loaded")

	return cookies, userAgent, nil
}

// newBrowser creates a fresh allocator and browser context. The caller
// must invoke both cancel funcs.
func (s *Session) newBrowser(ctx context.Context, userAgent string) (context.Context, context.CancelFunc, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.UserAgent(userAgent),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.config.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, browserCancel, allocCancel
}

// injectCookies sets the session cookies in the browser via the CDP
// network domain.
func (s *Session) injectCookies(ctx context.Context, cookies []Cookie) error {
	if err := chromedp.Run(ctx, network.Enable()); err != nil {
		return fmt.Errorf("failed to enable network domain: %w", err)
	}

	return chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			// ChromeDP rejects the leading dot on exported domains.
			domain := strings.TrimPrefix(c.Domain, ".")

			action := network.SetCookie(c.Name, c.Value).
				WithDomain(domain).
				WithPath(c.Path).
				WithSecure(c.Secure).
				WithSameSite(network.CookieSameSiteLax)

			if c.Expires > 0 {
				expiresTime := time.Unix(c.Expires, 0)
				if expiresTime.After(time.Now()) {
					expires := cdp.TimeSinceEpoch(expiresTime)
					action = action.WithExpires(&expires)
				}
			}

			if err := action.Do(ctx); err != nil {
				s.logger.Warn().Err(err).Str("cookie", c.Name).Msg("Failed to inject cookie")
				// Keep going; one bad cookie should not sink the fetch.
			}
		}
		return nil
	}))
}

// FetchHTML fetches one fully rendered page as HTML through a fresh
// authenticated browser.
func (s *Session) FetchHTML(ctx context.Context, url string) (string, error) {
	cookies, userAgent, err := s.load()
	if err != nil {
		return "", err
	}

	fetchID := uuid.NewString()
	s.logger.Debug().Str("fetch_id", fetchID).Str("url", url).Msg("Fetching page")

	browserCtx, browserCancel, allocCancel := s.newBrowser(ctx, userAgent)
	defer allocCancel()
	defer browserCancel()

	if err := s.injectCookies(browserCtx, cookies); err != nil {
		return "", err
	}

	navCtx, cancel := context.WithTimeout(browserCtx, s.config.PageTimeout)
	defer cancel()

	var html string
	err = chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("navigation failed for %s: %w", url, err)
	}

	s.logger.Debug().Str("fetch_id", fetchID).Int("content_size", len(html)).Msg("Page fetched")
	return html, nil
}

// FormSubmission describes a navigate-fill-submit flow.
type FormSubmission struct {
	// URL is the page holding the form.
	URL string

	// FollowLinkSelector, when non-empty, names a link to follow before
	// interacting with the form (e.g. the "last page" pagination link,
	// where the quick-reply form lives). Absence of the link is not an
	// error.
	FollowLinkSelector string

	// WaitSelector must become visible before the form is touched.
	WaitSelector string

	// Fields maps CSS selectors to the values to set.
	Fields map[string]string

	// SubmitSelector is clicked to submit.
	SubmitSelector string

	// ErrorSelector identifies the error panel to inspect after
	// submission.
	ErrorSelector string
}

// FormResult reports the observed outcome of a form submission.
type FormResult struct {
	FinalURL  string
	ErrorText string
}

// Submit runs a form submission flow. A navigation timeout immediately
// after the submit click is swallowed rather than surfaced: vBulletin
// often posts successfully but redirects slowly, so the resulting page
// is inspected for an error marker instead. A stale error selector can
// therefore misreport a real failure as success; that ambiguity is
// retained on purpose.
func (s *Session) Submit(ctx context.Context, form FormSubmission) (*FormResult, error) {
	cookies, userAgent, err := s.load()
	if err != nil {
		return nil, err
	}

	browserCtx, browserCancel, allocCancel := s.newBrowser(ctx, userAgent)
	defer allocCancel()
	defer browserCancel()

	if err := s.injectCookies(browserCtx, cookies); err != nil {
		return nil, err
	}

	navCtx, navCancel := context.WithTimeout(browserCtx, s.config.PageTimeout)
	defer navCancel()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(form.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("navigation failed for %s: %w", form.URL, err)
	}

	if form.FollowLinkSelector != "" {
		var href string
		err := chromedp.Run(navCtx, chromedp.Evaluate(
			fmt.Sprintf(`document.querySelector(%q)?.href || ""`, form.FollowLinkSelector), &href))
		if err == nil && href != "" {
			if err := chromedp.Run(navCtx,
				chromedp.Navigate(href),
				chromedp.WaitReady("body", chromedp.ByQuery),
			); err != nil {
				return nil, fmt.Errorf("navigation to %s failed: %w", href, err)
			}
		}
	}

	fillActions := []chromedp.Action{
		chromedp.WaitVisible(form.WaitSelector, chromedp.ByQuery),
	}
	for selector, value := range form.Fields {
		fillActions = append(fillActions, chromedp.SetValue(selector, value, chromedp.ByQuery))
	}
	if err := chromedp.Run(navCtx, fillActions...); err != nil {
		return nil, fmt.Errorf("form fill failed: %w", err)
	}

	// Submit and wait out the redirect under the longer timeout.
	submitCtx, submitCancel := context.WithTimeout(browserCtx, s.config.SubmitTimeout)
	defer submitCancel()

	err = chromedp.Run(submitCtx,
		chromedp.Click(form.SubmitSelector, chromedp.ByQuery),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("form submit failed: %w", err)
	}
	if err != nil {
		s.logger.Warn().Str("url", form.URL).Msg("Navigation timed out after submit; verifying page state")
	}

	result := &FormResult{}
	inspectCtx, inspectCancel := context.WithTimeout(browserCtx, 10*time.Second)
	defer inspectCancel()

	if err := chromedp.Run(inspectCtx, chromedp.Location(&result.FinalURL)); err != nil {
		return nil, fmt.Errorf("failed to read final URL: %w", err)
	}

	if form.ErrorSelector != "" {
		var errorText string
		if err := chromedp.Run(inspectCtx, chromedp.Evaluate(
			fmt.Sprintf(`document.querySelector(%q)?.textContent?.trim() || ""`, form.ErrorSelector), &errorText)); err == nil {
			result.ErrorText = errorText
		}
	}

	return result, nil
}
