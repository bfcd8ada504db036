// -----------------------------------------------------------------------
// Mail Service - IMAP email search and retrieval
// Each call opens a fresh connection; nothing is cached between calls.
// -----------------------------------------------------------------------

package mail

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/common"
	"github.com/jvidalv/lo-claude/internal/sanitize"
)

// DefaultSearchLimit caps how many messages one search returns.
const DefaultSearchLimit = 20

// Email represents a fetched email message
type Email struct {
	ID      uint32
	From    string
	Subject string
	Body    string
	Date    time.Time
}

// SearchQuery narrows a mailbox search. Empty fields are ignored; all
// present fields must match.
type SearchQuery struct {
	From    string
	Subject string
	Text    string
	Limit   int
}

// Service provides email reading over the configured IMAP account
type Service struct {
	config common.MailConfig
	logger arbor.ILogger
}

// NewService creates a new mail service
func NewService(config common.MailConfig, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// IsConfigured checks if the minimum IMAP settings are present
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

func (s *Service) connect() (*client.Client, error) {
	if !s.IsConfigured() {
		return nil, fmt.Errorf("mail not configured: set mail host, username and password in the config file")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	c, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server %s: %w", addr, err)
	}

	if err := c.Login(s.config.Username, s.config.Password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	return c, nil
}

func (s *Service) mailbox() string {
	if s.config.Mailbox != "" {
		return s.config.Mailbox
	}
	return "INBOX"
}

// Search finds messages matching the query, newest first, envelope only
// (bodies are fetched separately via Get).
func (s *Service) Search(ctx context.Context, query SearchQuery) ([]Email, error) {
	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	mbox, err := c.Select(s.mailbox(), true)
	if err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", s.mailbox(), err)
	}
	if mbox.Messages == 0 {
		return []Email{}, nil
	}

	criteria := imap.NewSearchCriteria()
	if query.From != "" {
		criteria.Header.Add("From", query.From)
	}
	if query.Subject != "" {
		criteria.Header.Add("Subject", query.Subject)
	}
	if query.Text != "" {
		criteria.Text = []string{query.Text}
	}

	seqNums, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("mailbox search failed: %w", err)
	}
	if len(seqNums) == 0 {
		return []Email{}, nil
	}

	limit := query.Limit
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}
	// Search results come back oldest first; keep the newest ones.
	if len(seqNums) > limit {
		seqNums = seqNums[len(seqNums)-limit:]
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)

	messages := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, []imap.FetchItem{imap.FetchEnvelope}, messages)
	}()

	var emails []Email
	for msg := range messages {
		if msg == nil || msg.Envelope == nil {
			continue
		}
		emails = append(emails, Email{
			ID:      msg.SeqNum,
			From:    envelopeFrom(msg.Envelope),
			Subject: sanitize.Clean(msg.Envelope.Subject),
			Date:    msg.Envelope.Date,
		})
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	// Newest first.
	for i, j := 0, len(emails)-1; i < j; i, j = i+1, j-1 {
		emails[i], emails[j] = emails[j], emails[i]
	}

	return emails, nil
}

// Get fetches one message with its body rendered to readable text
func (s *Service) Get(ctx context.Context, seqNum uint32) (*Email, error) {
	c, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer c.Logout()

	if _, err := c.Select(s.mailbox(), true); err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", s.mailbox(), err)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNum)
	section := &imap.BodySectionName{}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}, messages)
	}()

	var email *Email
	for msg := range messages {
		if msg == nil || msg.Envelope == nil {
			continue
		}

		body, err := parseMessageBody(msg, section)
		if err != nil {
			s.logger.Warn().Err(err).Int64("seq", int64(msg.SeqNum)).Msg("Failed to parse message body")
			body = ""
		}

		email = &Email{
			ID:      msg.SeqNum,
			From:    envelopeFrom(msg.Envelope),
			Subject: sanitize.Clean(msg.Envelope.Subject),
			Body:    sanitize.Clean(body),
			Date:    msg.Envelope.Date,
		}
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %d: %w", seqNum, err)
	}
	if email == nil {
		return nil, fmt.Errorf("message %d not found in %s", seqNum, s.mailbox())
	}

	return email, nil
}

func envelopeFrom(envelope *imap.Envelope) string {
	if len(envelope.From) > 0 {
		return envelope.From[0].Address()
	}
	return ""
}

// parseMessageBody extracts a readable text body from an IMAP message.
// Plain text parts win; an HTML-only message is converted to markdown.
func parseMessageBody(msg *imap.Message, section *imap.BodySectionName) (string, error) {
	r := msg.GetBody(section)
	if r == nil {
		return "", fmt.Errorf("no body section")
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to create mail reader: %w", err)
	}

	var plain, html string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read next part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		switch {
		case strings.HasPrefix(contentType, "text/plain") && plain == "":
			b, err := io.ReadAll(p.Body)
			if err != nil {
				return "", fmt.Errorf("failed to read body: %w", err)
			}
			plain = string(b)
		case strings.HasPrefix(contentType, "text/html") && html == "":
			b, err := io.ReadAll(p.Body)
			if err != nil {
				return "", fmt.Errorf("failed to read body: %w", err)
			}
			html = string(b)
		}
	}

	if plain != "" {
		return strings.TrimSpace(plain), nil
	}
	if html != "" {
		return htmlToText(html)
	}
	return "", nil
}

func htmlToText(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML body: %w", err)
	}
	return strings.TrimSpace(text), nil
}
