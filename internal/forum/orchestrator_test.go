package forum

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// fakeParser reports a fixed total page count and one post per page.
type fakeParser struct {
	totalPages int
}

func (p *fakeParser) ParsePage(html string, pageNumber int) PageResult {
	return PageResult{
		Posts: []Post{{
			ID:         fmt.Sprintf("%d01", pageNumber),
			Author:     "tester",
			Content:    html,
			PageNumber: pageNumber,
		}},
		TotalPages: p.totalPages,
		Title:      "Test thread",
	}
}

func (p *fakeParser) BuildPageURL(threadURL string, page int) string {
	if page > 1 {
		return fmt.Sprintf("%s/%d", threadURL, page)
	}
	return threadURL
}

func (p *fakeParser) ExtractThreadID(threadURL string) string { return "123456" }

// fakeFetcher records requested URLs and can fail on a specific page.
type fakeFetcher struct {
	requested []string
	failOn    string
}

func (f *fakeFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	f.requested = append(f.requested, url)
	if f.failOn != "" && url == f.failOn {
		return "", fmt.Errorf("navigation failed: %s", url)
	}
	return "<html>" + url + "</html>", nil
}

func newTestOrchestrator(parser Parser, fetcher Fetcher) *Orchestrator {
	return NewOrchestrator(parser, fetcher, time.Millisecond, arbor.NewLogger())
}

func TestGetThread_ClampsToMaxPages(t *testing.T) {
	parser := &fakeParser{totalPages: 3}
	fetcher := &fakeFetcher{}
	o := newTestOrchestrator(parser, fetcher)

	thread, err := o.GetThread(context.Background(), "https://forum.example/thread-9", 2)
	require.NoError(t, err)

	// 3-page thread with maxPages 2 fetches exactly 2 pages and reports
	// the clamped total, with posts only from pages 1-2.
	assert.Equal(t, 2, thread.TotalPages)
	assert.Len(t, thread.Posts, 2)
	assert.Len(t, fetcher.requested, 2)
	assert.Equal(t, 1, thread.Posts[0].PageNumber)
	assert.Equal(t, 2, thread.Posts[1].PageNumber)
}

func TestGetThread_FetchesAllPagesInOrder(t *testing.T) {
	parser := &fakeParser{totalPages: 3}
	fetcher := &fakeFetcher{}
	o := newTestOrchestrator(parser, fetcher)

	thread, err := o.GetThread(context.Background(), "https://forum.example/thread-9", 10)
	require.NoError(t, err)

	assert.Equal(t, 3, thread.TotalPages)
	assert.Equal(t, []string{
		"https://forum.example/thread-9",
		"https://forum.example/thread-9/2",
		"https://forum.example/thread-9/3",
	}, fetcher.requested)
	assert.Equal(t, "123456", thread.ID)
	assert.Equal(t, "Test thread", thread.Title)
}

func TestGetThread_PageFailureAbortsWholeFetch(t *testing.T) {
	parser := &fakeParser{totalPages: 3}
	fetcher := &fakeFetcher{failOn: "https://forum.example/thread-9/2"}
	o := newTestOrchestrator(parser, fetcher)

	thread, err := o.GetThread(context.Background(), "https://forum.example/thread-9", 10)

	// No partial-thread result on a constituent page failure.
	require.Error(t, err)
	assert.Nil(t, thread)
	assert.Contains(t, err.Error(), "page 2")
}

func TestGetThread_SinglePageThread(t *testing.T) {
	parser := &fakeParser{totalPages: 1}
	fetcher := &fakeFetcher{}
	o := newTestOrchestrator(parser, fetcher)

	thread, err := o.GetThread(context.Background(), "https://forum.example/thread-9", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, thread.TotalPages)
	assert.Len(t, fetcher.requested, 1)
}

func TestGetThread_MaxPagesBelowOne(t *testing.T) {
	parser := &fakeParser{totalPages: 5}
	fetcher := &fakeFetcher{}
	o := newTestOrchestrator(parser, fetcher)

	thread, err := o.GetThread(context.Background(), "https://forum.example/thread-9", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, thread.TotalPages)
	assert.Len(t, fetcher.requested, 1)
}

func TestGetPage_UsesPageURL(t *testing.T) {
	parser := &fakeParser{totalPages: 4}
	fetcher := &fakeFetcher{}
	o := newTestOrchestrator(parser, fetcher)

	result, err := o.GetPage(context.Background(), "https://forum.example/thread-9", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://forum.example/thread-9/3"}, fetcher.requested)
	assert.Equal(t, 4, result.TotalPages)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, 3, result.Posts[0].PageNumber)
}
