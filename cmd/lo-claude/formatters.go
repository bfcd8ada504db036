package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/services/mail"
	"github.com/jvidalv/lo-claude/internal/services/s3"
)

// formatSearchResults formats mediavida search hits as markdown
func formatSearchResults(subforum, query string, results []forum.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Threads matching \"%s\" in %s (%d results)\n\n", query, subforum, len(results)))

	if len(results) == 0 {
		sb.WriteString("No threads found.\n")
		return sb.String()
	}

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, r.Title, r.URL))
	}

	return sb.String()
}

// formatEmailList formats search hits as a compact list
func formatEmailList(emails []mail.Email) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Mail search (%d results)\n\n", len(emails)))

	if len(emails) == 0 {
		sb.WriteString("No messages found.\n")
		return sb.String()
	}

	for _, e := range emails {
		sb.WriteString(fmt.Sprintf("#%d %s | from %s | %s\n",
			e.ID, e.Subject, e.From, e.Date.Format(time.RFC1123)))
	}
	sb.WriteString("\nUse mail_get with the #id to read a message.\n")

	return sb.String()
}

// formatEmail formats a single message with its body
func formatEmail(e *mail.Email) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", e.Subject))
	sb.WriteString(fmt.Sprintf("**From:** %s\n", e.From))
	sb.WriteString(fmt.Sprintf("**Date:** %s\n\n", e.Date.Format(time.RFC1123)))
	if e.Body == "" {
		sb.WriteString("(no readable body)\n")
	} else {
		sb.WriteString(e.Body)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatObjectList formats an S3 listing
func formatObjectList(bucket, prefix string, objects []s3.Object) string {
	var sb strings.Builder
	location := "s3://" + bucket
	if prefix != "" {
		location += "/" + prefix
	}
	sb.WriteString(fmt.Sprintf("## %s (%d objects)\n\n", location, len(objects)))

	if len(objects) == 0 {
		sb.WriteString("No objects found.\n")
		return sb.String()
	}

	for _, o := range objects {
		sb.WriteString(fmt.Sprintf("%s | %d bytes | %s\n",
			o.Key, o.Size, o.LastModified.Format(time.RFC3339)))
	}

	return sb.String()
}

// maxInlineContent caps how much object content is returned inline.
const maxInlineContent = 64 * 1024

// formatObjectContent formats a downloaded object. Text bodies are
// inlined; binary bodies are described instead.
func formatObjectContent(bucket string, object *s3.ObjectContent) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# s3://%s/%s\n\n", bucket, object.Key))
	sb.WriteString(fmt.Sprintf("**Size:** %d bytes\n", object.Size))
	sb.WriteString(fmt.Sprintf("**Content-Type:** %s\n\n", object.ContentType))

	if !utf8.Valid(object.Body) {
		sb.WriteString("(binary content, not shown)\n")
		return sb.String()
	}

	body := object.Body
	truncated := false
	if len(body) > maxInlineContent {
		body = body[:maxInlineContent]
		truncated = true
	}

	sb.Write(body)
	if truncated {
		sb.WriteString("\n\n(truncated)\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
