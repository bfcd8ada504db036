package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createForocochesThreadTool returns the forocoches_thread tool definition
func createForocochesThreadTool() mcp.Tool {
	return mcp.NewTool("forocoches_thread",
		mcp.WithDescription("Fetch a full Forocoches thread (all pages up to max_pages) as compact text"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Thread URL (showthread.php?t=...)"),
		),
		mcp.WithNumber("max_pages",
			mcp.Description("Maximum pages to fetch (default: 100)"),
		),
	)
}

// createForocochesPageTool returns the forocoches_page tool definition
func createForocochesPageTool() mcp.Tool {
	return mcp.NewTool("forocoches_page",
		mcp.WithDescription("Fetch a single page of a Forocoches thread"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Thread URL"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
	)
}

// createForocochesReplyTool returns the forocoches_reply tool definition
func createForocochesReplyTool() mcp.Tool {
	return mcp.NewTool("forocoches_reply",
		mcp.WithDescription("Post a reply to a Forocoches thread via the quick-reply form (BBCode allowed)"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Thread URL"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Reply body, BBCode passed through as-is"),
		),
	)
}

// createForocochesEditTool returns the forocoches_edit tool definition
func createForocochesEditTool() mcp.Tool {
	return mcp.NewTool("forocoches_edit",
		mcp.WithDescription("Edit one of your own Forocoches posts"),
		mcp.WithString("post_id",
			mcp.Required(),
			mcp.Description("Numeric post id"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Replacement post body"),
		),
		mcp.WithString("reason",
			mcp.Description("Optional edit reason"),
		),
	)
}

// createForocochesQuotesTool returns the forocoches_quotes tool definition
func createForocochesQuotesTool() mcp.Tool {
	return mcp.NewTool("forocoches_quotes",
		mcp.WithDescription("Check your Forocoches profile quotes page for new mentions since the last check"),
		mcp.WithString("profile_url",
			mcp.Description("Quotes page URL (default: forum.forocoches.profile_url from config)"),
		),
		mcp.WithBoolean("show_all",
			mcp.Description("List every quote on the page, not just new ones"),
		),
	)
}

// createMediavidaThreadTool returns the mediavida_thread tool definition
func createMediavidaThreadTool() mcp.Tool {
	return mcp.NewTool("mediavida_thread",
		mcp.WithDescription("Fetch a full Mediavida thread (all pages up to max_pages) as compact text"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Thread URL (/foro/<sub>/<slug>-<id>)"),
		),
		mcp.WithNumber("max_pages",
			mcp.Description("Maximum pages to fetch (default: 100)"),
		),
	)
}

// createMediavidaPageTool returns the mediavida_page tool definition
func createMediavidaPageTool() mcp.Tool {
	return mcp.NewTool("mediavida_page",
		mcp.WithDescription("Fetch a single page of a Mediavida thread"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Thread URL"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number (default: 1)"),
		),
	)
}

// createMediavidaSearchTool returns the mediavida_search tool definition
func createMediavidaSearchTool() mcp.Tool {
	return mcp.NewTool("mediavida_search",
		mcp.WithDescription("Search threads in a Mediavida subforum"),
		mcp.WithString("subforum",
			mcp.Required(),
			mcp.Description("Subforum slug, e.g. off-topic"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
	)
}

// createMailSearchTool returns the mail_search tool definition
func createMailSearchTool() mcp.Tool {
	return mcp.NewTool("mail_search",
		mcp.WithDescription("Search the configured IMAP mailbox; returns newest matches first"),
		mcp.WithString("from",
			mcp.Description("Match sender address or name"),
		),
		mcp.WithString("subject",
			mcp.Description("Match subject substring"),
		),
		mcp.WithString("text",
			mcp.Description("Match body text"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 20)"),
		),
	)
}

// createMailGetTool returns the mail_get tool definition
func createMailGetTool() mcp.Tool {
	return mcp.NewTool("mail_get",
		mcp.WithDescription("Fetch one email by id (from mail_search) with its body as readable text"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Message id returned by mail_search"),
		),
	)
}

// createS3ListTool returns the s3_list tool definition
func createS3ListTool() mcp.Tool {
	return mcp.NewTool("s3_list",
		mcp.WithDescription("List objects in an S3 bucket"),
		mcp.WithString("bucket",
			mcp.Description("Bucket name (default: configured bucket)"),
		),
		mcp.WithString("prefix",
			mcp.Description("Key prefix filter"),
		),
		mcp.WithNumber("max_keys",
			mcp.Description("Maximum keys to return (default: 100)"),
		),
	)
}

// createS3GetTool returns the s3_get tool definition
func createS3GetTool() mcp.Tool {
	return mcp.NewTool("s3_get",
		mcp.WithDescription("Download an S3 object; text content returned inline"),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Object key"),
		),
		mcp.WithString("bucket",
			mcp.Description("Bucket name (default: configured bucket)"),
		),
	)
}

// createS3PutTool returns the s3_put tool definition
func createS3PutTool() mcp.Tool {
	return mcp.NewTool("s3_put",
		mcp.WithDescription("Upload text content to an S3 key"),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Object key"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Content to upload"),
		),
		mcp.WithString("content_type",
			mcp.Description("Content type (default: text/plain)"),
		),
		mcp.WithString("bucket",
			mcp.Description("Bucket name (default: configured bucket)"),
		),
	)
}

// createS3CopyTool returns the s3_copy tool definition
func createS3CopyTool() mcp.Tool {
	return mcp.NewTool("s3_copy",
		mcp.WithDescription("Copy an S3 object within a bucket, optionally deleting the source (move)"),
		mcp.WithString("source_key",
			mcp.Required(),
			mcp.Description("Source object key"),
		),
		mcp.WithString("dest_key",
			mcp.Required(),
			mcp.Description("Destination object key"),
		),
		mcp.WithBoolean("move",
			mcp.Description("Delete the source after copying"),
		),
		mcp.WithString("bucket",
			mcp.Description("Bucket name (default: configured bucket)"),
		),
	)
}

// createS3DeleteTool returns the s3_delete tool definition
func createS3DeleteTool() mcp.Tool {
	return mcp.NewTool("s3_delete",
		mcp.WithDescription("Delete an S3 object"),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Object key"),
		),
		mcp.WithString("bucket",
			mcp.Description("Bucket name (default: configured bucket)"),
		),
	)
}
