package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/common"
	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/forum/forocoches"
	"github.com/jvidalv/lo-claude/internal/forum/mediavida"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return textResult(fmt.Sprintf("Error: "+format, args...))
}

// registerForocochesTools adds the Forocoches tool group to the server
func registerForocochesTools(s *server.MCPServer, client *forocoches.Client, config *common.Config, logger arbor.ILogger) {
	s.AddTool(createForocochesThreadTool(), handleForocochesThread(client, config, logger))
	s.AddTool(createForocochesPageTool(), handleForocochesPage(client, logger))
	s.AddTool(createForocochesReplyTool(), handleForocochesReply(client, logger))
	s.AddTool(createForocochesEditTool(), handleForocochesEdit(client, logger))
	s.AddTool(createForocochesQuotesTool(), handleForocochesQuotes(client, config, logger))
}

// registerMediavidaTools adds the Mediavida tool group to the server
func registerMediavidaTools(s *server.MCPServer, client *mediavida.Client, config *common.Config, logger arbor.ILogger) {
	s.AddTool(createMediavidaThreadTool(), handleMediavidaThread(client, config, logger))
	s.AddTool(createMediavidaPageTool(), handleMediavidaPage(client, logger))
	s.AddTool(createMediavidaSearchTool(), handleMediavidaSearch(client, logger))
}

type threadClient interface {
	GetThread(ctx context.Context, url string, maxPages int) (*forum.Thread, error)
	GetPage(ctx context.Context, url string, page int) (*forum.PageResult, error)
}

func handleThread(client threadClient, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil || url == "" {
			return errorResult("url parameter is required"), nil
		}

		maxPages := request.GetInt("max_pages", config.Forum.MaxPages)

		thread, err := client.GetThread(ctx, url, maxPages)
		if err != nil {
			logger.Error().Err(err).Str("url", url).Msg("Thread fetch failed")
			return errorResult("thread fetch failed: %v", err), nil
		}

		return textResult(forum.FormatThread(thread)), nil
	}
}

func handlePage(client threadClient, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil || url == "" {
			return errorResult("url parameter is required"), nil
		}

		page := request.GetInt("page", 1)
		if page < 1 {
			page = 1
		}

		result, err := client.GetPage(ctx, url, page)
		if err != nil {
			logger.Error().Err(err).Str("url", url).Int("page", page).Msg("Page fetch failed")
			return errorResult("page fetch failed: %v", err), nil
		}

		return textResult(forum.FormatPage(result.Title, page, result.TotalPages, result.Posts)), nil
	}
}

func handleForocochesThread(client *forocoches.Client, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return handleThread(client, config, logger)
}

func handleForocochesPage(client *forocoches.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return handlePage(client, logger)
}

func handleForocochesReply(client *forocoches.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil || url == "" {
			return errorResult("url parameter is required"), nil
		}
		message, err := request.RequireString("message")
		if err != nil || message == "" {
			return errorResult("message parameter is required"), nil
		}

		finalURL, err := client.PostReply(ctx, url, message)
		if err != nil {
			logger.Error().Err(err).Str("url", url).Msg("Reply failed")
			return errorResult("reply failed: %v", err), nil
		}

		return textResult(fmt.Sprintf("Reply posted. Landed on: %s", finalURL)), nil
	}
}

func handleForocochesEdit(client *forocoches.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		postID, err := request.RequireString("post_id")
		if err != nil || postID == "" {
			return errorResult("post_id parameter is required"), nil
		}
		message, err := request.RequireString("message")
		if err != nil || message == "" {
			return errorResult("message parameter is required"), nil
		}
		reason := request.GetString("reason", "")

		finalURL, err := client.EditPost(ctx, postID, message, reason)
		if err != nil {
			logger.Error().Err(err).Str("post_id", postID).Msg("Edit failed")
			return errorResult("edit failed: %v", err), nil
		}

		return textResult(fmt.Sprintf("Post %s edited. Landed on: %s", postID, finalURL)), nil
	}
}

func handleForocochesQuotes(client *forocoches.Client, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profileURL := request.GetString("profile_url", config.Forum.Forocoches.ProfileURL)
		if profileURL == "" {
			return errorResult("profile_url parameter is required (or set forum.forocoches.profile_url in config)"), nil
		}
		showAll := request.GetBool("show_all", false)

		check, err := client.GetQuotes(ctx, profileURL)
		if err != nil {
			logger.Error().Err(err).Str("profile_url", profileURL).Msg("Quote check failed")
			return errorResult("quote check failed: %v", err), nil
		}

		return textResult(forum.FormatQuoteCheck(check, showAll)), nil
	}
}

func handleMediavidaThread(client *mediavida.Client, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return handleThread(client, config, logger)
}

func handleMediavidaPage(client *mediavida.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return handlePage(client, logger)
}

func handleMediavidaSearch(client *mediavida.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subforum, err := request.RequireString("subforum")
		if err != nil || subforum == "" {
			return errorResult("subforum parameter is required"), nil
		}
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return errorResult("query parameter is required"), nil
		}

		results, err := client.Search(ctx, subforum, query)
		if err != nil {
			logger.Error().Err(err).Str("subforum", subforum).Msg("Search failed")
			return errorResult("search failed: %v", err), nil
		}

		return textResult(formatSearchResults(subforum, query, results)), nil
	}
}
