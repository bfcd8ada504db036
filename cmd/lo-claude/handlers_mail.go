package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/services/mail"
)

// registerMailTools adds the mail tool group to the server
func registerMailTools(s *server.MCPServer, service *mail.Service, logger arbor.ILogger) {
	s.AddTool(createMailSearchTool(), handleMailSearch(service, logger))
	s.AddTool(createMailGetTool(), handleMailGet(service, logger))
}

func handleMailSearch(service *mail.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := mail.SearchQuery{
			From:    request.GetString("from", ""),
			Subject: request.GetString("subject", ""),
			Text:    request.GetString("text", ""),
			Limit:   request.GetInt("limit", mail.DefaultSearchLimit),
		}
		if query.From == "" && query.Subject == "" && query.Text == "" {
			return errorResult("at least one of from, subject or text is required"), nil
		}

		emails, err := service.Search(ctx, query)
		if err != nil {
			logger.Error().Err(err).Msg("Mail search failed")
			return errorResult("mail search failed: %v", err), nil
		}

		return textResult(formatEmailList(emails)), nil
	}
}

func handleMailGet(service *mail.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetInt("id", 0)
		if id <= 0 {
			return errorResult("id parameter is required"), nil
		}

		email, err := service.Get(ctx, uint32(id))
		if err != nil {
			logger.Error().Err(err).Int("id", id).Msg("Mail get failed")
			return errorResult("mail get failed: %v", err), nil
		}

		return textResult(formatEmail(email)), nil
	}
}
