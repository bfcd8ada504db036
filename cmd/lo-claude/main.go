package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/common"
	"github.com/jvidalv/lo-claude/internal/forum"
	"github.com/jvidalv/lo-claude/internal/forum/forocoches"
	"github.com/jvidalv/lo-claude/internal/forum/mediavida"
	"github.com/jvidalv/lo-claude/internal/services/browser"
	"github.com/jvidalv/lo-claude/internal/services/mail"
	"github.com/jvidalv/lo-claude/internal/services/s3"
	"github.com/jvidalv/lo-claude/internal/services/watcher"
	"github.com/jvidalv/lo-claude/internal/storage/badger"
)

func main() {
	configPath := os.Getenv("LO_CLAUDE_CONFIG")
	if configPath == "" {
		configPath = "lo-claude.toml"
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) && os.Getenv("LO_CLAUDE_CONFIG") == "" {
		// No config anywhere, run on defaults.
		configPath = ""
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Console output must stay off stdout, the stdio transport owns it.
	logger := common.InitLogger(config)

	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer storageManager.Close()

	mcpServer := server.NewMCPServer(
		"lo-claude",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	quoteWatcher := watcher.New(logger)

	if config.ModuleEnabled("forocoches") {
		session := newForumSession(config, config.Forum.Forocoches, logger)
		client := forocoches.NewClient(session, storageManager.CursorStorage(), config.Forum.PageDelayDuration(), logger)
		registerForocochesTools(mcpServer, client, config, logger)

		if config.Forum.Forocoches.ProfileURL != "" {
			quoteWatcher.AddSource(watcher.QuoteSource{
				Name: "forocoches",
				URL:  config.Forum.Forocoches.ProfileURL,
				Check: func(ctx context.Context, profileURL string) (*forum.QuoteCheck, error) {
					return client.GetQuotes(ctx, profileURL)
				},
			})
		}
	}

	if config.ModuleEnabled("mediavida") {
		session := newForumSession(config, config.Forum.Mediavida, logger)
		client := mediavida.NewClient(session, config.Forum.PageDelayDuration(), logger)
		registerMediavidaTools(mcpServer, client, config, logger)
	}

	if config.ModuleEnabled("mail") {
		mailService := mail.NewService(config.Mail, logger)
		registerMailTools(mcpServer, mailService, logger)
	}

	if config.ModuleEnabled("s3") {
		s3Service := s3.NewService(config.S3, logger)
		registerS3Tools(mcpServer, s3Service, logger)
	}

	if config.Watcher.Enabled {
		if err := quoteWatcher.Start(config.Watcher); err != nil {
			logger.Warn().Err(err).Msg("Quote watcher failed to start")
		} else {
			defer quoteWatcher.Stop()
		}
	}

	// Blocks on stdio until the client disconnects.
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

func newForumSession(config *common.Config, site common.ForumSiteConfig, logger arbor.ILogger) *browser.Session {
	return browser.NewSession(browser.Config{
		CookiesPath:   site.CookiesPath,
		UserAgentPath: site.UserAgentPath,
		PageTimeout:   config.Forum.PageTimeoutDuration(),
		SubmitTimeout: config.Forum.SubmitTimeoutDuration(),
		Headless:      config.Forum.Headless,
	}, logger)
}
