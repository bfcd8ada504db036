package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/services/s3"
)

// registerS3Tools adds the S3 tool group to the server
func registerS3Tools(s *server.MCPServer, service *s3.Service, logger arbor.ILogger) {
	s.AddTool(createS3ListTool(), handleS3List(service, logger))
	s.AddTool(createS3GetTool(), handleS3Get(service, logger))
	s.AddTool(createS3PutTool(), handleS3Put(service, logger))
	s.AddTool(createS3CopyTool(), handleS3Copy(service, logger))
	s.AddTool(createS3DeleteTool(), handleS3Delete(service, logger))
}

func resolveBucket(service *s3.Service, request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	bucket, err := service.Bucket(request.GetString("bucket", ""))
	if err != nil {
		return "", errorResult("%v", err)
	}
	return bucket, nil
}

func handleS3List(service *s3.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bucket, errRes := resolveBucket(service, request)
		if errRes != nil {
			return errRes, nil
		}
		prefix := request.GetString("prefix", "")
		maxKeys := request.GetInt("max_keys", s3.DefaultListLimit)

		objects, err := service.List(ctx, bucket, prefix, maxKeys)
		if err != nil {
			logger.Error().Err(err).Str("bucket", bucket).Msg("S3 list failed")
			return errorResult("s3 list failed: %v", err), nil
		}

		return textResult(formatObjectList(bucket, prefix, objects)), nil
	}
}

func handleS3Get(service *s3.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil || key == "" {
			return errorResult("key parameter is required"), nil
		}
		bucket, errRes := resolveBucket(service, request)
		if errRes != nil {
			return errRes, nil
		}

		object, err := service.Get(ctx, bucket, key)
		if err != nil {
			logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("S3 get failed")
			return errorResult("s3 get failed: %v", err), nil
		}

		return textResult(formatObjectContent(bucket, object)), nil
	}
}

func handleS3Put(service *s3.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil || key == "" {
			return errorResult("key parameter is required"), nil
		}
		content, err := request.RequireString("content")
		if err != nil {
			return errorResult("content parameter is required"), nil
		}
		bucket, errRes := resolveBucket(service, request)
		if errRes != nil {
			return errRes, nil
		}
		contentType := request.GetString("content_type", "text/plain")

		if err := service.Put(ctx, bucket, key, []byte(content), contentType); err != nil {
			logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("S3 put failed")
			return errorResult("s3 put failed: %v", err), nil
		}

		return textResult("Uploaded s3://" + bucket + "/" + key), nil
	}
}

func handleS3Copy(service *s3.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sourceKey, err := request.RequireString("source_key")
		if err != nil || sourceKey == "" {
			return errorResult("source_key parameter is required"), nil
		}
		destKey, err := request.RequireString("dest_key")
		if err != nil || destKey == "" {
			return errorResult("dest_key parameter is required"), nil
		}
		bucket, errRes := resolveBucket(service, request)
		if errRes != nil {
			return errRes, nil
		}
		move := request.GetBool("move", false)

		if move {
			err = service.Move(ctx, bucket, sourceKey, destKey)
		} else {
			err = service.Copy(ctx, bucket, sourceKey, destKey)
		}
		if err != nil {
			logger.Error().Err(err).Str("bucket", bucket).Str("source", sourceKey).Msg("S3 copy failed")
			return errorResult("s3 copy failed: %v", err), nil
		}

		verb := "Copied"
		if move {
			verb = "Moved"
		}
		return textResult(verb + " s3://" + bucket + "/" + sourceKey + " to " + destKey), nil
	}
}

func handleS3Delete(service *s3.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil || key == "" {
			return errorResult("key parameter is required"), nil
		}
		bucket, errRes := resolveBucket(service, request)
		if errRes != nil {
			return errRes, nil
		}

		if err := service.Delete(ctx, bucket, key); err != nil {
			logger.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("S3 delete failed")
			return errorResult("s3 delete failed: %v", err), nil
		}

		return textResult("Deleted s3://" + bucket + "/" + key), nil
	}
}
