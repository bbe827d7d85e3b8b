// Package mcpsrv exposes the podcast pipeline as MCP tools over stdio, so
// LLM clients can script and render podcasts directly.
package mcpsrv

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"podcastforge-server-go/internal/domain/podcast"
	"podcastforge-server-go/internal/domain/scriptgen"
	"podcastforge-server-go/internal/platform/logging"
)

// Server wraps the MCP stdio server with the podcast tool set.
type Server struct {
	mcpServer *server.MCPServer
	service   *podcast.Service
	logger    *logging.Logger
}

func New(service *podcast.Service, logger *logging.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer("podcastforge", "1.0.0", server.WithToolCapabilities(false)),
		service:   service,
		logger:    logger,
	}
	s.registerTools()
	return s
}

// Serve blocks on stdio until the client disconnects.
func (s *Server) Serve() error {
	s.logger.InfoTag(logging.TagMCP, "serving MCP tools over stdio")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_podcast_formats",
		mcp.WithDescription("List the supported podcast formats with their typical speaker roles."),
	), s.handleListFormats)

	s.mcpServer.AddTool(mcp.NewTool("generate_podcast_prompt",
		mcp.WithDescription("Build an LLM prompt that produces a dialogue script in the accepted speaker/emotion convention."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("Podcast topic")),
		mcp.WithString("format", mcp.Description("Podcast format, e.g. interview, debate, roundtable")),
		mcp.WithNumber("duration_minutes", mcp.Description("Target duration in minutes")),
		mcp.WithNumber("num_speakers", mcp.Description("Number of speakers")),
		mcp.WithString("context", mcp.Description("Free-form contextual hints")),
	), s.handleGeneratePrompt)

	s.mcpServer.AddTool(mcp.NewTool("parse_podcast_script",
		mcp.WithDescription("Parse dialogue text into ordered, emotion-annotated utterances without synthesizing audio."),
		mcp.WithString("script", mcp.Required(), mcp.Description("Raw dialogue text")),
	), s.handleParseScript)

	s.mcpServer.AddTool(mcp.NewTool("create_podcast_audio",
		mcp.WithDescription("Render a dialogue script into one normalized podcast audio file with metadata."),
		mcp.WithString("script", mcp.Required(), mcp.Description("Raw dialogue text")),
	), s.handleCreateAudio)
}

func (s *Server) handleListFormats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(scriptgen.Formats())
}

func (s *Server) handleGeneratePrompt(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prompt := scriptgen.BuildPrompt(scriptgen.Request{
		Topic:           topic,
		Format:          req.GetString("format", "interview"),
		DurationMinutes: req.GetInt("duration_minutes", 5),
		NumSpeakers:     req.GetInt("num_speakers", 2),
		Context:         req.GetString("context", ""),
	})
	return mcp.NewToolResultText(prompt), nil
}

func (s *Server) handleParseScript(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("script")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	utterances, err := s.service.ParseScript(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(utterances)
}

func (s *Server) handleCreateAudio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("script")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.service.CreateFromScript(ctx, text, nil)
	if err != nil {
		s.logger.ErrorTag(logging.TagMCP, "create_podcast_audio failed: %v", err)
		if result != nil && len(result.Failures) > 0 {
			if data, jsonErr := sonic.MarshalString(result.Failures); jsonErr == nil {
				return mcp.NewToolResultError(err.Error() + "\nfailed utterances: " + data), nil
			}
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result.Artifact)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := sonic.MarshalString(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(data), nil
}
