// ABOUTME: MCP tool implementations for the local profile.
// ABOUTME: Registers get_profile and update_profile tools.
package mcp

import (
	"context"
	"encoding/json"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/render"
)

func (s *Server) registerProfileTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_profile",
		Description: "Show the local profile and the grid of posts it follows.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleGetProfile)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "update_profile",
		Description: "Replace the local profile. Blank fields fall back to defaults.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Display name"},
				"bio": {"type": "string", "description": "Short bio"},
				"avatar_url": {"type": "string", "description": "Avatar image URL"},
				"filter_author": {"type": "string", "description": "Only show posts whose author contains this text"}
			}
		}`),
	}, s.handleUpdateProfile)
}

func (s *Server) handleGetProfile(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.profiles.Load()
	if err != nil {
		return toolError("failed to load profile: %v", err), nil
	}
	if err := s.ensureLoaded(ctx, false); err != nil {
		return toolError("%v", err), nil
	}

	posts := feed.FilterByAuthor(s.ctrl.Posts(), profile.FilterAuthor)
	return textResult(render.ProfileCard(profile, posts, s.now())), nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Name         string `json:"name"`
		Bio          string `json:"bio"`
		AvatarURL    string `json:"avatar_url"`
		FilterAuthor string `json:"filter_author"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	profile := models.Profile{
		Name:         args.Name,
		Bio:          args.Bio,
		AvatarURL:    args.AvatarURL,
		FilterAuthor: args.FilterAuthor,
	}.WithDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profiles.Save(profile); err != nil {
		return toolError("failed to save profile: %v", err), nil
	}
	return textResult("Profile saved for " + profile.Name), nil
}
