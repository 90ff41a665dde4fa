// ABOUTME: MCP tool implementations for feed operations.
// ABOUTME: Registers list_posts, get_post, create_post, update_post, and delete_post tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/models"
	"github.com/2389-research/minigram/internal/render"
)

func (s *Server) registerPostTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "Show one page of the feed, newest first, optionally filtered by author or caption.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Case-insensitive text matched against author and caption"},
				"page": {"type": "number", "description": "1-based page number (default 1)", "minimum": 1},
				"refresh": {"type": "boolean", "description": "Reload posts from the API before listing"}
			}
		}`),
	}, s.handleListPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_post",
		Description: "Show a single post by id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "number", "description": "The post id", "minimum": 1}
			},
			"required": ["id"]
		}`),
	}, s.handleGetPost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "create_post",
		Description: "Publish a new photo post at the top of the feed.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"author": {"type": "string", "description": "Display name of the author (at least 2 characters)"},
				"caption": {"type": "string", "description": "Post caption (at least 3 characters)"},
				"image_url": {"type": "string", "description": "http or https URL of the image"}
			},
			"required": ["author", "caption", "image_url"]
		}`),
	}, s.handleCreatePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "update_post",
		Description: "Replace the author, caption, and image of an existing post.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "number", "description": "The post id", "minimum": 1},
				"author": {"type": "string", "description": "Display name of the author (at least 2 characters)"},
				"caption": {"type": "string", "description": "Post caption (at least 3 characters)"},
				"image_url": {"type": "string", "description": "http or https URL of the image"}
			},
			"required": ["id", "author", "caption", "image_url"]
		}`),
	}, s.handleUpdatePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post from the feed.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "number", "description": "The post id", "minimum": 1}
			},
			"required": ["id"]
		}`),
	}, s.handleDeletePost)
}

type postArgs struct {
	ID       int    `json:"id"`
	Author   string `json:"author"`
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
}

func (a postArgs) input() models.PostInput {
	return models.NewPostInput(a.Author, a.Caption, a.ImageURL)
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Search  string `json:"search"`
		Page    int    `json:"page"`
		Refresh bool   `json:"refresh"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Page == 0 {
		args.Page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, args.Refresh); err != nil {
		return toolError("%v", err), nil
	}

	if s.ctrl.SearchEnabled() {
		s.ctrl.Search(args.Search)
	} else if args.Search != "" {
		return toolError("%v", feed.ErrSearchDisabled), nil
	}

	view := s.ctrl.Page()
	if args.Page != view.Page && view.Total > 0 {
		if err := s.ctrl.GoToPage(args.Page); err != nil {
			return toolError("page %d is out of range (1-%d)", args.Page, view.TotalPages), nil
		}
	}

	return textResult(render.FeedPage(s.ctrl.Page(), s.now())), nil
}

func (s *Server) handleGetPost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args postArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, false); err != nil {
		return toolError("%v", err), nil
	}

	p, ok := s.ctrl.Post(args.ID)
	if !ok {
		return toolError("post %d not found", args.ID), nil
	}
	return textResult(render.Card(p, s.now())), nil
}

func (s *Server) handleCreatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args postArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, false); err != nil {
		return toolError("%v", err), nil
	}

	p, err := s.ctrl.Create(ctx, args.input())
	if err != nil {
		return mutationError(err), nil
	}
	return textResult(fmt.Sprintf("Post created (ID: %d)\n\n%s", p.ID, render.Card(p, s.now()))), nil
}

func (s *Server) handleUpdatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args postArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, false); err != nil {
		return toolError("%v", err), nil
	}

	p, err := s.ctrl.Update(ctx, args.ID, args.input())
	if err != nil {
		return mutationError(err), nil
	}
	return textResult(fmt.Sprintf("Post updated (ID: %d)\n\n%s", p.ID, render.Card(p, s.now()))), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args postArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx, false); err != nil {
		return toolError("%v", err), nil
	}

	if _, ok := s.ctrl.Post(args.ID); !ok {
		return toolError("post %d not found", args.ID), nil
	}
	if err := s.ctrl.Delete(ctx, args.ID); err != nil {
		return mutationError(err), nil
	}
	return textResult(fmt.Sprintf("Post %d deleted", args.ID)), nil
}

// mutationError turns a controller error into a tool error, listing
// validation problems one per line.
func mutationError(err error) *gomcp.CallToolResult {
	var ve *feed.ValidationError
	if errors.As(err, &ve) {
		msg := "invalid post:"
		for _, m := range ve.Messages {
			msg += "\n- " + m
		}
		return toolError("%s", msg)
	}
	return toolError("%v", err)
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
