// Package mcp provides the MCP (Model Context Protocol) server implementation.
// It is the machine-facing analog of a desktop client's IPC layer: every tool
// maps onto one history or repository operation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server       *server.MCPServer
	history      ports.HistoryProvider
	repositories ports.RepositoryProvider
	ctx          context.Context
	cancel       context.CancelFunc
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// NewServer creates a new MCP server instance.
func NewServer(history ports.HistoryProvider, repositories ports.RepositoryProvider) *Server {
	s := &Server{
		history:      history,
		repositories: repositories,
	}

	s.server = server.NewMCPServer(
		"gitdeck",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: list_repositories
	s.server.AddTool(
		mcp.NewTool(
			"list_repositories",
			mcp.WithDescription("List all tracked repositories, most recently opened first"),
		),
		s.handleListRepositories,
	)

	// Tool: scan_commits
	scanTool := mcp.NewTool(
		"scan_commits",
		mcp.WithDescription("Incrementally scan commit history for a repository; only commits newer than the latest indexed one are fetched"),
		mcp.WithString(
			"repository",
			mcp.Required(),
			mcp.Description("Repository ID or name"),
		),
	)
	s.server.AddTool(scanTool, s.handleScan(false))

	// Tool: full_scan_commits
	fullScanTool := mcp.NewTool(
		"full_scan_commits",
		mcp.WithDescription("Clear the indexed history for a repository and rescan it from scratch"),
		mcp.WithString(
			"repository",
			mcp.Required(),
			mcp.Description("Repository ID or name"),
		),
	)
	s.server.AddTool(fullScanTool, s.handleScan(true))

	// Tool: list_commits
	listTool := mcp.NewTool(
		"list_commits",
		mcp.WithDescription("List indexed commits for a repository, newest first"),
		mcp.WithString(
			"repository",
			mcp.Required(),
			mcp.Description("Repository ID or name"),
		),
		mcp.WithNumber(
			"offset",
			mcp.Description("Number of commits to skip (default: 0)"),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of commits to return (default: 50)"),
		),
	)
	s.server.AddTool(listTool, s.handleListCommits)

	// Tool: count_commits
	countTool := mcp.NewTool(
		"count_commits",
		mcp.WithDescription("Count indexed commits for a repository"),
		mcp.WithString(
			"repository",
			mcp.Required(),
			mcp.Description("Repository ID or name"),
		),
	)
	s.server.AddTool(countTool, s.handleCountCommits)

	// Tool: get_commit_files
	filesTool := mcp.NewTool(
		"get_commit_files",
		mcp.WithDescription("List the files changed by one commit with their change status"),
		mcp.WithString(
			"repository",
			mcp.Required(),
			mcp.Description("Repository ID or name"),
		),
		mcp.WithString(
			"hash",
			mcp.Required(),
			mcp.Description("Full commit hash"),
		),
	)
	s.server.AddTool(filesTool, s.handleCommitFiles)

	// Tool: get_commit_file_diff
	diffTool := mcp.NewTool(
		"get_commit_file_diff",
		mcp.WithDescription("Get the unified diff of one file within one commit"),
		mcp.WithString(
			"repository",
			mcp.Required(),
			mcp.Description("Repository ID or name"),
		),
		mcp.WithString(
			"hash",
			mcp.Required(),
			mcp.Description("Full commit hash"),
		),
		mcp.WithString(
			"file",
			mcp.Required(),
			mcp.Description("Path of the file within the repository"),
		),
	)
	s.server.AddTool(diffTool, s.handleFileDiff)
}

// resolveRepository looks up the repository named by the request.
func (s *Server) resolveRepository(ctx context.Context, request mcp.CallToolRequest) (*domain.Repository, error) {
	ref := request.GetString("repository", "")
	if ref == "" {
		return nil, fmt.Errorf("repository is required")
	}
	return s.repositories.Resolve(ctx, ref)
}

// handleListRepositories handles the list_repositories tool.
func (s *Server) handleListRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repos, err := s.repositories.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list repositories: %v", err)), nil
	}

	var repoList []map[string]interface{}
	for _, repo := range repos {
		repoList = append(repoList, map[string]interface{}{
			"id":             repo.ID,
			"name":           repo.Name,
			"path":           repo.Path,
			"current_branch": repo.CurrentBranch,
			"is_favorite":    repo.IsFavorite,
			"last_opened_at": repo.LastOpenedAt.Format(time.RFC3339),
		})
	}

	result := map[string]interface{}{
		"repositories": repoList,
		"count":        len(repoList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal repositories: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleScan returns the handler for scan_commits or full_scan_commits.
func (s *Server) handleScan(full bool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		repo, err := s.resolveRepository(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to resolve repository: %v", err)), nil
		}

		var scanResult domain.ScanResult
		if full {
			scanResult = s.history.FullScan(ctx, repo.ID, repo.Path, nil)
		} else {
			scanResult = s.history.Scan(ctx, repo.ID, repo.Path, nil)
		}

		result := map[string]interface{}{
			"repository_id": repo.ID,
			"added":         scanResult.Added,
			"scanned":       scanResult.Scanned,
			"total":         scanResult.Total,
			"cancelled":     scanResult.Cancelled,
		}
		if scanResult.Dropped > 0 {
			result["dropped"] = scanResult.Dropped
		}

		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal scan result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// handleListCommits handles the list_commits tool.
func (s *Server) handleListCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := s.resolveRepository(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve repository: %v", err)), nil
	}

	offset := int(request.GetFloat("offset", 0))
	limit := int(request.GetFloat("limit", 0))

	commits, err := s.history.ListCommits(ctx, repo.ID, offset, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list commits: %v", err)), nil
	}

	var commitList []map[string]interface{}
	for _, commit := range commits {
		commitData := map[string]interface{}{
			"hash":             commit.Hash,
			"abbreviated_hash": commit.AbbreviatedHash,
			"author_name":      commit.AuthorName,
			"author_email":     commit.AuthorEmail,
			"date":             commit.Date.Format(time.RFC3339),
			"message":          commit.Message,
			"parent_count":     commit.ParentCount(),
		}
		if commit.Body != nil {
			commitData["body"] = *commit.Body
		}
		if commit.IsMerge() {
			commitData["is_merge"] = true
		}
		commitList = append(commitList, commitData)
	}

	result := map[string]interface{}{
		"repository_id": repo.ID,
		"commits":       commitList,
		"count":         len(commitList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal commits: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCountCommits handles the count_commits tool.
func (s *Server) handleCountCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := s.resolveRepository(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve repository: %v", err)), nil
	}

	count, err := s.history.CountCommits(ctx, repo.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count commits: %v", err)), nil
	}

	result := map[string]interface{}{
		"repository_id": repo.ID,
		"count":         count,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal count: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleCommitFiles handles the get_commit_files tool.
func (s *Server) handleCommitFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := s.resolveRepository(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve repository: %v", err)), nil
	}

	hash := request.GetString("hash", "")
	if !domain.IsCommitHash(hash) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid commit hash: %q", hash)), nil
	}

	files := s.history.CommitFiles(ctx, repo.Path, hash)

	var fileList []map[string]interface{}
	for _, file := range files {
		fileList = append(fileList, map[string]interface{}{
			"status": string(file.Status),
			"file":   file.File,
		})
	}

	result := map[string]interface{}{
		"hash":  hash,
		"files": fileList,
		"count": len(fileList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal commit files: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleFileDiff handles the get_commit_file_diff tool.
func (s *Server) handleFileDiff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := s.resolveRepository(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve repository: %v", err)), nil
	}

	hash := request.GetString("hash", "")
	if !domain.IsCommitHash(hash) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid commit hash: %q", hash)), nil
	}

	file := request.GetString("file", "")
	if file == "" {
		return mcp.NewToolResultError("file is required"), nil
	}

	diff := s.history.FileDiff(ctx, repo.Path, hash, file)
	return mcp.NewToolResultText(diff), nil
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}
