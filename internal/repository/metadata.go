package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBaseURL = "https://api.github.com"

// Metadata is the subset of the GitHub repository resource we report.
type Metadata struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stargazers_count"`
	Forks         int    `json:"forks_count"`
}

// MetadataClient queries the GitHub REST API for repository metadata.
type MetadataClient struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func NewMetadataClient() *MetadataClient {
	return &MetadataClient{
		BaseURL:    defaultAPIBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		UserAgent:  "mcpscan",
	}
}

// Get fetches GET /repos/{owner}/{repo}. token may be empty.
func (c *MetadataClient) Get(ctx context.Context, owner, repo, token string) (*Metadata, error) {
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Message: "GitHub API request failed: " + err.Error(), Status: http.StatusInternalServerError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(body, &apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = "GitHub API error"
		}
		status := resp.StatusCode
		if status != http.StatusUnauthorized && status != http.StatusForbidden && status != http.StatusNotFound {
			status = http.StatusInternalServerError
		}
		return nil, &FetchError{Message: apiErr.Message, Status: status}
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode repository metadata: %w", err)
	}
	return &meta, nil
}
