// Package drive is a minimal read-only client for the Google Drive v3
// files.list endpoint. The paper bank stores its PDFs in a single shared
// folder, so the client only knows how to enumerate that folder.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://www.googleapis.com/drive/v3"
	listFields     = "files(id,name,webViewLink,modifiedTime),nextPageToken"
	requestTimeout = 30 * time.Second
)

// File is one entry from the Drive listing. ModifiedTime is RFC 3339 as
// returned by the API.
type File struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	WebViewLink  string `json:"webViewLink"`
	ModifiedTime string `json:"modifiedTime"`
}

type listResponse struct {
	Files         []File `json:"files"`
	NextPageToken string `json:"nextPageToken"`
}

// Config holds the injected Drive settings. Nothing here is ever hard-coded:
// the API key and folder ID come from configuration at startup.
type Config struct {
	APIKey   string
	FolderID string
	// BaseURL overrides the Google endpoint, used by tests.
	BaseURL string
}

// Client lists PDF files in the configured folder.
type Client struct {
	apiKey     string
	folderID   string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Drive client from injected configuration.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:   cfg.APIKey,
		folderID: cfg.FolderID,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// ListFiles returns every PDF in the folder, following the nextPageToken
// chain until the listing is exhausted. The whole result is materialized
// before returning. ctx cancels the fetch between (and during) page requests.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	var all []File
	pageToken := ""
	pages := 0

	for {
		page, err := c.listPage(ctx, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Files...)
		pages++

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	c.logger.Debug().Int("files", len(all)).Int("pages", pages).Msg("Drive listing fetched")
	return all, nil
}

func (c *Client) listPage(ctx context.Context, pageToken string) (*listResponse, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("'%s' in parents and mimeType='application/pdf'", c.folderID))
	q.Set("key", c.apiKey)
	q.Set("fields", listFields)
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	reqURL := c.baseURL + "/files?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create drive request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log, Drive errors are JSON blobs.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().Int("status", resp.StatusCode).Bytes("body", snippet).Msg("Drive listing returned non-OK status")
		return nil, fmt.Errorf("drive listing failed with status %d", resp.StatusCode)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode drive response: %w", err)
	}
	return &page, nil
}
