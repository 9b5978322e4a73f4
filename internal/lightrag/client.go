// Package lightrag talks to a LightRAG server over HTTP. Indexing and
// entity extraction are enrichment steps; callers treat failures here
// as degraded results, not fatal ones.
package lightrag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the LightRAG HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// RetryableError marks a failure worth retrying, such as a 429 or a
// 5xx from the server.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// InsertRequest is the body for POST /documents/text.
type InsertRequest struct {
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

// QueryRequest is the body for POST /query.
type QueryRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

// QueryResponse is the response from POST /query.
type QueryResponse struct {
	Response string `json:"response"`
}

// Available reports whether the server answers its health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// InsertText sends one chunk of text to the knowledge graph. The
// description ties the chunk back to its document for provenance.
func (c *Client) InsertText(ctx context.Context, docID, text string) error {
	body, err := json.Marshal(InsertRequest{
		Text:        text,
		Description: "chunk of " + docID,
	})
	if err != nil {
		return fmt.Errorf("marshal insert: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/text", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &RetryableError{Err: fmt.Errorf("insert text: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RetryableError{Err: fmt.Errorf("insert text %s: status %d: %s", docID, resp.StatusCode, string(respBody))}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("insert text %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}
	return nil
}

// Query runs a retrieval query. Mode is one of the LightRAG modes
// (naive, local, global, hybrid).
func (c *Client) Query(ctx context.Context, query, mode string) (string, error) {
	if mode == "" {
		mode = "hybrid"
	}
	body, err := json.Marshal(QueryRequest{Query: query, Mode: mode})
	if err != nil {
		return "", fmt.Errorf("marshal query: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("query: status %d: %s", resp.StatusCode, string(respBody))
	}

	var qr QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return "", fmt.Errorf("decode query response: %w", err)
	}
	return qr.Response, nil
}

// ExtractEntities asks the graph for the named entities in a piece of
// text. The server answers in prose, so the response is parsed as a
// comma or newline separated list.
func (c *Client) ExtractEntities(ctx context.Context, text string) ([]string, error) {
	sample := text
	if len(sample) > 2000 {
		sample = sample[:2000]
	}
	answer, err := c.Query(ctx, "List the named entities in this text, one per line, names only:\n\n"+sample, "naive")
	if err != nil {
		return nil, err
	}
	return parseEntityList(answer), nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
