package hn

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const BaseURL = "https://hacker-news.firebaseio.com"

// Story is the part of a Hacker News item the listing shows.
// URL is empty for text posts.
type Story struct {
	ID     int
	Title  string
	URL    string
	Score  int
	Author string
}

// Client interface for HN API operations.
type Client interface {
	StoryIDs(ctx context.Context, mode SortMode) ([]int, error)
	Story(ctx context.Context, id int) (*Story, error)
}

type httpClient struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a new HN API client with the given HTTP client.
func NewClient(client *http.Client) Client {
	return NewClientWithBaseURL(client, BaseURL)
}

// NewClientWithBaseURL creates a client against a custom base URL (mirrors, tests).
func NewClientWithBaseURL(client *http.Client, baseURL string) Client {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &httpClient{
		client:  client,
		baseURL: baseURL,
	}
}

// StoryIDs fetches the ranked story IDs for mode, in API order.
func (c *httpClient) StoryIDs(ctx context.Context, mode SortMode) ([]int, error) {
	url := fmt.Sprintf("%s/v0/%s.json", c.baseURL, mode.Endpoint())

	body, err := c.get(ctx, url, StageList, 0)
	if err != nil {
		return nil, err
	}
	return DecodeStoryIDs(body)
}

// Story fetches a single item and decodes it into a Story.
func (c *httpClient) Story(ctx context.Context, id int) (*Story, error) {
	url := fmt.Sprintf("%s/v0/item/%d.json", c.baseURL, id)

	body, err := c.get(ctx, url, StageItem, id)
	if err != nil {
		return nil, err
	}
	return DecodeStory(id, body)
}

func (c *httpClient) get(ctx context.Context, url string, stage Stage, id int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Stage: stage, ID: id, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Stage: stage, ID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Stage: stage, ID: id, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Stage: stage, ID: id, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}
