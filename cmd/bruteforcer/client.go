package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wricardo/lonely-knight/game/service"
)

// Client talks to a running path server over REST
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, bytes.TrimSpace(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// CreateSession starts a session on boardID and remembers its ID
func (c *Client) CreateSession(ctx context.Context, boardID string) (*service.BoardState, error) {
	var info service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", map[string]string{"board_id": boardID}, &info); err != nil {
		return nil, err
	}
	c.sessionID = info.ID
	return info.State, nil
}

// UseSession continues an existing session
func (c *Client) UseSession(ctx context.Context, id string) (*service.BoardState, error) {
	c.sessionID = id
	var state service.BoardState
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+id+"/state", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) Compare(ctx context.Context, req service.PathRequest) (*service.CompareResult, error) {
	var result service.CompareResult
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+c.sessionID+"/compare", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteSession(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+c.sessionID, nil, nil)
}
