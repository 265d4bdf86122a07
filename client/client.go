// Package client is a small typed client for the articles API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// ErrNotFound is returned for a 404 response.
var ErrNotFound = errors.New("client: not found")

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	http.Client
	Addr string
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/ping", &out); err != nil {
		return "", err
	}

	return out.Status, nil
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category

	return out, c.do(ctx, http.MethodGet, "/categories", &out)
}

func (c *Client) CategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodGet, "/categories/name/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) FeaturedArticles(ctx context.Context) ([]model.ArticleWithDetails, error) {
	var out []model.ArticleWithDetails

	return out, c.do(ctx, http.MethodGet, "/articles/featured", &out)
}

// RecentArticles leaves the limit to the server when limit is zero.
func (c *Client) RecentArticles(ctx context.Context, limit int) ([]model.ArticleWithDetails, error) {
	path := "/articles/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out []model.ArticleWithDetails

	return out, c.do(ctx, http.MethodGet, path, &out)
}

func (c *Client) ArticlesByCategory(ctx context.Context, categoryID int64) ([]model.ArticleWithDetails, error) {
	var out []model.ArticleWithDetails

	return out, c.do(ctx, http.MethodGet, "/articles/category/"+strconv.FormatInt(categoryID, 10), &out)
}

func (c *Client) Article(ctx context.Context, id int64) (*model.ArticleWithDetails, error) {
	var out model.ArticleWithDetails
	if err := c.do(ctx, http.MethodGet, "/articles/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) SearchArticles(ctx context.Context, query string) ([]model.ArticleWithDetails, error) {
	var out []model.ArticleWithDetails

	return out, c.do(ctx, http.MethodGet, "/search?q="+url.QueryEscape(query), &out)
}

func (c *Client) IncrementViews(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/articles/"+strconv.FormatInt(id, 10)+"/views", nil)
}

// do decodes a 2xx body into out unless out is nil.
func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(body, apiErr)

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
