// Package client is a typed HTTP client for the blog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"lifeblog/internal/apperr"
	"lifeblog/internal/auth"
)

type Category struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type PostCategory struct {
	Category Category `json:"category"`
}

type Post struct {
	ID            string         `json:"id" validate:"required"`
	Title         string         `json:"title" validate:"required"`
	Content       string         `json:"content"`
	CoverImageKey string         `json:"coverImageKey,omitempty"`
	CoverImageURL string         `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" validate:"required"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Categories    []PostCategory `json:"categories" validate:"dive"`
}

type PostInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	CoverImageKey string   `json:"coverImageKey,omitempty"`
	CategoryIDs   []string `json:"categoryIds"`
}

type UploadedImage struct {
	Key string `json:"key" validate:"required"`
	URL string `json:"url" validate:"required,url"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client fetches only when a method is called; nothing is cached or
// refreshed in the background.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials auth.CredentialProvider
	validate    *validator.Validate
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, credentials auth.CredentialProvider, opts ...Option) *Client {
	if credentials == nil {
		credentials = auth.StaticCredentials("")
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		credentials: credentials,
		validate:    validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, "", false, &posts); err != nil {
		return nil, err
	}
	if err := c.validate.Var(posts, "dive"); err != nil {
		return nil, malformed(err)
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, "", false, &post); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(post); err != nil {
		return nil, malformed(err)
	}
	return &post, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, "", false, &categories); err != nil {
		return nil, err
	}
	if err := c.validate.Var(categories, "dive"); err != nil {
		return nil, malformed(err)
	}
	return categories, nil
}

func (c *Client) CreatePost(ctx context.Context, input PostInput) (*Post, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode post: %w", err)
	}

	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/admin/posts", bytes.NewReader(body), "application/json", true, &post); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(post); err != nil {
		return nil, malformed(err)
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, input PostInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("encode post: %w", err)
	}
	return c.do(ctx, http.MethodPut, "/api/admin/posts/"+url.PathEscape(id), bytes.NewReader(body), "application/json", true, nil)
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/posts/"+url.PathEscape(id), nil, "", true, nil)
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("encode category: %w", err)
	}

	var category Category
	if err := c.do(ctx, http.MethodPost, "/api/admin/categories", bytes.NewReader(body), "application/json", true, &category); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(category); err != nil {
		return nil, malformed(err)
	}
	return &category, nil
}

// UploadCoverImage sends the image as the multipart field "file".
func (c *Client) UploadCoverImage(ctx context.Context, filename string, image io.Reader) (*UploadedImage, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var uploaded UploadedImage
	if err := c.do(ctx, http.MethodPost, "/api/admin/images", buf, writer.FormDataContentType(), true, &uploaded); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(uploaded); err != nil {
		return nil, malformed(err)
	}
	return &uploaded, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authenticated bool, out interface{}) error {
	var token string
	if authenticated {
		var ok bool
		token, ok = c.credentials.CurrentToken(ctx)
		if !ok {
			return apperr.Unauthorized("no credentials for %s %s", method, path)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Unavailable("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformed(err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)

	message := body.Error
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperr.Validation("%s", message)
	case http.StatusRequestEntityTooLarge:
		return apperr.TooLarge("%s", message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.Unauthorized("%s", message)
	case http.StatusNotFound:
		return apperr.NotFound("%s", message)
	case http.StatusBadGateway:
		return apperr.UploadFailed(message, nil)
	default:
		return apperr.Unavailable(message, fmt.Errorf("status %d", resp.StatusCode))
	}
}

func malformed(err error) error {
	return apperr.Unavailable("malformed response", err)
}
