package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"openfiles/internal/httpclient"
)

const (
	// DefaultBaseURL is the production OpenFiles API endpoint
	DefaultBaseURL = "https://api.openfiles.ai/functions/v1/api"
	// DefaultTimeout is the per-request timeout when none is configured
	DefaultTimeout = 30 * time.Second
)

// apiKeyPattern is the required credential format: the "oa_" prefix
// followed by the alphanumeric key body.
var apiKeyPattern = regexp.MustCompile(`^oa_[A-Za-z0-9]{32,}$`)

// Client is the OpenFiles transport client. It holds no file state; every
// operation is a single round trip against the remote service.
//
// A Client derived with WithBasePath shares the parent's underlying
// connections; only the root Client owns them, and only its Close
// releases them.
type Client struct {
	apiKey     string
	baseURL    string
	basePath   string
	httpClient *http.Client
	hooks      Hooks
	root       bool
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the production API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithTimeout sets the per-request timeout (default 30s). Ignored when a
// custom HTTP client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = httpclient.New(d) }
}

// WithBasePath scopes every relative path issued by this client under the
// given prefix.
func WithBasePath(p string) Option {
	return func(c *Client) { c.basePath = ResolvePath("", "", p) }
}

// WithHTTPClient supplies a custom *http.Client. The caller keeps
// ownership of its connections.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHooks installs an operation observer, e.g. prometheus metrics.
func WithHooks(h Hooks) Option {
	return func(c *Client) { c.hooks = h }
}

// New creates a Client. The API key format is validated here, before any
// network use; a malformed key fails with an api_key_error.
func New(apiKey string, opts ...Option) (*Client, error) {
	if !apiKeyPattern.MatchString(apiKey) {
		return nil, NewAPIKeyError("Invalid API key format: expected oa_ prefix followed by an alphanumeric key")
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		root:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = httpclient.New(DefaultTimeout)
	}

	return c, nil
}

// WithBasePath returns a derived Client whose base path is this client's
// base path joined with p. The receiver is unchanged, and the derived
// client shares the receiver's connections.
func (c *Client) WithBasePath(p string) *Client {
	derived := *c
	derived.basePath = ResolvePath(c.basePath, "", p)
	derived.root = false
	return &derived
}

// BasePath returns the path prefix this client scopes operations under.
func (c *Client) BasePath() string { return c.basePath }

// BaseURL returns the API endpoint this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases the idle connections owned by a root client. Closing a
// derived client is a no-op; its parent owns the connections.
func (c *Client) Close() {
	if c.root {
		c.httpClient.CloseIdleConnections()
	}
}

// writePayload is the request body for create, append and overwrite.
type writePayload struct {
	Path        string `json:"path,omitempty"`
	Content     string `json:"content"`
	ContentType string `json:"contentType,omitempty"`
	IsBase64    *bool  `json:"isBase64,omitempty"`
}

// editPayload is the request body for a find/replace edit.
type editPayload struct {
	OldString string `json:"oldString"`
	NewString string `json:"newString"`
}

// WriteFile creates a new file at the resolved path.
func (c *Client) WriteFile(ctx context.Context, req WriteFileRequest) (*FileMetadata, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	contentType := req.ContentType
	if contentType == "" {
		contentType = ContentTypeText
	}
	isBase64 := req.IsBase64
	payload := writePayload{
		Path:        path,
		Content:     req.Content,
		ContentType: string(contentType),
		IsBase64:    &isBase64,
	}

	var meta FileMetadata
	if err := c.do(ctx, "write_file", http.MethodPost, "/files", path, nil, payload, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ReadFile fetches file content. Version 0 reads the latest version.
func (c *Client) ReadFile(ctx context.Context, req ReadFileRequest) (*FileContent, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	query := url.Values{}
	if req.Version > 0 {
		query.Set("version", strconv.Itoa(req.Version))
	}

	var content FileContent
	if err := c.do(ctx, "read_file", http.MethodGet, "/files/"+escapePath(path), path, query, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// EditFile replaces one occurrence of OldString with NewString. The
// service rejects the edit with a validation error when OldString is not
// present in the file.
func (c *Client) EditFile(ctx context.Context, req EditFileRequest) (*FileMetadata, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	payload := editPayload{OldString: req.OldString, NewString: req.NewString}

	var meta FileMetadata
	if err := c.do(ctx, "edit_file", http.MethodPut, "/files/edit/"+escapePath(path), path, nil, payload, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListFiles lists files under a directory prefix, paginated.
func (c *Client) ListFiles(ctx context.Context, req ListFilesRequest) (*FileList, error) {
	directory := ResolvePath(c.basePath, req.BasePath, req.Directory)
	query := url.Values{}
	query.Set("directory", directory)
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		query.Set("offset", strconv.Itoa(req.Offset))
	}
	if req.Recursive {
		query.Set("recursive", "true")
	}

	var list FileList
	if err := c.do(ctx, "list_files", http.MethodGet, "/files", directory, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AppendFile appends content to an existing file, producing a new version.
func (c *Client) AppendFile(ctx context.Context, req AppendFileRequest) (*FileMetadata, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	payload := writePayload{Content: req.Content}

	var meta FileMetadata
	if err := c.do(ctx, "append_to_file", http.MethodPut, "/files/append/"+escapePath(path), path, nil, payload, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// OverwriteFile replaces the entire content of an existing file,
// producing a new version.
func (c *Client) OverwriteFile(ctx context.Context, req OverwriteFileRequest) (*FileMetadata, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	isBase64 := req.IsBase64
	payload := writePayload{
		Content:     req.Content,
		ContentType: string(req.ContentType),
		IsBase64:    &isBase64,
	}

	var meta FileMetadata
	if err := c.do(ctx, "overwrite_file", http.MethodPut, "/files/overwrite/"+escapePath(path), path, nil, payload, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetMetadata fetches file metadata without content. Version 0 means latest.
func (c *Client) GetMetadata(ctx context.Context, req GetMetadataRequest) (*FileMetadata, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	query := url.Values{}
	query.Set("metadata", "true")
	if req.Version > 0 {
		query.Set("version", strconv.Itoa(req.Version))
	}

	var meta FileMetadata
	if err := c.do(ctx, "get_file_metadata", http.MethodGet, "/files/"+escapePath(path), path, query, nil, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetVersions fetches a file's version history, paginated.
func (c *Client) GetVersions(ctx context.Context, req GetVersionsRequest) (*VersionList, error) {
	path := ResolvePath(c.basePath, req.BasePath, req.Path)
	query := url.Values{}
	query.Set("versions", "true")
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		query.Set("offset", strconv.Itoa(req.Offset))
	}

	var versions VersionList
	if err := c.do(ctx, "get_file_versions", http.MethodGet, "/files/"+escapePath(path), path, query, nil, &versions); err != nil {
		return nil, err
	}
	return &versions, nil
}

// do performs one request/response cycle: marshal, send, classify
// failures, unwrap the response envelope into out.
func (c *Client) do(ctx context.Context, op, method, endpoint, path string, query url.Values, payload, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, op, method, endpoint, path, query, payload, out)
	if c.hooks != nil {
		status := "success"
		var typed *Error
		if errors.As(err, &typed) {
			status = string(typed.Kind)
		}
		c.hooks.ObserveOperation(op, status, time.Since(start))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, endpoint, path string, query url.Values, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return NewOperationError(op, 0, "failed to marshal request: "+err.Error())
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return NewOperationError(op, 0, "failed to create request: "+err.Error())
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("openfiles request", "operation", op, "method", method, "path", path)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return NewNetworkError(op, err)
	}
	defer func() {
		_ = resp.Body.Close() //nolint:errcheck
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Classify(op, path, resp.StatusCode, respBody, resp.Header)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return NewOperationError(op, resp.StatusCode, "failed to unmarshal response: "+err.Error())
	}
	if !envelope.Success {
		message := envelope.Message
		if envelope.Error != nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		}
		return NewOperationError(op, resp.StatusCode, fmt.Sprintf("operation reported failure: %s", message))
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return NewOperationError(op, resp.StatusCode, "failed to unmarshal response data: "+err.Error())
		}
	}
	return nil
}

// escapePath escapes each path segment while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
