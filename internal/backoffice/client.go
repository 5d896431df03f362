package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"

	"advisory-console/internal/config"
	"advisory-console/internal/logging"
	"advisory-console/internal/models"
)

// APIError is a non-2xx response from the back office. Message carries the
// server's error text verbatim so it can be shown to the operator as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAPIError reports whether err carries an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Client talks to the back-office REST API. Requests are rate limited and never retried.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *logging.Logger
}

// New creates a Client for cfg.Backoffice.
func New(cfg config.Config, logger *logging.Logger) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = cfg.Backoffice.Timeout

	return &Client{
		baseURL: strings.TrimRight(cfg.Backoffice.BaseURL, "/"),
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.Backoffice.RateLimit)), cfg.Backoffice.RateLimit),
		logger:  logger,
	}
}

// Upload is a file sent as one part of a multipart form.
type Upload struct {
	FileName string
	Data     []byte
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON sends in (if non-nil) as a JSON body and decodes a 2xx response into out (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any, header http.Header) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return c.do(req, out)
}

// doMultipart posts the given files and form fields as multipart/form-data.
func (c *Client) doMultipart(ctx context.Context, path string, files map[string]Upload, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for field, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(f.FileName)))
		h.Set("Content-Type", mimetype.Detect(f.Data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write form file %s: %w", field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("failed to create POST %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("backoffice rate limit wait: %w", err)
	}

	c.logger.Debugf("Backoffice request: %s %s", req.Method, req.URL.Path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s %s response: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
		c.logger.Warnf("Backoffice %s %s returned %d: %s", req.Method, req.URL.Path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// errorMessage prefers the body's "error", then "message", then the status text.
func errorMessage(status int, data []byte) string {
	var body models.MessageResponse
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
