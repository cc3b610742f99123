// Package api provides an HTTP client for communicating with a hushfile server.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

// StatusError is returned when the server answers with a non-2xx status.
// The body is kept verbatim because hushfile servers put the failure reason
// there as plain text or JSON.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// Client is an HTTP client for the hushfile API. The API is unauthenticated;
// everything sensitive is encrypted before it leaves the machine.
type Client struct {
	baseURL    string
	httpClient *http.Client
	debug      bool
}

// New creates a Client for the server at baseURL.
// When insecure is true, TLS certificate verification is skipped, which allows
// connecting to servers using self-signed certificates.
// When debug is true, requests and raw API responses are printed to stderr.
func New(baseURL string, insecure, debug bool) *Client {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: insecure, // #nosec G402: intentional, controlled by --insecure flag
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		debug:   debug,
		httpClient: &http.Client{
			// Generous: a single chunk upload on a slow uplink can take a while.
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				TLSClientConfig: tlsCfg,
			},
		},
	}
}

// Get performs a GET request and decodes the JSON response into dst.
func (c *Client) Get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

// PostForm performs a POST request with a URL-encoded form body and decodes
// the JSON response into dst.
func (c *Client) PostForm(ctx context.Context, path, form string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

// PostMultipart posts the named form fields plus one file field as
// multipart/form-data and decodes the JSON response into dst. The hushfile
// upload endpoint only accepts this shape.
func (c *Client) PostMultipart(ctx context.Context, path, fileField, fileData string, fields map[string]string, dst any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("writing multipart field %s: %w", name, err)
		}
	}
	part, err := mw.CreateFormFile(fileField, fileField)
	if err != nil {
		return fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := io.WriteString(part, fileData); err != nil {
		return fmt.Errorf("writing chunk data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

// GetText performs a GET and returns the raw response body as text. Envelope
// downloads use this because the server hands chunks back exactly as the
// base64 text that was uploaded.
func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "> GET %s\n", req.URL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "< %s (%d bytes)\n", resp.Status, len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// do executes the request and decodes the response body into dst (if non-nil).
// It returns a *StatusError for non-2xx status codes.
func (c *Client) do(req *http.Request, dst any) error {
	if c.debug {
		fmt.Fprintf(os.Stderr, "> %s %s\n", req.Method, req.URL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "< %s\n", resp.Status)
		if len(body) > 0 {
			var buf bytes.Buffer
			if json.Indent(&buf, body, "  ", "  ") == nil {
				fmt.Fprintf(os.Stderr, "  %s\n", buf.String())
			} else {
				fmt.Fprintf(os.Stderr, "  %s\n", body)
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if dst != nil {
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
