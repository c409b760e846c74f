// Package assets talks to the external image CDN. Uploads go to the
// ImageKit REST endpoint; delivery URLs carry a tr: path segment so the
// CDN serves a resized, recompressed rendition instead of the original.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Asset is the handle returned by the CDN for an uploaded file.
type Asset struct {
	FileID   string `json:"fileId"`
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
}

// Transform describes the delivery-time transformation applied to an asset.
type Transform struct {
	Width   int
	Quality string // "auto" for automatic compression
	Format  string // e.g. "webp"
}

// Store is the contract the services depend on; tests substitute a fake.
type Store interface {
	Upload(ctx context.Context, data []byte, name, folder string) (*Asset, error)
	BuildURL(asset *Asset, tr Transform) string
}

// Client is an ImageKit-backed Store.
type Client struct {
	UploadURL   string
	URLEndpoint string
	PrivateKey  string
	HTTPClient  *http.Client
}

// NewClient creates a Store against the given ImageKit account.
func NewClient(uploadURL, urlEndpoint, privateKey string) *Client {
	return &Client{
		UploadURL:   uploadURL,
		URLEndpoint: strings.TrimSuffix(urlEndpoint, "/"),
		PrivateKey:  privateKey,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the file to the CDN's upload API and returns its handle.
func (c *Client) Upload(ctx context.Context, data []byte, name, folder string) (*Asset, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("fileName", name); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	// ImageKit authenticates uploads with the private key as basic auth user.
	req.SetBasicAuth(c.PrivateKey, "")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var asset Asset
	if err := json.NewDecoder(resp.Body).Decode(&asset); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &asset, nil
}

// BuildURL returns the delivery URL for the asset with the transformation
// encoded as a path segment, e.g. /tr:w-1280,q-auto,f-webp/cars/img.jpg.
func (c *Client) BuildURL(asset *Asset, tr Transform) string {
	var parts []string
	if tr.Width > 0 {
		parts = append(parts, fmt.Sprintf("w-%d", tr.Width))
	}
	if tr.Quality != "" {
		parts = append(parts, "q-"+tr.Quality)
	}
	if tr.Format != "" {
		parts = append(parts, "f-"+tr.Format)
	}

	path := asset.FilePath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(parts) == 0 {
		return c.URLEndpoint + path
	}
	return c.URLEndpoint + "/tr:" + strings.Join(parts, ",") + path
}
