package cdn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"restaurant-ordering/internal/platform/httpclient"
)

// Client sube imágenes a un servicio de assets externo y devuelve la
// URL pública. Implementa menus.Uploader.
type Client struct {
	http   *httpclient.Client
	apiKey string
}

func New(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("cdn: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, apiKey: apiKey}, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload manda el archivo como multipart (campo "file") al endpoint
// /v1/uploads. El body streamea por un pipe para no cargar el archivo
// entero en memoria.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.http.BaseURL+"/v1/uploads", pr)
	if err != nil {
		return "", fmt.Errorf("cdn: new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("cdn: upload: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &httpclient.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var out uploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("cdn: decode response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", errors.New("cdn: response missing url")
	}
	return out.URL, nil
}
