// Package assistant proxies the storefront's shopping assistant: streamed
// chat replies and image-based product search. The upstream service is best
// effort; failures degrade to a static apology or an empty result instead of
// surfacing errors to the shopper.
package assistant

import (
	"bufio"
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/almasoman/almas-api/internal/domain/product"
)

// Apology is streamed as the only chunk when the upstream chat call fails.
const Apology = "Sorry, the shopping assistant is unavailable right now. Please try again in a moment."

// Assistant answers shopper questions and ranks catalog products against an
// uploaded image.
type Assistant interface {
	// Chat streams reply chunks to emit. It never fails: upstream errors
	// degrade to a single Apology chunk.
	Chat(ctx context.Context, message string, emit func(chunk string))
	// ImageSearch returns catalog product IDs visually similar to the image,
	// most similar first. Upstream errors degrade to an empty slice.
	ImageSearch(ctx context.Context, imageBase64, mimeType string, catalog []product.Product) []string
}

// Client implements Assistant against the assistant service's HTTP API.
type Client struct {
	http *resty.Client
	lg   *zap.Logger
}

var _ Assistant = (*Client)(nil)

// NewClient creates a Client for the assistant service at baseURL.
func NewClient(baseURL string, lg *zap.Logger) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL),
		lg:   lg,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat POSTs the message and forwards the upstream SSE data lines as chunks.
func (c *Client) Chat(ctx context.Context, message string, emit func(chunk string)) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Message: message}).
		SetHeader("Accept", "text/event-stream").
		SetDoNotParseResponse(true).
		Post("/v1/chat")
	if err != nil {
		c.lg.Warn("assistant chat request", zap.Error(err))
		emit(Apology)
		return
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() >= 400 {
		c.lg.Warn("assistant chat response", zap.Int("status", resp.StatusCode()))
		emit(Apology)
		return
	}

	emitted := false
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}
		emit(data)
		emitted = true
	}
	if err := scanner.Err(); err != nil {
		c.lg.Warn("assistant chat stream", zap.Error(err))
	}
	if !emitted {
		emit(Apology)
	}
}

type imageSearchRequest struct {
	Image    string               `json:"image"`
	MimeType string               `json:"mime_type"`
	Catalog  []imageSearchProduct `json:"catalog"`
}

type imageSearchProduct struct {
	ID       string `json:"id"`
	NameEn   string `json:"name_en"`
	NameAr   string `json:"name_ar"`
	Category string `json:"category"`
}

type imageSearchResponse struct {
	ProductIDs []string `json:"product_ids"`
}

// ImageSearch sends the image plus a trimmed catalog summary and returns the
// IDs the assistant ranked as similar.
func (c *Client) ImageSearch(ctx context.Context, imageBase64, mimeType string, catalog []product.Product) []string {
	req := imageSearchRequest{
		Image:    imageBase64,
		MimeType: mimeType,
		Catalog:  make([]imageSearchProduct, len(catalog)),
	}
	for i, p := range catalog {
		req.Catalog[i] = imageSearchProduct{
			ID:       p.ID,
			NameEn:   p.Name.En,
			NameAr:   p.Name.Ar,
			Category: p.Category,
		}
	}

	var result imageSearchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/v1/image-search")
	if err != nil {
		c.lg.Warn("assistant image search request", zap.Error(err))
		return nil
	}
	if resp.IsError() {
		c.lg.Warn("assistant image search response", zap.Int("status", resp.StatusCode()))
		return nil
	}
	return result.ProductIDs
}
