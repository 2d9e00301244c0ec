// Package gemini wraps the Google GenAI SDK behind a small single-shot
// generation client. This is part of the platform layer and contains no
// business logic.
package gemini

import (
	"context"
	"errors"
	"time"

	"estimate_backend/platform/apperr"

	"google.golang.org/genai"
)

// Config holds the generation endpoint settings. All values are injected
// explicitly at construction; the client never reads process environment.
type Config struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int32
	Temperature     float32
}

// Part is one piece of a multimodal prompt: either text or an inline image.
type Part struct {
	Text      string
	ImageMIME string
	ImageData []byte
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart builds an inline image part.
func ImagePart(mimeType string, data []byte) Part {
	return Part{ImageMIME: mimeType, ImageData: data}
}

// Client is a single-shot generation client. One call per request, bounded
// by the configured timeout; retrying is the caller's (manual) decision.
type Client struct {
	cfg    Config
	client *genai.Client
}

// NewClient creates a Gemini client for the configured model.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, client: client}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

// GenerateJSON performs one generation call with a strict-JSON response hint
// and returns the raw response text. The hint is advisory: callers must still
// treat the output as unstructured. Failures map onto the apperr taxonomy;
// expiry of the configured timeout is its own category.
func (c *Client) GenerateJSON(ctx context.Context, system string, parts []Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.ImageData != nil {
			genaiParts = append(genaiParts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: p.ImageMIME, Data: p.ImageData},
			})
			continue
		}
		genaiParts = append(genaiParts, genai.NewPartFromText(p.Text))
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: genaiParts}}

	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.cfg.Temperature),
		MaxOutputTokens:  c.cfg.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
	if system != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(system)},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, genCfg)
	if err != nil {
		return "", mapGenerateError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", apperr.NoContent("generation returned no usable content")
	}

	return text, nil
}

// mapGenerateError translates transport failures into the domain taxonomy.
// Every upstream non-success surfaces to the user as the same retryable
// failure; the distinct kinds exist for logs and status codes.
func mapGenerateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindTimeout, "generation timed out", err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400:
			return apperr.Wrap(apperr.KindBadRequest, "generation request was rejected", err)
		case 401, 403:
			return apperr.Wrap(apperr.KindUnavailable, "generation endpoint denied access", err)
		case 429:
			return apperr.Wrap(apperr.KindUnavailable, "generation endpoint is rate limited", err)
		case 500, 503:
			return apperr.Wrap(apperr.KindUnavailable, "generation endpoint is overloaded", err)
		}
	}

	return apperr.Wrap(apperr.KindUnavailable, "generation call failed", err)
}
