// Package embedding turns record summary text into fixed-length vectors
// using the Gemini embedding API.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini embedding model used when EMBEDDING_MODEL
	// is not set.
	DefaultModel = "gemini-embedding-001"

	// Dimensions is the fixed output dimensionality requested from the
	// model. Vectors of different lengths are not comparable, so this must
	// not change once a collection holds data.
	Dimensions = 768

	apiKeyEnv = "GEMINI_API_KEY"
	modelEnv  = "EMBEDDING_MODEL"
)

// ErrNotConfigured is returned when the Gemini API key is absent. It is a
// configuration error, not a data error, and is checked before any network
// call is attempted.
var ErrNotConfigured = errors.New("embedding: GEMINI_API_KEY is not configured")

// RequestError wraps a non-success response from the embedding API so the
// upstream detail survives to the caller.
type RequestError struct {
	Model string
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("embedding: request to model %q failed: %v", e.Model, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client is the minimal surface the stores need. GeminiClient is the real
// implementation; tests substitute fakes.
type Client interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiClient embeds text with the Gemini API. The zero value is not
// usable; construct it with NewGeminiClient or FromEnv.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient builds a client with an explicit key and model. An empty
// model selects DefaultModel.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

// FromEnv builds a client from GEMINI_API_KEY and EMBEDDING_MODEL. A missing
// key is not an error here; Embed reports ErrNotConfigured before making any
// call, so commands that never embed work without credentials.
func FromEnv() *GeminiClient {
	return NewGeminiClient(os.Getenv(apiKeyEnv), os.Getenv(modelEnv))
}

// Embed returns the embedding vector for text. The API key presence is
// verified before the request; upstream failures come back as *RequestError.
// A fresh genai client is constructed per call, matching the short-lived
// handle model used everywhere else in this module.
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Embed: create genai client: %w", err)
	}

	resp, err := client.Models.EmbedContent(ctx, c.model, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr[int32](Dimensions),
	})
	if err != nil {
		return nil, &RequestError{Model: c.model, Err: err}
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, &RequestError{Model: c.model, Err: errors.New("empty embedding in response")}
	}
	return resp.Embeddings[0].Values, nil
}
