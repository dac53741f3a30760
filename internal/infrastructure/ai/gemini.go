package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

const (
	defaultGeminiBaseURL  = "https://generativelanguage.googleapis.com"
	defaultRequestTimeout = 30 * time.Second

	// Upper bound on catalog pages fetched in one refresh.
	maxModelPages   = 10
	maxResponseSize = 4 << 20
)

// GeminiProvider calls the Generative Language REST API.
type GeminiProvider struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Interface
}

type GeminiOption func(*GeminiProvider)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(p *GeminiProvider) {
		p.httpClient = c
	}
}

func NewGeminiProvider(baseURL, apiKey string, timeout time.Duration, log logger.Interface, opts ...GeminiOption) *GeminiProvider {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	p := &GeminiProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ Provider = (*GeminiProvider)(nil)

type listModelsResponse struct {
	Models        []ModelInfo `json:"models"`
	NextPageToken string      `json:"nextPageToken"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (p *GeminiProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var (
		models    []ModelInfo
		pageToken string
	)
	for page := 0; page < maxModelPages; page++ {
		query := url.Values{}
		query.Set("pageSize", "1000")
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp listModelsResponse
		if err := p.do(ctx, http.MethodGet, "/v1beta/models?"+query.Encode(), nil, &resp); err != nil {
			return nil, err
		}
		models = append(models, resp.Models...)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return models, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	body := generateRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: userPrompt}},
		}},
	}
	if systemPrompt != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}

	var resp generateResponse
	if err := p.do(ctx, http.MethodPost, "/v1beta/"+normalizeModel(model)+":generateContent", body, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// do issues one request bounded by the provider timeout and decodes a JSON answer into out.
func (p *GeminiProvider) do(ctx context.Context, method, path string, in, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &GatewayError{Op: "http", Status: resp.StatusCode, Err: errors.New(apiErrorMessage(data, resp.Status))}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func apiErrorMessage(body []byte, fallback string) string {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}

func normalizeModel(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}
