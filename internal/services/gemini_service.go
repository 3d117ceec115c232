package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shivam7147/Quizio-backend/internal/utils"
)

const (
	geminiEndpoint       = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	geminiRequestTimeout = 30 * time.Second
)

// GeminiService proxies a text prompt to the Gemini generateContent endpoint
// and relays the provider's JSON response untouched. A service constructed
// with an empty API key rejects every call.
type GeminiService interface {
	Ask(ctx context.Context, prompt string) (json.RawMessage, error)
}

type geminiService struct {
	apiKey     string
	httpClient *http.Client
}

func NewGeminiService(apiKey string) GeminiService {
	return &geminiService{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: geminiRequestTimeout,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

func (s *geminiService) Ask(ctx context.Context, prompt string) (json.RawMessage, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key not configured", utils.ErrExternalServiceFailure)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiEndpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini request failed: %v", utils.ErrExternalServiceFailure, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading gemini response: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		utils.Logger.Errorf("Gemini API returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: gemini api status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}

	return json.RawMessage(payload), nil
}
