package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chatbot-backend/internal/models"
)

// systemPreamble is prepended to every conversation sent upstream.
const systemPreamble = "You are a helpful assistant."

type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaService(baseURL, model string, timeout time.Duration) *OllamaService {
	return &OllamaService{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type ollamaChatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Complete sends the conversation, preceded by the fixed system
// preamble, to the inference endpoint and returns the single reply
// text. One attempt only; any failure surfaces immediately.
func (s *OllamaService) Complete(ctx context.Context, conversation []models.ChatMessage) (string, error) {
	payload := ollamaChatRequest{
		Model:    s.model,
		Messages: append([]models.ChatMessage{{Role: models.RoleSystem, Content: systemPreamble}}, conversation...),
		Stream:   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &GatewayError{Message: "failed to encode inference request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Message: "failed to build inference request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &GatewayError{Message: fmt.Sprintf("inference request failed: %v", err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &GatewayError{Message: fmt.Sprintf("inference endpoint returned status %d: %s", resp.StatusCode, detail)}
	}

	var parsed ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &GatewayError{Message: "failed to decode inference response", Err: err}
	}

	if parsed.Message.Content == "" {
		return "", &GatewayError{Message: "inference response contained no reply text"}
	}

	return parsed.Message.Content, nil
}
