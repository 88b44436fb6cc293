package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatbot-backend/internal/models"
)

func TestComplete_Success(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Expected path /api/chat, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode upstream request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":{"role":"assistant","content":"hi there"}}`))
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3", 5*time.Second)
	reply, err := svc.Complete(context.Background(), []models.ChatMessage{
		{Role: "user", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("Expected reply 'hi there', got %q", reply)
	}

	if got.Model != "llama3" {
		t.Errorf("Expected model 'llama3', got %q", got.Model)
	}
	if got.Stream {
		t.Error("Expected stream: false")
	}
	if len(got.Messages) != 2 {
		t.Fatalf("Expected 2 upstream messages (preamble + conversation), got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != systemPreamble {
		t.Errorf("Expected system preamble first, got %+v", got.Messages[0])
	}
	if got.Messages[1].Content != "hello" {
		t.Errorf("Expected conversation after preamble, got %+v", got.Messages[1])
	}
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3", 5*time.Second)
	_, err := svc.Complete(context.Background(), []models.ChatMessage{{Role: "user", Content: "hello"}})

	var gw *GatewayError
	if !errors.As(err, &gw) {
		t.Fatalf("Expected *GatewayError, got %v", err)
	}
}

func TestComplete_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3", 5*time.Second)
	_, err := svc.Complete(context.Background(), []models.ChatMessage{{Role: "user", Content: "hello"}})

	var gw *GatewayError
	if !errors.As(err, &gw) {
		t.Fatalf("Expected *GatewayError, got %v", err)
	}
}

func TestComplete_MissingReplyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{}}`))
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3", 5*time.Second)
	_, err := svc.Complete(context.Background(), []models.ChatMessage{{Role: "user", Content: "hello"}})

	var gw *GatewayError
	if !errors.As(err, &gw) {
		t.Fatalf("Expected *GatewayError, got %v", err)
	}
}

func TestComplete_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	svc := NewOllamaService(server.URL, "llama3", time.Second)
	_, err := svc.Complete(context.Background(), []models.ChatMessage{{Role: "user", Content: "hello"}})

	var gw *GatewayError
	if !errors.As(err, &gw) {
		t.Fatalf("Expected *GatewayError, got %v", err)
	}
}
