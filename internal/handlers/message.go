package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"chatbot-backend/internal/models"
	"chatbot-backend/internal/services"
)

// chatService is the slice of the service layer the handlers need;
// tests substitute it with a fake.
type chatService interface {
	HandleSend(ctx context.Context, conversation []models.ChatMessage) (*models.Message, *models.Message, error)
	History(ctx context.Context) ([]*models.Message, error)
}

type MessageHandler struct {
	service chatService
	devMode bool
}

// NewMessageHandler builds the handler. devMode gates the details field
// on 500 responses.
func NewMessageHandler(service chatService, devMode bool) *MessageHandler {
	return &MessageHandler{service: service, devMode: devMode}
}

// GetMessages handles GET /messages: the full history, ascending by
// timestamp. An empty store yields 200 [].
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.History(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

type sendError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Send handles POST /send: persist the user turn, relay the
// conversation to the inference endpoint, persist and return the reply.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, sendError{Error: "invalid request body"})
		return
	}

	userMessage, aiMessage, err := h.service.HandleSend(r.Context(), req.Messages)
	if err != nil {
		h.writeSendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SendResponse{
		Status:      "success",
		UserMessage: userMessage,
		AIMessage:   aiMessage,
	})
}

func (h *MessageHandler) writeSendError(w http.ResponseWriter, err error) {
	var bad *services.BadRequestError
	if errors.As(err, &bad) {
		writeJSON(w, http.StatusBadRequest, sendError{Error: bad.Message})
		return
	}

	var gw *services.GatewayError
	if errors.As(err, &gw) {
		resp := sendError{Error: gw.Message}
		if h.devMode && gw.Err != nil {
			resp.Details = gw.Err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp := sendError{Error: "failed to process message"}
	if h.devMode {
		resp.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
