package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"chatbot-backend/internal/models"
	"chatbot-backend/internal/repository"
)

// MessageStore is the slice of the repository the chat flow needs.
type MessageStore interface {
	Insert(ctx context.Context, role, content string, timestamp time.Time) (*models.Message, error)
	ListAll(ctx context.Context) ([]*models.Message, error)
}

// Completer produces one reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, conversation []models.ChatMessage) (string, error)
}

type ChatService struct {
	store   MessageStore
	gateway Completer
}

func NewChatService(store MessageStore, gateway Completer) *ChatService {
	return &ChatService{store: store, gateway: gateway}
}

// HandleSend runs one exchange: persist the caller's latest user turn,
// obtain the assistant reply, persist it, and return both stored turns.
//
// The two writes are not transactional. A gateway failure after step 2
// leaves the user turn in the store with no matching reply; that
// orphaned turn is accepted, not rolled back.
func (s *ChatService) HandleSend(ctx context.Context, conversation []models.ChatMessage) (*models.Message, *models.Message, error) {
	content, err := latestUserContent(conversation)
	if err != nil {
		return nil, nil, err
	}

	userMessage, err := s.store.Insert(ctx, models.RoleUser, content, time.Now())
	if err != nil {
		var ve *repository.ValidationError
		if errors.As(err, &ve) {
			return nil, nil, &BadRequestError{Message: ve.Error()}
		}
		return nil, nil, err
	}

	reply, err := s.gateway.Complete(ctx, conversation)
	if err != nil {
		return nil, nil, err
	}

	aiMessage, err := s.store.Insert(ctx, models.RoleAssistant, reply, time.Now())
	if err != nil {
		return nil, nil, err
	}

	return userMessage, aiMessage, nil
}

// History returns every stored turn in chronological order.
func (s *ChatService) History(ctx context.Context) ([]*models.Message, error) {
	return s.store.ListAll(ctx)
}

// latestUserContent extracts the trimmed text of the most recent
// user-role turn in the conversation.
func latestUserContent(conversation []models.ChatMessage) (string, error) {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role != models.RoleUser {
			continue
		}
		content := strings.TrimSpace(conversation[i].Content)
		if content == "" {
			return "", &BadRequestError{Message: "user message is empty"}
		}
		return content, nil
	}
	return "", &BadRequestError{Message: "no user message in conversation"}
}
