package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatbot-backend/internal/models"
)

// ValidationError reports a message that violates the store invariants:
// empty content or a role outside the closed set.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// validateMessage enforces the store invariants before any SQL runs.
func validateMessage(role, content string) error {
	if !models.ValidRole(role) {
		return &ValidationError{Field: "role", Message: fmt.Sprintf("invalid role %q", role)}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

// Insert persists one message and returns it with its assigned id. A
// zero timestamp defaults to the insertion time.
func (r *MessageRepo) Insert(ctx context.Context, role, content string, timestamp time.Time) (*models.Message, error) {
	if err := validateMessage(role, content); err != nil {
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	m := &models.Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: timestamp,
	}

	query := `INSERT INTO messages (id, role, content, timestamp)
		VALUES ($1, $2, $3, $4) RETURNING timestamp`

	err := r.pool.QueryRow(ctx, query, m.ID, m.Role, m.Content, m.Timestamp).Scan(&m.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	return m, nil
}

// ListAll returns every stored message in ascending timestamp order. An
// empty table yields an empty slice, not nil, so it encodes as [].
func (r *MessageRepo) ListAll(ctx context.Context) ([]*models.Message, error) {
	query := `SELECT id, role, content, timestamp FROM messages ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}
