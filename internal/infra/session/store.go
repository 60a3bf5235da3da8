// Package session keeps per-sender conversation state outside the process, so
// an open order flow survives restarts and is shared across replicas.
package session

import (
	"context"
	"errors"

	"github.com/echtwell/echt-crm/internal/entity"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	// Get returns ErrNotFound when the sender has no open session.
	Get(ctx context.Context, phone string) (*entity.ConversationSession, error)
	Put(ctx context.Context, s *entity.ConversationSession) error
	Delete(ctx context.Context, phone string) error
}
