package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/safsequence/Avance-Fragrance/internal/events"
	"github.com/safsequence/Avance-Fragrance/internal/models"
	"github.com/safsequence/Avance-Fragrance/internal/repo"
	"github.com/safsequence/Avance-Fragrance/internal/transport"
)

type ContactService struct {
	Repo   *repo.GormRepo
	Events *events.Emitter
}

func (s *ContactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.Repo.ListContactMessages(ctx)
}

func (s *ContactService) CreateMessage(ctx context.Context, req transport.CreateContactMessageRequest) (*models.ContactMessage, error) {
	m := &models.ContactMessage{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Message:   req.Message,
	}
	if err := s.Repo.CreateContactMessage(ctx, m); err != nil {
		return nil, err
	}

	s.Events.Emit(ctx, events.TopicContact, m.ID, events.ContactMessageReceived, m)
	return m, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id uint) error {
	if err := s.Repo.MarkMessageRead(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: message %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
