// Package services orchestrates ledger writes across the store and the
// optional AMQP event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"campusbudget/internal/amqp"
	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
	"campusbudget/internal/log"
)

// EventPublisher emits ledger change notifications. Satisfied by *amqp.Client.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, kind, userID, entityID string) error
	Close() error
}

// LedgerService wraps a ledger store and publishes change events after
// successful writes. Publishing is best effort and never fails a request.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// CreateTransaction saves a transaction and publishes a created event
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	id, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	s.publishEvent(ctx, amqp.EventTransactionCreated, t.UserID, id)
	return id, nil
}

// DeleteTransaction removes a transaction and publishes a deleted event
func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}

	s.publishEvent(ctx, amqp.EventTransactionDeleted, userID, id)
	return nil
}

// CreateGoal saves a savings goal and publishes a created event. New goals
// start out active unless the caller set a status explicitly.
func (s *LedgerService) CreateGoal(ctx context.Context, g core.Goal) (string, error) {
	if g.Status == "" {
		g.Status = core.Active
	}

	id, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return "", fmt.Errorf("save goal: %w", err)
	}

	s.publishEvent(ctx, amqp.EventGoalCreated, g.UserID, id)
	return id, nil
}

// AddContribution adds money to a goal. The goal is marked completed as soon
// as the saved amount reaches the target.
func (s *LedgerService) AddContribution(ctx context.Context, userID, goalID string, amount core.Money) (core.Goal, error) {
	if amount.Cents <= 0 {
		return core.Goal{}, core.ErrInvalidAmount
	}

	goal, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		return core.Goal{}, err
	}

	goal.Saved.Cents += amount.Cents
	if goal.Saved.Cents >= goal.Target.Cents {
		goal.Status = core.Completed
	}

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}

	slog.InfoContext(ctx, "Contribution added",
		log.FieldComponent, log.ComponentLedger,
		log.FieldOperation, log.OpUpdate,
		log.FieldGoalID, goal.ID,
		log.FieldUserID, userID,
		log.FieldAmountCents, amount.Cents,
		"saved_cents", goal.Saved.Cents,
		"status", goal.Status)

	s.publishEvent(ctx, amqp.EventGoalContribution, userID, goalID)
	return goal, nil
}

// DeleteGoal removes a goal and publishes a deleted event, so downstream
// consumers stop acting on it.
func (s *LedgerService) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteGoal(ctx, userID, id); err != nil {
		return err
	}

	s.publishEvent(ctx, amqp.EventGoalDeleted, userID, id)
	return nil
}

func (s *LedgerService) publishEvent(ctx context.Context, kind, userID, entityID string) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishLedgerEvent(ctx, kind, userID, entityID); err != nil {
		fields := log.NewFields().
			WithComponent(log.ComponentLedger).
			WithOperation(log.OpPublish).
			WithUserID(userID).
			WithError(err)
		fields[log.FieldKind] = kind
		fields["entity_id"] = entityID
		slog.ErrorContext(ctx, "Failed to publish ledger event", fields.ToSlice()...)
		// Don't fail the request, the write already succeeded locally
	}
}

// Close closes the event publisher if one is configured
func (s *LedgerService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close event publisher: %w", err)
		}
	}
	return nil
}
