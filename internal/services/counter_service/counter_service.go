package services

import (
	"context"
	"fmt"
	"log/slog"

	"edge_api/internal/domain/models"
	"edge_api/internal/lib/logger/sl"
	"edge_api/internal/metrics"
	"edge_api/internal/storage"

	"github.com/google/uuid"
)

const DefaultMaxAttempts = 5

// Store чтение и условная запись счётчика строки типа T
type Store[T any] interface {
	ReadCounter(ctx context.Context, id uuid.UUID, counter models.CounterName) (T, models.CounterState, error)
	CompareAndSwapCounter(ctx context.Context, id uuid.UUID, counter models.CounterName, expected *int64, next int64, deactivate bool) (T, bool, error)
}

// Plan следующее состояние счётчика
type Plan struct {
	Next       int64
	Deactivate bool
	changed    bool
}

// Changed нужна ли запись
func (p Plan) Changed() bool {
	return p.changed
}

// PlanIncrement вычисляет следующее значение для прочитанного состояния.
// Счётчик не превышает лимит, active переводится в false ровно на лимите
// и никогда не возвращается в true.
func PlanIncrement(state models.CounterState) Plan {
	c, m := state.Value(), state.Cap()

	switch {
	case m == 0:
		return Plan{Next: c + 1, changed: true}
	case c+1 == m:
		return Plan{Next: c + 1, Deactivate: true, changed: true}
	case c+1 < m:
		return Plan{Next: c + 1, changed: true}
	default:
		deactivate := !state.Deactivated()
		return Plan{Next: c, Deactivate: deactivate, changed: deactivate}
	}
}

// Result исход инкремента
type Result[T any] struct {
	Row   T
	Value int64
	// Deactivated строка деактивирована именно этим вызовом
	Deactivated bool
	Attempts    int
}

// Service оптимистичный инкремент с лимитом без блокировок
type Service[T any] struct {
	log         *slog.Logger
	store       Store[T]
	maxAttempts int
}

func New[T any](log *slog.Logger, store Store[T], maxAttempts int) *Service[T] {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Service[T]{
		log:         log,
		store:       store,
		maxAttempts: maxAttempts,
	}
}

// Increment увеличивает счётчик строки id. Проигранный compare-and-swap
// перечитывает строку и повторяется, после maxAttempts возвращается storage.ErrConflict.
func (s *Service[T]) Increment(ctx context.Context, id uuid.UUID, counter models.CounterName) (Result[T], error) {
	const op = "service.CounterService.Increment"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
		slog.String("counter", string(counter)),
	)

	if !counter.Valid() {
		return Result[T]{}, storage.NewValidationError("unknown counter", string(counter))
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		row, state, err := s.store.ReadCounter(ctx, id, counter)
		if err != nil {
			log.Error("failed to read counter", sl.Err(err))
			return Result[T]{}, fmt.Errorf("failed to read counter: %w", err)
		}

		plan := PlanIncrement(state)
		if !plan.Changed() {
			log.Debug("counter pinned at cap", slog.Int64("value", state.Value()))
			return Result[T]{Row: row, Value: state.Value(), Attempts: attempt}, nil
		}

		updated, swapped, err := s.store.CompareAndSwapCounter(ctx, id, counter, state.Current, plan.Next, plan.Deactivate)
		if err != nil {
			log.Error("failed to write counter", sl.Err(err))
			return Result[T]{}, fmt.Errorf("failed to write counter: %w", err)
		}

		if swapped {
			deactivated := plan.Deactivate && !state.Deactivated()
			if deactivated {
				log.Info("cap reached, row deactivated", slog.Int64("value", plan.Next))
			}

			return Result[T]{
				Row:         updated,
				Value:       plan.Next,
				Deactivated: deactivated,
				Attempts:    attempt,
			}, nil
		}

		metrics.CounterCASRetries.WithLabelValues(string(counter)).Inc()
		log.Debug("compare-and-swap lost, retrying", slog.Int("attempt", attempt))
	}

	metrics.CounterConflicts.WithLabelValues(string(counter)).Inc()
	log.Warn("retry limit reached", slog.Int("attempts", s.maxAttempts))

	return Result[T]{}, fmt.Errorf("failed to increment %s: retry limit reached: %w", counter, storage.ErrConflict)
}
