package repository

import (
	"context"
	"fmt"
	"strings"

	"edge_api/internal/domain/models"
	"edge_api/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

const eventsTable = "events"

var eventColumns = []string{
	"id",
	"title",
	"description",
	"venue_id",
	"starts_at",
	"ends_at",
	"gallery_id",
	"created_at",
	"updated_at",
	"deleted_at",
}

type EventRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewEventRepo(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e                  models.Event
		venueID, galleryID uuid.NullUUID
	)

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&venueID,
		&e.StartsAt,
		&e.EndsAt,
		&galleryID,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	e.VenueID = uuidPtr(venueID)
	e.GalleryID = uuidPtr(galleryID)

	return e, err
}

func (r *EventRepo) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "repository.EventRepo.CreateEvent"

	query, args, err := r.sb.Insert(eventsTable).
		Columns("title", "description", "venue_id", "starts_at", "ends_at", "gallery_id").
		Values(event.Title, event.Description, event.VenueID, event.StartsAt, event.EndsAt, event.GalleryID).
		Suffix("RETURNING " + strings.Join(eventColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *EventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "repository.EventRepo.GetEventByID"

	query, args, err := r.sb.Select(eventColumns...).
		From(eventsTable).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Event{}, wrapNotFound(op, err)
	}

	return event, nil
}

func (r *EventRepo) UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Event, error) {
	const op = "repository.EventRepo.UpdateEventFields"

	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		set[k] = v
	}
	set["updated_at"] = squirrel.Expr("NOW()")

	query, args, err := r.sb.Update(eventsTable).
		SetMap(set).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + strings.Join(eventColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Event{}, wrapNotFound(op, err)
	}

	return event, nil
}

func (r *EventRepo) SoftDeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "repository.EventRepo.SoftDeleteEvent"

	query, args, err := r.sb.Update(eventsTable).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (r *EventRepo) ListEvents(ctx context.Context, f models.EventFilter) ([]models.Event, int, error) {
	const op = "repository.EventRepo.ListEvents"

	where := squirrel.And{squirrel.Eq{"deleted_at": nil}}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if f.VenueID != nil {
		where = append(where, squirrel.Eq{"venue_id": *f.VenueID})
	}
	if f.From != nil {
		where = append(where, squirrel.GtOrEq{"starts_at": *f.From})
	}
	if f.To != nil {
		where = append(where, squirrel.LtOrEq{"starts_at": *f.To})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From(eventsTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(eventColumns...).
		From(eventsTable).
		Where(where).
		OrderBy("starts_at ASC NULLS LAST", "created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(pageOffset(f.Limit, f.Offset, f.Page)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return events, total, nil
}
