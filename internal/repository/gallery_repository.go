package repository

import (
	"context"
	"fmt"

	"edge_api/internal/domain/models"
	"edge_api/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

const galleriesTable = "galleries"

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanGallery(row rowScanner) (models.Gallery, error) {
	var (
		g       models.Gallery
		venueID uuid.NullUUID
	)

	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&venueID,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.DeletedAt,
	)
	g.VenueID = uuidPtr(venueID)

	return g, err
}

// CreateGallery создает новую галерею и возвращает её
func (r *GalleryRepo) CreateGallery(ctx context.Context, gallery models.Gallery) (models.Gallery, error) {
	const op = "repository.GalleryRepo.CreateGallery"

	query, args, err := r.sb.Insert(galleriesTable).
		Columns("name", "description", "venue_id").
		Values(gallery.Name, gallery.Description, gallery.VenueID).
		Suffix("RETURNING id, name, description, venue_id, created_at, updated_at, deleted_at").
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetGalleryByID возвращает неудаленную галерею по ID
func (r *GalleryRepo) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GetGalleryByID"

	query, args, err := r.sb.Select(
		"id",
		"name",
		"description",
		"venue_id",
		"created_at",
		"updated_at",
		"deleted_at",
	).
		From(galleriesTable).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Gallery{}, wrapNotFound(op, err)
	}

	return gallery, nil
}

// SoftDeleteGallery помечает галерею удаленной
func (r *GalleryRepo) SoftDeleteGallery(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.SoftDeleteGallery"

	query, args, err := r.sb.Update(galleriesTable).
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
