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

const galleryImagesTable = "gallery_images"

var galleryImageColumns = []string{
	"id",
	"gallery_id",
	"image_name",
	"COALESCE(file_path, '')",
	"COALESCE(file_size, 0)",
	"COALESCE(mime_type, '')",
	"display_order",
	"is_primary",
	"created_at",
	"updated_at",
	"deleted_at",
}

type GalleryImageRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryImageRepo(db *pgxpool.Pool) *GalleryImageRepo {
	return &GalleryImageRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanGalleryImage(row rowScanner) (models.GalleryImage, error) {
	var img models.GalleryImage
	err := row.Scan(
		&img.ID,
		&img.GalleryID,
		&img.ImageName,
		&img.FilePath,
		&img.FileSize,
		&img.MimeType,
		&img.DisplayOrder,
		&img.IsPrimary,
		&img.CreatedAt,
		&img.UpdatedAt,
		&img.DeletedAt,
	)
	return img, err
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// CreateImage сохраняет метаданные изображения
func (r *GalleryImageRepo) CreateImage(ctx context.Context, image models.GalleryImage) (models.GalleryImage, error) {
	const op = "repository.GalleryImageRepo.CreateImage"

	var fileSize interface{}
	if image.FileSize > 0 {
		fileSize = image.FileSize
	}

	query, args, err := r.sb.Insert(galleryImagesTable).
		Columns(
			"gallery_id",
			"image_name",
			"file_path",
			"file_size",
			"mime_type",
			"display_order",
			"is_primary",
		).
		Values(
			image.GalleryID,
			image.ImageName,
			nullIfEmpty(image.FilePath),
			fileSize,
			nullIfEmpty(image.MimeType),
			image.DisplayOrder,
			image.IsPrimary,
		).
		Suffix("RETURNING " + strings.Join(galleryImageColumns, ", ")).
		ToSql()
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanGalleryImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetImageByID возвращает неудаленное изображение
func (r *GalleryImageRepo) GetImageByID(ctx context.Context, id uuid.UUID) (models.GalleryImage, error) {
	const op = "repository.GalleryImageRepo.GetImageByID"

	query, args, err := r.sb.Select(galleryImageColumns...).
		From(galleryImagesTable).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%s: %w", op, err)
	}

	img, err := scanGalleryImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.GalleryImage{}, wrapNotFound(op, err)
	}

	return img, nil
}

// ListByGallery неудаленные изображения галереи в порядке показа
func (r *GalleryImageRepo) ListByGallery(ctx context.Context, galleryID uuid.UUID) ([]models.GalleryImage, error) {
	const op = "repository.GalleryImageRepo.ListByGallery"

	return r.list(ctx, op, squirrel.Eq{"gallery_id": galleryID, "deleted_at": nil})
}

// ListByIDs неудаленные изображения галереи из списка ids
func (r *GalleryImageRepo) ListByIDs(ctx context.Context, galleryID uuid.UUID, ids []uuid.UUID) ([]models.GalleryImage, error) {
	const op = "repository.GalleryImageRepo.ListByIDs"

	if len(ids) == 0 {
		return []models.GalleryImage{}, nil
	}

	return r.list(ctx, op, squirrel.And{
		squirrel.Eq{"gallery_id": galleryID, "deleted_at": nil},
		squirrel.Eq{"id": uuidArgs(ids)},
	})
}

func (r *GalleryImageRepo) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]models.GalleryImage, error) {
	query, args, err := r.sb.Select(galleryImageColumns...).
		From(galleryImagesTable).
		Where(where).
		OrderBy("display_order ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	images := []models.GalleryImage{}
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}

// CountByGallery число неудаленных изображений, не считая excluding
func (r *GalleryImageRepo) CountByGallery(ctx context.Context, galleryID uuid.UUID, excluding []uuid.UUID) (int, error) {
	const op = "repository.GalleryImageRepo.CountByGallery"

	where := squirrel.And{squirrel.Eq{"gallery_id": galleryID, "deleted_at": nil}}
	if len(excluding) > 0 {
		where = append(where, squirrel.NotEq{"id": uuidArgs(excluding)})
	}

	query, args, err := r.sb.Select("COUNT(*)").From(galleryImagesTable).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// DeleteImage физически удаляет строку изображения
func (r *GalleryImageRepo) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryImageRepo.DeleteImage"

	query, args, err := r.sb.Delete(galleryImagesTable).
		Where(squirrel.Eq{"id": id}).
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

// DeleteByGalleryID физически удаляет все строки галереи
func (r *GalleryImageRepo) DeleteByGalleryID(ctx context.Context, galleryID uuid.UUID) error {
	const op = "repository.GalleryImageRepo.DeleteByGalleryID"

	query, args, err := r.sb.Delete(galleryImagesTable).
		Where(squirrel.Eq{"gallery_id": galleryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SoftDeleteImages помечает изображения удаленными
func (r *GalleryImageRepo) SoftDeleteImages(ctx context.Context, ids []uuid.UUID) error {
	const op = "repository.GalleryImageRepo.SoftDeleteImages"

	if len(ids) == 0 {
		return nil
	}

	query, args, err := r.sb.Update(galleryImagesTable).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": uuidArgs(ids), "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClearPrimary снимает флаг is_primary со всех изображений галереи
func (r *GalleryImageRepo) ClearPrimary(ctx context.Context, galleryID uuid.UUID) error {
	const op = "repository.GalleryImageRepo.ClearPrimary"

	query, args, err := r.sb.Update(galleryImagesTable).
		Set("is_primary", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"gallery_id": galleryID, "is_primary": true, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// uuidArgs []string для IN-списков squirrel
func uuidArgs(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
