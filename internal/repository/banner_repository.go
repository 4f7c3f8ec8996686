package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"edge_api/internal/domain/models"
	"edge_api/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const bannersTable = "banners"

var bannerColumns = []string{
	"id",
	"banner_image_path",
	"redirect_link",
	"active",
	"expiration_date",
	"current_displays",
	"current_clicks",
	"max_displays",
	"max_clicks",
	"created_at",
	"updated_at",
	"deleted_at",
}

type BannerRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewBannerRepo(db *pgxpool.Pool) *BannerRepo {
	return &BannerRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanBanner(row rowScanner) (models.Banner, error) {
	var b models.Banner
	err := row.Scan(
		&b.ID,
		&b.BannerImagePath,
		&b.RedirectLink,
		&b.Active,
		&b.ExpirationDate,
		&b.CurrentDisplays,
		&b.CurrentClicks,
		&b.MaxDisplays,
		&b.MaxClicks,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)
	return b, err
}

// CreateBanner создает баннер и возвращает сохраненную строку
func (r *BannerRepo) CreateBanner(ctx context.Context, banner models.Banner) (models.Banner, error) {
	const op = "repository.BannerRepo.CreateBanner"

	query, args, err := r.sb.Insert(bannersTable).
		Columns(
			"banner_image_path",
			"redirect_link",
			"active",
			"expiration_date",
			"current_displays",
			"current_clicks",
			"max_displays",
			"max_clicks",
		).
		Values(
			banner.BannerImagePath,
			banner.RedirectLink,
			banner.Active,
			banner.ExpirationDate,
			banner.CurrentDisplays,
			banner.CurrentClicks,
			banner.MaxDisplays,
			banner.MaxClicks,
		).
		Suffix("RETURNING " + strings.Join(bannerColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Banner{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanBanner(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Banner{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetBannerByID возвращает неудаленный баннер
func (r *BannerRepo) GetBannerByID(ctx context.Context, id uuid.UUID) (models.Banner, error) {
	const op = "repository.BannerRepo.GetBannerByID"

	query, args, err := r.sb.Select(bannerColumns...).
		From(bannersTable).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.Banner{}, fmt.Errorf("%s: %w", op, err)
	}

	banner, err := scanBanner(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Banner{}, wrapNotFound(op, err)
	}

	return banner, nil
}

// UpdateBannerFields частичное обновление; ключи карты - имена колонок
func (r *BannerRepo) UpdateBannerFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Banner, error) {
	const op = "repository.BannerRepo.UpdateBannerFields"

	builder := r.sb.Update(bannersTable).
		SetMap(updates).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + strings.Join(bannerColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Banner{}, fmt.Errorf("%s: %w", op, err)
	}

	banner, err := scanBanner(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Banner{}, wrapNotFound(op, err)
	}

	return banner, nil
}

// SoftDeleteBanner помечает баннер удаленным
func (r *BannerRepo) SoftDeleteBanner(ctx context.Context, id uuid.UUID) error {
	const op = "repository.BannerRepo.SoftDeleteBanner"

	query, args, err := r.sb.Update(bannersTable).
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

// ListBanners возвращает страницу баннеров и общее количество
func (r *BannerRepo) ListBanners(ctx context.Context, f models.BannerFilter) ([]models.Banner, int, error) {
	const op = "repository.BannerRepo.ListBanners"

	where := squirrel.And{squirrel.Eq{"deleted_at": nil}}

	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, squirrel.ILike{"redirect_link": "%" + s + "%"})
	}
	if f.Active != nil {
		where = append(where, squirrel.Eq{"active": *f.Active})
	}
	if f.ExpirationDate != nil {
		where = append(where, squirrel.Eq{"expiration_date": *f.ExpirationDate})
	}
	if f.ExpirationDateFrom != nil {
		where = append(where, squirrel.GtOrEq{"expiration_date": *f.ExpirationDateFrom})
	}
	if f.ExpirationDateTo != nil {
		where = append(where, squirrel.LtOrEq{"expiration_date": *f.ExpirationDateTo})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From(bannersTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(bannerColumns...).
		From(bannersTable).
		Where(where).
		OrderBy("created_at DESC").
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

	banners := make([]models.Banner, 0, f.Limit)
	for rows.Next() {
		banner, err := scanBanner(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		banners = append(banners, banner)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return banners, total, nil
}

// ReadCounter читает строку и состояние счетчика для сравнения-и-обмена
func (r *BannerRepo) ReadCounter(ctx context.Context, id uuid.UUID, counter models.CounterName) (models.Banner, models.CounterState, error) {
	const op = "repository.BannerRepo.ReadCounter"

	banner, err := r.GetBannerByID(ctx, id)
	if err != nil {
		return models.Banner{}, models.CounterState{}, fmt.Errorf("%s: %w", op, err)
	}

	return banner, banner.Counter(counter), nil
}

// CompareAndSwapCounter записывает next, только если счетчик все еще равен expected.
// nil в expected сравнивается через IS NULL. false во втором значении означает,
// что другой писатель успел раньше.
func (r *BannerRepo) CompareAndSwapCounter(
	ctx context.Context,
	id uuid.UUID,
	counter models.CounterName,
	expected *int64,
	next int64,
	deactivate bool,
) (models.Banner, bool, error) {
	const op = "repository.BannerRepo.CompareAndSwapCounter"

	if !counter.Valid() {
		return models.Banner{}, false, fmt.Errorf("%s: unknown counter %q", op, counter)
	}

	column := counter.Column()

	builder := r.sb.Update(bannersTable).
		Set(column, next).
		Set("updated_at", time.Now().UTC())

	if deactivate {
		builder = builder.Set("active", false)
	}

	// squirrel.Eq с nil дает "IS NULL"
	var match squirrel.Eq
	if expected == nil {
		match = squirrel.Eq{"id": id, column: nil}
	} else {
		match = squirrel.Eq{"id": id, column: *expected}
	}

	query, args, err := builder.
		Where(match).
		Where(squirrel.Eq{"deleted_at": nil}).
		Suffix("RETURNING " + strings.Join(bannerColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Banner{}, false, fmt.Errorf("%s: %w", op, err)
	}

	banner, err := scanBanner(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Banner{}, false, nil
		}
		return models.Banner{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return banner, true, nil
}
