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
	"github.com/lib/pq"
)

const venuesTable = "venues"

var venueColumns = []string{
	"id",
	"name",
	"description",
	"is_active",
	"location_latitude",
	"location_longitude",
	"h3",
	"venue_category_id",
	"gallery_id",
	"created_at",
	"updated_at",
	"deleted_at",
}

type VenueRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewVenueRepo(db *pgxpool.Pool) *VenueRepo {
	return &VenueRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanVenue(row rowScanner) (models.Venue, error) {
	var (
		v         models.Venue
		galleryID uuid.NullUUID
	)

	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Description,
		&v.IsActive,
		&v.LocationLatitude,
		&v.LocationLongitude,
		&v.H3,
		&v.VenueCategoryID,
		&galleryID,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.DeletedAt,
	)
	v.GalleryID = uuidPtr(galleryID)

	return v, err
}

func (r *VenueRepo) CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	const op = "repository.VenueRepo.CreateVenue"

	var categories interface{}
	if venue.VenueCategoryID != nil {
		categories = pq.Array(venue.VenueCategoryID)
	}

	query, args, err := r.sb.Insert(venuesTable).
		Columns(
			"name",
			"description",
			"is_active",
			"location_latitude",
			"location_longitude",
			"h3",
			"venue_category_id",
			"gallery_id",
		).
		Values(
			venue.Name,
			venue.Description,
			venue.IsActive,
			venue.LocationLatitude,
			venue.LocationLongitude,
			venue.H3,
			categories,
			venue.GalleryID,
		).
		Suffix("RETURNING " + strings.Join(venueColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Venue{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanVenue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Venue{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *VenueRepo) GetVenueByID(ctx context.Context, id uuid.UUID) (models.Venue, error) {
	const op = "repository.VenueRepo.GetVenueByID"

	query, args, err := r.sb.Select(venueColumns...).
		From(venuesTable).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.Venue{}, fmt.Errorf("%s: %w", op, err)
	}

	venue, err := scanVenue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Venue{}, wrapNotFound(op, err)
	}

	return venue, nil
}

// UpdateVenueFields частичное обновление; массив категорий оборачивается в pq.Array
func (r *VenueRepo) UpdateVenueFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Venue, error) {
	const op = "repository.VenueRepo.UpdateVenueFields"

	set := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		if arr, ok := v.([]string); ok {
			v = pq.Array(arr)
		}
		set[k] = v
	}
	set["updated_at"] = squirrel.Expr("NOW()")

	query, args, err := r.sb.Update(venuesTable).
		SetMap(set).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + strings.Join(venueColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Venue{}, fmt.Errorf("%s: %w", op, err)
	}

	venue, err := scanVenue(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Venue{}, wrapNotFound(op, err)
	}

	return venue, nil
}

func (r *VenueRepo) SoftDeleteVenue(ctx context.Context, id uuid.UUID) error {
	const op = "repository.VenueRepo.SoftDeleteVenue"

	query, args, err := r.sb.Update(venuesTable).
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

func venueWhere(f models.VenueFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"deleted_at": nil}}

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	if f.IsActive != nil {
		where = append(where, squirrel.Eq{"is_active": *f.IsActive})
	}
	if len(f.VenueCategoryID) > 0 {
		where = append(where, squirrel.Expr("venue_category_id && ?", pq.Array(f.VenueCategoryID)))
	}
	if f.BBox != nil {
		where = append(where,
			squirrel.NotEq{"location_latitude": nil, "location_longitude": nil},
			squirrel.GtOrEq{"location_latitude": f.BBox.MinLat},
			squirrel.LtOrEq{"location_latitude": f.BBox.MaxLat},
			squirrel.GtOrEq{"location_longitude": f.BBox.MinLon},
			squirrel.LtOrEq{"location_longitude": f.BBox.MaxLon},
		)
	}
	if len(f.H3Cells) > 0 {
		where = append(where, squirrel.Expr("h3 = ANY(?)", pq.Array(f.H3Cells)))
	}

	return where
}

// ListVenues страница площадок и общее число под фильтром
func (r *VenueRepo) ListVenues(ctx context.Context, f models.VenueFilter) ([]models.Venue, int, error) {
	const op = "repository.VenueRepo.ListVenues"

	where := venueWhere(f)

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From(venuesTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(venueColumns...).
		From(venuesTable).
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(pageOffset(f.Limit, f.Offset, f.Page)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	venues, err := r.collect(ctx, query, args)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return venues, total, nil
}

// ListVenuesMissingH3 площадки с координатами, но без ячейки
func (r *VenueRepo) ListVenuesMissingH3(ctx context.Context, limit int) ([]models.Venue, error) {
	const op = "repository.VenueRepo.ListVenuesMissingH3"

	query, args, err := r.sb.Select(venueColumns...).
		From(venuesTable).
		Where(squirrel.Eq{"h3": nil, "deleted_at": nil}).
		Where(squirrel.NotEq{"location_latitude": nil, "location_longitude": nil}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	venues, err := r.collect(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return venues, nil
}

func (r *VenueRepo) SetVenueH3(ctx context.Context, id uuid.UUID, cell string) error {
	const op = "repository.VenueRepo.SetVenueH3"

	query, args, err := r.sb.Update(venuesTable).
		Set("h3", cell).
		Set("updated_at", squirrel.Expr("NOW()")).
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

// H3Stats считает покрытие ячейками по неудаленным площадкам
func (r *VenueRepo) H3Stats(ctx context.Context) (models.H3CoverageStats, error) {
	const op = "repository.VenueRepo.H3Stats"

	query, args, err := r.sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE location_latitude IS NOT NULL AND location_longitude IS NOT NULL)",
		"COUNT(*) FILTER (WHERE h3 IS NOT NULL)",
	).
		From(venuesTable).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return models.H3CoverageStats{}, fmt.Errorf("%s: %w", op, err)
	}

	var stats models.H3CoverageStats
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&stats.TotalVenues,
		&stats.VenuesWithCoordinates,
		&stats.VenuesWithH3,
	); err != nil {
		return models.H3CoverageStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}

func (r *VenueRepo) collect(ctx context.Context, query string, args []interface{}) ([]models.Venue, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []models.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}

	return venues, rows.Err()
}
