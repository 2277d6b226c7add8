package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pagetrail/backend/internal/models"
)

// MaxListLimit bounds a single admin page so one query cannot drag the whole
// table over the wire.
const MaxListLimit = 500

type VisitRepo struct {
	pool *pgxpool.Pool
}

func NewVisitRepo(pool *pgxpool.Pool) *VisitRepo {
	return &VisitRepo{pool: pool}
}

// Insert appends a visit and fills in its server-assigned id and timestamp.
// Ids come from a sequence, so concurrent inserts never collide or reuse.
func (r *VisitRepo) Insert(ctx context.Context, v *models.Visit) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO visits (masked_ip, pseudonym, raw_ip, geo_country, geo_region, geo_city, path, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, v.MaskedIP, v.Pseudonym, v.RawIP, v.GeoCountry, v.GeoRegion, v.GeoCity, v.Path, v.UserAgent).
		Scan(&v.ID, &v.CreatedAt)
}

// List returns visits most-recent-first. limit is clamped to [1, MaxListLimit],
// negative offsets read as 0.
func (r *VisitRepo) List(ctx context.Context, limit, offset int) ([]models.Visit, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, masked_ip, pseudonym, raw_ip, geo_country, geo_region, geo_city, path, user_agent
		FROM visits
		ORDER BY id DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []models.Visit
	for rows.Next() {
		var v models.Visit
		if err := rows.Scan(&v.ID, &v.CreatedAt, &v.MaskedIP, &v.Pseudonym, &v.RawIP,
			&v.GeoCountry, &v.GeoRegion, &v.GeoCity, &v.Path, &v.UserAgent); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *VisitRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM visits`).Scan(&total)
	return total, err
}

// DeleteOlderThan removes every visit older than the horizon and reports how
// many went. Not transactional with Insert; a sweep racing an append only
// ever misses rows younger than the horizon.
func (r *VisitRepo) DeleteOlderThan(ctx context.Context, horizonDays int) (int64, error) {
	if horizonDays <= 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM visits WHERE created_at < now() - make_interval(days => $1)
	`, horizonDays)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
