package startups

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrStartupNotFound = errors.New("startup not found")
	ErrFounderNotFound = errors.New("founder not found")
)

type StartupRepository interface {
	CreateStartup(ctx context.Context, input Startup) (Startup, error)
	UpdateStartup(ctx context.Context, input Startup) (Startup, error)
	DeleteStartup(ctx context.Context, id int64) error
	GetStartupByID(ctx context.Context, id int64) (Startup, error)
	GetStartupByFounder(ctx context.Context, founderUUID string) (Startup, error)
	ListStartups(ctx context.Context, filter ListFilter, limit, offset int) ([]Startup, int64, error)
}

// ListFilter narrows ListStartups results. Zero values mean "no filter".
type ListFilter struct {
	Industry     Industry
	FundingStage FundingStage
}

type postgresStartupRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStartupRepository(pool *pgxpool.Pool) StartupRepository {
	return &postgresStartupRepository{pool: pool}
}

const startupColumns = `s.id, u.uuid, s.name, s.description, s.industry, s.funding_stage, s.location,
              s.funding_goal, s.business_model, s.target_market, s.website, s.pitch_deck_url,
              s.is_published, s.created_at`

func scanStartup(row pgx.Row) (Startup, error) {
	var s Startup
	err := row.Scan(&s.ID, &s.FounderUUID, &s.Name, &s.Description, &s.Industry, &s.FundingStage,
		&s.Location, &s.FundingGoal, &s.BusinessModel, &s.TargetMarket, &s.Website,
		&s.PitchDeckURL, &s.IsPublished, &s.CreatedAt)
	return s, err
}

func (r *postgresStartupRepository) CreateStartup(ctx context.Context, input Startup) (Startup, error) {
	query := `INSERT INTO startups (founder_id, name, description, industry, funding_stage, location,
                  funding_goal, business_model, target_market, website, pitch_deck_url, is_published, created_at)
              SELECT u.id, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW()
              FROM users u WHERE u.uuid = $1
              RETURNING id, $1, name, description, industry, funding_stage, location,
                  funding_goal, business_model, target_market, website, pitch_deck_url,
                  is_published, created_at`

	row := r.pool.QueryRow(ctx, query, input.FounderUUID, input.Name, input.Description,
		input.Industry, input.FundingStage, input.Location, input.FundingGoal,
		input.BusinessModel, input.TargetMarket, input.Website, input.PitchDeckURL, input.IsPublished)

	created, err := scanStartup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrFounderNotFound
		}
		return Startup{}, err
	}
	return created, nil
}

func (r *postgresStartupRepository) UpdateStartup(ctx context.Context, input Startup) (Startup, error) {
	query := `UPDATE startups s
              SET name = $1, description = $2, industry = $3, funding_stage = $4, location = $5,
                  funding_goal = $6, business_model = $7, target_market = $8, website = $9,
                  pitch_deck_url = $10, is_published = $11
              FROM users u
              WHERE s.id = $12 AND u.id = s.founder_id
              RETURNING ` + startupColumns

	row := r.pool.QueryRow(ctx, query, input.Name, input.Description, input.Industry,
		input.FundingStage, input.Location, input.FundingGoal, input.BusinessModel,
		input.TargetMarket, input.Website, input.PitchDeckURL, input.IsPublished, input.ID)

	updated, err := scanStartup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrStartupNotFound
		}
		return Startup{}, err
	}
	return updated, nil
}

func (r *postgresStartupRepository) DeleteStartup(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM startups WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStartupNotFound
	}
	return nil
}

func (r *postgresStartupRepository) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	query := `SELECT ` + startupColumns + `
              FROM startups s
              JOIN users u ON u.id = s.founder_id
              WHERE s.id = $1`

	s, err := scanStartup(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrStartupNotFound
		}
		return Startup{}, err
	}
	return s, nil
}

// GetStartupByFounder returns the founder's startup. A founder owns at most
// one startup for matchmaking purposes; if several rows exist the oldest wins.
func (r *postgresStartupRepository) GetStartupByFounder(ctx context.Context, founderUUID string) (Startup, error) {
	query := `SELECT ` + startupColumns + `
              FROM startups s
              JOIN users u ON u.id = s.founder_id
              WHERE u.uuid = $1
              ORDER BY s.id
              LIMIT 1`

	s, err := scanStartup(r.pool.QueryRow(ctx, query, founderUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrStartupNotFound
		}
		return Startup{}, err
	}
	return s, nil
}

func (r *postgresStartupRepository) ListStartups(ctx context.Context, filter ListFilter, limit, offset int) ([]Startup, int64, error) {
	query := `SELECT ` + startupColumns + `
              FROM startups s
              JOIN users u ON u.id = s.founder_id
              WHERE ($1 = '' OR s.industry = $1)
                AND ($2 = '' OR s.funding_stage = $2)
              ORDER BY s.id
              LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, string(filter.Industry), string(filter.FundingStage), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]Startup, 0)
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM startups s
         WHERE ($1 = '' OR s.industry = $1) AND ($2 = '' OR s.funding_stage = $2)`,
		string(filter.Industry), string(filter.FundingStage))
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
