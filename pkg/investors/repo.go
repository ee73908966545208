package investors

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"venturelink/pkg/startups"
)

var (
	ErrProfileNotFound = errors.New("investor profile not found")
	ErrUserNotFound    = errors.New("user not found")
)

type InvestorRepository interface {
	CreateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error)
	UpdateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error)
	DeleteProfile(ctx context.Context, id int64) error
	GetProfileByID(ctx context.Context, id int64) (InvestorProfile, error)
	GetProfileByUser(ctx context.Context, userUUID string) (InvestorProfile, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]InvestorProfile, int64, error)
	ListProfilesWithUsers(ctx context.Context, skip, limit int) ([]ProfileWithUser, error)
}

type postgresInvestorRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresInvestorRepository(pool *pgxpool.Pool) InvestorRepository {
	return &postgresInvestorRepository{pool: pool}
}

const profileColumns = `p.id, u.uuid, p.firm_name, p.bio, p.website, p.location,
              p.linkedin_url, p.twitter_url, p.investment_focus, p.preferred_stages, p.created_at`

func industriesToText(in []startups.Industry) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func stagesToText(in []startups.FundingStage) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func scanProfile(row pgx.Row) (InvestorProfile, error) {
	var p InvestorProfile
	var focus, stages []string
	err := row.Scan(&p.ID, &p.UserUUID, &p.FirmName, &p.Bio, &p.Website, &p.Location,
		&p.LinkedinURL, &p.TwitterURL, &focus, &stages, &p.CreatedAt)
	if err != nil {
		return InvestorProfile{}, err
	}
	for _, v := range focus {
		p.InvestmentFocus = append(p.InvestmentFocus, startups.Industry(v))
	}
	for _, v := range stages {
		p.PreferredStages = append(p.PreferredStages, startups.FundingStage(v))
	}
	return p, nil
}

func (r *postgresInvestorRepository) CreateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error) {
	query := `INSERT INTO investor_profiles (user_id, firm_name, bio, website, location,
                  linkedin_url, twitter_url, investment_focus, preferred_stages, created_at)
              SELECT u.id, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
              FROM users u WHERE u.uuid = $1
              RETURNING id, $1, firm_name, bio, website, location,
                  linkedin_url, twitter_url, investment_focus, preferred_stages, created_at`

	row := r.pool.QueryRow(ctx, query, input.UserUUID, input.FirmName, input.Bio,
		input.Website, input.Location, input.LinkedinURL, input.TwitterURL,
		industriesToText(input.InvestmentFocus), stagesToText(input.PreferredStages))

	created, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InvestorProfile{}, ErrUserNotFound
		}
		return InvestorProfile{}, err
	}
	return created, nil
}

func (r *postgresInvestorRepository) UpdateProfile(ctx context.Context, input InvestorProfile) (InvestorProfile, error) {
	query := `UPDATE investor_profiles p
              SET firm_name = $1, bio = $2, website = $3, location = $4,
                  linkedin_url = $5, twitter_url = $6, investment_focus = $7, preferred_stages = $8
              FROM users u
              WHERE p.id = $9 AND u.id = p.user_id
              RETURNING ` + profileColumns

	row := r.pool.QueryRow(ctx, query, input.FirmName, input.Bio, input.Website,
		input.Location, input.LinkedinURL, input.TwitterURL,
		industriesToText(input.InvestmentFocus), stagesToText(input.PreferredStages), input.ID)

	updated, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InvestorProfile{}, ErrProfileNotFound
		}
		return InvestorProfile{}, err
	}
	return updated, nil
}

func (r *postgresInvestorRepository) DeleteProfile(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM investor_profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresInvestorRepository) GetProfileByID(ctx context.Context, id int64) (InvestorProfile, error) {
	query := `SELECT ` + profileColumns + `
              FROM investor_profiles p
              JOIN users u ON u.id = p.user_id
              WHERE p.id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InvestorProfile{}, ErrProfileNotFound
		}
		return InvestorProfile{}, err
	}
	return p, nil
}

func (r *postgresInvestorRepository) GetProfileByUser(ctx context.Context, userUUID string) (InvestorProfile, error) {
	query := `SELECT ` + profileColumns + `
              FROM investor_profiles p
              JOIN users u ON u.id = p.user_id
              WHERE u.uuid = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, userUUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return InvestorProfile{}, ErrProfileNotFound
		}
		return InvestorProfile{}, err
	}
	return p, nil
}

func (r *postgresInvestorRepository) ListProfiles(ctx context.Context, limit, offset int) ([]InvestorProfile, int64, error) {
	query := `SELECT ` + profileColumns + `
              FROM investor_profiles p
              JOIN users u ON u.id = p.user_id
              ORDER BY p.id
              LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]InvestorProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM investor_profiles")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListProfilesWithUsers returns profiles joined with the owning user's name
// and email, ordered by profile id so pagination is stable.
func (r *postgresInvestorRepository) ListProfilesWithUsers(ctx context.Context, skip, limit int) ([]ProfileWithUser, error) {
	query := `SELECT ` + profileColumns + `, u.name, u.email
              FROM investor_profiles p
              JOIN users u ON u.id = p.user_id
              ORDER BY p.id
              LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ProfileWithUser, 0)
	for rows.Next() {
		var item ProfileWithUser
		var focus, stages []string
		err := rows.Scan(&item.Profile.ID, &item.Profile.UserUUID, &item.Profile.FirmName,
			&item.Profile.Bio, &item.Profile.Website, &item.Profile.Location,
			&item.Profile.LinkedinURL, &item.Profile.TwitterURL, &focus, &stages,
			&item.Profile.CreatedAt, &item.Name, &item.Email)
		if err != nil {
			return nil, err
		}
		for _, v := range focus {
			item.Profile.InvestmentFocus = append(item.Profile.InvestmentFocus, startups.Industry(v))
		}
		for _, v := range stages {
			item.Profile.PreferredStages = append(item.Profile.PreferredStages, startups.FundingStage(v))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
