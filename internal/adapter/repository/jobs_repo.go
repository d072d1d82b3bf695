package repository

import (
	"context"
	"errors"
	"time"

	"jobhive/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// JobsRepo reads the job catalog from Postgres, or from SeedJobs when no
// pool is configured.
type JobsRepo struct {
	pool *pgxpool.Pool
	seed []domain.Job
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool, seed: SeedJobs()}
}

const jobColumns = `id, title, company, type, location, schedule, salary, skills, industry, posted_date, icon`

func (r *JobsRepo) List(ctx context.Context) ([]domain.Job, error) {
	if r.pool == nil {
		out := make([]domain.Job, len(r.seed))
		for i, j := range r.seed {
			out[i] = j.Clone()
		}
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobsRepo) Get(ctx context.Context, id int) (*domain.Job, error) {
	if r.pool == nil {
		for _, j := range r.seed {
			if j.ID == id {
				c := j.Clone()
				return &c, nil
			}
		}
		return nil, nil
	}

	j, err := scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobsRepo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return len(r.seed), nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jobs`).Scan(&n)
	return n, err
}

// SeedCatalog copies SeedJobs into an empty jobs table.
func (r *JobsRepo) SeedCatalog(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}
	for _, j := range r.seed {
		var posted *time.Time
		if !j.PostedDate.IsZero() {
			d := j.PostedDate
			posted = &d
		}
		_, err := r.pool.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO NOTHING`,
			j.ID, j.Title, j.Company, string(j.Type), j.Location, j.Schedule, j.Salary, j.Skills, j.Industry, posted, j.Icon)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var (
		j        domain.Job
		typ      string
		industry *string
		posted   *time.Time
		icon     *string
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &typ, &j.Location, &j.Schedule, &j.Salary, &j.Skills, &industry, &posted, &icon); err != nil {
		return j, err
	}
	j.Type = domain.JobType(typ)
	if industry != nil {
		j.Industry = *industry
	}
	if posted != nil {
		j.PostedDate = *posted
	}
	if icon != nil {
		j.Icon = *icon
	}
	return j, nil
}
