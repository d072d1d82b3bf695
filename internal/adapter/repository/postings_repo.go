package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"jobhive/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostingsRepo persists employer postings in job_postings. Without a pool
// it keeps them in memory for the life of the process.
type PostingsRepo struct {
	pool *pgxpool.Pool

	mu  sync.RWMutex
	mem map[uuid.UUID]domain.JobPosting
}

func NewPostingsRepo(pool *pgxpool.Pool) *PostingsRepo {
	return &PostingsRepo{pool: pool, mem: map[uuid.UUID]domain.JobPosting{}}
}

const postingColumns = `id, employer_id, title, type, location, remote, description, requirements, salary, status, created_at, updated_at`

func (r *PostingsRepo) Save(ctx context.Context, p *domain.JobPosting) error {
	if r.pool == nil {
		r.mu.Lock()
		r.mem[p.ID] = *p
		r.mu.Unlock()
		return nil
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO job_postings (`+postingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, type = EXCLUDED.type, location = EXCLUDED.location,
			remote = EXCLUDED.remote, description = EXCLUDED.description,
			requirements = EXCLUDED.requirements, salary = EXCLUDED.salary,
			status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`,
		p.ID, p.EmployerID, p.Title, string(p.Type), p.Location, p.Remote, p.Description,
		p.Requirements, p.Salary, string(p.Status), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PostingsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	if r.pool == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		p, ok := r.mem[id]
		if !ok {
			return nil, nil
		}
		return &p, nil
	}

	p, err := scanPosting(r.pool.QueryRow(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns postings with the given status, or all of them for an empty
// status, newest first.
func (r *PostingsRepo) List(ctx context.Context, status domain.PostingStatus) ([]domain.JobPosting, error) {
	if r.pool == nil {
		return r.filterMem(func(p domain.JobPosting) bool {
			return status == "" || p.Status == status
		}), nil
	}
	if status == "" {
		return r.query(ctx, `SELECT `+postingColumns+` FROM job_postings ORDER BY created_at DESC`)
	}
	return r.query(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

func (r *PostingsRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.JobPosting, error) {
	if r.pool == nil {
		return r.filterMem(func(p domain.JobPosting) bool { return p.EmployerID == employerID }), nil
	}
	return r.query(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
}

// CountByStatus returns the total and pending posting counts.
func (r *PostingsRepo) CountByStatus(ctx context.Context) (total, pending int, err error) {
	if r.pool == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, p := range r.mem {
			total++
			if p.Status == domain.PostingPending {
				pending++
			}
		}
		return total, pending, nil
	}
	err = r.pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE status = 'pending') FROM job_postings`).
		Scan(&total, &pending)
	return total, pending, err
}

func (r *PostingsRepo) query(ctx context.Context, sql string, args ...interface{}) ([]domain.JobPosting, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.JobPosting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostingsRepo) filterMem(keep func(domain.JobPosting) bool) []domain.JobPosting {
	r.mu.RLock()
	out := []domain.JobPosting{}
	for _, p := range r.mem {
		if keep(p) {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func scanPosting(row pgx.Row) (domain.JobPosting, error) {
	var (
		p           domain.JobPosting
		typ, status string
	)
	err := row.Scan(&p.ID, &p.EmployerID, &p.Title, &typ, &p.Location, &p.Remote, &p.Description,
		&p.Requirements, &p.Salary, &status, &p.CreatedAt, &p.UpdatedAt)
	p.Type = domain.JobType(typ)
	p.Status = domain.PostingStatus(status)
	return p, err
}
