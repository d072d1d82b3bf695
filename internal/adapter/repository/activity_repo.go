package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ActivityRepo records saved jobs, applications and recent searches per
// user. Saving and applying are idempotent.
type ActivityRepo struct {
	pool *pgxpool.Pool

	mu       sync.Mutex
	saved    map[string][]int
	applied  map[string][]int
	searches map[string][]string
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{
		pool:     pool,
		saved:    map[string][]int{},
		applied:  map[string][]int{},
		searches: map[string][]string{},
	}
}

// searchHistory bounds the stored terms per user.
const searchHistory = 10

func (r *ActivityRepo) SaveJob(ctx context.Context, userID string, jobID int) error {
	if r.pool == nil {
		r.mu.Lock()
		r.saved[userID] = appendUnique(r.saved[userID], jobID)
		r.mu.Unlock()
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2)
		ON CONFLICT (user_id, job_id) DO NOTHING`, userID, jobID)
	return err
}

func (r *ActivityRepo) UnsaveJob(ctx context.Context, userID string, jobID int) error {
	if r.pool == nil {
		r.mu.Lock()
		r.saved[userID] = remove(r.saved[userID], jobID)
		r.mu.Unlock()
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	return err
}

func (r *ActivityRepo) SavedJobIDs(ctx context.Context, userID string) ([]int, error) {
	if r.pool == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		return append([]int{}, r.saved[userID]...), nil
	}
	return r.ids(ctx, `SELECT job_id FROM saved_jobs WHERE user_id = $1 ORDER BY created_at, job_id`, userID)
}

func (r *ActivityRepo) Apply(ctx context.Context, userID string, jobID int) error {
	if r.pool == nil {
		r.mu.Lock()
		r.applied[userID] = appendUnique(r.applied[userID], jobID)
		r.mu.Unlock()
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO job_applications (user_id, job_id) VALUES ($1, $2)
		ON CONFLICT (user_id, job_id) DO NOTHING`, userID, jobID)
	return err
}

func (r *ActivityRepo) AppliedJobIDs(ctx context.Context, userID string) ([]int, error) {
	if r.pool == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		return append([]int{}, r.applied[userID]...), nil
	}
	return r.ids(ctx, `SELECT job_id FROM job_applications WHERE user_id = $1 ORDER BY created_at, job_id`, userID)
}

// RecordSearch moves term to the front of the user's history. Blank terms
// are ignored and repeats are matched case-insensitively.
func (r *ActivityRepo) RecordSearch(ctx context.Context, userID, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	if r.pool == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		next := []string{term}
		for _, t := range r.searches[userID] {
			if !strings.EqualFold(t, term) {
				next = append(next, t)
			}
		}
		if len(next) > searchHistory {
			next = next[:searchHistory]
		}
		r.searches[userID] = next
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM recent_searches WHERE user_id = $1 AND lower(term) = lower($2)`, userID, term); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO recent_searches (user_id, term) VALUES ($1, $2)`, userID, term); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM recent_searches WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM recent_searches WHERE user_id = $1 ORDER BY searched_at DESC, id DESC LIMIT $2
		)`, userID, searchHistory); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ActivityRepo) RecentSearches(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = searchHistory
	}
	if r.pool == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		terms := r.searches[userID]
		if len(terms) > limit {
			terms = terms[:limit]
		}
		return append([]string{}, terms...), nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT term FROM recent_searches WHERE user_id = $1
		ORDER BY searched_at DESC, id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ActivityRepo) ids(ctx context.Context, sql, userID string) ([]int, error) {
	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func appendUnique(ids []int, id int) []int {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func remove(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
