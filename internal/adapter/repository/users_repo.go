package repository

import (
	"context"
	"errors"

	"jobhive/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// UsersRepo resolves canonical user records from the users table.
type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if r.pool == nil {
		return nil, nil
	}

	var (
		u    domain.User
		role string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, name, role, profile_picture, title, bio, phone, location, website, skills
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &role, &u.ProfilePicture, &u.Title, &u.Bio, &u.Phone, &u.Location, &u.Website, &u.Skills)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role, _ = domain.ParseRole(role)
	return &u, nil
}

// Upsert writes u, used to mirror the demo accounts into the table.
func (r *UsersRepo) Upsert(ctx context.Context, u domain.User) error {
	if r.pool == nil {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, role, profile_picture, title, bio, phone, location, website, skills)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role,
			profile_picture = EXCLUDED.profile_picture, title = EXCLUDED.title, bio = EXCLUDED.bio,
			phone = EXCLUDED.phone, location = EXCLUDED.location, website = EXCLUDED.website,
			skills = EXCLUDED.skills`,
		u.ID, u.Email, u.Name, string(u.Role), u.ProfilePicture, u.Title, u.Bio, u.Phone, u.Location, u.Website, u.Skills)
	return err
}

func (r *UsersRepo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}
