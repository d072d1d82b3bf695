package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// RunMigrations creates the JobHive tables on startup. Every statement is
// idempotent so it is safe to run on each boot.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	log.Info("starting database migrations")

	for _, m := range Migrations() {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		log.Debug("migration completed", zap.String("name", m.Name))
	}

	log.Info("all migrations completed", zap.Int("count", len(Migrations())))
	return nil
}

// Migration is a named schema statement.
type Migration struct {
	Name string
	SQL  string
}

func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_users",
			SQL: `CREATE TABLE IF NOT EXISTS users (
				id              TEXT PRIMARY KEY,
				email           TEXT NOT NULL UNIQUE,
				name            TEXT NOT NULL DEFAULT '',
				role            TEXT NOT NULL DEFAULT '',
				profile_picture TEXT NOT NULL DEFAULT '',
				title           TEXT NOT NULL DEFAULT '',
				bio             TEXT NOT NULL DEFAULT '',
				phone           TEXT NOT NULL DEFAULT '',
				location        TEXT NOT NULL DEFAULT '',
				website         TEXT NOT NULL DEFAULT '',
				skills          TEXT[] NOT NULL DEFAULT '{}'
			)`,
		},
		{
			Name: "create_jobs",
			SQL: `CREATE TABLE IF NOT EXISTS jobs (
				id          INTEGER PRIMARY KEY,
				title       TEXT NOT NULL,
				company     TEXT NOT NULL,
				type        TEXT NOT NULL,
				location    TEXT NOT NULL,
				schedule    TEXT NOT NULL DEFAULT '',
				salary      TEXT NOT NULL DEFAULT '',
				skills      TEXT[] NOT NULL DEFAULT '{}',
				industry    TEXT,
				posted_date DATE,
				icon        TEXT
			)`,
		},
		{
			Name: "create_job_postings",
			SQL: `CREATE TABLE IF NOT EXISTS job_postings (
				id           UUID PRIMARY KEY,
				employer_id  TEXT NOT NULL,
				title        TEXT NOT NULL,
				type         TEXT NOT NULL,
				location     TEXT NOT NULL,
				remote       BOOLEAN NOT NULL DEFAULT FALSE,
				description  TEXT NOT NULL,
				requirements TEXT NOT NULL,
				salary       TEXT NOT NULL DEFAULT '',
				status       TEXT NOT NULL DEFAULT 'pending',
				created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "index_job_postings_status",
			SQL:  `CREATE INDEX IF NOT EXISTS job_postings_status_idx ON job_postings (status, created_at DESC)`,
		},
		{
			Name: "create_saved_jobs",
			SQL: `CREATE TABLE IF NOT EXISTS saved_jobs (
				user_id    TEXT NOT NULL,
				job_id     INTEGER NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (user_id, job_id)
			)`,
		},
		{
			Name: "create_job_applications",
			SQL: `CREATE TABLE IF NOT EXISTS job_applications (
				user_id    TEXT NOT NULL,
				job_id     INTEGER NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (user_id, job_id)
			)`,
		},
		{
			Name: "create_recent_searches",
			SQL: `CREATE TABLE IF NOT EXISTS recent_searches (
				id          BIGSERIAL PRIMARY KEY,
				user_id     TEXT NOT NULL,
				term        TEXT NOT NULL,
				searched_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
		},
		{
			Name: "index_recent_searches_user",
			SQL:  `CREATE INDEX IF NOT EXISTS recent_searches_user_idx ON recent_searches (user_id, searched_at DESC)`,
		},
	}
}
