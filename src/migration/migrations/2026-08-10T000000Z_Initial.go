package migrations

import (
	"context"
	"time"

	"git.teamcore.network/tcn/tcn/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(Initial{})
}

type Initial struct{}

func (m Initial) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))
}

func (m Initial) Name() string {
	return "Initial"
}

func (m Initial) Description() string {
	return "Creates the initial database schema"
}

func (m Initial) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		CREATE TABLE role (
			id SERIAL PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);
		CREATE UNIQUE INDEX role_unique_name ON role (LOWER(name));

		CREATE TABLE tcn_user (
			id SERIAL PRIMARY KEY,
			username VARCHAR(150) NOT NULL,
			email VARCHAR(254) NOT NULL,
			password VARCHAR(256) NOT NULL,
			role_id INT NOT NULL REFERENCES role (id),
			date_joined TIMESTAMP WITH TIME ZONE NOT NULL,
			last_login TIMESTAMP WITH TIME ZONE
		);
		CREATE UNIQUE INDEX tcn_user_unique_username ON tcn_user (LOWER(username));
		CREATE UNIQUE INDEX tcn_user_unique_email ON tcn_user (LOWER(email));

		CREATE TABLE session (
			id VARCHAR(40) PRIMARY KEY,
			user_id INT NOT NULL REFERENCES tcn_user (id) ON DELETE CASCADE,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE TABLE support_ticket (
			id SERIAL PRIMARY KEY,
			reference UUID NOT NULL UNIQUE,
			user_id INT REFERENCES tcn_user (id) ON DELETE SET NULL,
			email VARCHAR(254) NOT NULL,
			subject VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			status VARCHAR(16) NOT NULL
		);

		CREATE TABLE wiki_page (
			id SERIAL PRIMARY KEY,
			slug VARCHAR(200) NOT NULL,
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL,
			last_modified_at TIMESTAMP WITH TIME ZONE NOT NULL,
			editor_id INT REFERENCES tcn_user (id) ON DELETE SET NULL
		);
		CREATE UNIQUE INDEX wiki_page_unique_slug ON wiki_page (slug);

		CREATE TABLE wiki_revision (
			id SERIAL PRIMARY KEY,
			page_id INT NOT NULL REFERENCES wiki_page (id) ON DELETE CASCADE,
			editor_id INT REFERENCES tcn_user (id) ON DELETE SET NULL,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			comment VARCHAR(500) NOT NULL DEFAULT ''
		);

		CREATE TABLE category (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			slug VARCHAR(100) NOT NULL
		);
		CREATE UNIQUE INDEX category_unique_name ON category (LOWER(name));
		CREATE UNIQUE INDEX category_unique_slug ON category (slug);

		CREATE TABLE thread (
			id SERIAL PRIMARY KEY,
			category_id INT NOT NULL REFERENCES category (id) ON DELETE CASCADE,
			author_id INT REFERENCES tcn_user (id) ON DELETE SET NULL,
			title VARCHAR(200) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL,
			last_post_at TIMESTAMP WITH TIME ZONE NOT NULL,
			last_post_id INT,
			last_poster_id INT REFERENCES tcn_user (id) ON DELETE SET NULL
		);
		CREATE INDEX thread_category_last_post ON thread (category_id, last_post_at DESC);

		CREATE TABLE post (
			id SERIAL PRIMARY KEY,
			thread_id INT NOT NULL REFERENCES thread (id) ON DELETE CASCADE,
			author_id INT REFERENCES tcn_user (id) ON DELETE SET NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
		CREATE INDEX post_thread_created ON post (thread_id, created_at);

		ALTER TABLE thread
			ADD CONSTRAINT thread_last_post_fk
			FOREIGN KEY (last_post_id) REFERENCES post (id) ON DELETE SET NULL;
	`)
	return err
}

func (m Initial) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		ALTER TABLE thread DROP CONSTRAINT thread_last_post_fk;
		DROP TABLE post;
		DROP TABLE thread;
		DROP TABLE category;
		DROP TABLE wiki_revision;
		DROP TABLE wiki_page;
		DROP TABLE support_ticket;
		DROP TABLE session;
		DROP TABLE tcn_user;
		DROP TABLE role;
	`)
	return err
}
