package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "quiz_user")
	password := getEnv("DB_PASSWORD", "quiz_password")
	dbname := getEnv("DB_NAME", "quiz_bank")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS questions (
		id          BIGINT PRIMARY KEY,
		text        TEXT NOT NULL,
		answer_text TEXT NOT NULL DEFAULT '',
		explanation TEXT NOT NULL DEFAULT '',
		source      TEXT NOT NULL DEFAULT '',
		section     TEXT NOT NULL DEFAULT '',
		page        TEXT NOT NULL DEFAULT '',
		theme       TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_theme ON questions(theme);
	CREATE INDEX IF NOT EXISTS idx_questions_title ON questions(title);

	CREATE TABLE IF NOT EXISTS question_options (
		id          BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		position    INT NOT NULL,
		text        TEXT NOT NULL,
		is_correct  BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE(question_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_options_question ON question_options(question_id);

	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
