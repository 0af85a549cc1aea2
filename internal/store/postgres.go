package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

// NewPostgres opens dsn, creates the tables and seeds the default catalog into empty tables.
func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Several gateway and worker replicas may start together.
	const lockID = 482193067

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	if !acquired {
		time.Sleep(2 * time.Second)
		return nil
	}

	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS internships (
			id INT PRIMARY KEY,
			title TEXT NOT NULL,
			ministry TEXT,
			location TEXT,
			required_skills TEXT[] NOT NULL DEFAULT '{}'
		);`,
		`CREATE TABLE IF NOT EXISTS students (
			id TEXT PRIMARY KEY,
			name TEXT,
			skills TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return s.seed(ctx)
}

func (s *PostgresStore) seed(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM internships`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count internships: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, in := range DefaultInternships() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO internships(id, title, ministry, location, required_skills)
			VALUES($1,$2,$3,$4,$5) ON CONFLICT (id) DO NOTHING`,
			in.ID, in.Title, in.Ministry, in.Location, pq.Array(in.RequiredSkills))
		if err != nil {
			return fmt.Errorf("failed to seed internship %d: %w", in.ID, err)
		}
	}
	for _, st := range DefaultStudents() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO students(id, name, skills) VALUES($1,$2,$3) ON CONFLICT (id) DO NOTHING`,
			st.ID, st.Name, pq.Array(st.Skills))
		if err != nil {
			return fmt.Errorf("failed to seed student %s: %w", st.ID, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) ListInternships(ctx context.Context) ([]Internship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(ministry, ''), COALESCE(location, ''), required_skills
		FROM internships ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Internship
	for rows.Next() {
		var in Internship
		if err := rows.Scan(&in.ID, &in.Title, &in.Ministry, &in.Location, pq.Array(&in.RequiredSkills)); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetInternship(ctx context.Context, id int) (Internship, error) {
	in := Internship{ID: id}
	row := s.db.QueryRowContext(ctx, `
		SELECT title, COALESCE(ministry, ''), COALESCE(location, ''), required_skills
		FROM internships WHERE id=$1`, id)
	if err := row.Scan(&in.Title, &in.Ministry, &in.Location, pq.Array(&in.RequiredSkills)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Internship{}, ErrInternshipNotFound
		}
		return Internship{}, fmt.Errorf("failed to get internship %d: %w", id, err)
	}
	return in, nil
}

func (s *PostgresStore) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), skills, created_at FROM students ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.Name, pq.Array(&st.Skills), &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStudent(ctx context.Context, id string) (Student, error) {
	st := Student{ID: id}
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(name, ''), skills, created_at FROM students WHERE id=$1`, id)
	if err := row.Scan(&st.Name, pq.Array(&st.Skills), &st.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, ErrStudentNotFound
		}
		return Student{}, fmt.Errorf("failed to get student %s: %w", id, err)
	}
	return st, nil
}

func (s *PostgresStore) CreateStudent(ctx context.Context, name string, skills []string) (Student, error) {
	id := uuid.NewString()
	now := time.Now()
	_, err := s.db.ExecContext(ctx, `INSERT INTO students(id, name, skills, created_at) VALUES($1,$2,$3,$4)`,
		id, name, pq.Array(pqStringArray(skills)), now)
	if err != nil {
		return Student{}, err
	}
	return Student{ID: id, Name: name, Skills: pqStringArray(skills), CreatedAt: now}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func pqStringArray(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	return append([]string(nil), items...)
}
