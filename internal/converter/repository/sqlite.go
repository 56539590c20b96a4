package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"dxf-service/internal/converter/models"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when no drawing has the requested id.
var ErrNotFound = errors.New("drawing not found")

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the embedded migrations in file name order.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create stores d under a fresh id and fills in ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, d *models.StoredDrawing) error {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	d.Size = len(d.Content)

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO drawings (id, name, units, version, entities, content, source, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, d.ID, d.Name, d.Units, d.Version, d.Entities, d.Content, d.Source, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.StoredDrawing, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, units, version, entities, content, source, created_at
        FROM drawings
        WHERE id = ?
    `, id)

	var d models.StoredDrawing
	if err := row.Scan(&d.ID, &d.Name, &d.Units, &d.Version, &d.Entities, &d.Content, &d.Source, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.Size = len(d.Content)
	return &d, nil
}

// List returns drawing metadata, newest first. Content is not loaded.
func (r *Repository) List(ctx context.Context) ([]models.StoredDrawing, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, units, version, entities, length(content), created_at
        FROM drawings
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	drawings := []models.StoredDrawing{}
	for rows.Next() {
		var d models.StoredDrawing
		if err := rows.Scan(&d.ID, &d.Name, &d.Units, &d.Version, &d.Entities, &d.Size, &d.CreatedAt); err != nil {
			return nil, err
		}
		drawings = append(drawings, d)
	}
	return drawings, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	files, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, f := range files {
		data, err := migrations.ReadFile("migrations/" + f.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f.Name(), err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", f.Name(), err)
		}
	}
	return nil
}

// OpenSQLite opens the sqlite database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
