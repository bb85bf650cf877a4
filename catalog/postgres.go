package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"menuplanner/menu"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connect opens a connection pool for dsn and checks it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the catalog tables when missing. Ingredient maps are
// stored as json (not jsonb) so key order survives.
func EnsureSchema(ctx context.Context, db DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			id SERIAL PRIMARY KEY,
			slug VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) UNIQUE NOT NULL,
			placement TEXT NULL,
			servings DOUBLE PRECISION NOT NULL DEFAULT 4 CHECK (servings >= 0),
			ingredients JSON NOT NULL DEFAULT '{}',
			extras JSON NOT NULL DEFAULT '{}',
			is_blacklisted BOOLEAN NOT NULL DEFAULT FALSE,
			is_whitelisted BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS category_config (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			priority INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS ingredient_config (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			category_id INTEGER NULL REFERENCES category_config(id)
		)`,
		`CREATE TABLE IF NOT EXISTS staple_items (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			amount DOUBLE PRECISION NOT NULL DEFAULT 1,
			unit VARCHAR(50) NOT NULL DEFAULT 'stk'
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	slog.Info("CATALOG: Schema ready")
	return nil
}

// PostgresRepository resolves recipes and category configuration from
// Postgres. Every call reads the current rows.
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Resolve looks a recipe up by slug or name.
func (r *PostgresRepository) Resolve(ctx context.Context, reference string) (*menu.Recipe, error) {
	var (
		name, slug   string
		placement    *string
		servings     float64
		ingr, extras []byte
	)

	err := r.db.QueryRow(ctx, `
		SELECT name, slug, placement, servings, ingredients::text, extras::text
		FROM recipes
		WHERE slug = $1 OR name = $1
		ORDER BY (slug = $1) DESC
		LIMIT 1
	`, reference).Scan(&name, &slug, &placement, &servings, &ingr, &extras)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, err
	}

	return recipeFromRow(name, slug, placement, servings, ingr, extras)
}

func recipeFromRow(name, slug string, placement *string, servings float64, ingr, extras []byte) (*menu.Recipe, error) {
	r := &menu.Recipe{Name: name, Slug: slug, BaseServings: servings}
	if placement != nil {
		r.Placement = *placement
	}
	if err := decodeLines(ingr, &r.Ingredients); err != nil {
		return nil, fmt.Errorf("recipe %q ingredients: %w", name, err)
	}
	if err := decodeLines(extras, &r.Extras); err != nil {
		return nil, fmt.Errorf("recipe %q extras: %w", name, err)
	}
	return r, nil
}

// decodeLines reads a JSON object into ordered lines. JSON is valid YAML, and
// the YAML decoder keeps key order.
func decodeLines(data []byte, out *menu.Lines) error {
	if len(data) == 0 {
		*out = nil
		return nil
	}
	return yaml.Unmarshal(data, out)
}

// List returns the names of the recipes accepted by filter, sorted.
func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]string, error) {
	if filter == nil {
		filter = All
	}

	rows, err := r.db.Query(ctx, `
		SELECT name, slug, is_blacklisted, is_whitelisted
		FROM recipes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.Name, &m.Slug, &m.Blacklisted, &m.Whitelisted); err != nil {
			return nil, err
		}
		if filter(m) {
			out = append(out, m.Name)
		}
	}
	return out, rows.Err()
}

// Directory loads category priorities and ingredient placement. It fails
// with menu.ErrNoCategories when the category table is empty.
func (r *PostgresRepository) Directory(ctx context.Context) (*menu.Directory, error) {
	rows, err := r.db.Query(ctx, `SELECT name, priority FROM category_config`)
	if err != nil {
		return nil, err
	}
	priorities := map[string]int{}
	for rows.Next() {
		var name string
		var priority int
		if err := rows.Scan(&name, &priority); err != nil {
			rows.Close()
			return nil, err
		}
		priorities[name] = priority
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT i.name, c.name
		FROM ingredient_config i
		JOIN category_config c ON c.id = i.category_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := map[string]string{}
	for rows.Next() {
		var ingredient, category string
		if err := rows.Scan(&ingredient, &category); err != nil {
			return nil, err
		}
		items[ingredient] = category
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return menu.NewDirectory(priorities, items)
}

// Staples returns the weekly staple items ordered by name.
func (r *PostgresRepository) Staples(ctx context.Context) (menu.Lines, error) {
	rows, err := r.db.Query(ctx, `SELECT name, amount, unit FROM staple_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out menu.Lines
	for rows.Next() {
		var l menu.Line
		if err := rows.Scan(&l.Name, &l.Amount.Amount, &l.Unit); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
