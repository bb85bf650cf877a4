package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuplanner/menu"
)

// assign copies src into the pointer dest, the way pgx scans a column.
func assign(dest, src any) error {
	switch d := dest.(type) {
	case *string:
		*d = src.(string)
	case **string:
		if src == nil {
			*d = nil
		} else {
			s := src.(string)
			*d = &s
		}
	case *float64:
		*d = src.(float64)
	case *int:
		*d = src.(int)
	case *bool:
		*d = src.(bool)
	case *[]byte:
		*d = []byte(src.(string))
	default:
		return fmt.Errorf("unsupported scan target %T", dest)
	}
	return nil
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		if err := assign(dest[i], r.values[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.pos-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return fakeRow{values: r.rows[r.pos-1]}.Scan(dest...)
}

// fakeDB answers queries by matching a fragment of the SQL text.
type fakeDB struct {
	row     fakeRow
	queries map[string][][]any
	execs   []string
}

func (db *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	for fragment, rows := range db.queries {
		if strings.Contains(sql, fragment) {
			return &fakeRows{rows: rows}, nil
		}
	}
	return nil, errors.New("unexpected query")
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return db.row
}

func TestPostgresRepository_Resolve(t *testing.T) {
	placement := "Fryser"
	db := &fakeDB{row: fakeRow{values: []any{
		"Chili", "chili", placement, 4.0,
		`{"Beans": {"amount": 2, "unit": "can"}, "Onion": {"amount": 1, "unit": "stk"}}`,
		`{"Rice": {"amount": 1, "unit": "recipe"}}`,
	}}}

	r, err := NewPostgresRepository(db).Resolve(context.Background(), "chili")
	require.NoError(t, err)
	assert.Equal(t, &menu.Recipe{
		Name:         "Chili",
		Slug:         "chili",
		Placement:    "Fryser",
		BaseServings: 4,
		Ingredients: menu.Lines{
			{Name: "Beans", Amount: menu.Amount{Amount: 2, Unit: "can"}},
			{Name: "Onion", Amount: menu.Amount{Amount: 1, Unit: "stk"}},
		},
		Extras: menu.Lines{{Name: "Rice", Amount: menu.Amount{Amount: 1, Unit: menu.UnitRecipe}}},
	}, r)
}

func TestPostgresRepository_ResolveErrors(t *testing.T) {
	_, err := NewPostgresRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}}).Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, menu.ErrNotFound)

	boom := errors.New("connection reset")
	_, err = NewPostgresRepository(&fakeDB{row: fakeRow{err: boom}}).Resolve(context.Background(), "chili")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, menu.ErrNotFound)
}

func TestRecipeFromRow(t *testing.T) {
	r, err := recipeFromRow("Toast", "toast", nil, 1, []byte(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "", r.Placement)
	assert.Empty(t, r.Ingredients)
	assert.Nil(t, r.Extras)

	_, err = recipeFromRow("Toast", "toast", nil, 1, []byte(`[1, 2]`), nil)
	assert.ErrorContains(t, err, `recipe "Toast" ingredients`)
}

func TestPostgresRepository_List(t *testing.T) {
	db := &fakeDB{queries: map[string][][]any{
		"is_blacklisted": {
			{"Chili", "chili", false, false},
			{"Old Stew", "stew", true, false},
			{"Tacos", "tacos", true, true},
		},
	}}
	repo := NewPostgresRepository(db)

	visible, err := repo.List(context.Background(), Visible)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chili", "Tacos"}, visible)

	all, err := repo.List(context.Background(), All)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chili", "Old Stew", "Tacos"}, all)
}

func TestPostgresRepository_Directory(t *testing.T) {
	db := &fakeDB{queries: map[string][][]any{
		"FROM category_config": {{"veg", 1}, {"dry", 2}},
		"JOIN category_config": {{"Onion", "veg"}},
	}}

	d, err := NewPostgresRepository(db).Directory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.PriorityOf(d.CategoryOf("Onion")))
	assert.Equal(t, 3, d.PriorityOf(d.CategoryOf("Beans")))

	empty := &fakeDB{queries: map[string][][]any{
		"FROM category_config": nil,
		"JOIN category_config": nil,
	}}
	_, err = NewPostgresRepository(empty).Directory(context.Background())
	assert.ErrorIs(t, err, menu.ErrNoCategories)
}

func TestPostgresRepository_Staples(t *testing.T) {
	db := &fakeDB{queries: map[string][][]any{
		"staple_items": {{"Bread", 1.0, "stk"}, {"Milk", 2.0, "l"}},
	}}

	staples, err := NewPostgresRepository(db).Staples(context.Background())
	require.NoError(t, err)
	assert.Equal(t, menu.Lines{
		{Name: "Bread", Amount: menu.Amount{Amount: 1, Unit: "stk"}},
		{Name: "Milk", Amount: menu.Amount{Amount: 2, Unit: "l"}},
	}, staples)
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, EnsureSchema(context.Background(), db))
	require.Len(t, db.execs, 4)
	assert.Contains(t, db.execs[0], "CREATE TABLE IF NOT EXISTS recipes")
	assert.Contains(t, db.execs[3], "staple_items")
}
