package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menuplanner/menu"
)

type stubReporter struct {
	lines []string
	err   error
}

func (s stubReporter) Report(_ context.Context, _ menu.Menu, p menu.Printer) (*menu.Ledger, error) {
	for _, l := range s.lines {
		if err := p.Print(l); err != nil {
			return nil, err
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return menu.NewLedger(), nil
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping.md")

	_, report, err := renderToFile(context.Background(), stubReporter{lines: []string{"# Menu", "# Shopping"}}, menu.Menu{}, path)
	require.NoError(t, err)
	assert.Equal(t, menu.Buffer{"# Menu", "# Shopping"}, report)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Menu\n# Shopping\n", string(data))
}

func TestRenderToFile_FailedReportKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping.md")
	require.NoError(t, os.WriteFile(path, []byte("last week\n"), 0o644))

	boom := errors.New("cycle")
	_, _, err := renderToFile(context.Background(), stubReporter{lines: []string{"# Menu"}, err: boom}, menu.Menu{}, path)
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "last week\n", string(data))
}

func TestNextISOWeek(t *testing.T) {
	for name, tc := range map[string]struct {
		now        time.Time
		week, year int
	}{
		"mid year":      {now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), week: 43, year: 2026},
		"year boundary": {now: time.Date(2026, 12, 28, 12, 0, 0, 0, time.UTC), week: 1, year: 2027},
	} {
		t.Run(name, func(t *testing.T) {
			week, year := nextISOWeek(tc.now)
			assert.Equal(t, tc.week, week)
			assert.Equal(t, tc.year, year)
		})
	}
}
