package main

import (
	"context"
	"errors"

	"menuplanner/menu"
)

// reporter is satisfied by both the plain and the instrumented expander.
type reporter interface {
	Report(ctx context.Context, m menu.Menu, p menu.Printer) (*menu.Ledger, error)
}

// renderToFile renders the report in memory and only then writes it to path,
// so a failed run leaves the previous file untouched.
func renderToFile(ctx context.Context, run reporter, m menu.Menu, path string) (*menu.Ledger, menu.Buffer, error) {
	var report menu.Buffer
	ledger, err := run.Report(ctx, m, &report)
	if err != nil {
		return nil, nil, err
	}

	out, err := menu.CreateFilePrinter(path)
	if err != nil {
		return nil, nil, err
	}
	if err := errors.Join(report.Replay(out), out.Close()); err != nil {
		return nil, nil, err
	}
	return ledger, report, nil
}
