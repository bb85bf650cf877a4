// menuplanner expands a weekly menu into a menu summary and a categorized
// shopping list.
//
// Usage:
//
//	menuplanner plan [-week N] [-year N] [-menu path] [-staples] [-otel] [-slack] [-dump]
//	menuplanner build [-week N] [-year N] Recipe=plates...
//	menuplanner recipes [-all]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"menuplanner"
	"menuplanner/catalog"
	"menuplanner/menu"
	"menuplanner/slack"
	"menuplanner/tools/storage"
)

func main() {
	_ = godotenv.Load()

	var plannerConfig menuplanner.PlannerConfig
	if err := envdecode.Decode(&plannerConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var storeConfig menuplanner.StoreConfig
	if err := envdecode.Decode(&storeConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "plan":
		err = runPlan(ctx, plannerConfig, storeConfig, os.Args[2:])
	case "build":
		err = runBuild(ctx, plannerConfig, storeConfig, os.Args[2:])
	case "recipes":
		err = runRecipes(ctx, plannerConfig, storeConfig, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("RESULT: Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: menuplanner plan|build|recipes [flags]")
}

func runPlan(ctx context.Context, cfg menuplanner.PlannerConfig, store menuplanner.StoreConfig, args []string) error {
	week, year := isoWeek(time.Now())
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	weekFlag := fs.Int("week", week, "ISO week of the menu file")
	yearFlag := fs.Int("year", year, "year of the menu file")
	menuPath := fs.String("menu", "", "menu file (defaults to MENUS_DIR/uge_WW_YYYY.yaml)")
	staples := fs.Bool("staples", false, "add the configured staples to the silent section")
	withOtel := fs.Bool("otel", false, "trace and meter the run")
	postSlack := fs.Bool("slack", false, "post the report to Slack")
	dump := fs.Bool("dump", false, "dump the parsed menu")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *menuPath
	if path == "" {
		path = filepath.Join(cfg.MenusDir, menu.WeekFileName(*weekFlag, *yearFlag))
	}
	m, err := menu.LoadMenu(path)
	if err != nil {
		return err
	}
	slog.Info("SETUP: Menu loaded", "path", path, "sections", len(m.Sections))

	src, closeSrc, err := openSource(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer closeSrc()

	dir, err := src.Directory(ctx)
	if err != nil {
		return err
	}

	stepLogger, flushSteps, err := newExpansionLogger(filepath.Base(path))
	if err != nil {
		return err
	}
	defer func() {
		if err := flushSteps(); err != nil {
			slog.Error("Failed to flush expansion log", "error", err)
		}
	}()

	expander := menu.NewExpander(src, dir, expanderOptions(cfg, stepLogger)...)
	if *staples {
		items, err := src.Staples(ctx)
		if err != nil {
			return err
		}
		m = menu.WithStaples(m, items, expander.SilentSection())
	}
	if *dump {
		menuplanner.Dump(m)
	}

	var run reporter = expander
	if *withOtel {
		tracerProvider, meterProvider, otelShutdown, err := menuplanner.InitOtel(ctx)
		if err != nil {
			return fmt.Errorf("initialize OpenTelemetry: %w", err)
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		tracer := tracerProvider.Tracer(menuplanner.TracerNameCLI)
		var span trace.Span
		ctx, span = tracer.Start(ctx, menuplanner.TracerNameCLI, trace.WithAttributes(
			attribute.String("menu.path", path),
			attribute.Bool("menu.staples", *staples),
		))
		defer span.End()

		run = menu.NewInstrumentedExpander(expander, tracer, meterProvider.Meter(menuplanner.TracerNameCLI))
	}

	ledger, report, err := renderToFile(ctx, run, m, cfg.OutputPath)
	if err != nil {
		return err
	}
	slog.Info("RESULT: Shopping list written", "path", cfg.OutputPath, "items", ledger.Len())

	if *postSlack {
		if cfg.SlackWebhookURL == "" {
			return errors.New("SLACK_WEBHOOK_URL is not set")
		}
		client := slack.NewClient(cfg.SlackWebhookURL, &http.Client{Timeout: 10 * time.Second})
		title := fmt.Sprintf("Uge %d %d", *weekFlag, *yearFlag)
		if err := client.PostReport(ctx, cfg.SlackChannel, title, report.String()); err != nil {
			return fmt.Errorf("post to Slack: %w", err)
		}
		slog.Info("RESULT: Report posted to Slack", "channel", cfg.SlackChannel)
	}
	return nil
}

func runBuild(ctx context.Context, cfg menuplanner.PlannerConfig, store menuplanner.StoreConfig, args []string) error {
	week, year := nextISOWeek(time.Now())
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	weekFlag := fs.Int("week", week, "ISO week of the menu file (defaults to next week)")
	yearFlag := fs.Int("year", year, "year of the menu file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	choices, err := parseChoices(fs.Args())
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer closeSrc()

	for _, c := range choices {
		if _, err := src.Resolve(ctx, c.Recipe); err != nil {
			return fmt.Errorf("choice %q: %w", c.Recipe, err)
		}
	}
	staples, err := src.Staples(ctx)
	if err != nil {
		return err
	}

	silent := cfg.SilentSection
	if silent == "" {
		silent = menu.DefaultSilentSection
	}
	m := menu.WithStaples(menu.FromChoices(choices), staples, silent)
	path, err := menu.SaveMenu(cfg.MenusDir, *weekFlag, *yearFlag, m)
	if err != nil {
		return err
	}
	slog.Info("RESULT: Menu saved", "path", path, "recipes", len(choices), "staples", len(staples))
	return nil
}

func runRecipes(ctx context.Context, cfg menuplanner.PlannerConfig, store menuplanner.StoreConfig, args []string) error {
	fs := flag.NewFlagSet("recipes", flag.ExitOnError)
	all := fs.Bool("all", false, "include blacklisted recipes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src, closeSrc, err := openSource(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer closeSrc()

	filter := catalog.Visible
	if *all {
		filter = catalog.All
	}
	names, err := src.List(ctx, filter)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

// openSource picks Postgres when DATABASE_URL is set, the local documents
// otherwise.
func openSource(ctx context.Context, cfg menuplanner.PlannerConfig, store menuplanner.StoreConfig) (catalog.Source, func(), error) {
	if store.DatabaseURL != "" {
		pool, err := catalog.Connect(ctx, store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := catalog.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("SETUP: Using Postgres catalog")
		return catalog.NewPostgresRepository(pool), pool.Close, nil
	}

	c, err := catalog.Load(ctx,
		storage.NewFileRecipeState(cfg.RecipesPath),
		storage.NewFileCategoryState(cfg.CategoriesPath))
	if err != nil {
		return nil, nil, err
	}
	return c, func() {}, nil
}

func expanderOptions(cfg menuplanner.PlannerConfig, logger menuplanner.ExpansionLogger) []menu.Option {
	opts := []menu.Option{
		menu.WithMaxDepth(cfg.MaxRecipeDepth),
		menu.WithStepLogger(logger),
	}
	if cfg.SilentSection != "" {
		opts = append(opts, menu.WithSilentSection(cfg.SilentSection))
	}
	if cfg.FoldIngredientCase {
		opts = append(opts, menu.WithNamePolicy(menu.FoldCase))
	}
	return opts
}

func newExpansionLogger(menuName string) (menuplanner.ExpansionLogger, func() error, error) {
	logFilePath := menuplanner.NewExpansionLogFilePath(menuName)
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := menuplanner.NewFileExpansionLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}

func isoWeek(t time.Time) (week, year int) {
	year, week = t.ISOWeek()
	return week, year
}

// nextISOWeek is the week a new menu is usually planned for.
func nextISOWeek(t time.Time) (week, year int) {
	return isoWeek(t.AddDate(0, 0, 7))
}
