package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"menuplanner"
	"menuplanner/catalog"
	"menuplanner/menu"
	"menuplanner/tools"
	"menuplanner/tools/storage"
)

// Params names the tool to run and its input, e.g.
// {"tool": "shopping_list", "input": {"menu": "...", "staples": true}}.
type Params struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var plannerConfig menuplanner.PlannerConfig
		if err := envdecode.Decode(&plannerConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		var storeConfig menuplanner.StoreConfig
		if err := envdecode.Decode(&storeConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
		if storeConfig.S3Bucket == "" {
			return Results{}, fmt.Errorf("missing S3 config: ARTIFACTS_S3_BUCKET must be set")
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return Results{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s3Client := s3.NewFromConfig(awsCfg)

		src, err := catalog.Load(ctx,
			storage.NewS3RecipeState(s3Client, storeConfig.S3Bucket, storeConfig.RecipesS3Key),
			storage.NewS3CategoryState(s3Client, storeConfig.S3Bucket, storeConfig.CategoriesS3Key))
		if err != nil {
			slog.Error("SETUP: Failed to load catalog from S3", "error", err)
			return Results{}, err
		}

		tracerProvider, _, otelShutdown, err := menuplanner.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		opts := []menu.Option{
			menu.WithMaxDepth(plannerConfig.MaxRecipeDepth),
			menu.WithStepLogger(menuplanner.NewStdoutExpansionLogger()),
		}
		if plannerConfig.SilentSection != "" {
			opts = append(opts, menu.WithSilentSection(plannerConfig.SilentSection))
		}
		if plannerConfig.FoldIngredientCase {
			opts = append(opts, menu.WithNamePolicy(menu.FoldCase))
		}

		registry, err := tools.NewRegistry(src, opts...)
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}

		tracer := tracerProvider.Tracer(menuplanner.TracerNameLambda)
		ctx, span := tracer.Start(ctx, menuplanner.TracerNameLambda, trace.WithAttributes(
			attribute.String("tool.name", params.Tool),
		))
		defer span.End()

		output, err := tools.Execute(ctx, registry, tools.Call{Name: params.Tool, Input: params.Input})
		if err != nil {
			span.RecordError(err)
			slog.Error("RESULT: Error running tool", "tool", params.Tool, "error", err)
			return Results{}, err
		}

		return Results{Output: output}, nil
	}

	lambda.Start(fn)
}
