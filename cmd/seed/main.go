// Command seed loads recipes from a JSON file into the catalog. The file
// holds an array of recipe objects in the same shape the API accepts, so a
// dump of POST bodies can be replayed as is.
//
// Flags:
//
//	--file     path to the JSON file (required)
//	--dry-run  decode and validate without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/ingredient"
	reciperepo "github.com/adityakarchi/recipe-management/internal/adapter/postgres/recipe"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/recipeingredient"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/step"
	"github.com/adityakarchi/recipe-management/internal/app"
	"github.com/adityakarchi/recipe-management/internal/config"
	"github.com/adityakarchi/recipe-management/internal/domain"
	"github.com/adityakarchi/recipe-management/internal/service/recipe"
	"github.com/adityakarchi/recipe-management/internal/transport/rest"
)

func main() {
	fileFlag := flag.String("file", "", "path to a JSON array of recipes")
	dryRunFlag := flag.Bool("dry-run", false, "decode and validate without writing to DB")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *fileFlag == "" {
		logger.Error("--file is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Error("read seed file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Error("seed file must be a JSON array", slog.String("error", err.Error()))
		os.Exit(1)
	}

	inputs := make([]recipe.RecipeInput, 0, len(raw))
	for i, item := range raw {
		input, ve := rest.DecodeRecipe(bytes.NewReader(item))
		if ve == nil {
			ve = asValidation(input.Validate(cfg.Recipe.MaxIngredients, cfg.Recipe.MaxSteps))
		}
		if ve != nil {
			logger.Error("invalid recipe", slog.Int("index", i), slog.String("errors", ve.Summary()))
			os.Exit(1)
		}
		inputs = append(inputs, input)
	}

	if *dryRunFlag {
		logger.Info("dry run: all recipes valid", slog.Int("count", len(inputs)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := recipe.NewService(
		logger,
		reciperepo.New(pool),
		ingredient.New(pool),
		recipeingredient.New(pool),
		step.New(pool),
		postgres.NewTxManager(pool),
		cfg.Recipe,
	)

	for i, input := range inputs {
		rec, err := svc.CreateRecipe(ctx, input)
		if err != nil {
			logger.Error("seed recipe failed",
				slog.Int("index", i),
				slog.String("name", input.Name),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		logger.Debug("seeded recipe", slog.Int64("recipe_id", rec.ID))
	}

	logger.Info("seed completed", slog.Int("count", len(inputs)))
}

func asValidation(err error) *domain.ValidationError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
