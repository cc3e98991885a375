package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

// SeedProducts is the default menu
var SeedProducts = []models.ProductInput{
	{Name: "soft drink", Price: 1.9},
	{Name: "ice cream", Price: 2},
	{Name: "chicken wings", Price: 12.9},
	{Name: "sundae", Price: 3.9},
	{Name: "beer pint", Price: 4},
	{Name: "beer pitcher", Price: 11.9},
	{Name: "long neck", Price: 2.8},
	{Name: "ribs", Price: 14},
	{Name: "fish fingers", Price: 9.9},
	{Name: "poutine", Price: 5.9},
}

// SeedTableNumbers are the dining tables created by Seed
var SeedTableNumbers = []int{1, 2, 3, 4, 5}

// SeedResult reports how many rows Seed inserted
type SeedResult struct {
	Products int
	Tables   int
}

// Seed inserts the default menu and tables. Each set is only inserted when
// its table is empty, so running Seed twice does not duplicate rows.
func Seed(ctx context.Context, store *Store, log *slog.Logger) (SeedResult, error) {
	var result SeedResult

	products, err := store.Products.List(ctx, "")
	if err != nil {
		return result, fmt.Errorf("failed to list products: %w", err)
	}
	if len(products) == 0 {
		for _, p := range SeedProducts {
			product := &models.Product{Name: p.Name, Price: p.Price}
			if err := store.Products.Create(ctx, product); err != nil {
				return result, fmt.Errorf("failed to seed product %q: %w", p.Name, err)
			}
			result.Products++
		}
	} else {
		log.Info("products already present, skipping product seed", "count", len(products))
	}

	tables, err := store.Tables.List(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list tables: %w", err)
	}
	if len(tables) == 0 {
		for _, number := range SeedTableNumbers {
			if err := store.Tables.Create(ctx, &models.Table{TableNumber: number}); err != nil {
				return result, fmt.Errorf("failed to seed table %d: %w", number, err)
			}
			result.Tables++
		}
	} else {
		log.Info("tables already present, skipping table seed", "count", len(tables))
	}

	return result, nil
}
