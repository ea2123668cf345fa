package stats

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/weiwei-tsao/catalog-stats/pkg/model"
)

// ErrEmptyInput is returned when a statistic is requested over zero products.
var ErrEmptyInput = errors.New("stats: no products to aggregate")

// AveragePrice returns the arithmetic mean of all product prices.
// Prices are summed as decimals; only the final quotient is converted back to float64.
// The quotient is rounded to 16 decimal places beyond the finest digit of the sum.
func AveragePrice(products []model.Product) (float64, error) {
	if len(products) == 0 {
		return 0, ErrEmptyInput
	}
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}
	places := int32(16)
	if exp := sum.Exponent(); exp < 0 {
		places -= exp
	}
	avg, _ := sum.DivRound(decimal.NewFromInt(int64(len(products))), places).Float64()
	return avg, nil
}

// HighestPriceProduct returns the product with the greatest price.
// Ties go to the product that appears first: a later product only replaces the current maximum when strictly more expensive.
func HighestPriceProduct(products []model.Product) (model.Product, error) {
	if len(products) == 0 {
		return model.Product{}, ErrEmptyInput
	}
	highest := products[0]
	for _, p := range products[1:] {
		if p.Price > highest.Price {
			highest = p
		}
	}
	return highest, nil
}

// DistinctCategories lists each category once, in the order it is first seen.
func DistinctCategories(products []model.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// FilterByCategory returns the products whose category equals category, preserving their order.
func FilterByCategory(category string, products []model.Product) []model.Product {
	filtered := make([]model.Product, 0)
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// AveragePriceByCategory computes AveragePrice for each category, in the order given.
func AveragePriceByCategory(categories []string, products []model.Product) ([]model.CategoryAverage, error) {
	averages := make([]model.CategoryAverage, 0, len(categories))
	for _, category := range categories {
		avg, err := AveragePrice(FilterByCategory(category, products))
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		averages = append(averages, model.CategoryAverage{
			Category:     category,
			AveragePrice: avg,
		})
	}
	return averages, nil
}

// HighestPriceProductByCategory computes HighestPriceProduct for each category, in the order given.
func HighestPriceProductByCategory(categories []string, products []model.Product) ([]model.CategoryHighest, error) {
	highest := make([]model.CategoryHighest, 0, len(categories))
	for _, category := range categories {
		p, err := HighestPriceProduct(FilterByCategory(category, products))
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		highest = append(highest, model.CategoryHighest{
			Category:            category,
			HighestPriceProduct: p,
		})
	}
	return highest, nil
}

// Aggregate reduces a catalog into overall and per-category price statistics.
func Aggregate(products []model.Product) (model.AggregateResult, error) {
	avg, err := AveragePrice(products)
	if err != nil {
		return model.AggregateResult{}, fmt.Errorf("average price: %w", err)
	}
	highest, err := HighestPriceProduct(products)
	if err != nil {
		return model.AggregateResult{}, fmt.Errorf("highest price product: %w", err)
	}

	categories := DistinctCategories(products)
	averages, err := AveragePriceByCategory(categories, products)
	if err != nil {
		return model.AggregateResult{}, fmt.Errorf("average price by category: %w", err)
	}
	highestByCategory, err := HighestPriceProductByCategory(categories, products)
	if err != nil {
		return model.AggregateResult{}, fmt.Errorf("highest price product by category: %w", err)
	}

	return model.AggregateResult{
		AveragePrice:                     avg,
		HighestPriceProduct:              highest,
		AveragePricesByCategories:        averages,
		HighestPriceProductsByCategories: highestByCategory,
	}, nil
}
