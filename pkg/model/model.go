package model

import "time"

// Rating is the customer rating summary attached to a catalog product.
type Rating struct {
	Rate  float64 `json:"rate" firestore:"rate"`
	Count int     `json:"count" firestore:"count"`
}

// Product is a single catalog item as returned by the catalog API.
type Product struct {
	ID          int64   `json:"id" firestore:"id"`
	Title       string  `json:"title" firestore:"title"`
	Price       float64 `json:"price" firestore:"price"`
	Description string  `json:"description" firestore:"description"`
	Category    string  `json:"category" firestore:"category"`
	Image       string  `json:"image" firestore:"image"`
	Rating      Rating  `json:"rating" firestore:"rating"`
}

// CategoryAverage pairs a category with the average price of its products.
type CategoryAverage struct {
	Category     string  `json:"category" firestore:"category"`
	AveragePrice float64 `json:"averagePrice" firestore:"averagePrice"`
}

// CategoryHighest pairs a category with its highest-priced product.
type CategoryHighest struct {
	Category            string  `json:"category" firestore:"category"`
	HighestPriceProduct Product `json:"highestPriceProduct" firestore:"highestPriceProduct"`
}

// AggregateResult bundles the overall and per-category price statistics.
type AggregateResult struct {
	AveragePrice                     float64           `json:"averagePrice" firestore:"averagePrice"`
	HighestPriceProduct              Product           `json:"highestPriceProduct" firestore:"highestPriceProduct"`
	AveragePricesByCategories        []CategoryAverage `json:"averagePricesByCategories" firestore:"averagePricesByCategories"`
	HighestPriceProductsByCategories []CategoryHighest `json:"highestPriceProductsByCategories" firestore:"highestPriceProductsByCategories"`
}

// StatsSnapshot records one computed AggregateResult together with where and when it was taken.
type StatsSnapshot struct {
	RunID        string          `json:"runId" firestore:"runId"`
	Source       string          `json:"source,omitempty" firestore:"source,omitempty"`
	ProductCount int             `json:"productCount" firestore:"productCount"`
	DataHash     string          `json:"dataHash,omitempty" firestore:"dataHash,omitempty"` // fingerprint of the fetched catalog
	Result       AggregateResult `json:"result" firestore:"result"`
	CapturedAt   time.Time       `json:"capturedAt" firestore:"capturedAt"`
}
