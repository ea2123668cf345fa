package util

import (
	"testing"

	"github.com/weiwei-tsao/catalog-stats/pkg/model"
)

func TestHashProducts(t *testing.T) {
	a := []model.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing"},
		{ID: 2, Title: "T-Shirt", Price: 22.3, Category: "men's clothing"},
	}
	if len(HashProducts(a)) != 32 {
		t.Errorf("hash length = %d, want 32", len(HashProducts(a)))
	}
	if HashProducts(a) != HashProducts([]model.Product{a[0], a[1]}) {
		t.Errorf("hash should be stable for equal catalogs")
	}

	repriced := []model.Product{a[0], {ID: 2, Title: "T-Shirt", Price: 22.31, Category: "men's clothing"}}
	if HashProducts(a) == HashProducts(repriced) {
		t.Errorf("hash should change when a price changes")
	}

	reordered := []model.Product{a[1], a[0]}
	if HashProducts(a) == HashProducts(reordered) {
		t.Errorf("hash should depend on product order")
	}
}

func TestHashProductsCoversAllFields(t *testing.T) {
	base := model.Product{ID: 1, Title: "Laptop", Price: 10, Category: "electronics"}
	variants := map[string]model.Product{
		"title":        {ID: 1, Title: "Toaster", Price: 10, Category: "electronics"},
		"description":  {ID: 1, Title: "Laptop", Price: 10, Category: "electronics", Description: "thin"},
		"image":        {ID: 1, Title: "Laptop", Price: 10, Category: "electronics", Image: "x"},
		"rating rate":  {ID: 1, Title: "Laptop", Price: 10, Category: "electronics", Rating: model.Rating{Rate: 1}},
		"rating count": {ID: 1, Title: "Laptop", Price: 10, Category: "electronics", Rating: model.Rating{Count: 2}},
	}
	want := HashProducts([]model.Product{base})
	for name, p := range variants {
		t.Run(name, func(t *testing.T) {
			if HashProducts([]model.Product{p}) == want {
				t.Errorf("hash should change when %s changes", name)
			}
		})
	}
}

func TestHashProductsSeparatorInValue(t *testing.T) {
	one := []model.Product{{ID: 1, Price: 1, Category: "x\n2|3|y"}}
	two := []model.Product{
		{ID: 1, Price: 1, Category: "x"},
		{ID: 2, Price: 3, Category: "y"},
	}
	if HashProducts(one) == HashProducts(two) {
		t.Errorf("a category containing separators should not collide with a longer catalog")
	}
}

func TestHashProductsEmpty(t *testing.T) {
	if HashProducts(nil) != HashProducts([]model.Product{}) {
		t.Errorf("nil and empty catalogs should hash the same")
	}
}
