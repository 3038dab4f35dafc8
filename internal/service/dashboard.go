package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"miniinventory/internal/model"
)

// TopCategoryLimit caps the number of categories reported on the dashboard.
const TopCategoryLimit = 8

// CategoryCount is one bar of the top-categories chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Dashboard holds inventory-wide aggregates.
type Dashboard struct {
	TotalProducts int             `json:"total_products"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	TopCategories []CategoryCount `json:"top_categories"`
}

// CategoryMap returns the top categories keyed by name.
func (d *Dashboard) CategoryMap() map[string]int {
	m := make(map[string]int, len(d.TopCategories))
	for _, c := range d.TopCategories {
		m[c.Category] = c.Count
	}
	return m
}

// ComputeDashboard aggregates products in a single pass. Categories are
// ranked by product count; equal counts keep the order in which the
// category was first seen in products.
func ComputeDashboard(products []model.Product) Dashboard {
	d := Dashboard{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
		TopCategories: []CategoryCount{},
	}

	index := make(map[string]int)
	for i := range products {
		p := &products[i]
		d.TotalQuantity += int64(p.Quantity)
		d.TotalValue = d.TotalValue.Add(p.Value())

		label := p.CategoryLabel()
		if pos, ok := index[label]; ok {
			d.TopCategories[pos].Count++
			continue
		}
		index[label] = len(d.TopCategories)
		d.TopCategories = append(d.TopCategories, CategoryCount{Category: label, Count: 1})
	}

	sort.SliceStable(d.TopCategories, func(i, j int) bool {
		return d.TopCategories[i].Count > d.TopCategories[j].Count
	})
	if len(d.TopCategories) > TopCategoryLimit {
		d.TopCategories = d.TopCategories[:TopCategoryLimit]
	}
	return d
}
