package services

import (
	"sort"

	apperrors "github.com/shajib07/storefront/common/errors"
	"github.com/shajib07/storefront/models"
)

// CatalogService serves the demo product catalog from memory, so the
// server runs with no external infrastructure.
type CatalogService struct {
	products []models.Product
}

func NewCatalogService() *CatalogService {
	return &CatalogService{products: seedProducts()}
}

func (s *CatalogService) List() []models.Product {
	return append([]models.Product(nil), s.products...)
}

func (s *CatalogService) Get(id int) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, apperrors.NotFound("product not found")
}

func (s *CatalogService) Categories() []string {
	seen := map[string]bool{}
	var categories []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// ByCategory returns the products of one category. An unknown category
// yields an empty list, never nil, so it serializes as a JSON array.
func (s *CatalogService) ByCategory(category string) []models.Product {
	matched := []models.Product{}
	for _, p := range s.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Title:       "Wireless Headphones",
			Price:       79.99,
			Description: "Over-ear wireless headphones with 30h battery life.",
			Category:    "electronics",
			Images:      []string{"https://img.example.com/products/1.png"},
			Reviews: []models.Review{
				{Rating: 5, Comment: "Great sound."},
				{Rating: 4},
			},
		},
		{
			ID:          2,
			Title:       "Mechanical Keyboard",
			Price:       129.50,
			Description: "Tenkeyless mechanical keyboard, brown switches.",
			Category:    "electronics",
			Images:      []string{"https://img.example.com/products/2.png"},
			Reviews: []models.Review{
				{Rating: 5, Comment: "Typing feels amazing."},
			},
		},
		{
			ID:          3,
			Title:       "Cotton T-Shirt",
			Price:       14.99,
			Description: "Plain crew-neck cotton t-shirt.",
			Category:    "clothing",
			Images:      []string{"https://img.example.com/products/3.png"},
		},
		{
			ID:          4,
			Title:       "Denim Jacket",
			Price:       59.00,
			Description: "Classic fit denim jacket.",
			Category:    "clothing",
			Images:      []string{"https://img.example.com/products/4.png"},
			Reviews: []models.Review{
				{Rating: 3, Comment: "Runs a bit small."},
				{Rating: 4, Comment: "Good value."},
			},
		},
		{
			ID:          5,
			Title:       "Stainless Water Bottle",
			Price:       24.95,
			Description: "Insulated 750ml bottle, keeps drinks cold for 24h.",
			Category:    "home",
			Images:      []string{"https://img.example.com/products/5.png"},
		},
	}
}
