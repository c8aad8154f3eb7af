package models

import "time"

type CategoryType string

const (
	CategoryTypeProduct CategoryType = "product"
	CategoryTypePost    CategoryType = "post"
)

type Category struct {
	ID          string
	Name        string
	Description string
	Type        CategoryType
}

type Product struct {
	ID          string
	Name        string
	Description string
	Price       *float64
	CategoryID  *string
	Image       *string
	CreatedAt   time.Time

	// CategoryName is populated by queries that join categories.
	CategoryName *string
}

type Post struct {
	ID         string
	Title      string
	Content    string
	CategoryID *string
	Author     string
	Image      *string
	CreatedAt  time.Time

	CategoryName *string
}
