// Package domain holds annotation types and ports shared by http, service and other modules
package domain

import "time"

// Annotation is admin curated content keyed by a normalized search keyword
type Annotation struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedBy string    `json:"createdBy"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput is the body of POST /annotations
type CreateInput struct {
	Keyword  string `json:"keyword"  validate:"required,notblank,max=100" example:"bone loss"`
	Title    string `json:"title"    validate:"required,notblank,max=200" example:"Bone loss in orbit"`
	Content  string `json:"content"  validate:"required,notblank,max=10000"`
	Category string `json:"category" validate:"omitempty,oneof=biology mission organism technology general" example:"biology"`
}

// UpdateInput is the body of PUT /annotations/{id}
// nil fields are left untouched; the keyword is immutable
type UpdateInput struct {
	Title    *string `json:"title"    validate:"omitempty,notblank,max=200"`
	Content  *string `json:"content"  validate:"omitempty,notblank,max=10000"`
	Category *string `json:"category" validate:"omitempty,oneof=biology mission organism technology general"`
	IsActive *bool   `json:"isActive"`
}
