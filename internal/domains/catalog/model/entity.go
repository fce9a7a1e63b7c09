package model

import (
	"time"
)

// Author represents a book author. The pair (FirstName, LastName) is
// unique in storage.
type Author struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName follows the "last first" display convention.
func (a *Author) FullName() string {
	return a.LastName + " " + a.FirstName
}

// Category represents a book category with a unique name.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book represents a catalog entry referencing one author and one category.
type Book struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review is a user's rating of a book, at most one per (user, book) pair.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"` // 1-5
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}
