// Package testmodels holds documented types used across the tests.
package testmodels

import (
	"time"

	"github.com/nieomylnieja/oapidoc/internal/testmodels/moremodels"
)

// SearchQuery is the query of the search endpoint.
type SearchQuery struct {
	// Q is the search pattern.
	Q string `json:"q"`
	// Archived makes the search include archived items.
	Archived *bool `json:"archived"`
}

// User owns [Item].
type User struct {
	ID    uint     `json:"id"`
	Staff bool     `json:"staff"`
	Tags  []string `json:"tags"`
}

// Item is a single search result.
type Item struct {
	ID    uint     `json:"id"`
	Width *float64 `json:"width"`
	Owner User     `json:"owner"`
}

// SearchResponse is returned by the search endpoint.
type SearchResponse struct {
	// Success is true when no errors occurred.
	Success bool `json:"success"`
	// Count is the number of found items.
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

// Category is a node of the category tree.
type Category struct {
	Name     string     `json:"name"`
	Children []Category `json:"children"`
	Parent   *Category  `json:"parent"`
}

// Timestamps are embedded by persisted types.
type Timestamps struct {
	// CreatedAt is set once, on creation.
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Article is a blog post.
type Article struct {
	Timestamps
	// Title of the article.
	Title string `json:"title" description:"Headline shown on the front page."`
	// Meta holds arbitrary key-value annotations.
	Meta     map[string]string `json:"meta"`
	Extra    any               `json:"extra"`
	Body     []byte            `json:"body"`
	Author   User              `json:"author"`
	Reviewer moremodels.User   `json:"reviewer"`
	internal string
	Ignored  string `json:"-"`
}
