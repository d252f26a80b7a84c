package models

import "time"

// DefaultAuthor is stored when a comment is submitted without an author.
const DefaultAuthor = "Anonymous"

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now.UTC()
	}
	if c.Author == "" {
		c.Author = DefaultAuthor
	}
}
