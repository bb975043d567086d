package catalog

import (
	"context"
	"time"
)

// Video is one published item of a channel's catalog as retrieved
// upstream. Counts are non-negative and IDs are unique within a run;
// PublishedAt stays the raw ISO-8601 string the platform returned, parsed
// downstream during feature derivation. Videos are immutable once fetched.
type Video struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Views       int       `json:"views" db:"views"`
	Likes       int       `json:"likes" db:"likes"`
	Comments    int       `json:"comments" db:"comments"`
	Duration    string    `json:"duration" db:"duration"`
	PublishedAt string    `json:"published_at" db:"published_at"`
	Description string    `json:"description" db:"description"`
	Tags        []string  `json:"tags" db:"-"`
	TagsJSON    string    `json:"-" db:"tags"`
	FetchedAt   time.Time `json:"fetched_at" db:"fetched_at"`
}

// Source is the interface every catalog collector implements.
type Source interface {
	Name() string
	Collect(ctx context.Context, channelID string) ([]Video, error)
}
