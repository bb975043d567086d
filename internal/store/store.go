package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elonfeng/channelpulse/pkg/catalog"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Run is one stored analysis: the full results document plus when and
// over how many videos it was produced.
type Run struct {
	ID          int64     `db:"id" json:"id"`
	ChannelID   string    `db:"channel_id" json:"channel_id"`
	VideoCount  int       `db:"video_count" json:"video_count"`
	ResultsJSON string    `db:"results" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Store is the persistence interface: a catalog cache so analysis works
// offline from the last fetch, plus analysis run history.
type Store interface {
	UpsertVideo(ctx context.Context, v *catalog.Video) error
	UpsertVideos(ctx context.Context, videos []catalog.Video) error
	ListVideos(ctx context.Context) ([]catalog.Video, error)
	CountVideos(ctx context.Context) (int, error)

	SaveRun(ctx context.Context, r *Run) error
	LatestRun(ctx context.Context) (*Run, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertVideo(ctx context.Context, v *catalog.Video) error {
	tagsJSON, _ := json.Marshal(v.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (id, title, views, likes, comments, duration, published_at, description, tags, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			views = excluded.views,
			likes = excluded.likes,
			comments = excluded.comments,
			duration = excluded.duration,
			description = excluded.description,
			tags = excluded.tags,
			fetched_at = excluded.fetched_at
	`, v.ID, v.Title, v.Views, v.Likes, v.Comments, v.Duration,
		v.PublishedAt, v.Description, string(tagsJSON), v.FetchedAt)
	if err != nil {
		return fmt.Errorf("upsert video %s: %w", v.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertVideos(ctx context.Context, videos []catalog.Video) error {
	for i := range videos {
		if err := s.UpsertVideo(ctx, &videos[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListVideos returns the cached catalog in publication order, oldest
// first, so derived tables are reproducible between runs.
func (s *SQLiteStore) ListVideos(ctx context.Context) ([]catalog.Video, error) {
	var videos []catalog.Video
	err := s.db.SelectContext(ctx, &videos,
		"SELECT * FROM videos ORDER BY published_at, id")
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	for i := range videos {
		json.Unmarshal([]byte(videos[i].TagsJSON), &videos[i].Tags)
	}
	return videos, nil
}

func (s *SQLiteStore) CountVideos(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM videos"); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r *Run) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (channel_id, video_count, results, created_at)
		VALUES (?, ?, ?, ?)
	`, r.ChannelID, r.VideoCount, r.ResultsJSON, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	return nil
}

// LatestRun returns the most recent stored analysis, or nil when none
// exists yet.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		"SELECT * FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
