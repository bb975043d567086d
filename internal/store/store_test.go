package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/channelpulse/pkg/catalog"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertAndListVideos(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	videos := []catalog.Video{
		{
			ID: "b", Title: "Second", Views: 200, Likes: 20, Comments: 4,
			Duration: "PT10M", PublishedAt: "2023-06-06T12:00:00Z",
			Tags: []string{"sql", "data"}, FetchedAt: time.Now().UTC(),
		},
		{
			ID: "a", Title: "First", Views: 100,
			Duration: "PT5M", PublishedAt: "2023-06-05T12:00:00Z",
			FetchedAt: time.Now().UTC(),
		},
	}
	require.NoError(t, s.UpsertVideos(ctx, videos))

	got, err := s.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Publication order, oldest first.
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, []string{"sql", "data"}, got[1].Tags)

	count, err := s.CountVideos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpsertVideoReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	v := catalog.Video{
		ID: "a", Title: "Before", Views: 10,
		PublishedAt: "2023-06-05T12:00:00Z", FetchedAt: time.Now().UTC(),
	}
	require.NoError(t, s.UpsertVideo(ctx, &v))

	v.Title = "After"
	v.Views = 999
	require.NoError(t, s.UpsertVideo(ctx, &v))

	got, err := s.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "After", got[0].Title)
	assert.Equal(t, 999, got[0].Views)
}

func TestRunHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	latest, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	first := &Run{
		ChannelID:   "UCtest",
		VideoCount:  10,
		ResultsJSON: `{"video_count":10}`,
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, s.SaveRun(ctx, first))
	assert.NotZero(t, first.ID)

	second := &Run{
		ChannelID:   "UCtest",
		VideoCount:  12,
		ResultsJSON: `{"video_count":12}`,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.SaveRun(ctx, second))

	latest, err = s.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 12, latest.VideoCount)
}
