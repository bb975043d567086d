package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "UCtest", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"items":[{"contentDetails":{"relatedPlaylists":{"uploads":"UUtest"}}}]}`)
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "UUtest", r.URL.Query().Get("playlistId"))
		if r.URL.Query().Get("pageToken") == "" {
			fmt.Fprint(w, `{"nextPageToken":"p2","items":[{"contentDetails":{"videoId":"vid1"}}]}`)
			return
		}
		fmt.Fprint(w, `{"items":[{"contentDetails":{"videoId":"vid2"}}]}`)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "vid1,vid2", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"items":[
			{"id":"vid1",
			 "snippet":{"title":"SQL Tutorial","publishedAt":"2023-06-05T12:00:00Z","tags":["sql"]},
			 "contentDetails":{"duration":"PT15M30S"},
			 "statistics":{"viewCount":"1200","likeCount":"80","commentCount":"14"}},
			{"id":"vid2",
			 "snippet":{"title":"Career Advice","publishedAt":"2023-06-06T12:00:00Z"},
			 "contentDetails":{"duration":"PT8M"},
			 "statistics":{"viewCount":"500","likeCount":"30","commentCount":"5"}}
		]}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestYouTubeCollect(t *testing.T) {
	api := newFakeAPI(t)

	src := NewYouTube("key")
	src.baseURL = api.URL
	assert.Equal(t, "youtube-api", src.Name())

	videos, err := src.Collect(context.Background(), "UCtest")
	require.NoError(t, err)
	require.Len(t, videos, 2)

	v := videos[0]
	assert.Equal(t, "vid1", v.ID)
	assert.Equal(t, "SQL Tutorial", v.Title)
	assert.Equal(t, 1200, v.Views)
	assert.Equal(t, 80, v.Likes)
	assert.Equal(t, 14, v.Comments)
	assert.Equal(t, "PT15M30S", v.Duration)
	assert.Equal(t, "2023-06-05T12:00:00Z", v.PublishedAt)
	assert.Equal(t, []string{"sql"}, v.Tags)
	assert.False(t, v.FetchedAt.IsZero())
}

func TestYouTubeCollectNoAPIKey(t *testing.T) {
	src := NewYouTube("")
	_, err := src.Collect(context.Background(), "UCtest")
	assert.Error(t, err)
}

func TestYouTubeCollectUnknownChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	t.Cleanup(srv.Close)

	src := NewYouTube("key")
	src.baseURL = srv.URL

	_, err := src.Collect(context.Background(), "UCmissing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestYouTubeCollectAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	src := NewYouTube("key")
	src.baseURL = srv.URL

	_, err := src.Collect(context.Background(), "UCtest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFeedCollect(t *testing.T) {
	const atom = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Uploads</title>
  <entry>
    <id>yt:video:vid1</id>
    <yt:videoId>vid1</yt:videoId>
    <title>SQL Tutorial</title>
    <published>2023-06-05T12:00:00+00:00</published>
    <media:group>
      <media:title>SQL Tutorial</media:title>
      <media:community>
        <media:statistics views="1200"/>
      </media:community>
    </media:group>
  </entry>
  <entry>
    <id>yt:video:vid2</id>
    <yt:videoId>vid2</yt:videoId>
    <title>Career Advice</title>
    <published>2023-06-06T12:00:00+00:00</published>
  </entry>
</feed>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.RawQuery, "channel_id=UCtest"))
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, atom)
	}))
	t.Cleanup(srv.Close)

	src := NewFeed()
	src.feedURL = srv.URL + "/feeds/videos.xml?channel_id=%s"
	assert.Equal(t, "youtube-feed", src.Name())

	videos, err := src.Collect(context.Background(), "UCtest")
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "vid1", videos[0].ID)
	assert.Equal(t, "SQL Tutorial", videos[0].Title)
	assert.Equal(t, 1200, videos[0].Views)
	assert.Equal(t, "", videos[0].Duration)
	assert.Equal(t, "2023-06-05T12:00:00Z", videos[0].PublishedAt)

	// No statistics block degrades to zero views.
	assert.Equal(t, "vid2", videos[1].ID)
	assert.Equal(t, 0, videos[1].Views)
}
