package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://www.googleapis.com/youtube/v3"

// YouTube fetches a channel's full upload catalog from the YouTube Data
// API: uploads playlist id, then every video id page by page, then video
// details in batches of 50 (the API's per-request cap).
type YouTube struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewYouTube creates a Data API catalog source.
func NewYouTube(apiKey string) *YouTube {
	return &YouTube{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: apiBase,
	}
}

func (y *YouTube) Name() string { return "youtube-api" }

func (y *YouTube) Collect(ctx context.Context, channelID string) ([]Video, error) {
	if y.apiKey == "" {
		return nil, fmt.Errorf("youtube: API key required (set YOUTUBE_API_KEY)")
	}

	playlistID, err := y.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads playlist: %w", err)
	}

	ids, err := y.videoIDs(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list video ids: %w", err)
	}

	videos, err := y.videoDetails(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}
	return videos, nil
}

// uploadsPlaylistID resolves the playlist that contains every upload of
// the channel.
func (y *YouTube) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", channelID)
	params.Set("key", y.apiKey)

	var result ytChannelResult
	if err := y.get(ctx, "/channels", params, &result); err != nil {
		return "", err
	}
	if len(result.Items) == 0 {
		return "", fmt.Errorf("channel %s not found", channelID)
	}
	return result.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// videoIDs walks the uploads playlist page by page.
func (y *YouTube) videoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", "50")
		params.Set("key", y.apiKey)
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page ytPlaylistResult
		if err := y.get(ctx, "/playlistItems", params, &page); err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if item.ContentDetails.VideoID != "" {
				ids = append(ids, item.ContentDetails.VideoID)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return ids, nil
		}
	}
}

// videoDetails fetches title, statistics and duration in batches of 50.
func (y *YouTube) videoDetails(ctx context.Context, ids []string) ([]Video, error) {
	now := time.Now().UTC()
	videos := make([]Video, 0, len(ids))

	for start := 0; start < len(ids); start += 50 {
		end := start + 50
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("part", "snippet,contentDetails,statistics")
		params.Set("id", strings.Join(ids[start:end], ","))
		params.Set("key", y.apiKey)

		var result ytVideoResult
		if err := y.get(ctx, "/videos", params, &result); err != nil {
			return nil, err
		}

		for _, item := range result.Items {
			videos = append(videos, Video{
				ID:          item.ID,
				Title:       item.Snippet.Title,
				Views:       item.Statistics.ViewCount,
				Likes:       item.Statistics.LikeCount,
				Comments:    item.Statistics.CommentCount,
				Duration:    item.ContentDetails.Duration,
				PublishedAt: item.Snippet.PublishedAt,
				Description: item.Snippet.Description,
				Tags:        item.Snippet.Tags,
				FetchedAt:   now,
			})
		}
	}
	return videos, nil
}

func (y *YouTube) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := y.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request %s: %w", path, err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube %s status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

type ytChannelResult struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type ytPlaylistResult struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type ytVideoResult struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			PublishedAt string   `json:"publishedAt"`
			Tags        []string `json:"tags"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount    int `json:"viewCount,string"`
			LikeCount    int `json:"likeCount,string"`
			CommentCount int `json:"commentCount,string"`
		} `json:"statistics"`
	} `json:"items"`
}
