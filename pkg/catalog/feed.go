package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"
)

const uploadsFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// Feed collects the channel's recent uploads from its public Atom feed.
// It needs no API key but only covers the latest uploads and carries no
// duration or like counts; those fields degrade to zero downstream.
type Feed struct {
	client  *http.Client
	parser  *gofeed.Parser
	feedURL string
}

// NewFeed creates an uploads-feed catalog source.
func NewFeed() *Feed {
	return &Feed{
		client:  &http.Client{Timeout: 30 * time.Second},
		parser:  gofeed.NewParser(),
		feedURL: uploadsFeedURL,
	}
}

func (f *Feed) Name() string { return "youtube-feed" }

func (f *Feed) Collect(ctx context.Context, channelID string) ([]Video, error) {
	feedURL := fmt.Sprintf(f.feedURL, channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("User-Agent", "channelpulse/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch uploads feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uploads feed status %d", resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse uploads feed: %w", err)
	}

	now := time.Now().UTC()
	var videos []Video
	for _, entry := range parsed.Items {
		id := feedVideoID(entry)
		if id == "" {
			continue
		}

		published := ""
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC().Format(time.RFC3339)
		}

		videos = append(videos, Video{
			ID:          id,
			Title:       entry.Title,
			Views:       feedViews(entry),
			Duration:    "", // not exposed by the feed; parses to 0
			PublishedAt: published,
			Description: entry.Description,
			FetchedAt:   now,
		})
	}
	return videos, nil
}

// feedVideoID reads the yt:videoId extension, falling back to the GUID.
func feedVideoID(entry *gofeed.Item) string {
	if exts, ok := entry.Extensions["yt"]["videoId"]; ok && len(exts) > 0 {
		return exts[0].Value
	}
	return entry.GUID
}

// feedViews digs the view count out of the media:group statistics block,
// returning 0 when absent.
func feedViews(entry *gofeed.Item) int {
	groups, ok := entry.Extensions["media"]["group"]
	if !ok {
		return 0
	}
	for _, group := range groups {
		for _, community := range group.Children["community"] {
			for _, stats := range community.Children["statistics"] {
				if v, err := strconv.Atoi(stats.Attrs["views"]); err == nil {
					return v
				}
			}
		}
	}
	return 0
}
