package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/elonfeng/channelpulse/pkg/analytics"
)

var csvHeader = []string{
	"video_id", "title", "views", "likes", "comments",
	"duration", "duration_sec", "duration_min",
	"likes_per_view", "comments_per_view", "engagement_rate",
	"published_at", "day_of_week", "day_name", "month", "year",
	"upload_quarter", "category", "duration_bucket",
}

// WriteCSV exports the analysis-ready table, one row per record in
// catalog order.
func WriteCSV(out io.Writer, records []analytics.Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Video.ID,
			r.Video.Title,
			strconv.Itoa(r.Video.Views),
			strconv.Itoa(r.Video.Likes),
			strconv.Itoa(r.Video.Comments),
			r.Video.Duration,
			strconv.Itoa(r.DurationSeconds),
			formatFloat(r.DurationMinutes),
			formatFloat(r.LikesPerView),
			formatFloat(r.CommentsPerView),
			formatFloat(r.EngagementRate),
			r.Video.PublishedAt,
			strconv.Itoa(r.DayOfWeek),
			r.DayName,
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Year),
			r.Quarter,
			string(r.Category),
			string(r.Bucket),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", r.Video.ID, err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
