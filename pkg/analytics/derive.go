package analytics

import (
	"fmt"
	"time"

	"github.com/elonfeng/channelpulse/pkg/catalog"
)

// DurationBucket is one of five ordered video-length classes.
type DurationBucket string

const (
	BucketVeryShort DurationBucket = "Very Short"
	BucketShort     DurationBucket = "Short"
	BucketMedium    DurationBucket = "Medium"
	BucketLong      DurationBucket = "Long"
	BucketVeryLong  DurationBucket = "Very Long"
)

// DurationBuckets returns the bucket labels from shortest to longest.
func DurationBuckets() []DurationBucket {
	return []DurationBucket{
		BucketVeryShort, BucketShort, BucketMedium, BucketLong, BucketVeryLong,
	}
}

// DayNames lists day labels in analysis order, Monday first.
var DayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Record is one row of the analysis-ready table: a catalog video enriched
// with the derived features every analysis procedure consumes. Records are
// never mutated after derivation.
type Record struct {
	Video           catalog.Video  `json:"video"`
	DurationSeconds int            `json:"duration_seconds"`
	DurationMinutes float64        `json:"duration_minutes"`
	LikesPerView    float64        `json:"likes_per_view"`
	CommentsPerView float64        `json:"comments_per_view"`
	EngagementRate  float64        `json:"engagement_rate"`
	Published       time.Time      `json:"published"`
	DayOfWeek       int            `json:"day_of_week"` // Monday=0 .. Sunday=6
	DayName         string         `json:"day_name"`
	Month           int            `json:"month"`
	Year            int            `json:"year"`
	Quarter         string         `json:"upload_quarter"` // e.g. "2023Q2"
	Category        Category       `json:"category"`
	Bucket          DurationBucket `json:"duration_bucket"`
}

// safeRate divides a count by views, substituting 1 when views is 0 so the
// ratio stays defined. The substitution slightly understates ratios for
// genuinely zero-view items; changing it would shift every downstream
// statistic.
func safeRate(numerator, views int) float64 {
	if views == 0 {
		views = 1
	}
	return float64(numerator) / float64(views)
}

// Derive builds the analysis-ready table from raw catalog videos. It is
// order-preserving and total: exactly one record per input video, no rows
// dropped or added.
func Derive(videos []catalog.Video) []Record {
	records := make([]Record, 0, len(videos))
	for _, v := range videos {
		records = append(records, deriveOne(v))
	}
	return records
}

func deriveOne(v catalog.Video) Record {
	secs := ParseDuration(v.Duration)
	mins := float64(secs) / 60

	published, err := time.Parse(time.RFC3339, v.PublishedAt)
	if err != nil {
		// Malformed timestamps degrade like malformed durations: the
		// record keeps the zero time rather than aborting the batch.
		published = time.Time{}
	}

	return Record{
		Video:           v,
		DurationSeconds: secs,
		DurationMinutes: mins,
		LikesPerView:    safeRate(v.Likes, v.Views),
		CommentsPerView: safeRate(v.Comments, v.Views),
		EngagementRate:  safeRate(v.Likes+v.Comments, v.Views),
		Published:       published,
		DayOfWeek:       mondayIndexed(published.Weekday()),
		DayName:         published.Weekday().String(),
		Month:           int(published.Month()),
		Year:            published.Year(),
		Quarter:         quarterLabel(published),
		Category:        Classify(v.Title),
		Bucket:          bucketDuration(mins),
	}
}

// mondayIndexed converts Go's Sunday-first weekday to Monday=0..Sunday=6.
func mondayIndexed(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func quarterLabel(t time.Time) string {
	return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

// bucketDuration assigns one of five left-closed right-open intervals:
// [0,5) [5,15) [15,30) [30,60) [60,inf). A value exactly on a boundary
// falls in the upper bucket, so 5.0 minutes is Short, not Very Short.
func bucketDuration(minutes float64) DurationBucket {
	switch {
	case minutes < 5:
		return BucketVeryShort
	case minutes < 15:
		return BucketShort
	case minutes < 30:
		return BucketMedium
	case minutes < 60:
		return BucketLong
	default:
		return BucketVeryLong
	}
}
