package analytics

import "sort"

// CategoryAggregate is one row of the by-category report table.
type CategoryAggregate struct {
	Category            Category `json:"category"`
	Count               int      `json:"count"`
	MeanViews           float64  `json:"mean_views"`
	MedianViews         float64  `json:"median_views"`
	SumViews            int64    `json:"sum_views"`
	MeanLikesPerView    float64  `json:"mean_likes_per_view"`
	MeanCommentsPerView float64  `json:"mean_comments_per_view"`
	MeanEngagement      float64  `json:"mean_engagement_rate"`
	MeanDurationMin     float64  `json:"mean_duration_min"`
}

// DayAggregate is one row of the by-day report table, Monday first.
type DayAggregate struct {
	Day                 int     `json:"day"`
	Name                string  `json:"name"`
	Count               int     `json:"count"`
	MeanViews           float64 `json:"mean_views"`
	MedianViews         float64 `json:"median_views"`
	SumViews            int64   `json:"sum_views"`
	MeanLikesPerView    float64 `json:"mean_likes_per_view"`
	MeanCommentsPerView float64 `json:"mean_comments_per_view"`
	MeanEngagement      float64 `json:"mean_engagement_rate"`
	MeanDurationMin     float64 `json:"mean_duration_min"`
}

// rollup holds the shared aggregate columns of a record group.
type rollup struct {
	count          int
	meanViews      float64
	medianViews    float64
	sumViews       int64
	meanLikes      float64
	meanComments   float64
	meanEngagement float64
	meanDuration   float64
}

// SummaryStats holds descriptive statistics per numeric column of the
// analysis-ready table.
type SummaryStats map[string]Descriptive

// Summarize describes the numeric columns of the table.
func Summarize(records []Record) SummaryStats {
	columns := map[string]func(Record) float64{
		"views":             func(r Record) float64 { return float64(r.Video.Views) },
		"likes":             func(r Record) float64 { return float64(r.Video.Likes) },
		"comments":          func(r Record) float64 { return float64(r.Video.Comments) },
		"duration_sec":      func(r Record) float64 { return float64(r.DurationSeconds) },
		"likes_per_view":    func(r Record) float64 { return r.LikesPerView },
		"comments_per_view": func(r Record) float64 { return r.CommentsPerView },
		"engagement_rate":   func(r Record) float64 { return r.EngagementRate },
	}

	stats := make(SummaryStats, len(columns))
	for name, get := range columns {
		xs := make([]float64, len(records))
		for i, r := range records {
			xs[i] = get(r)
		}
		stats[name] = Describe(xs)
	}
	return stats
}

// AggregateByCategory builds the by-category table in classifier priority
// order, omitting categories with no records. Derived rows are new values;
// the input table is never touched.
func AggregateByCategory(records []Record) []CategoryAggregate {
	grouped := make(map[Category][]Record)
	for _, r := range records {
		grouped[r.Category] = append(grouped[r.Category], r)
	}

	var out []CategoryAggregate
	for _, c := range Categories() {
		group, ok := grouped[c]
		if !ok {
			continue
		}
		ru := aggregate(group)
		out = append(out, CategoryAggregate{
			Category:            c,
			Count:               ru.count,
			MeanViews:           ru.meanViews,
			MedianViews:         ru.medianViews,
			SumViews:            ru.sumViews,
			MeanLikesPerView:    ru.meanLikes,
			MeanCommentsPerView: ru.meanComments,
			MeanEngagement:      ru.meanEngagement,
			MeanDurationMin:     ru.meanDuration,
		})
	}
	return out
}

// AggregateByDay builds the by-day table for days with at least one
// record, Monday first.
func AggregateByDay(records []Record) []DayAggregate {
	grouped := make([][]Record, 7)
	for _, r := range records {
		grouped[r.DayOfWeek] = append(grouped[r.DayOfWeek], r)
	}

	var out []DayAggregate
	for day, group := range grouped {
		if len(group) == 0 {
			continue
		}
		ru := aggregate(group)
		out = append(out, DayAggregate{
			Day:                 day,
			Name:                DayNames[day],
			Count:               ru.count,
			MeanViews:           ru.meanViews,
			MedianViews:         ru.medianViews,
			SumViews:            ru.sumViews,
			MeanLikesPerView:    ru.meanLikes,
			MeanCommentsPerView: ru.meanComments,
			MeanEngagement:      ru.meanEngagement,
			MeanDurationMin:     ru.meanDuration,
		})
	}
	return out
}

func aggregate(group []Record) rollup {
	ru := rollup{count: len(group)}
	views := make([]float64, len(group))
	for i, r := range group {
		views[i] = float64(r.Video.Views)
		ru.sumViews += int64(r.Video.Views)
		ru.meanLikes += r.LikesPerView
		ru.meanComments += r.CommentsPerView
		ru.meanEngagement += r.EngagementRate
		ru.meanDuration += r.DurationMinutes
	}

	n := float64(ru.count)
	ru.meanViews = mean(views)
	ru.medianViews = median(views)
	ru.meanLikes /= n
	ru.meanComments /= n
	ru.meanEngagement /= n
	ru.meanDuration /= n
	return ru
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// TopVideos returns the n highest records by the named metric ("views",
// "likes", "comments" or "engagement_rate"; anything else means views).
// Ties keep original order, and the input slice is left untouched.
func TopVideos(records []Record, metric string, n int) []Record {
	var get func(Record) float64
	switch metric {
	case "likes":
		get = func(r Record) float64 { return float64(r.Video.Likes) }
	case "comments":
		get = func(r Record) float64 { return float64(r.Video.Comments) }
	case "engagement_rate":
		get = func(r Record) float64 { return r.EngagementRate }
	default:
		get = func(r Record) float64 { return float64(r.Video.Views) }
	}

	ranked := make([]Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool { return get(ranked[i]) > get(ranked[j]) })

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
