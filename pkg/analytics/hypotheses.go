package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/elonfeng/channelpulse/pkg/catalog"
)

// Alpha is the significance threshold shared by every procedure.
const Alpha = 0.05

// ErrNoRecords is returned when the pipeline is asked to analyze an empty
// catalog. An empty input is a fatal precondition, reported before any
// procedure runs.
var ErrNoRecords = errors.New("analytics: no records to analyze")

// Outcome is the decision of one hypothesis procedure. Indeterminate marks
// a statistical precondition failure (too little data) and is distinct
// from a rejection, which is a genuine null result.
type Outcome string

const (
	OutcomeSupported     Outcome = "supported"
	OutcomeRejected      Outcome = "rejected"
	OutcomeReversed      Outcome = "reversed"
	OutcomeIndeterminate Outcome = "insufficient_data"
)

// Correlation pairs a Pearson coefficient with its two-tailed p-value.
type Correlation struct {
	R float64 `json:"r"`
	P float64 `json:"p"`
}

// DurationEngagementResult reports how video length correlates with each
// engagement ratio. The engagement-rate correlation carries the decision.
type DurationEngagementResult struct {
	LikesPerView    Correlation `json:"likes_per_view"`
	CommentsPerView Correlation `json:"comments_per_view"`
	EngagementRate  Correlation `json:"engagement_rate"`
	Outcome         Outcome     `json:"outcome"`
	Reason          string      `json:"reason,omitempty"`
}

// AnalyzeDurationEngagement tests whether shorter videos draw higher
// engagement. The hypothesis is supported only on a significant negative
// engagement-rate correlation: significance alone never decides a
// directional claim, the sign must agree.
func AnalyzeDurationEngagement(records []Record) DurationEngagementResult {
	durations := make([]float64, len(records))
	likes := make([]float64, len(records))
	comments := make([]float64, len(records))
	engagement := make([]float64, len(records))
	for i, r := range records {
		durations[i] = float64(r.DurationSeconds)
		likes[i] = r.LikesPerView
		comments[i] = r.CommentsPerView
		engagement[i] = r.EngagementRate
	}

	var res DurationEngagementResult
	res.LikesPerView.R, res.LikesPerView.P, _ = pearson(durations, likes)
	res.CommentsPerView.R, res.CommentsPerView.P, _ = pearson(durations, comments)

	r, p, ok := pearson(durations, engagement)
	res.EngagementRate = Correlation{R: r, P: p}

	switch {
	case !ok:
		res.Outcome = OutcomeIndeterminate
		res.Reason = "need at least 3 records with varying duration and engagement"
	case p < Alpha && r < 0:
		res.Outcome = OutcomeSupported
		res.Reason = "shorter videos have significantly higher engagement"
	case p < Alpha:
		res.Outcome = OutcomeReversed
		res.Reason = "longer videos have significantly higher engagement"
	default:
		res.Outcome = OutcomeRejected
		res.Reason = "no significant correlation between duration and engagement"
	}
	return res
}

// DayMean is the average view count of videos published on one weekday.
type DayMean struct {
	Day       int     `json:"day"` // Monday=0 .. Sunday=6
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	MeanViews float64 `json:"mean_views"`
}

// PairwiseComparison is one post-hoc Welch comparison with its
// Bonferroni-adjusted p-value at the family-wise level.
type PairwiseComparison struct {
	GroupA      string  `json:"group_a"`
	GroupB      string  `json:"group_b"`
	MeanDiff    float64 `json:"mean_diff"`
	T           float64 `json:"t"`
	P           float64 `json:"p"`
	AdjustedP   float64 `json:"adjusted_p"`
	Significant bool    `json:"significant"`
}

// DayOfWeekResult reports the publication-day effect on views.
type DayOfWeekResult struct {
	FStat       float64              `json:"f_statistic"`
	P           float64              `json:"p_value"`
	Significant bool                 `json:"significant"`
	Days        []DayMean            `json:"days,omitempty"` // Monday first
	BestDay     string               `json:"best_day,omitempty"`
	WorstDay    string               `json:"worst_day,omitempty"`
	PostHoc     []PairwiseComparison `json:"post_hoc,omitempty"`
	Outcome     Outcome              `json:"outcome"`
	Reason      string               `json:"reason,omitempty"`
}

// AnalyzeDayOfWeek partitions views by publication weekday and runs a
// one-way ANOVA across the seven groups. A weekday with zero observations
// is an input-validity failure surfaced as an indeterminate outcome, not
// skipped. On a significant omnibus result the post-hoc step runs
// all-pairs Welch comparisons Bonferroni-adjusted at the family-wise 0.05
// level, and the best and worst days are recommended from the per-day
// means regardless of which individual pairs reach significance.
func AnalyzeDayOfWeek(records []Record) DayOfWeekResult {
	groups := make([][]float64, 7)
	for _, r := range records {
		groups[r.DayOfWeek] = append(groups[r.DayOfWeek], float64(r.Video.Views))
	}

	var empty []string
	for i, g := range groups {
		if len(g) == 0 {
			empty = append(empty, DayNames[i])
		}
	}
	if len(empty) > 0 {
		return DayOfWeekResult{
			Outcome: OutcomeIndeterminate,
			Reason:  fmt.Sprintf("no videos published on: %v", empty),
		}
	}

	f, p, ok := oneWayANOVA(groups)
	if !ok {
		return DayOfWeekResult{
			Outcome: OutcomeIndeterminate,
			Reason:  "too few observations for a seven-group comparison",
		}
	}

	res := DayOfWeekResult{
		FStat:       f,
		P:           p,
		Significant: p < Alpha,
		Days:        make([]DayMean, 7),
	}
	for i, g := range groups {
		res.Days[i] = DayMean{
			Day:       i,
			Name:      DayNames[i],
			Count:     len(g),
			MeanViews: mean(g),
		}
	}

	if !res.Significant {
		res.Outcome = OutcomeRejected
		res.Reason = "publication day does not significantly affect views"
		return res
	}

	res.Outcome = OutcomeSupported
	res.Reason = "publication day significantly affects views"

	best, worst := res.Days[0], res.Days[0]
	for _, d := range res.Days[1:] {
		if d.MeanViews > best.MeanViews {
			best = d
		}
		if d.MeanViews < worst.MeanViews {
			worst = d
		}
	}
	res.BestDay = best.Name
	res.WorstDay = worst.Name

	// Family of all 21 day pairs; pairs too small for a Welch test stay
	// in the family size so the error control remains conservative.
	const pairs = 21
	for i := 0; i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			t, _, pw, ok := welchT(groups[i], groups[j])
			if !ok {
				continue
			}
			adj := bonferroni(pw, pairs)
			res.PostHoc = append(res.PostHoc, PairwiseComparison{
				GroupA:      DayNames[i],
				GroupB:      DayNames[j],
				MeanDiff:    mean(groups[i]) - mean(groups[j]),
				T:           t,
				P:           pw,
				AdjustedP:   adj,
				Significant: adj < Alpha,
			})
		}
	}
	return res
}

// GroupSummary describes one category's view distribution inside a
// pairwise comparison.
type GroupSummary struct {
	Category       Category `json:"category"`
	Count          int      `json:"count"`
	MeanViews      float64  `json:"mean_views"`
	MedianViews    float64  `json:"median_views"`
	StdDevViews    float64  `json:"std_views"`
	MeanEngagement float64  `json:"mean_engagement_rate"`
	Share          float64  `json:"share"` // fraction of the compared items
}

// CategoryComparisonResult reports a two-category reach comparison. The
// Mann-Whitney result is authoritative for the decision; the Welch t-test
// is reported for comparison only, since view counts are right-skewed.
type CategoryComparisonResult struct {
	A       GroupSummary `json:"a"`
	B       GroupSummary `json:"b"`
	TStat   float64      `json:"t_statistic"`
	TP      float64      `json:"t_p_value"`
	TDF     float64      `json:"t_df"`
	UStat   float64      `json:"u_statistic"`
	UP      float64      `json:"u_p_value"`
	CohenD  float64      `json:"cohens_d"`
	Effect  string       `json:"effect_size"`
	Outcome Outcome      `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}

// CompareCategories tests whether category a out-performs category b in
// views. Fewer than 2 records in either category yields the indeterminate
// outcome rather than a p-value.
func CompareCategories(records []Record, a, b Category) CategoryComparisonResult {
	var viewsA, viewsB, engA, engB []float64
	for _, r := range records {
		switch r.Category {
		case a:
			viewsA = append(viewsA, float64(r.Video.Views))
			engA = append(engA, r.EngagementRate)
		case b:
			viewsB = append(viewsB, float64(r.Video.Views))
			engB = append(engB, r.EngagementRate)
		}
	}

	res := CategoryComparisonResult{
		A: GroupSummary{Category: a, Count: len(viewsA)},
		B: GroupSummary{Category: b, Count: len(viewsB)},
	}
	if len(viewsA) < 2 || len(viewsB) < 2 {
		res.Outcome = OutcomeIndeterminate
		res.Reason = fmt.Sprintf("need at least 2 records per category: %s has %d, %s has %d",
			a, len(viewsA), b, len(viewsB))
		return res
	}

	total := float64(len(viewsA) + len(viewsB))
	res.A = summarizeGroup(a, viewsA, engA, total)
	res.B = summarizeGroup(b, viewsB, engB, total)

	res.TStat, res.TDF, res.TP, _ = welchT(viewsA, viewsB)
	u, up, _ := mannWhitney(viewsA, viewsB)
	res.UStat, res.UP = u, up

	res.CohenD = cohenD(viewsA, viewsB)
	res.Effect = EffectMagnitude(res.CohenD)

	switch {
	case up < Alpha && res.A.MeanViews > res.B.MeanViews:
		res.Outcome = OutcomeSupported
		res.Reason = fmt.Sprintf("%s videos get significantly more views than %s videos", a, b)
	case up < Alpha:
		res.Outcome = OutcomeReversed
		res.Reason = fmt.Sprintf("%s videos get significantly more views than %s videos", b, a)
	default:
		res.Outcome = OutcomeRejected
		res.Reason = fmt.Sprintf("no significant difference in views between %s and %s videos", a, b)
	}
	return res
}

func summarizeGroup(c Category, views, engagement []float64, total float64) GroupSummary {
	d := Describe(views)
	return GroupSummary{
		Category:       c,
		Count:          d.Count,
		MeanViews:      d.Mean,
		MedianViews:    d.Median,
		StdDevViews:    d.StdDev,
		MeanEngagement: mean(engagement),
		Share:          float64(d.Count) / total,
	}
}

// AllCategoriesResult is the descriptive omnibus comparison across every
// category present in the table. No directional claim is made.
type AllCategoriesResult struct {
	Categories  []Category `json:"categories"`
	FStat       float64    `json:"f_statistic"`
	P           float64    `json:"p_value"`
	Significant bool       `json:"significant"`
	Outcome     Outcome    `json:"outcome"`
	Reason      string     `json:"reason,omitempty"`
}

// CompareAllCategories runs a one-way ANOVA on views across all present
// categories.
func CompareAllCategories(records []Record) AllCategoriesResult {
	byCategory := make(map[Category][]float64)
	var order []Category
	for _, r := range records {
		if _, seen := byCategory[r.Category]; !seen {
			order = append(order, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], float64(r.Video.Views))
	}

	groups := make([][]float64, 0, len(order))
	for _, c := range order {
		groups = append(groups, byCategory[c])
	}

	res := AllCategoriesResult{Categories: order}
	f, p, ok := oneWayANOVA(groups)
	if !ok {
		res.Outcome = OutcomeIndeterminate
		res.Reason = "need at least two categories with spare observations"
		return res
	}

	res.FStat = f
	res.P = p
	res.Significant = p < Alpha
	if res.Significant {
		res.Outcome = OutcomeSupported
		res.Reason = "significant view differences exist between categories"
	} else {
		res.Outcome = OutcomeRejected
		res.Reason = "no significant view differences between categories"
	}
	return res
}

// Options tunes the exploratory keyword procedure. Zero values fall back
// to the defaults: top 10% of records, 15 keywords.
type Options struct {
	TopFraction float64
	TopKeywords int
}

// Report bundles the full analysis output: the five procedure results plus
// the aggregate tables the reporting collaborators consume.
type Report struct {
	GeneratedAt        time.Time                `json:"generated_at"`
	VideoCount         int                      `json:"video_count"`
	Summary            SummaryStats             `json:"summary"`
	DurationEngagement DurationEngagementResult `json:"duration_engagement"`
	DayOfWeek          DayOfWeekResult          `json:"day_of_week"`
	TutorialVsCareer   CategoryComparisonResult `json:"tutorial_vs_career"`
	AllCategories      AllCategoriesResult      `json:"all_categories"`
	Keywords           KeywordReport            `json:"keywords"`
	ByCategory         []CategoryAggregate      `json:"by_category"`
	ByDay              []DayAggregate           `json:"by_day"`
	TopByViews         []Record                 `json:"top_by_views"`
}

// Analyze derives the analysis-ready table and runs every procedure over
// it. The catalog order is preserved into the table; an empty catalog
// fails before any test runs. The five procedures are independent, and a
// failure inside one never aborts a sibling.
func Analyze(videos []catalog.Video, opts Options) (*Report, []Record, error) {
	if len(videos) == 0 {
		return nil, nil, ErrNoRecords
	}

	records := Derive(videos)
	rep := &Report{
		GeneratedAt:        time.Now().UTC(),
		VideoCount:         len(records),
		Summary:            Summarize(records),
		DurationEngagement: AnalyzeDurationEngagement(records),
		DayOfWeek:          AnalyzeDayOfWeek(records),
		TutorialVsCareer:   CompareCategories(records, CategoryTutorial, CategoryCareer),
		AllCategories:      CompareAllCategories(records),
		Keywords:           TopKeywords(records, opts.TopFraction, opts.TopKeywords),
		ByCategory:         AggregateByCategory(records),
		ByDay:              AggregateByDay(records),
		TopByViews:         TopVideos(records, "views", 10),
	}
	return rep, records, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}
