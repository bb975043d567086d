package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/elonfeng/channelpulse/pkg/analytics"
)

// Console renders a human-readable report to a writer, typically stdout.
type Console struct {
	out io.Writer
}

// NewConsole creates a console sink writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Name() string { return "console" }

// Write renders the summary tables and hypothesis verdicts.
func (c *Console) Write(rep *analytics.Report) error {
	fmt.Fprintf(c.out, "channel analysis: %d videos (generated %s)\n\n",
		rep.VideoCount, rep.GeneratedAt.Format("2006-01-02 15:04 MST"))

	c.writeSummary(rep)
	c.writeVerdicts(rep)
	c.writeTopVideos(rep)
	c.writeCategories(rep)
	c.writeDays(rep)
	c.writeKeywords(rep)
	return nil
}

func (c *Console) writeTopVideos(rep *analytics.Report) {
	if len(rep.TopByViews) == 0 {
		return
	}
	fmt.Fprintln(c.out, "TOP VIDEOS")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWS\tCATEGORY\tTITLE")
	for _, r := range rep.TopByViews {
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Video.Views, r.Category, r.Video.Title)
	}
	w.Flush()
	fmt.Fprintln(c.out)
}

func (c *Console) writeSummary(rep *analytics.Report) {
	fmt.Fprintln(c.out, "SUMMARY")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMEDIAN\tMIN\tMAX")
	for _, col := range []string{"views", "likes", "comments", "duration_sec", "engagement_rate"} {
		d, ok := rep.Summary[col]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n", col, d.Mean, d.Median, d.Min, d.Max)
	}
	w.Flush()
	fmt.Fprintln(c.out)
}

func (c *Console) writeVerdicts(rep *analytics.Report) {
	fmt.Fprintln(c.out, "HYPOTHESES")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUESTION\tOUTCOME\tDETAIL")

	de := rep.DurationEngagement
	fmt.Fprintf(w, "shorter videos engage more?\t%s\t%s (r=%.3f, p=%.4f)\n",
		de.Outcome, de.Reason, de.EngagementRate.R, de.EngagementRate.P)

	dw := rep.DayOfWeek
	detail := dw.Reason
	if dw.BestDay != "" {
		detail = fmt.Sprintf("%s (best: %s, worst: %s, p=%.4f)",
			dw.Reason, dw.BestDay, dw.WorstDay, dw.P)
	}
	fmt.Fprintf(w, "does publication day matter?\t%s\t%s\n", dw.Outcome, detail)

	tc := rep.TutorialVsCareer
	fmt.Fprintf(w, "tutorials beat career videos?\t%s\t%s (u_p=%.4f, d=%.2f %s)\n",
		tc.Outcome, tc.Reason, tc.UP, tc.CohenD, tc.Effect)

	ac := rep.AllCategories
	fmt.Fprintf(w, "do categories differ in views?\t%s\t%s (f=%.2f, p=%.4f)\n",
		ac.Outcome, ac.Reason, ac.FStat, ac.P)

	w.Flush()
	fmt.Fprintln(c.out)
}

func (c *Console) writeCategories(rep *analytics.Report) {
	if len(rep.ByCategory) == 0 {
		return
	}
	fmt.Fprintln(c.out, "BY CATEGORY")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tCOUNT\tMEAN VIEWS\tMEDIAN VIEWS\tENGAGEMENT\tAVG MIN")
	for _, row := range rep.ByCategory {
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.4f\t%.1f\n",
			row.Category, row.Count, row.MeanViews, row.MedianViews,
			row.MeanEngagement, row.MeanDurationMin)
	}
	w.Flush()
	fmt.Fprintln(c.out)
}

func (c *Console) writeDays(rep *analytics.Report) {
	if len(rep.ByDay) == 0 {
		return
	}
	fmt.Fprintln(c.out, "BY DAY")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tCOUNT\tMEAN VIEWS\tMEDIAN VIEWS\tENGAGEMENT")
	for _, row := range rep.ByDay {
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.4f\n",
			row.Name, row.Count, row.MeanViews, row.MedianViews, row.MeanEngagement)
	}
	w.Flush()
	fmt.Fprintln(c.out)
}

func (c *Console) writeKeywords(rep *analytics.Report) {
	if len(rep.Keywords.Keywords) == 0 {
		return
	}
	fmt.Fprintf(c.out, "TOP KEYWORDS (from %d top videos)\n", rep.Keywords.SampleSize)
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORD\tCOUNT")
	for _, kw := range rep.Keywords.Keywords {
		fmt.Fprintf(w, "%s\t%d\n", kw.Word, kw.Count)
	}
	w.Flush()
}
