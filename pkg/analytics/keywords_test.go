package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elonfeng/channelpulse/pkg/catalog"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		title string
		want  []string
	}{
		{"SQL Tutorial for Beginners", []string{"sql", "tutorial", "beginners"}},
		{"How to Learn Python in 2023!", []string{"how", "learn", "python", "2023"}},
		{"A vs B", nil},
		{"", nil},
		{"my top-10 tips & tricks", []string{"top", "tips", "tricks"}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Tokenize(tc.title), "title=%q", tc.title)
	}
}

func TestTopKeywords(t *testing.T) {
	records := Derive([]catalog.Video{
		{ID: "a", Title: "SQL Tutorial for Beginners", Views: 100},
		{ID: "b", Title: "Python Tutorial Basics", Views: 90},
	})

	rep := TopKeywords(records, 1.0, 15)
	assert.Equal(t, 2, rep.SampleSize)
	require.NotEmpty(t, rep.Keywords)
	assert.Equal(t, KeywordCount{Word: "tutorial", Count: 2}, rep.Keywords[0])
}

func TestTopKeywordsSamplesTopFractionOnly(t *testing.T) {
	var videos []catalog.Video
	videos = append(videos, catalog.Video{ID: "hit", Title: "Winning Keyword", Views: 100000})
	for i := 0; i < 19; i++ {
		videos = append(videos, catalog.Video{
			ID:    string(rune('a' + i)),
			Title: "Filler Content",
			Views: 10,
		})
	}

	rep := TopKeywords(Derive(videos), 0.1, 15)
	assert.Equal(t, 2, rep.SampleSize)

	words := make(map[string]bool)
	for _, kw := range rep.Keywords {
		words[kw.Word] = true
	}
	assert.True(t, words["winning"])
	assert.True(t, words["keyword"])
}

func TestTopKeywordsSmallCatalog(t *testing.T) {
	// One record always samples, even when the fraction floor is 0.
	records := Derive([]catalog.Video{
		{ID: "a", Title: "Excel Dashboard Tutorial", Views: 5},
	})

	rep := TopKeywords(records, 0.1, 15)
	assert.Equal(t, 1, rep.SampleSize)
	assert.Len(t, rep.Keywords, 3)
}

func TestTopKeywordsFrequencyTieOrder(t *testing.T) {
	records := Derive([]catalog.Video{
		{ID: "a", Title: "Alpha Bravo", Views: 100},
		{ID: "b", Title: "Alpha Charlie", Views: 90},
	})

	rep := TopKeywords(records, 1.0, 15)
	require.Len(t, rep.Keywords, 3)
	assert.Equal(t, "alpha", rep.Keywords[0].Word)
	// Frequency ties keep first-encountered order.
	assert.Equal(t, "bravo", rep.Keywords[1].Word)
	assert.Equal(t, "charlie", rep.Keywords[2].Word)
}

func TestTopKeywordsEmpty(t *testing.T) {
	rep := TopKeywords(nil, 0.1, 15)
	assert.Zero(t, rep.SampleSize)
	assert.Empty(t, rep.Keywords)
}
