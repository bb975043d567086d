package analytics

import "strings"

// Category labels a video by the kind of content its title announces.
type Category string

const (
	CategoryTutorial Category = "Tutorial"
	CategoryCareer   Category = "Career"
	CategoryProject  Category = "Project"
	CategoryTools    Category = "Tools"
	CategoryQA       Category = "Q&A/Livestream"
	CategoryAdvice   Category = "Advice"
	CategoryOther    Category = "Other"
)

// categoryRule pairs a label with the keywords that trigger it.
type categoryRule struct {
	label    Category
	keywords []string
}

// categoryRules is evaluated top to bottom and the first matching label
// wins, so a title matching keywords from several categories is always
// assigned the earliest one. The order and keyword sets are a fixed
// contract: changing either changes classification on identical input.
var categoryRules = []categoryRule{
	{CategoryTutorial, []string{
		"tutorial", "how to", "guide", "learn", "beginner",
		"advanced", "intermediate", "basics", "step by step",
		"complete", "full course", "training",
	}},
	{CategoryCareer, []string{
		"career", "job", "salary", "interview", "resume", "hiring",
		"work", "employment", "promotion", "cv", "recruiter",
	}},
	{CategoryProject, []string{
		"project", "portfolio", "bootcamp", "full project",
		"hands-on", "practical", "real world",
	}},
	{CategoryTools, []string{
		"excel", "sql", "python", "tableau", "power bi", "pandas",
		"mysql", "jupyter", "anaconda", "azure", "aws",
	}},
	{CategoryQA, []string{
		"q&a", "qa", "livestream", "ask me anything", "ama",
		"live", "questions", "answers",
	}},
	{CategoryAdvice, []string{
		"tips", "mistakes", "reasons", "best", "top", "avoid",
		"should", "shouldn't", "advice", "recommendation",
	}},
}

// Classify maps a title to exactly one category via case-insensitive
// substring containment. Titles matching nothing return CategoryOther.
func Classify(title string) Category {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}

// Categories returns the classifier's label priority order, ending with
// CategoryOther.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		out = append(out, rule.label)
	}
	return append(out, CategoryOther)
}
