package domain

import "strings"

// Static keyword configuration for classification and ranking.
// Keeping these as package-level data lets the classifier and scorers
// be unit-tested without a store.

// CategoryGeneral is the fallback category when no keyword set matches.
const CategoryGeneral = "general"

// Document categories used by the crawler and the rankers.
const (
	CategoryTimesheet         = "timesheet"
	CategoryProjectManagement = "project_management"
	CategoryBilling           = "billing"
	CategoryCompliance        = "compliance"
	CategoryWorkforce         = "workforce_management"
	CategoryIntegration       = "integration"
	CategoryReporting         = "reporting"
	CategoryMobile            = "mobile"
	CategoryTroubleshooting   = "troubleshooting"
)

// categoryOrder fixes the evaluation order for category hints.
// First matching keyword set wins.
var categoryOrder = []string{
	CategoryTimesheet,
	CategoryProjectManagement,
	CategoryBilling,
	CategoryCompliance,
	CategoryWorkforce,
	CategoryIntegration,
	CategoryReporting,
	CategoryMobile,
	CategoryTroubleshooting,
}

// categoryKeywords maps each category to the query substrings that
// suggest it.
var categoryKeywords = map[string][]string{
	CategoryTimesheet:         {"timesheet", "time entry", "submit time", "hours", "clock in", "clock out"},
	CategoryProjectManagement: {"project", "task", "milestone", "deadline", "project setup"},
	CategoryBilling:           {"billing", "invoice", "rates", "cost", "expense", "charge"},
	CategoryCompliance:        {"compliance", "overtime", "labor law", "regulation", "policy"},
	CategoryWorkforce:         {"schedule", "shift", "employee", "workforce", "attendance"},
	CategoryIntegration:       {"integration", "api", "sync", "import", "export", "connect"},
	CategoryReporting:         {"report", "analytics", "dashboard", "metrics", "data"},
	CategoryMobile:            {"mobile", "app", "phone", "ios", "android"},
	CategoryTroubleshooting:   {"error", "issue", "problem", "fix", "not working", "broken"},
}

// StopWords are discarded during query tokenisation.
var StopWords = map[string]struct{}{
	"how": {}, "do": {}, "i": {}, "can": {}, "the": {}, "is": {},
	"in": {}, "to": {}, "and": {}, "or": {}, "but": {}, "for": {}, "with": {},
}

// VisualIndicators signal that the user wants visual guidance.
var VisualIndicators = []string{
	"visual", "guide", "show", "screenshot", "step by step", "how to", "tutorial",
}

// Intent trigger keyword sets, evaluated in classifier rule order.
var (
	ProjectKeywords   = []string{"project", "create project", "new project", "project setup", "set up project"}
	TimesheetKeywords = []string{"timesheet", "submit timesheet", "time entry", "enter time", "fill timesheet"}
	MobileKeywords    = []string{"mobile", "app", "phone", "android", "ios"}
	NavKeywords       = []string{"navigate", "find", "where is", "access", "menu", "button"}
)

// DisqualifyingTerms in a document title hard-penalise image candidates.
// They overlap with the retrieval-level title exclusions on purpose:
// the penalty also catches titles that pass a tier's SQL filter via
// partial matches. Both are kept independently.
var DisqualifyingTerms = []string{"login", "password", "email", "formula", "authentication"}

// ActionKeywords map a specific action to the terms that confirm an
// image candidate shows that action.
var ActionKeywords = map[string][]string{
	ActionCreateNewProject: {"create", "new", "setup", "add"},
	ActionSubmit:           {"submit", "approval", "send"},
	ActionFillOut:          {"enter", "fill", "input", "add"},
	ActionAppUsage:         {"mobile", "app", "phone"},
	ActionFindFeature:      {"menu", "navigate", "find"},
}

// IntentCategories is the per-intent category allow-list used for the
// base image score.
var IntentCategories = map[IntentType][]string{
	IntentProjectSetup:  {CategoryProjectManagement, CategoryGeneral},
	IntentTimesheet:     {CategoryTimesheet},
	IntentMobile:        {CategoryMobile},
	IntentNavigation:    {CategoryGeneral, CategoryTimesheet, CategoryMobile},
	IntentGeneralVisual: {CategoryTimesheet, CategoryMobile, CategoryGeneral},
}

// CategoryHint returns the likely category for a query, or
// CategoryGeneral when no keyword set matches.
func CategoryHint(query string) string {
	queryLower := strings.ToLower(query)
	for _, category := range categoryOrder {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(queryLower, kw) {
				return category
			}
		}
	}
	return CategoryGeneral
}
