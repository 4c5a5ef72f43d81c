package services

import (
	"strings"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

// ClassifyIntent maps a free-text query to an Intent. It is a pure,
// deterministic function of the query string: no state, no I/O.
//
// Rules are evaluated in order and the first match wins. Project setup
// is checked before the generic visual-request path because "visual
// guide for a new project" must classify as project_setup, not
// general_visual. When nothing matches, the result is IntentNone and
// no images are shown downstream; a lenient default here is what used
// to leak irrelevant screenshots into answers.
func ClassifyIntent(query string) domain.Intent {
	queryLower := strings.ToLower(query)

	hasVisualRequest := false
	var matchedIndicators []string
	for _, indicator := range domain.VisualIndicators {
		if strings.Contains(queryLower, indicator) {
			hasVisualRequest = true
			matchedIndicators = append(matchedIndicators, indicator)
		}
	}

	if containsAny(queryLower, domain.ProjectKeywords) {
		if hasVisualRequest ||
			strings.Contains(queryLower, "setup") ||
			strings.Contains(queryLower, "create") ||
			strings.Contains(queryLower, "new") {
			return domain.Intent{
				Type:           domain.IntentProjectSetup,
				SpecificAction: domain.ActionCreateNewProject,
				PriorityTerms:  []string{"project", "create", "setup", "new"},
			}
		}
	}

	if containsAny(queryLower, domain.TimesheetKeywords) {
		action := domain.ActionGeneral
		switch {
		case strings.Contains(queryLower, "submit"):
			action = domain.ActionSubmit
		case strings.Contains(queryLower, "fill"), strings.Contains(queryLower, "enter"):
			action = domain.ActionFillOut
		}
		return domain.Intent{
			Type:           domain.IntentTimesheet,
			SpecificAction: action,
			PriorityTerms:  []string{"timesheet", "submit", "entry"},
		}
	}

	if containsAny(queryLower, domain.MobileKeywords) {
		return domain.Intent{
			Type:           domain.IntentMobile,
			SpecificAction: domain.ActionAppUsage,
			PriorityTerms:  []string{"mobile", "app"},
		}
	}

	if containsAny(queryLower, domain.NavKeywords) {
		return domain.Intent{
			Type:           domain.IntentNavigation,
			SpecificAction: domain.ActionFindFeature,
			PriorityTerms:  []string{"navigate", "menu", "access"},
		}
	}

	if hasVisualRequest {
		return domain.Intent{
			Type:           domain.IntentGeneralVisual,
			SpecificAction: domain.ActionShowInterface,
			VisualKeywords: matchedIndicators,
		}
	}

	return domain.Intent{Type: domain.IntentNone}
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
