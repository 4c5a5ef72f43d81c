package domain

// IntentType identifies the classified goal behind a user query.
// It gates whether images are shown at all: IntentNone must
// short-circuit image retrieval entirely.
type IntentType string

// Known intent types.
const (
	// IntentNone means no visual intent was detected. No images are
	// shown downstream. This is the strict default, not a lenient
	// fallback.
	IntentNone IntentType = "none"

	// IntentProjectSetup covers creating or configuring projects.
	IntentProjectSetup IntentType = "project_setup"

	// IntentTimesheet covers timesheet entry and submission.
	IntentTimesheet IntentType = "timesheet"

	// IntentMobile covers mobile app usage.
	IntentMobile IntentType = "mobile"

	// IntentNavigation covers finding features in the interface.
	IntentNavigation IntentType = "navigation"

	// IntentGeneralVisual covers generic requests for visual guidance.
	IntentGeneralVisual IntentType = "general_visual"
)

// Specific actions refining an intent.
const (
	ActionCreateNewProject = "create_new_project"
	ActionSubmit           = "submit"
	ActionFillOut          = "fill_out"
	ActionGeneral          = "general"
	ActionAppUsage         = "app_usage"
	ActionFindFeature      = "find_feature"
	ActionShowInterface    = "show_interface"
)

// Intent is the request-scoped result of classifying a query.
// It is created fresh per query and never persisted.
type Intent struct {
	// Type is the classified intent type.
	Type IntentType

	// SpecificAction refines the intent (e.g. "submit" for timesheet).
	// Empty when the intent carries no sub-action.
	SpecificAction string

	// PriorityTerms are ordered terms used to score image candidates.
	PriorityTerms []string

	// VisualKeywords are the visual-request indicators found in the
	// query. Only populated for IntentGeneralVisual.
	VisualKeywords []string
}

// IsNone reports whether no visual intent was detected.
func (i Intent) IsNone() bool {
	return i.Type == IntentNone
}
