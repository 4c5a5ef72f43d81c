package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

func TestClassifyIntent_ProjectSetup(t *testing.T) {
	intent := ClassifyIntent("visual guide for setting up a new project")

	assert.Equal(t, domain.IntentProjectSetup, intent.Type)
	assert.Equal(t, domain.ActionCreateNewProject, intent.SpecificAction)
	assert.Equal(t, []string{"project", "create", "setup", "new"}, intent.PriorityTerms)
}

func TestClassifyIntent_ProjectSetup_WithoutVisualRequest(t *testing.T) {
	// "create" alone qualifies the project keywords.
	intent := ClassifyIntent("create project for the new client")
	assert.Equal(t, domain.IntentProjectSetup, intent.Type)
}

func TestClassifyIntent_ProjectMention_WithoutSetupContext(t *testing.T) {
	// "project" appears but with no visual request or setup/create/new
	// qualifier; the rule must not fire. The query then hits no other
	// keyword and classifies as none.
	intent := ClassifyIntent("project billing codes")
	assert.Equal(t, domain.IntentNone, intent.Type)
}

func TestClassifyIntent_Timesheet_Submit(t *testing.T) {
	intent := ClassifyIntent("How do I submit my timesheet?")

	assert.Equal(t, domain.IntentTimesheet, intent.Type)
	assert.Equal(t, domain.ActionSubmit, intent.SpecificAction)
	assert.Equal(t, []string{"timesheet", "submit", "entry"}, intent.PriorityTerms)
}

func TestClassifyIntent_Timesheet_FillOut(t *testing.T) {
	assert.Equal(t, domain.ActionFillOut, ClassifyIntent("fill timesheet for last week").SpecificAction)
	assert.Equal(t, domain.ActionFillOut, ClassifyIntent("enter time against a task").SpecificAction)
}

func TestClassifyIntent_Timesheet_General(t *testing.T) {
	intent := ClassifyIntent("timesheet overview please")
	assert.Equal(t, domain.IntentTimesheet, intent.Type)
	assert.Equal(t, domain.ActionGeneral, intent.SpecificAction)
}

func TestClassifyIntent_Mobile(t *testing.T) {
	intent := ClassifyIntent("does the android phone version sync?")

	assert.Equal(t, domain.IntentMobile, intent.Type)
	assert.Equal(t, domain.ActionAppUsage, intent.SpecificAction)
	assert.Equal(t, []string{"mobile", "app"}, intent.PriorityTerms)
}

func TestClassifyIntent_Navigation(t *testing.T) {
	intent := ClassifyIntent("where is the approvals menu?")

	assert.Equal(t, domain.IntentNavigation, intent.Type)
	assert.Equal(t, domain.ActionFindFeature, intent.SpecificAction)
}

func TestClassifyIntent_GeneralVisual(t *testing.T) {
	intent := ClassifyIntent("tutorial with screenshot please")

	assert.Equal(t, domain.IntentGeneralVisual, intent.Type)
	assert.Equal(t, domain.ActionShowInterface, intent.SpecificAction)
	assert.ElementsMatch(t, []string{"screenshot", "tutorial"}, intent.VisualKeywords)
}

func TestClassifyIntent_None(t *testing.T) {
	intent := ClassifyIntent("tell me about overtime rules")

	assert.Equal(t, domain.IntentNone, intent.Type)
	assert.Empty(t, intent.SpecificAction)
	assert.Empty(t, intent.PriorityTerms)
}

func TestClassifyIntent_OrderMatters(t *testing.T) {
	// Contains both project and visual keywords; project_setup is
	// checked first and must win over general_visual.
	intent := ClassifyIntent("show me how to set up project tracking")
	assert.Equal(t, domain.IntentProjectSetup, intent.Type)

	// Timesheet beats mobile when both appear.
	intent = ClassifyIntent("timesheet on the mobile app")
	assert.Equal(t, domain.IntentTimesheet, intent.Type)
}

func TestClassifyIntent_Deterministic(t *testing.T) {
	query := "visual guide for setting up a new project"
	first := ClassifyIntent(query)
	second := ClassifyIntent(query)
	assert.Equal(t, first, second)
}

func TestClassifyIntent_CaseInsensitive(t *testing.T) {
	assert.Equal(t, domain.IntentTimesheet, ClassifyIntent("SUBMIT TIMESHEET").Type)
}
