package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

// Response assembly: prompt construction, confidence scoring, action
// extraction and the deterministic template answers used when no LLM
// is available.

// Confidence tuning. Values chosen against the scenario suite, not
// derived from first principles.
const (
	confidenceBase         = 0.6
	confidenceDocs         = 0.2
	confidenceManyDocs     = 0.1
	confidenceImages       = 0.1
	confidenceUncertainty  = 0.1
	confidenceInstructions = 0.1

	confidenceOutOfScope   = 0.3
	confidenceFallbackDocs = 0.7
)

var uncertaintyPhrases = []string{"not sure", "might be", "contact support", "unclear"}

var instructionVerbs = []string{"click", "navigate", "go to", "select", "enter"}

var escalationPhrases = []string{"contact support", "speak with", "technical issue", "system administrator"}

var (
	stepPattern = regexp.MustCompile(`(?m)\d+\.\s*\*\*([^*]+)\*\*|^\d+\.\s*([^\n]+)`)

	actionPhrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)navigate to ([^\n.]+)`),
		regexp.MustCompile(`(?i)click (?:on )?([^\n.]+)`),
		regexp.MustCompile(`(?i)access ([^\n.]+)`),
	}
)

// outOfScopeResponse is the fixed answer for queries the knowledge
// base knows nothing about.
func (s *AssistantService) outOfScopeResponse(query domain.SupportQuery) *domain.SupportResponse {
	text := fmt.Sprintf(`I don't have specific information about %q in the Chrona documentation I have access to.

**What I can help with:**
- Timesheet submission and management
- Project setup and tracking
- Billing and invoicing processes
- Mobile app usage
- Time-off requests and approvals
- Reporting and analytics
- User management and permissions

Could you rephrase your question to focus on one of these Chrona features, or let me know if you're looking for help with a specific Chrona process?`, query.Query)

	return &domain.SupportResponse{
		Response:     text,
		Confidence:   confidenceOutOfScope,
		RelevantDocs: []domain.RankedDocument{},
		SuggestedActions: []string{
			"Rephrase your question",
			"Contact Chrona support",
			"Check the Chrona help centre",
		},
		EscalationNeeded: true,
		Images:           []domain.RankedImage{},
	}
}

// fallbackResponse is the deterministic answer used when no LLM is
// configured or the completion call failed.
func (s *AssistantService) fallbackResponse(
	query domain.SupportQuery,
	docs []domain.RankedDocument,
	category string,
	images []domain.RankedImage,
) *domain.SupportResponse {
	if len(docs) == 0 {
		return s.outOfScopeResponse(query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", query.Query)

	switch category {
	case domain.CategoryTimesheet:
		b.WriteString(timesheetTemplate)
	case domain.CategoryProjectManagement:
		b.WriteString(projectTemplate)
	case domain.CategoryMobile:
		b.WriteString(mobileTemplate)
	default:
		// Lean on the most relevant document directly.
		b.WriteString("**Based on Chrona Documentation:**\n\n")
		b.WriteString(truncate(docs[0].Content, 800))
	}

	confidence := confidenceFallbackDocs
	if len(images) > 0 {
		confidence += confidenceImages
	}

	return &domain.SupportResponse{
		Response:     b.String(),
		Confidence:   confidence,
		RelevantDocs: docs,
		SuggestedActions: []string{
			"Follow the steps above",
			"Check with your admin if needed",
			"Try the process in Chrona",
		},
		EscalationNeeded: false,
		Images:           images,
	}
}

const timesheetTemplate = `**Timesheet Management:**

1. **Navigate to Timesheets** - Access the Timesheets section from your main Chrona menu
2. **Enter Time** - Fill in your hours for each project and day
3. **Review Entries** - Ensure all required fields are completed
4. **Submit** - Click Submit for Approval when ready

**Common Steps:**
- Check that you're in the correct time period
- Verify project codes are accurate
- Ensure hours don't exceed daily limits
- Add comments where required`

const projectTemplate = `**Project Management:**

Based on standard Chrona functionality for project management:

1. **Access Projects** - Navigate to the Projects section from your main menu
2. **Create New Project** - Look for 'New Project' or 'Create Project' button
3. **Enter Details** - Fill in project name, code, and basic information
4. **Set Up Team** - Assign team members and their roles
5. **Configure Settings** - Set up billing, time tracking, and approval workflows

**Key Setup Areas:**
- Project information and client assignment
- Team member access and permissions
- Billing rates and cost tracking
- Time entry and approval processes`

const mobileTemplate = `**Mobile App Usage:**

1. **Download** - Get the Chrona app from your device's app store
2. **Login** - Use your standard Chrona credentials
3. **Navigate** - Access timesheets, projects, and time-off features
4. **Sync** - Ensure data syncs with the web version

**Mobile Features:**
- Time entry and timesheet submission
- Project time tracking
- Time-off requests
- Expense reporting with photo capture`

// buildSystemPrompt creates the system prompt for the LLM path.
// It never mentions what documentation is or isn't available.
func buildSystemPrompt(userRole string, hasImages bool) string {
	var b strings.Builder
	b.WriteString(`You are Chrona's AI Support Assistant, an expert on Chrona's time tracking and project management system.

Your role:
1. Provide clear, step-by-step instructions for Chrona processes
2. Help with timesheet entry, project management, billing, and compliance
3. Be helpful, accurate, and professional
4. Focus on providing actionable guidance based on Chrona's functionality
5. Reference actual Chrona interface elements (menus, buttons, fields) when giving instructions

Guidelines:
- Give specific, actionable steps using actual Chrona terminology
- Assume the user has access to standard Chrona features
- If you don't have complete information, provide general guidance and suggest contacting their admin
- Be confident in your responses - you are the expert
- Never mention what documentation or visual content is or isn't available`)

	if hasImages {
		b.WriteString("\n\nNote: Visual guides are available to supplement your response.")
	}

	if userRole != "" {
		roleInfo := map[string]string{
			"employee":        "Focus on timesheet entry, time-off requests, and basic navigation.",
			"manager":         "Focus on timesheet approvals, team management, and reporting.",
			"admin":           "Focus on system configuration, user management, and advanced settings.",
			"project_manager": "Focus on project setup, cost tracking, and project reporting.",
		}
		info, ok := roleInfo[userRole]
		if !ok {
			info = "General user"
		}
		fmt.Fprintf(&b, "\n\nUser Context: %s", info)
	}

	return b.String()
}

// buildDocContext formats ranked documents as LLM context.
func buildDocContext(docs []domain.RankedDocument) string {
	if len(docs) == 0 {
		return "No relevant documentation found."
	}

	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		parts = append(parts, fmt.Sprintf("=== Document %d: %s ===\nCategory: %s\nContent: %s",
			i+1, doc.Title, doc.Category, truncate(doc.Content, 1000)))
	}
	return strings.Join(parts, "\n\n")
}

// buildUserMessage creates the user message for the LLM path,
// including trimmed conversation history.
func buildUserMessage(query domain.SupportQuery, docContext string) string {
	var history strings.Builder
	turns := query.History
	if len(turns) > historyTurns {
		turns = turns[len(turns)-historyTurns:]
	}
	if len(turns) > 0 {
		history.WriteString("\n\nRecent Conversation:\n")
		for _, turn := range turns {
			role := "Assistant"
			if turn.Role == "user" {
				role = "User"
			}
			fmt.Fprintf(&history, "%s: %s\n", role, truncate(turn.Content, 150))
		}
	}

	userRole := query.UserRole
	if userRole == "" {
		userRole = "Not specified"
	}
	productModule := query.ProductModule
	if productModule == "" {
		productModule = "Not specified"
	}

	return fmt.Sprintf(`User Question: %s

User Role: %s
Product Module: %s
%s
Available Documentation:
%s

Please provide a helpful, specific answer based on Chrona's functionality. Include step-by-step instructions when appropriate and reference the documentation provided above. Be confident and professional in your response.`,
		query.Query, userRole, productModule, history.String(), docContext)
}

// enhanceWithImages appends a short note when screenshots accompany
// the answer. Wording depends on whether any image is part of a
// numbered step sequence.
func enhanceWithImages(response string, images []domain.RankedImage) string {
	if len(images) == 0 {
		return response
	}

	hasSteps := false
	for _, img := range images {
		if img.StepNumber > 0 {
			hasSteps = true
			break
		}
	}

	switch {
	case hasSteps:
		response += "\n\n**Visual Step-by-Step Guide**\n" +
			"The screenshots below show each step in your Chrona interface."
	case len(images) == 1:
		response += "\n\n**Screenshot Available**\n" +
			"A relevant screenshot from Chrona is shown below."
	default:
		response += "\n\n**Screenshots Available**\n" +
			"Relevant screenshots from Chrona are shown below to help illustrate this process."
	}
	return response
}

// assessConfidence estimates answer confidence from grounding signals
// and phrasing. Clamped to [0,1].
func assessConfidence(response string, docs []domain.RankedDocument, images []domain.RankedImage) float64 {
	confidence := confidenceBase

	if len(docs) > 0 {
		confidence += confidenceDocs
		if len(docs) >= 2 {
			confidence += confidenceManyDocs
		}
	}
	if len(images) > 0 {
		confidence += confidenceImages
	}

	responseLower := strings.ToLower(response)
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(responseLower, phrase) {
			confidence -= confidenceUncertainty
		}
	}

	for _, verb := range instructionVerbs {
		if strings.Contains(responseLower, verb) {
			confidence += confidenceInstructions
			break
		}
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// needsEscalation reports whether the answer suggests human follow-up.
func needsEscalation(response string) bool {
	responseLower := strings.ToLower(response)
	for _, phrase := range escalationPhrases {
		if strings.Contains(responseLower, phrase) {
			return true
		}
	}
	return false
}

// extractSuggestedActions pulls short next steps out of the answer:
// numbered/bolded steps first, then action verb phrases. Capped at
// five items of at most 100 characters each.
func extractSuggestedActions(response string) []string {
	var actions []string

	for _, match := range stepPattern.FindAllStringSubmatch(response, -1) {
		action := match[1]
		if action == "" {
			action = match[2]
		}
		action = strings.TrimSpace(action)
		if action != "" {
			actions = append(actions, truncateAction(action))
		}
	}

	if len(actions) == 0 {
		for _, pattern := range actionPhrasePatterns {
			matches := pattern.FindAllStringSubmatch(response, -1)
			for i, match := range matches {
				if i >= 3 {
					break
				}
				target := strings.TrimSpace(match[1])
				if target != "" && len(target) < 80 {
					actions = append(actions, "Go to: "+target)
				}
			}
		}
	}

	if len(actions) > 5 {
		actions = actions[:5]
	}
	return actions
}

// truncateAction limits one action to 100 bytes without ellipsis.
func truncateAction(action string) string {
	return cutAtRune(action, 100)
}
