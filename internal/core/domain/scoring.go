package domain

// Scoring weights for the document and image rankers. The values are
// empirically tuned; treat them as configuration, not derivation.
type Scoring struct {
	// Document ranking weights.

	// CategoryBoost is the base score for a candidate in the hinted
	// category. Other candidates get BaseBoost.
	CategoryBoost float64
	BaseBoost     float64

	// TitleSubstring is added when the full query appears in the title.
	TitleSubstring float64

	// TermInTitle, TermInKeywords and TermInContent are added per
	// matched query term.
	TermInTitle    float64
	TermInKeywords float64
	TermInContent  float64

	// LongContentFactor scales scores of documents whose content
	// exceeds LongContentChars; long pages tend to be less focused.
	LongContentFactor float64
	LongContentChars  int

	// Image ranking weights.

	// CategoryMatch is the base score for an image whose document
	// category is in the intent's allow-list.
	CategoryMatch float64

	// PriorityInTitle, PriorityInAlt and PriorityInContent are added
	// per priority term, first location wins.
	PriorityInTitle   float64
	PriorityInAlt     float64
	PriorityInContent float64

	// ActionMatch is added per action keyword found in title or content.
	ActionMatch float64

	// DisqualifyPenalty is subtracted per disqualifying term in the
	// document title.
	DisqualifyPenalty float64

	// ImageThreshold is the strict lower bound an image score must
	// exceed to be shown at all.
	ImageThreshold float64
}

// DefaultScoring returns the tuned production weights.
func DefaultScoring() Scoring {
	return Scoring{
		CategoryBoost:     2,
		BaseBoost:         1,
		TitleSubstring:    10,
		TermInTitle:       3,
		TermInKeywords:    2,
		TermInContent:     1,
		LongContentFactor: 0.9,
		LongContentChars:  5000,
		CategoryMatch:     10,
		PriorityInTitle:   8,
		PriorityInAlt:     6,
		PriorityInContent: 4,
		ActionMatch:       5,
		DisqualifyPenalty: 15,
		ImageThreshold:    5.0,
	}
}
