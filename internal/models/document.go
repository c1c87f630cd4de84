package models

// SourceRef is a citation reference attached to a grounded generation
// result (URL plus page title from the search grounding metadata).
type SourceRef struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// DocumentSet is the output of decomposing one raw generation payload
// into its named parts. Both documents are markdown text; Sources may
// be empty but is never nil.
type DocumentSet struct {
	PRD     string      `json:"prd"`
	DevPlan string      `json:"dev_plan"`
	Sources []SourceRef `json:"sources"`
}
