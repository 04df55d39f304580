package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput       = "input"
	NameTextarea    = "textarea"
	NameDate        = "date"
	NameURL         = "url"
	NameSelect      = "select"
	NameMultiSelect = "multiselect"
	NameList        = "list"
	NamePlace       = "place"
)
