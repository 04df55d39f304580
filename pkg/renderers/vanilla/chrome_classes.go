package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "formrows-form"
	ClassEditor   ChromeClass = "formrows-editor"
	ClassRow      ChromeClass = "formrows-row"
	ClassTemplate ChromeClass = "template"
	ClassActions  ChromeClass = "formrows-actions"
	ClassErrors   ChromeClass = "formrows-errors"
)
