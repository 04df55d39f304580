package components

// ControlView is the template-facing description of one row control. Names
// are complete form field names; the renderer fills them from the editor.
type ControlView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Component   string            `json:"component"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Lang        string            `json:"lang,omitempty"`
	InputType   string            `json:"inputType,omitempty"`
	Value       string            `json:"value"`
	Display     string            `json:"display,omitempty"`
	Options     []OptionView      `json:"options,omitempty"`
	Items       []ItemView        `json:"items,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Class       string            `json:"class,omitempty"`
	// AddName/AddValue describe the nested "add item" button of list groups.
	AddName  string `json:"addName,omitempty"`
	AddValue string `json:"addValue,omitempty"`
	AddLabel string `json:"addLabel,omitempty"`
	// ChangeName/ChangeValue describe the refresh button of controls other
	// controls depend on.
	ChangeName  string   `json:"changeName,omitempty"`
	ChangeValue string   `json:"changeValue,omitempty"`
	Messages    []string `json:"messages,omitempty"`
}

// OptionView is one choice of a select control.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ItemView is one entry of a list group.
type ItemView struct {
	ID          string `json:"id"`
	Value       string `json:"value"`
	RemoveName  string `json:"removeName"`
	RemoveValue string `json:"removeValue"`
}
