package types

// Int returns a pointer to an int.
func Int(v int) *int {
	return &v
}

// String returns a pointer to a string.
func String(v string) *string {
	return &v
}

// Bool returns a pointer to a bool.
func Bool(v bool) *bool {
	return &v
}

// Reference points at another API object.
type Reference struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Href        string `json:"href"`
	Name        string `json:"name,omitempty"`
	BrowserLink string `json:"browserLink,omitempty"`
}
