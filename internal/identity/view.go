package identity

// ViewState is the navbar projection of the cached record. It is computed
// on every render and never stored.
type ViewState struct {
	Authenticated bool
	DisplayName   string
}

// Guest is the view state for a visitor without a valid record.
var Guest = ViewState{}

// ViewOf projects a record, which may be nil, onto the navbar.
func ViewOf(id *Identity) ViewState {
	if !id.Valid() {
		return Guest
	}
	return ViewState{Authenticated: true, DisplayName: id.DisplayName()}
}

// Greeting returns the text for the generic user-info label.
func (v ViewState) Greeting() string {
	if !v.Authenticated {
		return ""
	}
	return Greeting + v.DisplayName
}

// String implements fmt.Stringer for log lines.
func (v ViewState) String() string {
	if !v.Authenticated {
		return "guest"
	}
	return "authenticated(" + v.DisplayName + ")"
}
