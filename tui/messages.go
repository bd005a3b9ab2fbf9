package tui

import "newscast/curation"

// viewMsg carries a fresh session view, or the error that prevented it.
type viewMsg struct {
	View curation.View
	Note string
	Err  error
}
