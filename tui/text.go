package tui

const (
	TextTitle         = "📰 Newscast Curation Console"
	TextFooter        = "j/k move | space toggle | a all | c clear | s select | D delete | f status | g category | r refresh | q quit"
	TextConfirmDelete = "Delete %d document(s)? This cannot be undone. [y/n]"
	TextNoSession     = "⏳ Connecting to API..."
	TextEmpty         = "No documents match the current filters."
)
