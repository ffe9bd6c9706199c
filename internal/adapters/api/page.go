package api

import (
	"embed"
	"strconv"

	"weatherlookup.app/internal/core/lookup"
	"weatherlookup.app/internal/core/weather"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "index.html.tmpl"

// pageView is everything the page template reads. It is derived from a
// ViewState alone, so the page is a pure function of the session's view.
type pageView struct {
	Query    string
	Loading  bool
	Error    string
	Snapshot *weather.Snapshot
}

func newPageView(view lookup.ViewState) pageView {
	page := pageView{Query: view.Query}

	switch state := view.Current().(type) {
	case lookup.Loading:
		page.Loading = true
	case lookup.Failed:
		page.Error = state.Message
	case lookup.Success:
		page.Snapshot = state.Snapshot
	}
	return page
}

// formatNumber prints the shortest decimal that round-trips: 18, not 18.0
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
