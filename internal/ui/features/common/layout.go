// Package common provides the page shell shared by UI features.
package common

// PageData describes one full HTML page.
type PageData struct {
	Title string
	// UpdatesURL, when set, is opened as a long-lived SSE stream on load.
	UpdatesURL string
	IsDev      bool
}

// streamInit is the Datastar expression that opens url as an update stream.
func streamInit(url string) string {
	return "@get('" + url + "')"
}
