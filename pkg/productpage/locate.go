package productpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NuxtStateMarker identifies the script holding the page's serialized state.
const NuxtStateMarker = "window.__NUXT__"

// LocateScript returns the text of the first script element containing
// NuxtStateMarker.
func LocateScript(doc *goquery.Document) (string, error) {
	return LocateScriptWithMarker(doc, NuxtStateMarker)
}

// LocateScriptWithMarker returns the full text of the first script element
// whose content contains marker, in document order.
func LocateScriptWithMarker(doc *goquery.Document, marker string) (string, error) {
	var found string
	var ok bool
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, marker) {
			found, ok = text, true
			return false
		}
		return true
	})

	if !ok {
		return "", notFound("no script contains " + marker)
	}
	return found, nil
}
