package util

import (
	"github.com/microcosm-cc/bluemonday"
)

var bodyPolicy *bluemonday.Policy

func init() {
	bodyPolicy = bluemonday.UGCPolicy()
	bodyPolicy.AllowElements("p", "br", "div", "span", "blockquote")
	bodyPolicy.AllowAttrs("href").OnElements("a")
	bodyPolicy.RequireParseableURLs(true)
	bodyPolicy.AllowURLSchemes("http", "https", "mailto")
}

// SanitizeBody strips unsafe HTML from an email body before it is stored.
func SanitizeBody(body string) string {
	return bodyPolicy.Sanitize(body)
}
