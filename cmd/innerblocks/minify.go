package main

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &html.Minifier{
			KeepEndTags:         true,
			KeepQuotes:          true,
			KeepDocumentTags:    true,
			KeepDefaultAttrVals: true,
		})
	})
	return minifier
}

// minifyHTML minifies markup, returning it unchanged if minification fails.
func minifyHTML(markup string) string {
	minified, err := getMinifier().String("text/html", markup)
	if err != nil {
		return markup
	}
	return minified
}
