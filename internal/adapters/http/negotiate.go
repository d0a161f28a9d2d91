package http

import (
	"net/http"

	"github.com/elnormous/contenttype"
)

// shorthand extensions accepted by Accepts, mirroring common framework usage
var shorthand = map[string]string{
	"json": "application/json",
	"html": "text/html",
	"text": "text/plain",
}

// Accepts reports whether the request's Accept header admits the media type.
// The type may be given in full or as a shorthand such as "json". A request
// without an Accept header accepts everything.
func Accepts(r *http.Request, mediaType string) bool {
	if full, ok := shorthand[mediaType]; ok {
		mediaType = full
	}

	if r.Header.Get("Accept") == "" {
		return true
	}

	available := []contenttype.MediaType{contenttype.NewMediaType(mediaType)}
	_, _, err := contenttype.GetAcceptableMediaType(r, available)
	return err == nil
}
