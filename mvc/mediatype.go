// Package mvc carries the HTTP side of a GraphQL endpoint: recognizing the
// GraphQL media type and turning a request into a query document plus its
// decoded variables, which are then bound onto resolver inputs with the
// coerce package.
package mvc

import (
	"mime"
	"net/http"
	"strings"
)

// Media types accepted on a GraphQL endpoint
const (
	GraphQLMediaTypeValue = "application/graphql"
	JSONMediaTypeValue    = "application/json"
)

// AcceptableMediaTypeValues lists the request media types a GraphQL endpoint
// consumes, in order of preference.
var AcceptableMediaTypeValues = []string{GraphQLMediaTypeValue, JSONMediaTypeValue}

// IsApplicationGraphQL reports whether the Content-Type header of h is
// application/graphql. Parameters such as charset are ignored. A missing
// header, or one that fails to parse (including a malformed parameter as in
// "application/graphql; charset"), reports false instead of an error.
func IsApplicationGraphQL(h http.Header) bool {
	return hasMediaType(h, GraphQLMediaTypeValue)
}

func hasMediaType(h http.Header, want string) bool {
	contentType := h.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// mime.ErrInvalidMediaParameter still returns the media type, it is
		// not trusted either.
		return false
	}
	// ParseMediaType lower-cases the media type
	return mediaType == strings.ToLower(want)
}
