package pariah

import (
	"net/http"
	"strings"

	"github.com/ansel1/merry"
)

// Verb is an HTTP method.  The set of verbs is closed: see Verbs().
type Verb string

// Standard HTTP methods.
const (
	MethodGet     Verb = http.MethodGet
	MethodPost    Verb = http.MethodPost
	MethodPut     Verb = http.MethodPut
	MethodDelete  Verb = http.MethodDelete
	MethodPatch   Verb = http.MethodPatch
	MethodHead    Verb = http.MethodHead
	MethodOptions Verb = http.MethodOptions
	MethodConnect Verb = http.MethodConnect
	MethodTrace   Verb = http.MethodTrace
)

// WebDAV and other extension methods.
const (
	MethodCopy     Verb = "COPY"
	MethodLink     Verb = "LINK"
	MethodUnlink   Verb = "UNLINK"
	MethodPurge    Verb = "PURGE"
	MethodLock     Verb = "LOCK"
	MethodUnlock   Verb = "UNLOCK"
	MethodPropfind Verb = "PROPFIND"
	MethodView     Verb = "VIEW"
)

// nolint:gochecknoglobals
var standardVerbs = [...]Verb{
	MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch,
	MethodHead, MethodOptions, MethodConnect, MethodTrace,
}

// nolint:gochecknoglobals
var extensionVerbs = [...]Verb{
	MethodCopy, MethodLink, MethodUnlink, MethodPurge,
	MethodLock, MethodUnlock, MethodPropfind, MethodView,
}

// StandardVerbs returns the nine standard HTTP methods, in the order Pariah
// exposes them as fields.
func StandardVerbs() []Verb {
	return append([]Verb(nil), standardVerbs[:]...)
}

// Verbs returns every supported method: the standard ones followed by the
// extension methods.
func Verbs() []Verb {
	v := make([]Verb, 0, len(standardVerbs)+len(extensionVerbs))
	v = append(v, standardVerbs[:]...)
	return append(v, extensionVerbs[:]...)
}

// Valid reports whether v is one of the supported methods.
func (v Verb) Valid() bool {
	for _, known := range standardVerbs {
		if v == known {
			return true
		}
	}
	for _, known := range extensionVerbs {
		if v == known {
			return true
		}
	}
	return false
}

func (v Verb) String() string {
	return string(v)
}

// ParseVerb converts a method name, in any case, to a Verb.
func ParseVerb(s string) (Verb, error) {
	v := Verb(strings.ToUpper(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", merry.Appendf(ErrUnknownVerb, "%q", s)
	}
	return v, nil
}
