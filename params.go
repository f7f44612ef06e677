package pariah

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/go-playground/validator/v10"
	goquery "github.com/google/go-querystring/query"
)

// ParamKind identifies which value a Param holds.
type ParamKind int

// Param kinds.  The zero Param is Absent.
const (
	KindAbsent ParamKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// Param is a single path or query parameter value: a string, integer, float,
// boolean, or absent.  Absent params are dropped from the query string, which
// is how optional API parameters are left out of a request.
type Param struct {
	kind ParamKind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a string Param.
func String(s string) Param {
	return Param{kind: KindString, s: s}
}

// Int returns an integer Param.
func Int(i int64) Param {
	return Param{kind: KindInt, i: i}
}

// Float returns a floating point Param.
func Float(f float64) Param {
	return Param{kind: KindFloat, f: f}
}

// Bool returns a boolean Param.
func Bool(b bool) Param {
	return Param{kind: KindBool, b: b}
}

// Absent returns a Param with no value.
func Absent() Param {
	return Param{}
}

// StringPtr returns String(*s), or Absent if s is nil.
func StringPtr(s *string) Param {
	if s == nil {
		return Absent()
	}
	return String(*s)
}

// IntPtr returns Int(*i), or Absent if i is nil.
func IntPtr(i *int) Param {
	if i == nil {
		return Absent()
	}
	return Int(int64(*i))
}

// FloatPtr returns Float(*f), or Absent if f is nil.
func FloatPtr(f *float64) Param {
	if f == nil {
		return Absent()
	}
	return Float(*f)
}

// BoolPtr returns Bool(*b), or Absent if b is nil.
func BoolPtr(b *bool) Param {
	if b == nil {
		return Absent()
	}
	return Bool(*b)
}

// Kind returns the kind of value held.
func (p Param) Kind() ParamKind {
	return p.kind
}

// Present is false for Absent params.
func (p Param) Present() bool {
	return p.kind != KindAbsent
}

// String renders the value as it is sent on the wire.  Absent renders as "".
func (p Param) String() string {
	switch p.kind {
	case KindString:
		return p.s
	case KindInt:
		return strconv.FormatInt(p.i, 10)
	case KindFloat:
		return strconv.FormatFloat(p.f, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(p.b)
	}
	return ""
}

// Params maps parameter names to values.  Keys starting with ":" fill the
// matching placeholders of a path template.  All other keys become query
// parameters.
type Params map[string]Param

// Merge returns a new Params with the entries of other layered over p.
func (p Params) Merge(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for k, v := range p {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// QueryStruct converts a struct into query Params, using the
// github.com/google/go-querystring/query package.  Fields should carry
// "url" tags:
//
//	type TagsOptions struct {
//	    ImageURL string `url:"image_url,omitempty"`
//	    Limit    int    `url:"limit,omitempty"`
//	}
//
// Multi-valued fields are joined with commas.
//
// Fields may also carry github.com/go-playground/validator "validate" tags,
// which are checked first.  Violations fail with ErrInvalidParams, naming
// the fields by their url tag:
//
//	Limit int `url:"limit,omitempty" validate:"gte=0"`
func QueryStruct(v interface{}) (Params, error) {
	values, err := goquery.Values(v)
	if err != nil {
		return nil, merry.Prepend(err, "invalid query struct")
	}
	if err := validateStruct(v); err != nil {
		return nil, err
	}
	params := make(Params, len(values))
	for key, vals := range values {
		params[key] = String(strings.Join(vals, ","))
	}
	return params, nil
}

// nolint:gochecknoglobals
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("url"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct checks v's validate tags.  Values which aren't structs
// pass.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	var invalid *validator.InvalidValidationError
	if err == nil || errors.As(err, &invalid) {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return merry.Prepend(err, "validating query struct")
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msg := f.Field() + " failed " + f.Tag()
		if f.Param() != "" {
			msg += "=" + f.Param()
		}
		msgs = append(msgs, msg)
	}
	return merry.Append(ErrInvalidParams, strings.Join(msgs, "; "))
}

// placeholders match ":name" at the start of a path segment.
// nolint:gochecknoglobals
var placeholders = regexp.MustCompile(`(^|/):([A-Za-z_][A-Za-z0-9_]*)`)

// expandTemplate fills the placeholders of tmpl from params.  It returns the
// expanded path and the params left over for the query string.  Fails if
// any placeholder has no present value.
func expandTemplate(tmpl string, params Params) (string, url.Values, error) {
	used := map[string]bool{}
	var missing []string

	path := placeholders.ReplaceAllStringFunc(tmpl, func(m string) string {
		prefix := ""
		if strings.HasPrefix(m, "/") {
			prefix, m = "/", m[1:]
		}
		p, ok := params[m]
		if !ok || !p.Present() {
			missing = append(missing, m)
			return prefix + m
		}
		used[m] = true
		return prefix + url.PathEscape(p.String())
	})

	if len(missing) > 0 {
		return "", nil, merry.Appendf(ErrMissingPathParameter, "%s in %q", strings.Join(missing, ", "), tmpl)
	}

	query := url.Values{}
	for key, p := range params {
		if used[key] || strings.HasPrefix(key, ":") || !p.Present() {
			continue
		}
		query.Set(key, p.String())
	}
	return path, query, nil
}
