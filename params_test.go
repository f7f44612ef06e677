package pariah

import (
	"net/url"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParam(t *testing.T) {
	s, i, f, yes := "x", 3, 1.5, true

	tests := []struct {
		name    string
		p       Param
		kind    ParamKind
		present bool
		str     string
	}{
		{"string", String("a b"), KindString, true, "a b"},
		{"empty string", String(""), KindString, true, ""},
		{"int", Int(-42), KindInt, true, "-42"},
		{"float", Float(0.25), KindFloat, true, "0.25"},
		{"whole float", Float(2), KindFloat, true, "2"},
		{"bool", Bool(false), KindBool, true, "false"},
		{"absent", Absent(), KindAbsent, false, ""},
		{"zero", Param{}, KindAbsent, false, ""},
		{"string ptr", StringPtr(&s), KindString, true, "x"},
		{"int ptr", IntPtr(&i), KindInt, true, "3"},
		{"float ptr", FloatPtr(&f), KindFloat, true, "1.5"},
		{"bool ptr", BoolPtr(&yes), KindBool, true, "true"},
		{"nil string ptr", StringPtr(nil), KindAbsent, false, ""},
		{"nil int ptr", IntPtr(nil), KindAbsent, false, ""},
		{"nil float ptr", FloatPtr(nil), KindAbsent, false, ""},
		{"nil bool ptr", BoolPtr(nil), KindAbsent, false, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.p.Kind())
			assert.Equal(t, tc.present, tc.p.Present())
			assert.Equal(t, tc.str, tc.p.String())
		})
	}
}

func TestParams_Merge(t *testing.T) {
	a := Params{"a": String("1"), "b": String("2")}
	b := Params{"b": Int(3), "c": Absent()}

	m := a.Merge(b)
	assert.Equal(t, Params{"a": String("1"), "b": Int(3), "c": Absent()}, m)

	// neither input is modified
	assert.Equal(t, String("2"), a["b"])
	assert.Len(t, b, 2)

	var nilParams Params
	assert.Equal(t, a, nilParams.Merge(a))
}

func TestQueryStruct(t *testing.T) {
	type opts struct {
		Q     string   `url:"q,omitempty"`
		Limit int      `url:"limit,omitempty"`
		Tags  []string `url:"tags,omitempty"`
		Flag  bool     `url:"flag"`
	}

	p, err := QueryStruct(opts{Q: "cats", Tags: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, Params{
		"q":    String("cats"),
		"tags": String("a,b"),
		"flag": String("false"),
	}, p)

	_, err = QueryStruct("not a struct")
	assert.Error(t, err)

	p, err = QueryStruct(nil)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestQueryStruct_validation(t *testing.T) {
	type opts struct {
		ID    string  `url:"id" validate:"required"`
		Lat   float64 `url:"latitude" validate:"latitude"`
		Limit int     `url:"limit,omitempty" validate:"gte=0"`
	}

	p, err := QueryStruct(opts{ID: "a", Lat: 45.5, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, String("a"), p["id"])

	_, err = QueryStruct(&opts{Lat: 91, Limit: -1})
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrInvalidParams))
	assert.Contains(t, err.Error(), "id failed required")
	assert.Contains(t, err.Error(), "latitude failed latitude")
	assert.Contains(t, err.Error(), "limit failed gte=0")
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  string
		ps    Params
		path  string
		query url.Values
	}{
		{
			name:  "no placeholders",
			tmpl:  "/users",
			ps:    nil,
			path:  "/users",
			query: url.Values{},
		},
		{
			name: "placeholder and query",
			tmpl: "/users/:id",
			ps: Params{
				":id":      String("42"),
				"page":     Int(2),
				"per_page": Absent(),
			},
			path:  "/users/42",
			query: url.Values{"page": {"2"}},
		},
		{
			name:  "several placeholders",
			tmpl:  "/forms/:id/submissions/:submissionId",
			ps:    Params{":id": String("f1"), ":submissionId": Int(7)},
			path:  "/forms/f1/submissions/7",
			query: url.Values{},
		},
		{
			name:  "leading placeholder",
			tmpl:  ":id/detail",
			ps:    Params{":id": String("x")},
			path:  "x/detail",
			query: url.Values{},
		},
		{
			name:  "leading placeholder with a colon",
			tmpl:  ":id/detail",
			ps:    Params{":id": String("a:b")},
			path:  "a:b/detail",
			query: url.Values{},
		},
		{
			name:  "values are escaped",
			tmpl:  "/files/:name",
			ps:    Params{":name": String("a b/c?d")},
			path:  "/files/a%20b%2Fc%3Fd",
			query: url.Values{},
		},
		{
			name:  "colons inside a segment are literal",
			tmpl:  "/time/12:30",
			ps:    nil,
			path:  "/time/12:30",
			query: url.Values{},
		},
		{
			name:  "unused colon keys are not sent",
			tmpl:  "/users",
			ps:    Params{":id": String("1"), "q": String("a&b")},
			path:  "/users",
			query: url.Values{"q": {"a&b"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path, query, err := expandTemplate(tc.tmpl, tc.ps)
			require.NoError(t, err)
			assert.Equal(t, tc.path, path)
			assert.Equal(t, tc.query, query)
		})
	}
}

func TestExpandTemplate_Missing(t *testing.T) {
	for _, ps := range []Params{
		nil,
		{"id": String("1")},
		{":id": Absent()},
	} {
		_, _, err := expandTemplate("/users/:id", ps)
		require.Error(t, err)
		assert.True(t, merry.Is(err, ErrMissingPathParameter))
		assert.Contains(t, err.Error(), ":id")
	}
}
