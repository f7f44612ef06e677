package pariah_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/ThalesGroup/pariah"
)

func Example() {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"color":"red"}`))
	}))
	defer s.Close()

	api := pariah.MustNew(s.URL)

	data, _ := api.Get.Request("/", nil)

	fmt.Println(data.Status)
	fmt.Println(data.Raw)
	fmt.Println((*data.Payload).(map[string]interface{})["color"])
	// Output:
	// 200
	// {"color":"red"}
	// red
}

func ExampleJSON() {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":%q,"page":%q}`, strings.TrimPrefix(r.URL.Path, "/users/"), r.URL.Query().Get("page"))
	}))
	defer s.Close()

	type user struct {
		ID   string `json:"id"`
		Page string `json:"page"`
	}

	api := pariah.MustNew(s.URL)

	data, err := pariah.JSON[user](api.Get, "/users/:id", pariah.Params{
		":id":      pariah.String("42"),
		"page":     pariah.Int(2),
		"per_page": pariah.Absent(),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(data.Payload.ID, data.Payload.Page)
	// Output: 42 2
}

func Example_errorStatus() {
	api := pariah.MustNew("http://api.com",
		pariah.MockDoer(400, pariah.Body("bad format")),
	)

	data, err := api.Get.Request("/profile", nil)

	fmt.Println(err)
	fmt.Println(data.Status, data.OK())
	fmt.Println(data.Raw)
	// Output:
	// <nil>
	// 400 false
	// bad format
}

func Example_cancel() {
	_, doer := pariah.ChannelDoer()
	api := pariah.MustNew("http://api.com", doer)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := api.Get.RequestContext(ctx, "/slow", nil)
	fmt.Println(pariah.IsCancelled(err))
	// Output: true
}

// Inspector is an Option which captures requests and responses and their bodies.  It's
// a tool for writing tests.
func ExampleInspector() {
	var mockDoer pariah.DoerFunc = func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 201,
			Body:       io.NopCloser(strings.NewReader("pong")),
		}, nil
	}

	i := pariah.Inspector{}

	_, _ = pariah.MustNew("http://api.com").Post.Request("/ping", nil,
		mockDoer,
		pariah.Accept("text/plain"),
		pariah.Body("ping"),
		&i,
	)

	fmt.Println(i.Request.Header.Get(pariah.HeaderAccept))
	fmt.Println(i.RequestBody.String())
	fmt.Println(i.Response.StatusCode)
	fmt.Println(i.ResponseBody.String())

	// Output:
	// text/plain
	// ping
	// 201
	// pong
}
