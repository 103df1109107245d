package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// Echo is the body returned by the endpoints of [NewHTTPBin]. It follows
// the shape of https://httpbin.org responses.
type Echo struct {
	Args    map[string]string `json:"args"`
	Data    string            `json:"data"`
	Headers map[string]string `json:"headers"`
	Method  string            `json:"method"`
	URL     string            `json:"url"`
}

// NewHTTPBin starts a local server imitating the parts of httpbin.org used by
// restahead tests:
//
//	GET /get, POST /post, PUT /put, PATCH /patch, DELETE /delete
//	ANY /anything/...    echo of any request
//	ANY /status/{code}   empty response with the given status
//	GET /headers         {"headers": {...}}
//
// Any other path answers 404. Header values with the same name are joined
// with commas, as httpbin does. The server is closed when the test ends.
func NewHTTPBin(t testing.TB) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		mux.HandleFunc(m+" /"+strings.ToLower(m), echo)
	}
	mux.HandleFunc("/anything/", echo)
	mux.HandleFunc("/anything", echo)
	mux.HandleFunc("GET /headers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"headers": joinHeaders(r.Header)})
	})
	mux.HandleFunc("/status/{code}", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(r.PathValue("code"))
		if err != nil || code < 100 || code > 599 {
			http.Error(w, "invalid status code", http.StatusBadRequest)
			return
		}
		w.WriteHeader(code)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func echo(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	args := make(map[string]string)
	for k, v := range r.URL.Query() {
		args[k] = strings.Join(v, ",")
	}
	writeJSON(w, http.StatusOK, Echo{
		Args:    args,
		Data:    string(data),
		Headers: joinHeaders(r.Header),
		Method:  r.Method,
		URL:     "http://" + r.Host + r.URL.RequestURI(),
	})
}

func joinHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ",")
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
