package restahead

import "testing"

func TestRequest_HeadersKeepInsertionOrder(t *testing.T) {
	req := NewRequest(MethodGet, "/get")
	req.AddHeader("Accept", "a")
	req.AddHeader("X-Trace", "1")
	req.AddHeader("Accept", "b")

	got := req.Headers()
	want := []Header{{"Accept", "a"}, {"X-Trace", "1"}, {"Accept", "b"}}
	if len(got) != len(want) {
		t.Fatalf("Headers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Headers()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	values := req.HeaderValues("Accept")
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Errorf("HeaderValues(Accept) = %v", values)
	}
	if !req.HasHeader("X-Trace") || req.HasHeader("X-Missing") {
		t.Error("HasHeader mismatch")
	}
}

func TestRequest_HeadersReturnsCopy(t *testing.T) {
	req := NewRequest(MethodPost, "/post")
	req.AddHeader("A", "1")
	h := req.Headers()
	h[0].Value = "changed"
	if req.HeaderValues("A")[0] != "1" {
		t.Error("mutating Headers() result changed the request")
	}
	if req.Verb() != MethodPost || req.Path() != "/post" {
		t.Errorf("got %v %s", req.Verb(), req.Path())
	}
}
