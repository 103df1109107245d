package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/broady/restahead"
	"github.com/broady/restahead/testutil"
)

func execute(t *testing.T, client restahead.Client, ctx context.Context, req *restahead.Request) (*restahead.Response, error) {
	t.Helper()
	return restahead.Await(ctx, client.Execute(ctx, req), restahead.PassNone)
}

func TestLogging_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	client := restahead.Intercept(testutil.NewFakeClient(nil), Logging(logger))
	ctx := restahead.WithCall(context.Background(), "HttpBinService", "Get")

	if _, err := execute(t, client, ctx, restahead.NewRequest(restahead.MethodGet, "/get")); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"request started", "request completed", `"call":"HttpBinService.Get"`, `"verb":"GET"`, `"path":"/get"`, `"status":200`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestLogging_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	client := restahead.Intercept(testutil.NewFakeClient(testutil.Fail(errors.New("connection refused"))), Logging(logger))
	_, err := execute(t, client, context.Background(), restahead.NewRequest(restahead.MethodDelete, "/search"))
	if err == nil {
		t.Fatal("expected an error")
	}

	out := buf.String()
	if !strings.Contains(out, "request failed") || !strings.Contains(out, "connection refused") {
		t.Errorf("log output:\n%s", out)
	}
	if !strings.Contains(out, `"level":"ERROR"`) {
		t.Errorf("failure should log at error level:\n%s", out)
	}
}

func TestLogging_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	client := restahead.Intercept(testutil.NewFakeClient(testutil.Respond(http.StatusNotFound)), Logging(logger))
	resp, err := execute(t, client, context.Background(), restahead.NewRequest(restahead.MethodGet, "/missing"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertStatus(t, resp, http.StatusNotFound)

	if out := buf.String(); !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, `"status":404`) {
		t.Errorf("log output:\n%s", out)
	}
}

func TestLogging_NilLogger(t *testing.T) {
	client := restahead.Intercept(testutil.NewFakeClient(nil), Logging(nil))
	if _, err := execute(t, client, context.Background(), restahead.NewRequest(restahead.MethodGet, "/get")); err != nil {
		t.Fatal(err)
	}
}

func TestLogging_NoResponse(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	empty := restahead.ClientFunc(func(context.Context, *restahead.Request) *restahead.Future[*restahead.Response] {
		return restahead.Resolved[*restahead.Response](nil)
	})
	client := restahead.Intercept(empty, Logging(logger))
	resp, err := client.Execute(context.Background(), restahead.NewRequest(restahead.MethodGet, "/get")).Result()
	if resp != nil || err != nil {
		t.Fatalf("result = %v, %v", resp, err)
	}

	out := buf.String()
	if !strings.Contains(out, "request failed") || !strings.Contains(out, "no response") {
		t.Errorf("log output:\n%s", out)
	}
}
