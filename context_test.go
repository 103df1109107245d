package restahead

import (
	"context"
	"testing"
)

func TestCallFromContext(t *testing.T) {
	t.Run("with call info", func(t *testing.T) {
		ctx := WithCall(context.Background(), "Search", "Delete")
		service, method, ok := CallFromContext(ctx)
		if !ok {
			t.Fatal("expected call info")
		}
		if service != "Search" || method != "Delete" {
			t.Errorf("got %s.%s", service, method)
		}
	})

	t.Run("without call info", func(t *testing.T) {
		if _, _, ok := CallFromContext(context.Background()); ok {
			t.Error("expected no call info")
		}
	})
}
