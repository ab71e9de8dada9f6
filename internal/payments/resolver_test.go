package payments

import (
	"testing"

	"github.com/google/uuid"
)

func TestResolveKnownProviders(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	cases := map[string]string{
		"paygate": "/payment/paygate/" + id.String(),
		"payfast": "/payment/payfast/" + id.String(),
		"stripe":  "/payment/stripe/" + id.String(),
		"paypal":  "/payment/paypal/" + id.String(),
	}
	for method, want := range cases {
		if got := Resolve(method, id); got != want {
			t.Fatalf("method %s: expected %s, got %s", method, want, got)
		}
	}
}

func TestResolveFallsBackToGeneric(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	for _, method := range []string{"crypto", "other", "", "PAYGATE"} {
		want := "/payment/generic/" + id.String()
		if got := Resolve(method, id); got != want {
			t.Fatalf("method %q: expected generic path, got %s", method, got)
		}
	}
}
