package relay

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerForwardsPath(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/today" {
			t.Errorf("unexpected upstream path: %s", r.URL.Path)
		}
		w.Write([]byte(`[{"text":"X","author":"Y"}]`))
	}))
	defer upstream.Close()

	handler, err := Handler(upstream.URL)
	if err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	proxy := httptest.NewServer(handler)
	defer proxy.Close()

	resp, err := http.Get(proxy.URL + "/api/today")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `[{"text":"X","author":"Y"}]` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestHandlerRejectsBadUpstream(t *testing.T) {
	if _, err := Handler("not a url"); err == nil {
		t.Error("expected error for unparseable upstream")
	}
	if _, err := Handler("/just/a/path"); err == nil {
		t.Error("expected error for upstream without scheme")
	}
}
