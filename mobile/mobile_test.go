package mobile

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewServerServesAPI(t *testing.T) {
	srv, store, err := NewServer(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/new_game", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ongoing"`) {
		t.Fatalf("new game: %d %s", rec.Code, rec.Body.String())
	}
}
