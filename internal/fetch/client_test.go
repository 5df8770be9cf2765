package fetch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"mediacat/internal/fetch"
)

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := fetch.New("", "aff", "https://example.com"); err == nil {
		t.Fatal("expected error when app id missing")
	}
	if _, err := fetch.New("app", "", "https://example.com"); err == nil {
		t.Fatal("expected error when affiliate id missing")
	}
	if _, err := fetch.New("app", "aff", " "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestOffset(t *testing.T) {
	client, err := fetch.New("app", "aff", "https://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for page, want := range map[int]int{1: 1, 2: 501, 3: 1001} {
		if got := client.Offset(page); got != want {
			t.Fatalf("Offset(%d) = %d, want %d", page, got, want)
		}
	}
}

// pagedServer serves total items in pages of the requested size.
func pagedServer(t *testing.T, total int, failAtOffset int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_id") != "app" || q.Get("affiliate_id") != "aff" || q.Get("floor_id") != "43" || q.Get("output") != "json" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		hits, _ := strconv.Atoi(q.Get("hits"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		if failAtOffset > 0 && offset >= failAtOffset {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		var items []string
		for i := offset; i < offset+hits && i <= total; i++ {
			items = append(items, fmt.Sprintf(`{"series_id":%d,"name":"シリーズ%d","list_url":"https://x/?a=1&b=2"}`, i, i))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"result":{"status":200,"result_count":%d,"series":[%s]}}`, len(items), strings.Join(items, ","))
	}))
}

func TestFetchAllStopsOnEmptyPage(t *testing.T) {
	server := pagedServer(t, 5, 0)
	t.Cleanup(server.Close)

	client, err := fetch.New("app", "aff", server.URL, fetch.WithHits(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, err := client.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	var first struct {
		SeriesID int `json:"series_id"`
	}
	if err := json.Unmarshal(items[4], &first); err != nil || first.SeriesID != 5 {
		t.Fatalf("unexpected last item %s: %v", items[4], err)
	}
}

func TestFetchAllKeepsItemsGatheredBeforeErrorStatus(t *testing.T) {
	server := pagedServer(t, 10, 5)
	t.Cleanup(server.Close)

	client, err := fetch.New("app", "aff", server.URL, fetch.WithHits(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, err := client.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected items from the first two pages, got %d", len(items))
	}
}

func TestFetchAllStopsOnTransportFailure(t *testing.T) {
	server := pagedServer(t, 10, 0)
	url := server.URL
	server.Close()

	client, err := fetch.New("app", "aff", url)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items, err := client.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestFetchPageStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := fetch.New("app", "aff", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.FetchPage(context.Background(), 1)
	var statusErr *fetch.StatusError
	if err == nil || !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected StatusError 500, got %v", err)
	}
}

func TestFetchAllReportsCancellation(t *testing.T) {
	server := pagedServer(t, 10, 0)
	t.Cleanup(server.Close)

	client, err := fetch.New("app", "aff", server.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.FetchAll(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestWriteJSONPreservesNonASCII(t *testing.T) {
	items := []json.RawMessage{json.RawMessage(`{"name":"シリーズ","list_url":"a&b"}`)}
	var buf bytes.Buffer
	if err := fetch.WriteJSON(&buf, "series", items); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"{\n    \"series\": [\n        {", "シリーズ", "a&b"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "series.json")
	if err := fetch.WriteJSONFile(path, "series", nil); err != nil {
		t.Fatalf("WriteJSONFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{\n    \"series\": []\n}" {
		t.Fatalf("unexpected empty document: %q", data)
	}
}
