package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgerror"
	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

type testCache struct {
	mu     sync.Mutex
	tables map[string]*entity.Table
	n      int
	err    error
}

func newTestCache() *testCache {
	return &testCache{tables: make(map[string]*entity.Table)}
}

func (c *testCache) Put(ctx context.Context, tbl *entity.Table) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	c.n++
	id := fmt.Sprintf("csv_%d", c.n)
	c.tables[id] = tbl
	return id, nil
}

func (c *testCache) Get(ctx context.Context, id string) (*entity.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tbl, ok := c.tables[id]
	return tbl, ok
}

func (c *testCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}

type testPublisher struct {
	mu     sync.Mutex
	events []entity.TableEvent
	err    error
}

func (p *testPublisher) Publish(ctx context.Context, event entity.TableEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type testID struct {
	mu sync.Mutex
	n  int
}

func (t *testID) Generate() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
	return fmt.Sprintf("evt-%d", t.n)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *pkgerror.Error, got %T (%v)", err, err)
	}
	return perr.StatusCode()
}

func TestUploadStoresTableAndTruncatesErrors(t *testing.T) {
	cache := newTestCache()
	events := &testPublisher{}
	uc := New(Dependency{Cache: cache, Events: events, ID: &testID{}, MaxErrors: 2})

	lines := []string{"a,b"}
	for i := 0; i < 5; i++ {
		lines = append(lines, "only-one")
	}
	lines = append(lines, "1,2")

	res, err := uc.Upload(context.Background(), UploadInput{
		Filename: "data.csv",
		Data:     []byte(strings.Join(lines, "\n")),
	})
	if err != nil {
		t.Fatalf("Upload() err = %v", err)
	}

	if res.TableID != "csv_1" {
		t.Fatalf("unexpected table id %q", res.TableID)
	}
	if res.TotalRows != 6 || res.InvalidRows != 5 {
		t.Fatalf("unexpected counts total=%d invalid=%d", res.TotalRows, res.InvalidRows)
	}
	if len(res.Errors) != 2 || res.Errors[0] != "line 2: expected 2 columns, found 1" {
		t.Fatalf("unexpected errors: %#v", res.Errors)
	}

	stored, ok := cache.Get(context.Background(), res.TableID)
	if !ok {
		t.Fatal("expected table in cache")
	}
	if len(stored.Errors) != 5 {
		t.Fatalf("cached table must keep every error, got %d", len(stored.Errors))
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	ev := events.events[0]
	if ev.Kind != entity.TableEventStored || ev.TableID != "csv_1" || ev.EventID != "evt-1" || ev.Rows != 1 || ev.InvalidRows != 5 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestUploadAcceptsCSVContentType(t *testing.T) {
	uc := New(Dependency{Cache: newTestCache()})

	res, err := uc.Upload(context.Background(), UploadInput{
		Filename:    "export",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("x;y\n1;2\n"),
	})
	if err != nil {
		t.Fatalf("Upload() err = %v", err)
	}
	if res.Delimiter != entity.DelimiterSemicolon {
		t.Fatalf("unexpected delimiter %q", res.Delimiter)
	}
}

func TestUploadRejectsNonCSV(t *testing.T) {
	cache := newTestCache()
	events := &testPublisher{}
	uc := New(Dependency{Cache: cache, Events: events})

	_, err := uc.Upload(context.Background(), UploadInput{Filename: "report.xlsx", ContentType: "application/vnd.ms-excel", Data: []byte("a,b")})
	if err == nil {
		t.Fatal("expected error for non csv upload")
	}
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", got)
	}
	if err.Error() != "only CSV files are allowed" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if cache.Len() != 0 {
		t.Fatal("nothing must be cached")
	}
	if len(events.events) != 1 || events.events[0].Reason != entity.RejectNotCSV {
		t.Fatalf("expected a not_csv rejection, got %+v", events.events)
	}
}

func TestUploadRejectsTooLarge(t *testing.T) {
	events := &testPublisher{}
	uc := New(Dependency{Cache: newTestCache(), Events: events, MaxUploadBytes: 4})

	_, err := uc.Upload(context.Background(), UploadInput{Filename: "a.csv", Data: []byte("a,b,c\n")})
	if got := statusOf(t, err); got != http.StatusRequestEntityTooLarge {
		t.Fatalf("unexpected status %d", got)
	}
	if len(events.events) != 1 || events.events[0].Reason != entity.RejectTooLarge {
		t.Fatalf("expected a too_large rejection, got %+v", events.events)
	}
}

func TestMissingCacheIsServerError(t *testing.T) {
	uc := New(Dependency{})

	_, err := uc.Upload(context.Background(), UploadInput{Filename: "a.csv", Data: []byte("a\n1\n")})
	if got := statusOf(t, err); got != http.StatusInternalServerError {
		t.Fatalf("Upload: unexpected status %d", got)
	}

	_, err = uc.Data(context.Background(), "csv_1", entity.QueryParams{Page: 1, PageSize: 10})
	if got := statusOf(t, err); got != http.StatusInternalServerError {
		t.Fatalf("Data: unexpected status %d", got)
	}
}

func TestUploadParseFailureIsClientErrorAndNotCached(t *testing.T) {
	cache := newTestCache()
	events := &testPublisher{}
	uc := New(Dependency{Cache: cache, Events: events})

	_, err := uc.Upload(context.Background(), UploadInput{Filename: "blank.csv", Data: []byte("\n  \n")})
	if err == nil {
		t.Fatal("expected error for empty file")
	}
	if got := statusOf(t, err); got != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", got)
	}
	if err.Error() != ErrEmptyInput.Error() {
		t.Fatalf("expected parse failure message, got %q", err.Error())
	}
	if cache.Len() != 0 {
		t.Fatal("failed upload must not be cached")
	}
	if len(events.events) != 1 || events.events[0].Kind != entity.TableEventRejected || events.events[0].Reason != entity.RejectEmpty {
		t.Fatalf("expected a rejected event with reason empty, got %+v", events.events)
	}
}

func TestUploadCacheFailureIsServerError(t *testing.T) {
	cache := newTestCache()
	cache.err = errors.New("boom")
	uc := New(Dependency{Cache: cache})

	_, err := uc.Upload(context.Background(), UploadInput{Filename: "a.csv", Data: []byte("a\n1\n")})
	if got := statusOf(t, err); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", got)
	}
}

func TestUploadPublishFailureDoesNotFail(t *testing.T) {
	uc := New(Dependency{Cache: newTestCache(), Events: &testPublisher{err: errors.New("bus full")}})

	if _, err := uc.Upload(context.Background(), UploadInput{Filename: "a.csv", Data: []byte("a\n1\n")}); err != nil {
		t.Fatalf("Upload() err = %v", err)
	}
}

func TestDataQueriesCachedTable(t *testing.T) {
	cache := newTestCache()
	events := &testPublisher{}
	uc := New(Dependency{Cache: cache, Events: events})

	up, err := uc.Upload(context.Background(), UploadInput{Filename: "n.csv", Data: []byte("n\n10\n2\n1\n")})
	if err != nil {
		t.Fatalf("Upload() err = %v", err)
	}

	res, err := uc.Data(context.Background(), up.TableID, entity.QueryParams{SortBy: "n", Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("Data() err = %v", err)
	}

	if res.TableID != up.TableID {
		t.Fatalf("unexpected table id %q", res.TableID)
	}
	if len(res.Rows) != 2 || res.Rows[0][0] != "1" || res.Rows[1][0] != "2" {
		t.Fatalf("unexpected rows %#v", res.Rows)
	}
	if !res.HasMore || res.TotalPages != 2 || res.TotalRows != 3 {
		t.Fatalf("unexpected paging %+v", res.QueryResult)
	}
	if last := events.events[len(events.events)-1]; last.Kind != entity.TableEventQueried || last.Rows != 2 {
		t.Fatalf("unexpected query event %+v", last)
	}
}

func TestDataNotFound(t *testing.T) {
	uc := New(Dependency{Cache: newTestCache()})

	_, err := uc.Data(context.Background(), "csv_missing", entity.QueryParams{Page: 1, PageSize: 10})
	if got := statusOf(t, err); got != http.StatusNotFound {
		t.Fatalf("unexpected status %d", got)
	}

	_, err = uc.Data(context.Background(), "", entity.QueryParams{})
	if got := statusOf(t, err); got != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status for empty id %d", got)
	}
}

func TestIsCSV(t *testing.T) {
	cases := []struct {
		filename, contentType string
		want                  bool
	}{
		{"a.csv", "", true},
		{"A.CSV", "application/octet-stream", true},
		{"a.txt", "text/csv", true},
		{"a.txt", "text/csv; charset=latin1", true},
		{"a.txt", "text/plain", false},
		{"", "", false},
		{"csv", "", false},
	}
	for _, tc := range cases {
		if got := isCSV(tc.filename, tc.contentType); got != tc.want {
			t.Fatalf("isCSV(%q, %q) = %v, want %v", tc.filename, tc.contentType, got, tc.want)
		}
	}
}
