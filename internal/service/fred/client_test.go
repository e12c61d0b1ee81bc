package fred

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MacroCast/internal/domain/models"
	"MacroCast/pkg/util"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL, 5*time.Second).(*Client)
}

func TestFetchMonthly(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/series/observations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("series_id") != "PCEPI" || q.Get("api_key") != "test-key" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("frequency") != "m" || q.Get("observation_start") != "1985-01-01" {
			t.Errorf("unexpected query %v", q)
		}
		fmt.Fprint(w, `{"observations":[
			{"date":"1985-01-01","value":"100.1"},
			{"date":"1985-02-01","value":"100.5"},
			{"date":"1985-03-01","value":"101.2"}]}`)
	})

	start, _ := util.ParseMonth("1985-01")
	got, err := c.FetchMonthly(context.Background(), models.SeriesPCEPI, start, 0)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(got))
	}
	if got[0].Month != start || got[0].Value != 100.1 || got[0].Series != models.SeriesPCEPI {
		t.Fatalf("unexpected first observation %+v", got[0])
	}
	if got[2].Month != start.Add(2) {
		t.Fatalf("unexpected last month %v", got[2].Month)
	}
}

func TestFetchMonthlyHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_message":"Bad Request. The series does not exist."}`, http.StatusBadRequest)
	})

	_, err := c.FetchMonthly(context.Background(), "NOPE", 0, 0)
	if err == nil {
		t.Fatalf("expected error for unknown series")
	}
}

func TestFetchMonthlyEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[]}`)
	})

	_, err := c.FetchMonthly(context.Background(), models.SeriesUNRATE, 0, 0)
	if !errors.Is(err, ErrSeriesUnavailable) {
		t.Fatalf("expected ErrSeriesUnavailable, got %v", err)
	}
}

func TestFetchMonthlyMissingValue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[
			{"date":"1985-01-01","value":"100.1"},
			{"date":"1985-02-01","value":"."}]}`)
	})

	_, err := c.FetchMonthly(context.Background(), models.SeriesMICH, 0, 0)
	if !errors.Is(err, ErrSeriesUnavailable) {
		t.Fatalf("expected ErrSeriesUnavailable, got %v", err)
	}
}

func TestFetchMonthlyGapIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"observations":[
			{"date":"1985-01-01","value":"1"},
			{"date":"1985-04-01","value":"2"}]}`)
	})

	_, err := c.FetchMonthly(context.Background(), models.SeriesINDPRO, 0, 0)
	if err == nil {
		t.Fatalf("expected error for non-monthly data")
	}
}
