package fred

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"MacroCast/internal/domain/models"
	drepo "MacroCast/internal/domain/repository"
	xhttp "MacroCast/pkg/http"
	"MacroCast/pkg/util"
)

// ErrSeriesUnavailable means the source returned no usable observations
// for the requested series and range.
var ErrSeriesUnavailable = errors.New("fred: series unavailable")

// Client fetches monthly observations from the FRED REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// New creates a FRED-backed SeriesSource.
func New(apiKey, baseURL string, timeout time.Duration) drepo.SeriesSource {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type fredResponse struct {
	Observations []fredObservation `json:"observations"`
}

// FetchMonthly retrieves the series at monthly frequency for [start, end].
// end == 0 fetches through the latest published month. The result is one
// observation per month with no gaps; anything else is an error.
func (c *Client) FetchMonthly(ctx context.Context, id models.SeriesID, start, end util.Month) ([]models.RawObservation, error) {
	params := map[string]string{
		"series_id":         string(id),
		"api_key":           c.apiKey,
		"file_type":         "json",
		"frequency":         "m",
		"observation_start": start.Time().Format("2006-01-02"),
	}
	if end != 0 {
		params["observation_end"] = end.Time().Format("2006-01-02")
	}

	var resp fredResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		URL:         c.baseURL + "/series/observations",
		QueryParams: params,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fred fetch %s: %w", id, err)
	}

	if len(resp.Observations) == 0 {
		return nil, fmt.Errorf("fred fetch %s: no observations in range: %w", id, ErrSeriesUnavailable)
	}

	out := make([]models.RawObservation, 0, len(resp.Observations))
	for _, obs := range resp.Observations {
		month, err := util.ParseMonth(obs.Date)
		if err != nil {
			return nil, fmt.Errorf("fred fetch %s: bad date %q: %w", id, obs.Date, err)
		}
		if obs.Value == "." {
			return nil, fmt.Errorf("fred fetch %s: missing value at %s: %w", id, month, ErrSeriesUnavailable)
		}
		v, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("fred fetch %s: bad value %q at %s: %w", id, obs.Value, month, err)
		}
		if n := len(out); n > 0 && month != out[n-1].Month.Add(1) {
			return nil, fmt.Errorf("fred fetch %s: not monthly at %s (previous %s)", id, month, out[n-1].Month)
		}
		out = append(out, models.RawObservation{Month: month, Series: id, Value: v})
	}

	return out, nil
}
