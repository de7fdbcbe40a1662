// Package noaa fetches raw METAR observations from the NWS text service
// and hands them to the METAR parser.
package noaa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"metarmap/internal/metar"
)

// DefaultBaseURL is the NWS station observation file service.
const DefaultBaseURL = "https://tgftp.nws.noaa.gov/data/observations/metar/stations"

// ErrMissingMetarLine is returned when the response body has fewer than
// two lines; the first line is a timestamp header, the second the METAR.
var ErrMissingMetarLine = errors.New("missing METAR line in response body")

// TransportError wraps an HTTP-level failure for one station.
type TransportError struct {
	Station string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch METAR for %s: %v", e.Station, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError wraps a METAR parser rejection for one station.
type ParseError struct {
	Station string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse METAR for %s: %v", e.Station, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Client fetches observations from the NWS METAR text endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for the NWS observation service.
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "metarmap/1.0",
	}
}

// Observation fetches and parses the current METAR for one station. The
// response body's first line is a timestamp header and is discarded; the
// second line is the report.
func (c *Client) Observation(ctx context.Context, station string) (*metar.Report, error) {
	url := fmt.Sprintf("%s/%s.TXT", c.baseURL, station)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Station: station, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Station: station, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Station: station,
			Err:     fmt.Errorf("service returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Station: station, Err: err}
	}

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w for %s", ErrMissingMetarLine, station)
	}

	report, err := metar.Parse(lines[1])
	if err != nil {
		return nil, &ParseError{Station: station, Err: err}
	}

	return report, nil
}
