package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campusbudget/internal/core"
)

const (
	userIDHeader = "X-User-ID"
	dateLayout   = "2006-01-02"

	maxBodyBytes = 64 << 10
)

// userID extracts the caller identity from the request header. Empty means
// the request is unauthenticated and must be rejected with 400.
func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(userIDHeader))
}

// decodeBody decodes a JSON request body into dst with a size cap.
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// parseDate parses a required "YYYY-MM-DD" value.
func parseDate(value string) (core.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return core.Date{Time: t}, nil
}

// parseOptionalDate parses a "YYYY-MM-DD" value, returning the zero Date when
// the input is empty.
func parseOptionalDate(value string) (core.Date, error) {
	if strings.TrimSpace(value) == "" {
		return core.Date{}, nil
	}
	return parseDate(value)
}

// parseDateRange extracts optional inclusive from/to bounds from the query.
func parseDateRange(query url.Values) (from, to core.Date, err error) {
	from, err = parseOptionalDate(query.Get("from"))
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	to, err = parseOptionalDate(query.Get("to"))
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	if !from.IsEmpty() && !to.IsEmpty() && to.Before(from.Time) {
		return core.Date{}, core.Date{}, fmt.Errorf("invalid range: from is after to")
	}
	return from, to, nil
}

// decimalString is a money amount that clients may send as either a JSON
// number (12.5) or a string ("12.50").
type decimalString string

func (d *decimalString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = decimalString(s)
		return nil
	}
	*d = decimalString(data)
	return nil
}

// parseAmount converts a decimal amount ("12.50") to cents.
func parseAmount(value string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(value)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
