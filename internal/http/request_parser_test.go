package http

import (
	"encoding/json"
	"net/url"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid date", "2024-03-15", false},
		{"valid with surrounding spaces", " 2024-03-15 ", false},
		{"wrong format", "15/03/2024", true},
		{"month only", "2024-03", true},
		{"empty", "", true},
		{"garbage", "not-a-date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	t.Run("empty input yields zero date", func(t *testing.T) {
		d, err := parseOptionalDate("")
		if err != nil {
			t.Fatalf("parseOptionalDate(\"\") error = %v", err)
		}
		if !d.IsEmpty() {
			t.Error("parseOptionalDate(\"\") should return an empty date")
		}
	})

	t.Run("invalid input is still rejected", func(t *testing.T) {
		if _, err := parseOptionalDate("2024-13-45"); err == nil {
			t.Error("parseOptionalDate() should reject invalid dates")
		}
	})
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"no bounds", "", false},
		{"from only", "from=2024-01-01", false},
		{"to only", "to=2024-06-30", false},
		{"both bounds", "from=2024-01-01&to=2024-06-30", false},
		{"equal bounds", "from=2024-01-01&to=2024-01-01", false},
		{"inverted bounds", "from=2024-06-30&to=2024-01-01", true},
		{"malformed from", "from=yesterday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery(%q) error = %v", tt.query, err)
			}
			_, _, err = parseDateRange(query)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDateRange(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input     string
		wantCents int64
		wantErr   bool
	}{
		{"12.50", 1250, false},
		{"12,50", 1250, false},
		{"100", 10000, false},
		{"0.01", 1, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := parseAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && m.Cents != tt.wantCents {
				t.Errorf("parseAmount(%q) = %d cents, want %d", tt.input, m.Cents, tt.wantCents)
			}
		})
	}
}

func TestDecimalStringUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"json string", `"12.50"`, "12.50", false},
		{"json number", `12.5`, "12.5", false},
		{"integer", `100`, "100", false},
		{"unterminated string", `"12.50`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d decimalString
			err := json.Unmarshal([]byte(tt.input), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && string(d) != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, d, tt.want)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  groceries  ", "groceries"},
		{"removes control characters", "text\x00book\x1f", "textbook"},
		{"keeps tabs and newlines", "line1\nline2\ttab", "line1\nline2\ttab"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.input); got != tt.expected {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
