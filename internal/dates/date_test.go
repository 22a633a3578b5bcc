package dates

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []string{"", "2024-1-01", "2024/01/01", "01-01-2024", "2024-02-30", "2024-13-01", "2024-01-01T00:00:00Z"}
	for _, raw := range cases {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(raw); !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
			}
		})
	}
}

func TestParseAndStringRoundTrip(t *testing.T) {
	day, err := Parse("2024-02-29")
	if err != nil {
		t.Fatalf("parse leap day: %v", err)
	}
	if day.Year != 2024 || day.Month != time.February || day.Day != 29 {
		t.Fatalf("unexpected components: %#v", day)
	}
	if got := day.String(); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
}

func TestFromTimeKeepsLocalCalendarDate(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	lateEvening := time.Date(2024, time.March, 9, 23, 30, 0, 0, newYork)
	if got := FromTime(lateEvening).String(); got != "2024-03-09" {
		t.Fatalf("expected local date 2024-03-09, got %s", got)
	}

	localMidnight := time.Date(2024, time.March, 10, 0, 0, 0, 0, newYork)
	if got := FromTime(localMidnight).String(); got != "2024-03-10" {
		t.Fatalf("expected local midnight to stay on 2024-03-10, got %s", got)
	}
}

func TestDiffDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from string
		to   string
		want int
	}{
		{from: "2024-01-01", to: "2024-01-08", want: 7},
		{from: "2024-01-08", to: "2024-01-01", want: -7},
		{from: "2024-02-28", to: "2024-03-01", want: 2},
		{from: "2023-02-28", to: "2023-03-01", want: 1},
		{from: "2024-03-09", to: "2024-03-11", want: 2},
		{from: "2023-12-31", to: "2024-01-01", want: 1},
		{from: "0001-01-01", to: "2024-01-01", want: 738885},
		{from: "9999-12-31", to: "0000-01-01", want: -3652424},
	}
	for _, testCase := range cases {
		if got := DiffDays(MustParse(testCase.from), MustParse(testCase.to)); got != testCase.want {
			t.Fatalf("DiffDays(%s, %s) = %d, want %d", testCase.from, testCase.to, got, testCase.want)
		}
		if back := MustParse(testCase.from).AddDays(testCase.want); back.String() != testCase.to {
			t.Fatalf("%s + %d days = %s, want %s", testCase.from, testCase.want, back, testCase.to)
		}
	}
}

func TestAddDaysAndMonths(t *testing.T) {
	start := MustParse("2024-01-29")
	if got := start.AddDays(5).String(); got != "2024-02-03" {
		t.Fatalf("expected 2024-02-03, got %s", got)
	}
	if got := start.AddDays(-29).String(); got != "2023-12-31" {
		t.Fatalf("expected 2023-12-31, got %s", got)
	}
	if got := MustParse("2024-03-15").AddMonths(-3).String(); got != "2023-12-15" {
		t.Fatalf("expected 2023-12-15, got %s", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Fatalf("expected 29 days in Feb 2024, got %d", got)
	}
	if got := DaysInMonth(1900, time.February); got != 28 {
		t.Fatalf("expected 28 days in Feb 1900, got %d", got)
	}
	if got := DaysInMonth(2000, time.February); got != 29 {
		t.Fatalf("expected 29 days in Feb 2000, got %d", got)
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("2024-01-31")
	b := MustParse("2024-02-01")
	if !a.Before(b) || !b.After(a) || a.Equal(b) {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
}

func TestJSONAndScan(t *testing.T) {
	type payload struct {
		Day Date  `json:"day"`
		End *Date `json:"end"`
	}

	encoded, err := json.Marshal(payload{Day: MustParse("2024-05-06")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"day":"2024-05-06","end":null}` {
		t.Fatalf("unexpected json: %s", encoded)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"day":"2024-05-07"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Day.String() != "2024-05-07" {
		t.Fatalf("unexpected decoded day: %s", decoded.Day)
	}
	if err := json.Unmarshal([]byte(`{"day":"05/07/2024"}`), &decoded); err == nil {
		t.Fatal("expected malformed json date to fail")
	}

	var scanned Date
	if err := scanned.Scan("2024-05-08 00:00:00+00:00"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scanned.String() != "2024-05-08" {
		t.Fatalf("unexpected scanned day: %s", scanned)
	}
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if month.String() != "2024-02-01" || month.MonthString() != "2024-02" {
		t.Fatalf("unexpected month start: %s", month)
	}

	for _, raw := range []string{"2024-2", "2024-13", "2024-02-01", ""} {
		if _, err := ParseMonth(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}

func TestScanRejectsCorruptSuffix(t *testing.T) {
	var scanned Date
	for _, raw := range []string{"2024-05-08T10:00:00Z", "2024-05-08 00:00:00"} {
		if err := scanned.Scan(raw); err != nil || scanned.String() != "2024-05-08" {
			t.Fatalf("scan %q: got %s err=%v", raw, scanned, err)
		}
	}
	for _, raw := range []string{"2024-01-011", "2024-01-01x", "2024-01-01+00:00"} {
		if err := scanned.Scan(raw); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", raw, err)
		}
	}
}
