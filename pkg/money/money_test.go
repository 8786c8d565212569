package money

import (
	"encoding/json"
	"testing"

	"github.com/opensplit/opensplit/pkg/apperr"
)

func TestParse(t *testing.T) {
	a, err := Parse("33.33")
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != "33.33" {
		t.Fatalf("expected 33.33, got %s", a)
	}

	// Fewer than 2 decimals is fine and normalizes on output.
	b, err := Parse("90")
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "90.00" {
		t.Fatalf("expected 90.00, got %s", b)
	}
}

func TestParseRejectsSubCentPrecision(t *testing.T) {
	_, err := Parse("10.005")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "10.0.0"} {
		if _, err := Parse(s); !apperr.IsValidation(err) {
			t.Fatalf("Parse(%q): expected validation error, got %v", s, err)
		}
	}
}

func TestParseRangeLimit(t *testing.T) {
	// 10 integer digits is the NUMERIC(12,2) ceiling.
	if _, err := Parse("9999999999.99"); err != nil {
		t.Fatalf("expected ten digits to fit, got %v", err)
	}
	if _, err := Parse("10000000000.00"); !apperr.IsRange(err) {
		t.Fatal("expected range error for eleven integer digits")
	}
	if _, err := Parse("-10000000000.00"); !apperr.IsRange(err) {
		t.Fatal("expected range error for negative overflow")
	}
}

func TestArithmeticIsExact(t *testing.T) {
	// The classic float trap: 0.10 + 0.20 must be exactly 0.30.
	sum := MustParse("0.10").Add(MustParse("0.20"))
	if !sum.Equal(MustParse("0.30")) {
		t.Fatalf("expected 0.30, got %s", sum)
	}

	diff := MustParse("1.00").Sub(MustParse("0.42"))
	if diff.String() != "0.58" {
		t.Fatalf("expected 0.58, got %s", diff)
	}
}

func TestDivRoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount string
		n      int
		want   string
	}{
		{"100.00", 3, "33.33"},
		{"100.00", 4, "25.00"},
		{"0.01", 2, "0.01"}, // 0.005 rounds up
		{"0.10", 3, "0.03"},
	}
	for _, tc := range cases {
		got := MustParse(tc.amount).Div(tc.n)
		if got.String() != tc.want {
			t.Fatalf("%s / %d: expected %s, got %s", tc.amount, tc.n, tc.want, got)
		}
	}
}

func TestApplyPercent(t *testing.T) {
	cases := []struct {
		amount  string
		percent string
		want    string
	}{
		{"90.00", "50.00", "45.00"},
		{"90.00", "25.00", "22.50"},
		{"100.00", "33.33", "33.33"},
		{"0.01", "50.00", "0.01"}, // 0.005 rounds up
	}
	for _, tc := range cases {
		got := MustParse(tc.amount).ApplyPercent(MustParsePercent(tc.percent))
		if got.String() != tc.want {
			t.Fatalf("%s%% of %s: expected %s, got %s", tc.percent, tc.amount, tc.want, got)
		}
	}
}

func TestNegAbsAndSigns(t *testing.T) {
	a := MustParse("12.50")
	if !a.Neg().IsNegative() {
		t.Fatal("expected negation to be negative")
	}
	if !a.Neg().Abs().Equal(a) {
		t.Fatal("expected abs to undo negation")
	}
	if !Zero.IsZero() {
		t.Fatal("expected Zero to be zero")
	}
	if Zero.IsPositive() || Zero.IsNegative() {
		t.Fatal("expected Zero to carry no sign")
	}
}

func TestSum(t *testing.T) {
	amounts := []Amount{MustParse("33.33"), MustParse("33.33"), MustParse("33.33")}
	if got := Sum(amounts); got.String() != "99.99" {
		t.Fatalf("expected 99.99, got %s", got)
	}
	if !Sum(nil).IsZero() {
		t.Fatal("expected empty sum to be zero")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(MustParse("33.30"))
	if err != nil {
		t.Fatal(err)
	}
	// Trailing zero must survive: "33.30", never "33.3".
	if string(data) != `"33.30"` {
		t.Fatalf("expected \"33.30\", got %s", data)
	}

	var a Amount
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(MustParse("33.30")) {
		t.Fatalf("round trip changed value: %s", a)
	}
}

func TestUnmarshalRejectsSubCent(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`"10.005"`), &a); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScanNumericBytes(t *testing.T) {
	var a Amount
	if err := a.Scan([]byte("45.67")); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(MustParse("45.67")) {
		t.Fatalf("expected 45.67, got %s", a)
	}
}

func TestParsePercentBounds(t *testing.T) {
	if _, err := ParsePercent("100.00"); err != nil {
		t.Fatalf("expected 100.00 to be valid, got %v", err)
	}
	if _, err := ParsePercent("0"); err != nil {
		t.Fatalf("expected 0 to be valid, got %v", err)
	}
	for _, s := range []string{"100.01", "-0.01", "33.333"} {
		if _, err := ParsePercent(s); !apperr.IsValidation(err) {
			t.Fatalf("ParsePercent(%q): expected validation error, got %v", s, err)
		}
	}
}

func TestSumPercentsIsFull(t *testing.T) {
	full := SumPercents([]Percent{
		MustParsePercent("33.33"),
		MustParsePercent("33.33"),
		MustParsePercent("33.34"),
	})
	if !full.IsFull() {
		t.Fatalf("expected 100.00, got %s", full)
	}

	short := SumPercents([]Percent{MustParsePercent("33.33"), MustParsePercent("33.33")})
	if short.IsFull() {
		t.Fatalf("expected %s to fall short of 100.00", short)
	}
}

func TestValidCurrencyCode(t *testing.T) {
	for _, c := range []string{"USD", "EUR", "KZT"} {
		if !ValidCurrencyCode(c) {
			t.Fatalf("expected %s to be valid", c)
		}
	}
	for _, c := range []string{"usd", "US", "USDD", "U$D", ""} {
		if ValidCurrencyCode(c) {
			t.Fatalf("expected %s to be invalid", c)
		}
	}
}
