// Package money provides fixed-point decimal amounts with exactly two
// fractional digits, plus a percentage type over the 0-100 range.
// All arithmetic is exact; division that does not terminate rounds
// half-up at the 2-decimal boundary.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/opensplit/opensplit/pkg/apperr"
)

// maxIntegerDigits bounds amounts to 10 integer digits (NUMERIC(12,2)).
const maxIntegerDigits = 10

var (
	hundred = decimal.New(1, 2)  // 100
	maxAbs  = decimal.New(1, 10) // 10^10
)

// Amount is a currency amount with exactly 2 fractional digits.
// The zero value is 0.00 and ready to use.
type Amount struct {
	dec decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Amount{}

// Parse converts a decimal string ("33.33") into an Amount.
// More than two fractional digits is a validation error; more than ten
// integer digits is a range error.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, apperr.Validation(fmt.Sprintf("invalid amount %q", s))
	}
	return fromDecimal(d)
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromInt converts whole units (e.g. 90 -> 90.00).
func FromInt(n int64) Amount {
	return Amount{dec: decimal.NewFromInt(n)}
}

func fromDecimal(d decimal.Decimal) (Amount, error) {
	if d.Exponent() < -2 {
		return Amount{}, apperr.Validation(fmt.Sprintf("amount %s has more than 2 decimal places", d))
	}
	if d.Abs().GreaterThanOrEqual(maxAbs) {
		return Amount{}, &apperr.RangeError{Value: d.String()}
	}
	return Amount{dec: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{dec: a.dec.Add(b.dec)} }
func (a Amount) Sub(b Amount) Amount { return Amount{dec: a.dec.Sub(b.dec)} }
func (a Amount) Neg() Amount         { return Amount{dec: a.dec.Neg()} }
func (a Amount) Abs() Amount         { return Amount{dec: a.dec.Abs()} }

// Cmp returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.dec.Cmp(b.dec) }

func (a Amount) Equal(b Amount) bool       { return a.dec.Equal(b.dec) }
func (a Amount) GreaterThan(b Amount) bool { return a.dec.GreaterThan(b.dec) }
func (a Amount) LessThan(b Amount) bool    { return a.dec.LessThan(b.dec) }

func (a Amount) IsZero() bool     { return a.dec.IsZero() }
func (a Amount) IsPositive() bool { return a.dec.IsPositive() }
func (a Amount) IsNegative() bool { return a.dec.IsNegative() }

// Div splits the amount into n parts, rounding half-up at 2 decimals.
// The quotient is a single per-part value; no remainder is tracked.
func (a Amount) Div(n int) Amount {
	return Amount{dec: a.dec.DivRound(decimal.NewFromInt(int64(n)), 2)}
}

// ApplyPercent returns round_half_up(a * p / 100, 2).
func (a Amount) ApplyPercent(p Percent) Amount {
	return Amount{dec: a.dec.Mul(p.dec).DivRound(hundred, 2)}
}

// String renders with exactly two decimal places ("33.30", not "33.3").
func (a Amount) String() string { return a.dec.StringFixed(2) }

// MarshalJSON renders the amount as a decimal string, which is how the
// API has always exposed money values.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.dec.StringFixed(2) + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer for NUMERIC columns.
func (a Amount) Value() (driver.Value, error) {
	return a.dec.StringFixed(2), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (a *Amount) Scan(src interface{}) error {
	d, err := scanDecimal(src)
	if err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}
	a.dec = d
	return nil
}

// Sum adds up a list of amounts exactly.
func Sum(amounts []Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent is a percentage with 2 fractional digits over the 0-100 range.
type Percent struct {
	dec decimal.Decimal
}

// ParsePercent converts a decimal string ("33.33") into a Percent.
func ParsePercent(s string) (Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, apperr.Validation(fmt.Sprintf("invalid percentage %q", s))
	}
	if d.Exponent() < -2 {
		return Percent{}, apperr.Validation(fmt.Sprintf("percentage %s has more than 2 decimal places", d))
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return Percent{}, apperr.Validation(fmt.Sprintf("percentage %s outside 0-100", d))
	}
	return Percent{dec: d}, nil
}

// MustParsePercent is ParsePercent for literals known to be valid.
func MustParsePercent(s string) Percent {
	p, err := ParsePercent(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percent) Add(q Percent) Percent { return Percent{dec: p.dec.Add(q.dec)} }
func (p Percent) Equal(q Percent) bool  { return p.dec.Equal(q.dec) }
func (p Percent) IsZero() bool          { return p.dec.IsZero() }

// IsFull reports whether the percentage equals exactly 100.00.
func (p Percent) IsFull() bool { return p.dec.Equal(hundred) }

func (p Percent) String() string { return p.dec.StringFixed(2) }

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.dec.StringFixed(2) + `"`), nil
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParsePercent(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Percent) Value() (driver.Value, error) {
	return p.dec.StringFixed(2), nil
}

func (p *Percent) Scan(src interface{}) error {
	d, err := scanDecimal(src)
	if err != nil {
		return fmt.Errorf("scan percent: %w", err)
	}
	p.dec = d
	return nil
}

// SumPercents adds up a list of percentages exactly. The result may
// exceed 100; callers check it against the expected total.
func SumPercents(percents []Percent) Percent {
	total := Percent{}
	for _, p := range percents {
		total = total.Add(p)
	}
	return total
}

func scanDecimal(src interface{}) (decimal.Decimal, error) {
	switch v := src.(type) {
	case nil:
		return decimal.Decimal{}, nil
	case []byte:
		return decimal.NewFromString(string(v))
	case string:
		return decimal.NewFromString(v)
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		// lib/pq delivers NUMERIC as []byte; float64 only shows up from
		// test doubles. Clamp to cents to avoid binary noise.
		return decimal.NewFromFloat(v).Round(2), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported type %T", src)
	}
}
