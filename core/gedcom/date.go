package gedcom

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	gverrors "github.com/FocuswithJustin/gedvault/core/errors"
)

// CalendarDate is a possibly partial Gregorian date. Zero Day or Month means
// the component was not given.
type CalendarDate struct {
	Day   int `json:"day,omitempty" yaml:"day,omitempty"`
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
	Year  int `json:"year" yaml:"year"`
}

// String formats the date as YYYY, YYYY-MM or YYYY-MM-DD.
func (c CalendarDate) String() string {
	switch {
	case c.Month == 0:
		return fmt.Sprintf("%04d", c.Year)
	case c.Day == 0:
		return fmt.Sprintf("%04d-%02d", c.Year, c.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
	}
}

// Date is a parsed GEDCOM date value.
type Date struct {
	// Raw is the value as written in the file.
	Raw string `json:"raw"`

	// Qualifier is one of ABT, CAL, EST, BEF, AFT, BET, FROM, TO, INT or empty.
	Qualifier string `json:"qualifier,omitempty"`

	Start CalendarDate `json:"start"`

	// End is set for BET ... AND ... and FROM ... TO ... values.
	End *CalendarDate `json:"end,omitempty"`
}

// Year returns the year of the first date in the value.
func (d Date) Year() int {
	return d.Start.Year
}

// Approximate reports whether the value is not an exact date.
func (d Date) Approximate() bool {
	return d.Qualifier != "" || d.End != nil
}

// SortKey returns a string that orders dates chronologically by their start.
func (d Date) SortKey() string {
	return d.Start.String()
}

var monthNumbers = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// dateGrammar is the participle grammar for GEDCOM date values.
// Examples: "1900", "JAN 1900", "12 JAN 1900", "ABT 1850",
// "BET 1800 AND 1810", "FROM 3 MAR 1901 TO 1905"
//
//nolint:govet // participle grammar tags are not standard struct tags
type dateGrammar struct {
	Qualifier string   `@( "ABT" | "CAL" | "EST" | "BEF" | "AFT" | "BET" | "FROM" | "TO" | "INT" )?`
	Start     *calDate `@@`
	Joiner    string   `( @( "AND" | "TO" )`
	End       *calDate `  @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type calDate struct {
	Full      *dayMonthYear `  @@`
	MonthYear *monthYear    `| @@`
	Year      *int          `| @Int`
}

//nolint:govet // participle grammar tags are not standard struct tags
type dayMonthYear struct {
	Day   int    `@Int`
	Month string `@Month`
	Year  int    `@Int`
}

//nolint:govet // participle grammar tags are not standard struct tags
type monthYear struct {
	Month string `@Month`
	Year  int    `@Int`
}

// dateLexer defines the tokens of a GEDCOM date value. Input is upper-cased
// before lexing.
var dateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?:ABT|CAL|EST|BEF|AFT|BET|AND|FROM|TO|INT)\b`},
	{Name: "Month", Pattern: `(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\b`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var dateParser = participle.MustBuild[dateGrammar](
	participle.Lexer(dateLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseDate parses a GEDCOM date value. Date phrases, other calendars and
// dual years are not supported and return a *errors.ParseError; callers are
// expected to fall back to the raw text.
func ParseDate(s string) (*Date, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, gverrors.NewParse("GEDCOM date", "", "empty date")
	}

	parsed, err := dateParser.ParseString("", strings.ToUpper(raw))
	if err != nil {
		return nil, &gverrors.ParseError{Format: "GEDCOM date", Message: fmt.Sprintf("%q", raw), Err: err}
	}

	switch {
	case parsed.Joiner == "AND" && parsed.Qualifier != "BET",
		parsed.Joiner == "TO" && parsed.Qualifier != "FROM",
		parsed.Qualifier == "BET" && parsed.Joiner != "AND":
		return nil, gverrors.NewParse("GEDCOM date", "", fmt.Sprintf("%q: malformed range", raw))
	}

	d := &Date{
		Raw:       raw,
		Qualifier: parsed.Qualifier,
		Start:     parsed.Start.toCalendar(),
	}
	if parsed.End != nil {
		end := parsed.End.toCalendar()
		d.End = &end
	}
	return d, nil
}

func (c *calDate) toCalendar() CalendarDate {
	switch {
	case c.Full != nil:
		return CalendarDate{Day: c.Full.Day, Month: monthNumbers[c.Full.Month], Year: c.Full.Year}
	case c.MonthYear != nil:
		return CalendarDate{Month: monthNumbers[c.MonthYear.Month], Year: c.MonthYear.Year}
	case c.Year != nil:
		return CalendarDate{Year: *c.Year}
	}
	return CalendarDate{}
}
