// Package format holds the display and validation helpers shared by every
// command: dates, money, rental durations, and the email/phone shape checks
// used by the registration form.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// InvalidDate is what FormatDate renders for input it cannot parse.
const InvalidDate = "Invalid Date"

const longDateLayout = "January 2, 2006"

// Layouts the backend is known to emit for date fields.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

// whitespace is the full set browsers match with \s: ASCII space and
// controls plus every Unicode space separator and the BOM.
const whitespace = `\s\v\p{Z}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	phonePattern = regexp.MustCompile(`^[\d` + whitespace + `\-+()]+$`)
)

// ParseDate parses a date value in any of the layouts the backend uses.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// FormatDate renders a date as "January 5, 2025".
func FormatDate(value string) string {
	t, err := ParseDate(value)
	if err != nil {
		return InvalidDate
	}
	return t.Format(longDateLayout)
}

// FormatCurrency renders an amount as US dollars, e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	// round half away from zero to cents before formatting
	amount = math.Round(amount*100) / 100
	return sign + "$" + humanize.FormatFloat("#,###.##", amount)
}

// DaysBetween returns the number of whole days between two instants, taking
// the absolute difference and counting any partial day as a full one.
func DaysBetween(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// CalculateDays is DaysBetween for date strings.
func CalculateDays(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return DaysBetween(s, e), nil
}

// ValidateEmail reports whether value looks like local@domain.tld.
func ValidateEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidatePhone reports whether value contains only digits, whitespace and + - ( ).
func ValidatePhone(value string) bool {
	return phonePattern.MatchString(value)
}
