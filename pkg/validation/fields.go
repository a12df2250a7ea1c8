package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-hardship/pkg/model"
)

const (
	// MaxDebtIDDigits bounds the identifier length.
	MaxDebtIDDigits = 10
	// MaxAmountDigits bounds income and expenses.
	MaxAmountDigits = 8
	// MaxCommentWords bounds the free-text comment.
	MaxCommentWords = 100
	// CutoffYear is the latest accepted year of birth.
	CutoffYear = 2025

	// DateLayout is the normalized date format sent to the record service.
	DateLayout = "2006-01-02"
)

const (
	MsgDebtIDNumber   = "Debt ID must be a valid number"
	MsgDebtIDLength   = "Maximum digits for debt ID is 10"
	MsgLookupRequired = "Please enter a valid DebtID."
	MsgName           = "No special characters allowed."
	MsgDate           = "Please select a valid date"
	MsgComments       = "Maximum 100 words allowed."
	MsgCategory       = "Unknown hardship type"
)

// Verdict is the outcome of a single validation. A zero Reason means valid.
type Verdict struct {
	Value  string
	Reason string
}

// Valid reports whether the verdict carries no reason.
func (v Verdict) Valid() bool {
	return v.Reason == ""
}

// Validator maps a raw input value to a verdict.
type Validator func(raw string) Verdict

var namePattern = regexp.MustCompile(`^[A-Za-z\s]*$`)

var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// DebtID accepts a non-negative integer of at most MaxDebtIDDigits digits.
// The normalized value keeps digit characters only.
func DebtID(raw string) Verdict {
	value := strings.TrimSpace(raw)
	digits := DigitsOnly(value)
	if value == "" {
		return Verdict{}
	}
	if digits != value {
		return Verdict{Value: digits, Reason: MsgDebtIDNumber}
	}
	if len(digits) > MaxDebtIDDigits {
		return Verdict{Value: digits, Reason: MsgDebtIDLength}
	}
	return Verdict{Value: digits}
}

// LookupID filters raw input down to digits, as the edit-lookup screen does
// on every keystroke, and requires something to remain.
func LookupID(raw string) Verdict {
	digits := DigitsOnly(raw)
	if digits == "" {
		return Verdict{Reason: MsgLookupRequired}
	}
	if len(digits) > MaxDebtIDDigits {
		return Verdict{Value: digits, Reason: MsgDebtIDLength}
	}
	return Verdict{Value: digits}
}

// DigitsOnly drops every non-digit character.
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Name accepts ASCII letters and whitespace.
func Name(raw string) Verdict {
	if !namePattern.MatchString(raw) {
		return Verdict{Value: raw, Reason: MsgName}
	}
	return Verdict{Value: strings.TrimSpace(raw)}
}

// DateOfBirth accepts a calendar date whose year does not exceed CutoffYear.
// The normalized value uses DateLayout.
func DateOfBirth(raw string) Verdict {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Verdict{Reason: MsgDate}
	}
	parsed, ok := parseDate(value)
	if !ok {
		return Verdict{Value: value, Reason: MsgDate}
	}
	normalized := parsed.Format(DateLayout)
	if parsed.Year() > CutoffYear {
		return Verdict{Value: normalized, Reason: fmt.Sprintf("Year cannot exceed %d.", CutoffYear)}
	}
	return Verdict{Value: normalized}
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Amount builds a validator for a non-negative number bounded to
// MaxAmountDigits digits. label names the field in messages ("Income").
func Amount(label string) Validator {
	invalid := label + " must be a valid number."
	tooLong := fmt.Sprintf("Maximum digits for %s is %d", strings.ToLower(label), MaxAmountDigits)
	return func(raw string) Verdict {
		value := strings.TrimSpace(raw)
		if value == "" {
			return Verdict{}
		}
		number, ok := parseAmount(value)
		if !ok {
			return Verdict{Value: value, Reason: invalid}
		}
		normalized := strconv.FormatFloat(number, 'f', -1, 64)
		if countDigits(value) > MaxAmountDigits {
			return Verdict{Value: normalized, Reason: tooLong}
		}
		return Verdict{Value: normalized}
	}
}

var (
	// Income validates the income field.
	Income = Amount("Income")
	// Expenses validates the expenses field.
	Expenses = Amount("Expenses")
)

func parseAmount(value string) (float64, bool) {
	for _, r := range value {
		if (r < '0' || r > '9') && r != '.' {
			return 0, false
		}
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) || number < 0 {
		return 0, false
	}
	return number, true
}

func countDigits(value string) int {
	n := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Comments bounds the free-text comment to MaxCommentWords words.
func Comments(raw string) Verdict {
	if WordCount(raw) > MaxCommentWords {
		return Verdict{Value: raw, Reason: MsgComments}
	}
	return Verdict{Value: strings.TrimSpace(raw)}
}

// WordCount counts whitespace-delimited, non-empty tokens.
func WordCount(raw string) int {
	return len(strings.Fields(raw))
}

// Category accepts one of the enumerated hardship types by id or label.
func Category(raw string) Verdict {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Verdict{}
	}
	c, ok := model.ParseCategory(value)
	if !ok {
		return Verdict{Value: value, Reason: MsgCategory}
	}
	return Verdict{Value: c.String()}
}
