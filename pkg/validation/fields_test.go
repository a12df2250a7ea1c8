package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDebtID(t *testing.T) {
	cases := []struct {
		raw  string
		want Verdict
	}{
		{"", Verdict{}},
		{"123", Verdict{Value: "123"}},
		{" 42 ", Verdict{Value: "42"}},
		{"12a3", Verdict{Value: "123", Reason: MsgDebtIDNumber}},
		{"-5", Verdict{Value: "5", Reason: MsgDebtIDNumber}},
		{"1234567890", Verdict{Value: "1234567890"}},
		{"12345678901", Verdict{Value: "12345678901", Reason: MsgDebtIDLength}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, DebtID(tc.raw)); diff != "" {
			t.Fatalf("DebtID(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestDigitFilterKeepsOnlyDigits(t *testing.T) {
	inputs := []string{"a1b2c3", "12-34", " 9 9 ", "x", "٣4", "1.5e3", "$100,000"}
	for _, raw := range inputs {
		for _, verdict := range []Verdict{DebtID(raw), LookupID(raw)} {
			for _, r := range verdict.Value {
				if r < '0' || r > '9' {
					t.Fatalf("normalized value %q for %q contains non-digit %q", verdict.Value, raw, r)
				}
			}
		}
		if got := DigitsOnly(raw); strings.Trim(got, "0123456789") != "" {
			t.Fatalf("DigitsOnly(%q) = %q", raw, got)
		}
	}
}

func TestLookupIDRequiresDigits(t *testing.T) {
	if v := LookupID("abc"); v.Valid() || v.Reason != MsgLookupRequired {
		t.Fatalf("expected required reason, got %+v", v)
	}
	if v := LookupID("id-42"); !v.Valid() || v.Value != "42" {
		t.Fatalf("expected 42, got %+v", v)
	}
}

func TestNameRejectsCharactersOutsideLettersAndSpaces(t *testing.T) {
	for _, raw := range []string{"Jane1", "O'Brien", "Jane-Doe", "Zoë", "a_b", "Dr."} {
		if v := Name(raw); v.Valid() {
			t.Fatalf("expected %q to be invalid", raw)
		}
	}
	for _, raw := range []string{"", "Jane Doe", "  Jane\tDoe "} {
		if v := Name(raw); !v.Valid() {
			t.Fatalf("expected %q to be valid, got %q", raw, v.Reason)
		}
	}
	if got := Name(" Jane Doe ").Value; got != "Jane Doe" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestDateOfBirthYearCutoff(t *testing.T) {
	for year := 1900; year <= 2100; year += 5 {
		raw := fmt.Sprintf("%04d-06-15", year)
		v := DateOfBirth(raw)
		if year > CutoffYear && v.Valid() {
			t.Fatalf("expected %s to be invalid", raw)
		}
		if year <= CutoffYear && !v.Valid() {
			t.Fatalf("expected %s to be valid, got %q", raw, v.Reason)
		}
	}
	if v := DateOfBirth("2025-12-31"); !v.Valid() {
		t.Fatalf("boundary year should be valid: %q", v.Reason)
	}
	if v := DateOfBirth("2026-01-01"); v.Reason != "Year cannot exceed 2025." {
		t.Fatalf("unexpected reason: %q", v.Reason)
	}
}

func TestDateOfBirthFormats(t *testing.T) {
	cases := map[string]Verdict{
		"2000-01-01":          {Value: "2000-01-01"},
		"15/06/1990":          {Value: "1990-06-15"},
		"1985-03-04T00:00:00": {Value: "1985-03-04"},
		"":                    {Reason: MsgDate},
		"2000-13-01":          {Value: "2000-13-01", Reason: MsgDate},
		"yesterday":           {Value: "yesterday", Reason: MsgDate},
	}
	for raw, want := range cases {
		if diff := cmp.Diff(want, DateOfBirth(raw)); diff != "" {
			t.Fatalf("DateOfBirth(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestAmounts(t *testing.T) {
	cases := []struct {
		raw  string
		want Verdict
	}{
		{"", Verdict{}},
		{"50000", Verdict{Value: "50000"}},
		{"1500.50", Verdict{Value: "1500.5"}},
		{"-1", Verdict{Value: "-1", Reason: "Income must be a valid number."}},
		{"12abc", Verdict{Value: "12abc", Reason: "Income must be a valid number."}},
		{"NaN", Verdict{Value: "NaN", Reason: "Income must be a valid number."}},
		{"12345678", Verdict{Value: "12345678"}},
		{"123456789", Verdict{Value: "123456789", Reason: "Maximum digits for income is 8"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Income(tc.raw)); diff != "" {
			t.Fatalf("Income(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
	if v := Expenses("x"); v.Reason != "Expenses must be a valid number." {
		t.Fatalf("unexpected expenses reason: %q", v.Reason)
	}
	if v := Expenses("999999999"); v.Reason != "Maximum digits for expenses is 8" {
		t.Fatalf("unexpected expenses reason: %q", v.Reason)
	}
}

func TestCommentsWordLimit(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	if v := Comments(words(100)); !v.Valid() {
		t.Fatalf("exactly 100 words should be valid")
	}
	if v := Comments(words(101)); v.Reason != MsgComments {
		t.Fatalf("101 words should be invalid, got %+v", v)
	}
	if v := Comments("  spaced   \n\n out \t words  "); !v.Valid() || WordCount("  spaced   \n\n out \t words  ") != 3 {
		t.Fatalf("empty tokens must not count")
	}
	if WordCount("") != 0 || WordCount("   ") != 0 {
		t.Fatalf("blank comments have zero words")
	}
}

func TestCategory(t *testing.T) {
	if v := Category("1"); !v.Valid() || v.Value != "1" {
		t.Fatalf("unexpected verdict: %+v", v)
	}
	if v := Category("Medical"); v.Value != "2" {
		t.Fatalf("labels normalize to ids, got %+v", v)
	}
	if v := Category("9"); v.Reason != MsgCategory {
		t.Fatalf("unknown ids are invalid, got %+v", v)
	}
	if v := Category(""); !v.Valid() {
		t.Fatalf("empty category is only required at submit")
	}
}
