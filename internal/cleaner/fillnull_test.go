package cleaner

import (
	"testing"

	"listwash/internal/table"
)

/*
TestFillNullBlanksNilCells verifies the first pass turns every nil cell in
every column into "".
*/
func TestFillNullBlanksNilCells(t *testing.T) {
	tb := table.New("a", "b")
	tb.Append(table.Row{"a": nil, "b": "x"})
	tb.Append(table.Row{"a": "y", "b": nil})
	out, err := FillNull{}.Apply(tb)
	if err != nil {
		t.Fatalf("fill_null: %v", err)
	}
	if got := out.Cell(0, "a"); got != "" {
		t.Fatalf("nil cell = %#v; want \"\"", got)
	}
	if got := out.Cell(1, "b"); got != "" {
		t.Fatalf("nil cell = %#v; want \"\"", got)
	}
	if got := out.Cell(0, "b"); got != "x" {
		t.Fatalf("real value changed: %#v", got)
	}
}

/*
TestFillNullScrubsPlaceholders verifies the second pass blanks the default
placeholder tokens table-wide, case-sensitively: "N/a" and "NaN" go, "n/a"
stays.
*/
func TestFillNullScrubsPlaceholders(t *testing.T) {
	tb := table.New("do_not_contact", "phone_number", "note")
	tb.Append(table.Row{"do_not_contact": "N/a", "phone_number": "NaN", "note": "n/a"})
	out, err := FillNull{}.Apply(tb)
	if err != nil {
		t.Fatalf("fill_null: %v", err)
	}
	if got := out.Cell(0, "do_not_contact"); got != "" {
		t.Fatalf("N/a = %#v; want \"\"", got)
	}
	if got := out.Cell(0, "phone_number"); got != "" {
		t.Fatalf("NaN = %#v; want \"\"", got)
	}
	if got := out.Cell(0, "note"); got != "n/a" {
		t.Fatalf("case-sensitive token scrubbed lowercase: %#v", got)
	}
}

func TestFillNullCustomTokens(t *testing.T) {
	tb := table.New("a")
	tb.Append(table.Row{"a": "MISSING"})
	tb.Append(table.Row{"a": "N/a"})
	out, err := FillNull{Tokens: []string{"MISSING"}}.Apply(tb)
	if err != nil {
		t.Fatalf("fill_null: %v", err)
	}
	if got := out.Cell(0, "a"); got != "" {
		t.Fatalf("custom token = %#v; want \"\"", got)
	}
	// Supplying Tokens replaces the default set outright.
	if got := out.Cell(1, "a"); got != "N/a" {
		t.Fatalf("default token scrubbed despite override: %#v", got)
	}
}
