package rag

import (
	"strings"
	"testing"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.CalendarYear = "2025"
	opts.OfficeLocation = "Bangalore"
	return opts
}

func TestExpandQueryProbationTrigger(t *testing.T) {
	exp := expandQuery("I joined in November and want to resign this month", testOptions())

	if !strings.HasSuffix(exp.Query, " probation period duration") {
		t.Fatalf("expected probation expansion, got %q", exp.Query)
	}
	if exp.DocListing {
		t.Fatal("probation question should not be a doc-listing query")
	}
}

func TestExpandQueryProbationAlreadyMentioned(t *testing.T) {
	question := "I joined recently, does probation affect my resignation notice?"
	exp := expandQuery(question, testOptions())

	if exp.Query != question {
		t.Fatalf("expected no expansion when probation is already mentioned, got %q", exp.Query)
	}
}

func TestExpandQueryHolidayTrigger(t *testing.T) {
	exp := expandQuery("What is the next holiday?", testOptions())

	if !strings.Contains(exp.Query, "Holiday Calendar 2025 Bangalore mandatory optional") {
		t.Fatalf("expected holiday calendar expansion, got %q", exp.Query)
	}
}

func TestExpandQueryHolidaySkippedWhenCalendarMentioned(t *testing.T) {
	question := "What is the next holiday in the calendar?"
	exp := expandQuery(question, testOptions())

	if exp.Query != question {
		t.Fatalf("expected no expansion when calendar is already mentioned, got %q", exp.Query)
	}
}

func TestExpandQueryDocListing(t *testing.T) {
	exp := expandQuery("Which documents do you have access to?", testOptions())

	if !exp.DocListing {
		t.Fatal("expected doc-listing flag to be set")
	}
	if !strings.HasSuffix(exp.Query, docListingExpansion) {
		t.Fatalf("expected document name expansion, got %q", exp.Query)
	}
}

func TestExpandQueryAccumulatesTriggers(t *testing.T) {
	// A question tripping multiple detectors keeps every expansion: each
	// suffix is appended to the already-expanded query, not to the original.
	question := "I joined last month and plan to quit, what is the upcoming holiday and which docs do you have?"
	exp := expandQuery(question, testOptions())

	if !strings.Contains(exp.Query, "probation period duration") {
		t.Fatalf("probation expansion lost: %q", exp.Query)
	}
	if !strings.Contains(exp.Query, "Holiday Calendar 2025") {
		t.Fatalf("holiday expansion lost: %q", exp.Query)
	}
	if !strings.Contains(exp.Query, "Hybrid Work Policy") {
		t.Fatalf("doc-listing expansion lost: %q", exp.Query)
	}
	probationIdx := strings.Index(exp.Query, "probation period duration")
	holidayIdx := strings.Index(exp.Query, "Holiday Calendar 2025")
	if probationIdx > holidayIdx {
		t.Fatal("expansions should be appended in fixed priority order")
	}
}

func TestExpandQueryNoTriggers(t *testing.T) {
	question := "How many office days does the hybrid policy require?"
	exp := expandQuery(question, testOptions())

	if exp.Query != question {
		t.Fatalf("expected unmodified query, got %q", exp.Query)
	}
	if exp.DocListing {
		t.Fatal("unexpected doc-listing flag")
	}
}
