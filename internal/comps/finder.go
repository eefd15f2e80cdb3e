package comps

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"bidhouse-backend/internal/models"
)

// sourceNone is the agent's placeholder for a slot it could not fill.
const sourceNone = "none"

var (
	fullDateRE  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearMonthRE = regexp.MustCompile(`^\d{4}-\d{2}`)
)

// Finder runs the search agent until one attempt yields three valid
// candidates, falling back to the last attempt's output when none does.
type Finder struct {
	searcher    Searcher
	maxAttempts int
	minSaleDate time.Time
}

func NewFinder(searcher Searcher, maxAttempts int, minSaleDate time.Time) *Finder {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Finder{searcher: searcher, maxAttempts: maxAttempts, minSaleDate: minSaleDate}
}

// Result is the outcome of a discovery run. Candidates always holds the
// final attempt's output, usable or not; Valid reports whether all three
// candidates passed validation.
type Result struct {
	Candidates []models.CompCandidate
	Valid      bool
	Attempts   int
}

// Find retries the agent on invalid output only. An agent error aborts the
// run; invalid candidates are worth another attempt, a dead agent is not.
func (f *Finder) Find(q Query) (Result, error) {
	var last []models.CompCandidate
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		candidates, err := f.searcher.FindComparables(q)
		if err != nil {
			return Result{}, err
		}
		last = candidates
		if f.allValid(candidates) {
			return Result{Candidates: candidates, Valid: true, Attempts: attempt}, nil
		}
	}
	return Result{Candidates: last, Valid: false, Attempts: f.maxAttempts}, nil
}

func (f *Finder) allValid(candidates []models.CompCandidate) bool {
	if len(candidates) != 3 {
		return false
	}
	for _, c := range candidates {
		if !ValidCandidate(c, f.minSaleDate) {
			return false
		}
	}
	return true
}

// ValidCandidate requires a real source and a parseable sale date on or
// after minSaleDate.
func ValidCandidate(c models.CompCandidate, minSaleDate time.Time) bool {
	source := strings.TrimSpace(c.Source)
	if source == "" || strings.EqualFold(source, sourceNone) {
		return false
	}
	soldAt, ok := ParseSaleDate(c.SaleDate)
	if !ok {
		return false
	}
	return !soldAt.Before(minSaleDate)
}

// ParseSaleDate accepts YYYY-MM-DD dates, normalizing a bare YYYY-MM to the
// first of that month. Anything else, including the agent's "unknown"
// placeholders, fails.
func ParseSaleDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "null", "none", "unknown":
		return time.Time{}, false
	}

	if fullDateRE.MatchString(raw) {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if yearMonthRE.MatchString(raw) {
		t, err := time.Parse("2006-01-02", raw[:7]+"-01")
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// ParsePrice strips currency symbols and thousands separators, so
// "$1,234.56" parses to 1234.56. Unparseable prices collapse to 0.
func ParsePrice(raw string) float64 {
	s := strings.ReplaceAll(raw, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Usable reports whether a candidate is worth persisting: anything with a
// real source, even when it failed date validation.
func Usable(c models.CompCandidate) bool {
	source := strings.TrimSpace(c.Source)
	return source != "" && !strings.EqualFold(source, sourceNone)
}
