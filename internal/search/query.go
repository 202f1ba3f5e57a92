package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/pmonetwork/pmo-network/internal/db"
)

// ParseQuery converts loosely typed query-string values into candidate filters and a page request.
// Malformed values are treated as absent; parsing never fails.
func ParseQuery(q url.Values) (db.CandidateFilters, PageRequest) {
	f := db.CandidateFilters{
		Keywords:       splitTerms(q.Get("keyword")),
		Location:       strings.TrimSpace(q.Get("location")),
		Skills:         splitList(q.Get("skills")),
		MinExp:         parseInt(q.Get("minExp")),
		MaxExp:         parseInt(q.Get("maxExp")),
		EmploymentType: strings.TrimSpace(q.Get("employmentType")),
		MinSalary:      parseFloat(q.Get("minSalary")),
		MaxSalary:      parseFloat(q.Get("maxSalary")),
		MinDayRate:     parseFloat(q.Get("minDayRate")),
		MaxDayRate:     parseFloat(q.Get("maxDayRate")),
		RightToWork:    splitList(q.Get("rightToWork")),
		RemoteOnly:     parseBool(q.Get("remoteOnly")),
	}

	if a := strings.ToLower(strings.TrimSpace(q.Get("availability"))); db.ValidAvailability(a) {
		f.Availability = a
	}

	return f, parsePage(q)
}

// ParseJobQuery converts query-string values into public job search filters and a page request.
func ParseJobQuery(q url.Values) (db.JobFilters, PageRequest) {
	f := db.JobFilters{
		Keywords:       splitTerms(q.Get("keyword")),
		Location:       strings.TrimSpace(q.Get("location")),
		EmploymentType: strings.TrimSpace(q.Get("employmentType")),
		RemoteOnly:     parseBool(q.Get("remoteOnly")),
	}
	return f, parsePage(q)
}

func parsePage(q url.Values) PageRequest {
	page, size := 1, DefaultPageSize
	if v := parseInt(q.Get("page")); v != nil {
		page = *v
	}
	if v := parseInt(q.Get("pageSize")); v != nil {
		size = *v
	}
	return NewPageRequest(page, size)
}

// splitTerms splits free text on whitespace.
func splitTerms(s string) []string {
	terms := strings.Fields(s)
	if len(terms) == 0 {
		return nil
	}
	return terms
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}
