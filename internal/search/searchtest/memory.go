// Package searchtest provides in-memory fakes for exercising the search service and its handlers.
package searchtest

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/pmonetwork/pmo-network/internal/db"
)

type savedKey struct {
	employerID  uuid.UUID
	candidateID uuid.UUID
}

// MemoryStore is an in-memory search.Store with the same filtering and ordering
// rules as the PostgreSQL implementation.
type MemoryStore struct {
	mu          sync.Mutex
	profiles    []db.CandidateProfile
	skills      map[uuid.UUID][]db.Skill
	experiences map[uuid.UUID][]db.Experience
	saved       map[savedKey]int
	seq         int
	err         error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		skills:      make(map[uuid.UUID][]db.Skill),
		experiences: make(map[uuid.UUID][]db.Experience),
		saved:       make(map[savedKey]int),
	}
}

// FailWith makes every subsequent call return err. Pass nil to clear.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// AddProfile stores p with the given skill names in display order and returns the stored copy.
// A nil ID and zero CreatedAt are filled in.
func (m *MemoryStore) AddProfile(p db.CandidateProfile, skills ...string) db.CandidateProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UserID == uuid.Nil {
		p.UserID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		m.seq++
		p.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	}
	m.profiles = append(m.profiles, p)

	list := make([]db.Skill, len(skills))
	for i, name := range skills {
		list[i] = db.Skill{ID: uuid.New(), CandidateID: p.ID, Name: name, Position: i}
	}
	m.skills[p.ID] = list
	return p
}

// AddExperience attaches a role to a stored profile.
func (m *MemoryStore) AddExperience(candidateID uuid.UUID, e db.Experience) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CandidateID = candidateID
	m.experiences[candidateID] = append(m.experiences[candidateID], e)
}

// SetVisibility changes the visibility flags of a stored profile.
func (m *MemoryStore) SetVisibility(candidateID uuid.UUID, public, anonymous bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.profiles {
		if m.profiles[i].ID == candidateID {
			m.profiles[i].IsPublic = public
			m.profiles[i].IsAnonymous = anonymous
		}
	}
}

// SavedCount returns how many bookmarks the employer has, including hidden profiles.
func (m *MemoryStore) SavedCount(employerID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k := range m.saved {
		if k.employerID == employerID {
			n++
		}
	}
	return n
}

// SearchCandidates implements search.Store.
func (m *MemoryStore) SearchCandidates(ctx context.Context, f db.CandidateFilters, limit, offset int) ([]db.CandidateProfile, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}

	fold := cases.Fold()
	contains := func(s, sub string) bool {
		return strings.Contains(fold.String(s), fold.String(sub))
	}

	var matched []db.CandidateProfile
	for _, p := range m.profiles {
		if m.matches(p, f, contains) {
			matched = append(matched, p)
		}
	}
	sortProfiles(matched)

	total := len(matched)
	page := []db.CandidateProfile{}
	for i := offset; i < total && i < offset+limit; i++ {
		page = append(page, matched[i])
	}
	return page, total, nil
}

func (m *MemoryStore) matches(p db.CandidateProfile, f db.CandidateFilters, contains func(s, sub string) bool) bool {
	if !p.Searchable() {
		return false
	}

	if len(f.Keywords) > 0 {
		hit := false
		for _, k := range f.Keywords {
			if contains(p.FullName, k) || contains(p.JobTitle, k) || contains(p.Summary, k) || contains(p.Sector, k) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if f.Location != "" && !contains(p.Location, f.Location) {
		return false
	}

	if len(f.Skills) > 0 {
		hit := false
		for _, s := range m.skills[p.ID] {
			for _, target := range f.Skills {
				if contains(s.Name, target) {
					hit = true
				}
			}
		}
		if !hit {
			return false
		}
	}

	if !intInRange(p.YearsExperience, f.MinExp, f.MaxExp) {
		return false
	}
	if f.Availability != "" && p.Availability != f.Availability {
		return false
	}
	if f.EmploymentType != "" && !contains(p.EmploymentType, f.EmploymentType) {
		return false
	}
	if !floatInRange(p.SalaryExpectation, f.MinSalary, f.MaxSalary) {
		return false
	}
	if !floatInRange(p.DayRate, f.MinDayRate, f.MaxDayRate) {
		return false
	}

	if len(f.RightToWork) > 0 {
		hit := false
		for _, v := range f.RightToWork {
			if p.RightToWork == v {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}

	if f.RemoteOnly {
		pref := strings.ToLower(p.RemotePreference)
		if pref != db.RemotePreferenceRemote && pref != db.RemotePreferenceHybrid {
			return false
		}
	}
	return true
}

// A NULL value never satisfies a bound.
func intInRange(v, lo, hi *int) bool {
	if lo == nil && hi == nil {
		return true
	}
	if v == nil {
		return false
	}
	return (lo == nil || *v >= *lo) && (hi == nil || *v <= *hi)
}

func floatInRange(v, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	if v == nil {
		return false
	}
	return (lo == nil || *v >= *lo) && (hi == nil || *v <= *hi)
}

// sortProfiles orders by years of experience (nulls last), then newest, then id, all descending.
func sortProfiles(ps []db.CandidateProfile) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		switch {
		case a.YearsExperience == nil && b.YearsExperience != nil:
			return false
		case a.YearsExperience != nil && b.YearsExperience == nil:
			return true
		case a.YearsExperience != nil && *a.YearsExperience != *b.YearsExperience:
			return *a.YearsExperience > *b.YearsExperience
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
}

// ListSkillsForCandidates implements search.Store.
func (m *MemoryStore) ListSkillsForCandidates(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID][]db.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make(map[uuid.UUID][]db.Skill, len(candidateIDs))
	for _, id := range candidateIDs {
		if s, ok := m.skills[id]; ok && len(s) > 0 {
			out[id] = append([]db.Skill(nil), s...)
		}
	}
	return out, nil
}

// RecentExperiences implements search.Store.
func (m *MemoryStore) RecentExperiences(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID]db.Experience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make(map[uuid.UUID]db.Experience)
	for _, id := range candidateIDs {
		for _, e := range m.experiences[id] {
			cur, ok := out[id]
			if !ok || e.StartDate.After(cur.StartDate) {
				out[id] = e
			}
		}
	}
	return out, nil
}

// SavedCandidateIDs implements search.Store.
func (m *MemoryStore) SavedCandidateIDs(ctx context.Context, employerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	out := make(map[uuid.UUID]bool)
	for _, id := range candidateIDs {
		if _, ok := m.saved[savedKey{employerID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// GetSearchableCandidate implements search.Store.
func (m *MemoryStore) GetSearchableCandidate(ctx context.Context, id uuid.UUID) (*db.CandidateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	for _, p := range m.profiles {
		if p.ID == id && p.Searchable() {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// SaveCandidate implements search.Store.
func (m *MemoryStore) SaveCandidate(ctx context.Context, employerID, candidateID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}

	eligible := false
	for _, p := range m.profiles {
		if p.ID == candidateID && p.Searchable() {
			eligible = true
			break
		}
	}
	key := savedKey{employerID, candidateID}
	if _, ok := m.saved[key]; ok || !eligible {
		return false, nil
	}
	m.seq++
	m.saved[key] = m.seq
	return true, nil
}

// UnsaveCandidate implements search.Store.
func (m *MemoryStore) UnsaveCandidate(ctx context.Context, employerID, candidateID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	delete(m.saved, savedKey{employerID, candidateID})
	return nil
}

// ListSavedCandidates implements search.Store.
func (m *MemoryStore) ListSavedCandidates(ctx context.Context, employerID uuid.UUID) ([]db.CandidateProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	type entry struct {
		p   db.CandidateProfile
		seq int
	}
	var entries []entry
	for _, p := range m.profiles {
		if seq, ok := m.saved[savedKey{employerID, p.ID}]; ok && p.Searchable() {
			entries = append(entries, entry{p, seq})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	out := []db.CandidateProfile{}
	for _, e := range entries {
		out = append(out, e.p)
	}
	return out, nil
}
