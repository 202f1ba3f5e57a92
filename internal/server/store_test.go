package server

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/search/searchtest"
)

// fakeStore is an in-memory Store. Candidate search and bookmarks come from
// searchtest.MemoryStore; the rest is kept in maps.
type fakeStore struct {
	*searchtest.MemoryStore

	mu       sync.Mutex
	pingErr  error
	seq      int
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*db.CandidateProfile // by user ID
	jobs     map[uuid.UUID]*db.Job
	apps     []db.Application
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		MemoryStore: searchtest.NewMemoryStore(),
		users:       make(map[uuid.UUID]*db.User),
		profiles:    make(map[uuid.UUID]*db.CandidateProfile),
		jobs:        make(map[uuid.UUID]*db.Job),
	}
}

// tick returns a strictly increasing timestamp so "newest first" is deterministic.
func (f *fakeStore) tick() time.Time {
	f.seq++
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
}

func (f *fakeStore) addUser(u db.User) *db.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = f.tick()
	f.users[u.ID] = &u
	return &u
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeStore) GetUser(ctx context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return &ErrUserNotFound{UserID: userID}
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*db.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) UpsertProfile(ctx context.Context, userID uuid.UUID, in *db.ProfileInput) (*db.CandidateProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		p = &db.CandidateProfile{ID: uuid.New(), UserID: userID, CreatedAt: f.tick()}
		f.profiles[userID] = p
	}
	p.FullName = in.FullName
	p.JobTitle = in.JobTitle
	p.Summary = in.Summary
	p.Sector = in.Sector
	p.Location = in.Location
	p.YearsExperience = in.YearsExperience
	p.RemotePreference = in.RemotePreference
	p.Availability = in.Availability
	p.EmploymentType = in.EmploymentType
	p.SalaryExpectation = in.SalaryExpectation
	p.DayRate = in.DayRate
	p.RightToWork = in.RightToWork
	p.ProfilePhotoURL = in.ProfilePhotoURL
	p.IsPublic = in.IsPublic
	p.IsAnonymous = in.IsAnonymous
	p.UpdatedAt = f.tick()

	p.Skills = make([]db.Skill, len(in.Skills))
	for i, s := range in.Skills {
		p.Skills[i] = db.Skill{ID: uuid.New(), CandidateID: p.ID, Name: s.Name, Level: s.Level, Category: s.Category, Position: i}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateJob(ctx context.Context, in *db.JobInput) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	j := &db.Job{
		ID:               uuid.New(),
		EmployerID:       in.EmployerID,
		Title:            in.Title,
		Description:      in.Description,
		Location:         in.Location,
		EmploymentType:   in.EmploymentType,
		RemotePreference: in.RemotePreference,
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		Status:           db.JobStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	f.jobs[j.ID] = j
	cp := *j
	return &cp, nil
}

func (f *fakeStore) GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

// sortedJobs returns copies of the jobs accepted by keep, newest first.
func (f *fakeStore) sortedJobs(keep func(*db.Job) bool) []db.Job {
	out := []db.Job{}
	for _, j := range f.jobs {
		if keep(j) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (f *fakeStore) ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedJobs(func(j *db.Job) bool { return j.EmployerID == employerID }), nil
}

func (f *fakeStore) UpdateJobStatus(ctx context.Context, employerID, jobID uuid.UUID, status string) (*db.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[jobID]
	if !ok || j.EmployerID != employerID {
		return nil, nil
	}
	j.Status = status
	j.UpdatedAt = f.tick()
	cp := *j
	return &cp, nil
}

func (f *fakeStore) DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[jobID]
	if !ok || j.EmployerID != employerID {
		return false, nil
	}
	delete(f.jobs, jobID)
	return true, nil
}

func (f *fakeStore) SearchJobs(ctx context.Context, filters db.JobFilters, limit, offset int) ([]db.Job, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	contains := func(s, sub string) bool { return strings.Contains(strings.ToLower(s), strings.ToLower(sub)) }
	matched := f.sortedJobs(func(j *db.Job) bool {
		if j.Status != db.JobStatusActive {
			return false
		}
		if len(filters.Keywords) > 0 {
			hit := false
			for _, k := range filters.Keywords {
				hit = hit || contains(j.Title, k) || contains(j.Description, k)
			}
			if !hit {
				return false
			}
		}
		if filters.Location != "" && !contains(j.Location, filters.Location) {
			return false
		}
		if filters.EmploymentType != "" && !contains(j.EmploymentType, filters.EmploymentType) {
			return false
		}
		if filters.RemoteOnly && j.RemotePreference != db.RemotePreferenceRemote && j.RemotePreference != db.RemotePreferenceHybrid {
			return false
		}
		return true
	})

	total := len(matched)
	if offset >= total {
		return []db.Job{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (f *fakeStore) CreateApplication(ctx context.Context, jobID, candidateUserID uuid.UUID, coverLetter string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.JobID == jobID && a.CandidateUserID == candidateUserID {
			return uuid.Nil, db.ErrDuplicate
		}
	}

	a := db.Application{
		ID:              uuid.New(),
		JobID:           jobID,
		CandidateUserID: candidateUserID,
		CoverLetter:     coverLetter,
		Status:          db.ApplicationStatusSubmitted,
		CreatedAt:       f.tick(),
	}
	if j, ok := f.jobs[jobID]; ok {
		a.JobTitle = j.Title
	}
	if p, ok := f.profiles[candidateUserID]; ok {
		a.CandidateName = p.FullName
	} else if u, ok := f.users[candidateUserID]; ok {
		a.CandidateName = u.Name
	}
	f.apps = append(f.apps, a)
	return a.ID, nil
}

func (f *fakeStore) listApplications(keep func(db.Application) bool) []db.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.Application{}
	for i := len(f.apps) - 1; i >= 0; i-- {
		if keep(f.apps[i]) {
			out = append(out, f.apps[i])
		}
	}
	return out
}

func (f *fakeStore) ListApplicationsByCandidate(ctx context.Context, candidateUserID uuid.UUID) ([]db.Application, error) {
	return f.listApplications(func(a db.Application) bool { return a.CandidateUserID == candidateUserID }), nil
}

func (f *fakeStore) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]db.Application, error) {
	return f.listApplications(func(a db.Application) bool { return a.JobID == jobID }), nil
}
