// Package search implements the employer candidate search and bookmark operations.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/events"
)

// ErrCandidateNotFound is returned when a bookmark targets a profile that does not exist
// or is not visible to employers.
var ErrCandidateNotFound = errors.New("candidate not found")

// Store is the persistence the search service needs. *db.DB satisfies it.
type Store interface {
	SearchCandidates(ctx context.Context, f db.CandidateFilters, limit, offset int) ([]db.CandidateProfile, int, error)
	ListSkillsForCandidates(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID][]db.Skill, error)
	RecentExperiences(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID]db.Experience, error)
	SavedCandidateIDs(ctx context.Context, employerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	GetSearchableCandidate(ctx context.Context, id uuid.UUID) (*db.CandidateProfile, error)
	SaveCandidate(ctx context.Context, employerID, candidateID uuid.UUID) (bool, error)
	UnsaveCandidate(ctx context.Context, employerID, candidateID uuid.UUID) error
	ListSavedCandidates(ctx context.Context, employerID uuid.UUID) ([]db.CandidateProfile, error)
}

// Result is one page of shaped candidates.
type Result struct {
	Candidates []Summary  `json:"candidates"`
	Pagination Pagination `json:"pagination"`
}

// Service runs candidate searches and manages employer bookmarks.
type Service struct {
	store     Store
	publisher events.Publisher
	now       func() time.Time
}

// NewService creates a search service. A nil publisher disables events.
func NewService(store Store, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{store: store, publisher: publisher, now: time.Now}
}

// Search returns one page of candidates matching f, shaped for the requesting employer.
// Any store failure fails the whole request; there are no partial pages.
func (s *Service) Search(ctx context.Context, employerID uuid.UUID, f db.CandidateFilters, page PageRequest) (*Result, error) {
	profiles, total, err := s.store.SearchCandidates(ctx, f, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	summaries, err := s.enrich(ctx, employerID, profiles, nil)
	if err != nil {
		return nil, err
	}

	return &Result{
		Candidates: summaries,
		Pagination: NewPagination(page, total),
	}, nil
}

// enrich loads skills, recent experience and bookmark state for profiles concurrently
// and shapes them in order. When saved is non-nil it is used instead of a lookup.
func (s *Service) enrich(ctx context.Context, employerID uuid.UUID, profiles []db.CandidateProfile, saved map[uuid.UUID]bool) ([]Summary, error) {
	summaries := make([]Summary, 0, len(profiles))
	if len(profiles) == 0 {
		return summaries, nil
	}

	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}

	var (
		skills map[uuid.UUID][]db.Skill
		recent map[uuid.UUID]db.Experience
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skills, err = s.store.ListSkillsForCandidates(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.store.RecentExperiences(gctx, ids)
		return err
	})
	if saved == nil {
		g.Go(func() error {
			var err error
			saved, err = s.store.SavedCandidateIDs(gctx, employerID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		var exp *db.Experience
		if e, ok := recent[p.ID]; ok {
			exp = &e
		}
		summaries = append(summaries, shape(p, skills[p.ID], exp, saved[p.ID]))
	}
	return summaries, nil
}

// Save bookmarks a candidate for the employer. Saving an already-saved candidate succeeds.
func (s *Service) Save(ctx context.Context, employerID, candidateID uuid.UUID) error {
	candidate, err := s.store.GetSearchableCandidate(ctx, candidateID)
	if err != nil {
		return err
	}
	if candidate == nil {
		return ErrCandidateNotFound
	}

	created, err := s.store.SaveCandidate(ctx, employerID, candidateID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	evt := events.CandidateSaved{EmployerID: employerID, CandidateID: candidateID, SavedAt: s.now().UTC()}
	if err := s.publisher.Publish(ctx, events.ChannelCandidateSaved, evt); err != nil {
		log.Warn().Err(err).Str("candidate_id", candidateID.String()).Msg("publish candidate.saved failed")
	}
	return nil
}

// Unsave removes a bookmark. Removing a bookmark that does not exist succeeds.
func (s *Service) Unsave(ctx context.Context, employerID, candidateID uuid.UUID) error {
	return s.store.UnsaveCandidate(ctx, employerID, candidateID)
}

// ListSaved returns the employer's bookmarked candidates shaped like search results.
func (s *Service) ListSaved(ctx context.Context, employerID uuid.UUID) ([]Summary, error) {
	profiles, err := s.store.ListSavedCandidates(ctx, employerID)
	if err != nil {
		return nil, err
	}

	saved := make(map[uuid.UUID]bool, len(profiles))
	for _, p := range profiles {
		saved[p.ID] = true
	}
	return s.enrich(ctx, employerID, profiles, saved)
}
