package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Saved Candidates (employer bookmarks)
// -----------------------------------------------------------------------------

// SaveCandidate bookmarks a candidate for an employer.
// It reports whether a new bookmark was created. An existing bookmark is left untouched,
// and nothing is written unless the candidate is public and not anonymous at insert time.
func (db *DB) SaveCandidate(ctx context.Context, employerID, candidateID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO saved_candidates (employer_id, candidate_id)
		 SELECT $1, c.id FROM candidate_profiles c
		 WHERE c.id = $2 AND c.is_public = TRUE AND c.is_anonymous = FALSE
		 ON CONFLICT (employer_id, candidate_id) DO NOTHING`,
		employerID, candidateID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save candidate: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UnsaveCandidate removes a bookmark. Removing a bookmark that does not exist is not an error.
func (db *DB) UnsaveCandidate(ctx context.Context, employerID, candidateID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM saved_candidates WHERE employer_id = $1 AND candidate_id = $2`,
		employerID, candidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to unsave candidate: %w", err)
	}
	return nil
}

// SavedCandidateIDs returns the subset of candidateIDs bookmarked by the employer.
func (db *DB) SavedCandidateIDs(ctx context.Context, employerID uuid.UUID, candidateIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	saved := make(map[uuid.UUID]bool)
	if len(candidateIDs) == 0 {
		return saved, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id FROM saved_candidates
		 WHERE employer_id = $1 AND candidate_id = ANY($2)`,
		employerID, candidateIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved candidates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan saved candidate: %w", err)
		}
		saved[id] = true
	}
	return saved, rows.Err()
}

// ListSavedCandidates returns the employer's bookmarked profiles that are still searchable,
// most recently bookmarked first.
func (db *DB) ListSavedCandidates(ctx context.Context, employerID uuid.UUID) ([]CandidateProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM saved_candidates sc
		 JOIN candidate_profiles c ON c.id = sc.candidate_id
		 WHERE sc.employer_id = $1 AND c.is_public = TRUE AND c.is_anonymous = FALSE
		 ORDER BY sc.created_at DESC, c.id DESC`,
		employerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}
