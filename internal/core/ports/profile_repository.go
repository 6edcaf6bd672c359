package ports

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

// ProfileUpdate carries the sparse field set for a profile upsert. Empty
// string fields are absent and must leave the stored value untouched;
// social keys are merged individually. Skills is the already-normalized
// list and always overwrites (it is a required field).
type ProfileUpdate struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         []string
	Social         domain.SocialLinks
}

// ProfileRepository defines persistence for developer profiles. List
// mutations are single-document targeted updates returning the updated
// profile, so callers never do index arithmetic over stale reads.
type ProfileRepository interface {
	// Upsert atomically creates or partially updates the profile keyed by
	// userID and returns the resulting document.
	Upsert(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	ListAll(ctx context.Context) ([]*domain.Profile, error)
	// DeleteByUserID removes the profile. Deleting a missing profile is
	// not an error.
	DeleteByUserID(ctx context.Context, userID string) error

	// AddExperience prepends the entry and returns the updated profile.
	// Returns domain.ErrProfileNotFound when no profile exists yet.
	AddExperience(ctx context.Context, userID string, e domain.Experience) (*domain.Profile, error)
	// RemoveExperience removes the entry by id. Removing an unknown id is
	// a no-op that still returns the (unchanged) profile.
	RemoveExperience(ctx context.Context, userID, entryID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, userID string, e domain.Education) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID string) (*domain.Profile, error)
}
