package ports

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

// UpsertProfileInput is the DTO passed from the transport layer for a
// profile create/update. Skills is the raw comma-separated string from the
// client; the service normalizes it. Empty optional fields are treated as
// absent (sparse merge).
type UpsertProfileInput struct {
	UserID         string
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string
	Youtube        string
	Facebook       string
	Twitter        string
	Instagram      string
	Linkedin       string
}

// ExperienceInput carries a new work history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput carries a new education history entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// ProfileService defines the profile use cases. All reads return profiles
// with the owning user joined live from the identity store.
type ProfileService interface {
	GetOwnProfile(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, input UpsertProfileInput) (*domain.Profile, error)
	ListAll(ctx context.Context) ([]*domain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// DeleteAccount removes the caller's profile, then the user record.
	// The caller's posts are intentionally left in place.
	DeleteAccount(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, userID string, input ExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, userID, experienceID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, userID string, input EducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, userID, educationID string) (*domain.Profile, error)

	// GithubRepos lists the newest public repos of a GitHub user through
	// the external lookup collaborator, consulting the cache first.
	GithubRepos(ctx context.Context, username string) ([]domain.RepoSummary, error)
}
