package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnect/devconnect-api/internal/core/domain"
	"github.com/devconnect/devconnect-api/internal/core/ports"
)

// ProfileService implements the profile use cases on top of the profile
// and user repositories plus the external GitHub collaborator.
type ProfileService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	github   ports.RepoLister
	cache    ports.RepoCache
	logger   zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	github ports.RepoLister,
	cache ports.RepoCache,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		github:   github,
		cache:    cache,
		logger:   logger,
	}
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, profile), nil
}

// Upsert creates or partially updates the caller's profile. Present fields
// overwrite, absent fields keep their stored value, and social links are
// merged key by key. Calling twice with identical input yields identical
// stored state.
func (s *ProfileService) Upsert(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
	update := ports.ProfileUpdate{
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Bio:            input.Bio,
		Status:         input.Status,
		GithubUsername: input.GithubUsername,
		Skills:         normalizeSkills(input.Skills),
		Social: domain.SocialLinks{
			Youtube:   input.Youtube,
			Facebook:  input.Facebook,
			Twitter:   input.Twitter,
			Instagram: input.Instagram,
			Linkedin:  input.Linkedin,
		},
	}

	profile, err := s.profiles.Upsert(ctx, input.UserID, update)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("profile upsert failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Msg("profile upserted")
	return s.withOwner(ctx, profile), nil
}

func (s *ProfileService) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		s.withOwner(ctx, p)
	}
	return profiles, nil
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, profile), nil
}

// DeleteAccount removes the profile first, then the user. A failure after
// the profile delete can leave a user without a profile (accepted degraded
// state); the reverse orphan cannot occur from this ordering. The user's
// posts are intentionally not cascaded.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, input ports.ExperienceInput) (*domain.Profile, error) {
	from, err := parseDate(input.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(input.To)
	if err != nil {
		return nil, err
	}

	entry := domain.Experience{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        from,
		To:          to,
		Current:     input.Current,
		Description: input.Description,
	}

	profile, err := s.profiles.AddExperience(ctx, userID, entry)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, profile), nil
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, experienceID string) (*domain.Profile, error) {
	profile, err := s.profiles.RemoveExperience(ctx, userID, experienceID)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, profile), nil
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, input ports.EducationInput) (*domain.Profile, error) {
	from, err := parseDate(input.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(input.To)
	if err != nil {
		return nil, err
	}

	entry := domain.Education{
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      input.Current,
		Description:  input.Description,
	}

	profile, err := s.profiles.AddEducation(ctx, userID, entry)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, profile), nil
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, educationID string) (*domain.Profile, error) {
	profile, err := s.profiles.RemoveEducation(ctx, userID, educationID)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, profile), nil
}

// GithubRepos consults the cache first; on a miss it calls the external
// collaborator once (no retries) and best-effort stores the result.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]domain.RepoSummary, error) {
	if repos, ok, err := s.cache.Get(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("repo cache read failed")
	} else if ok {
		return repos, nil
	}

	repos, err := s.github.ListRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, username, repos); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("repo cache write failed")
	}
	return repos, nil
}

// withOwner joins the owning user's name and avatar live from the identity
// store. A vanished user leaves the profile unpopulated rather than failing
// the read.
func (s *ProfileService) withOwner(ctx context.Context, p *domain.Profile) *domain.Profile {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("user_id", p.UserID).Msg("owner lookup failed")
		}
		return p
	}
	p.User = &domain.ProfileOwner{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	return p
}

// normalizeSkills turns the free-text comma list into a trimmed ordered
// list, dropping empty segments.
func normalizeSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, raw)
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
