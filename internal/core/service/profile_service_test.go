package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnect/devconnect-api/internal/core/domain"
	"github.com/devconnect/devconnect-api/internal/core/ports"
)

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
	seq      int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s_%d", prefix, r.seq)
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	clone := *p
	clone.Skills = append([]string(nil), p.Skills...)
	clone.Experience = append([]domain.Experience(nil), p.Experience...)
	clone.Education = append([]domain.Education(nil), p.Education...)
	clone.User = nil
	return &clone
}

// Upsert mirrors the store-level sparse merge: present fields overwrite,
// empty ones keep the stored value, social keys merge individually.
func (r *stubProfileRepo) Upsert(_ context.Context, userID string, update ports.ProfileUpdate) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		p = &domain.Profile{
			ID:         r.nextID("profile"),
			UserID:     userID,
			Skills:     []string{},
			Experience: []domain.Experience{},
			Education:  []domain.Education{},
			CreatedAt:  time.Now().UTC(),
		}
		r.profiles[userID] = p
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&p.Company, update.Company)
	setString(&p.Website, update.Website)
	setString(&p.Location, update.Location)
	setString(&p.Bio, update.Bio)
	setString(&p.Status, update.Status)
	setString(&p.GithubUsername, update.GithubUsername)
	if update.Skills != nil {
		p.Skills = append([]string(nil), update.Skills...)
	}
	setString(&p.Social.Youtube, update.Social.Youtube)
	setString(&p.Social.Facebook, update.Social.Facebook)
	setString(&p.Social.Twitter, update.Social.Twitter)
	setString(&p.Social.Instagram, update.Social.Instagram)
	setString(&p.Social.Linkedin, update.Social.Linkedin)

	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) ListAll(_ context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *stubProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	delete(r.profiles, userID)
	return nil
}

func (r *stubProfileRepo) AddExperience(_ context.Context, userID string, e domain.Experience) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	e.ID = r.nextID("exp")
	p.Experience = append([]domain.Experience{e}, p.Experience...)
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) RemoveExperience(_ context.Context, userID, entryID string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	kept := make([]domain.Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) AddEducation(_ context.Context, userID string, e domain.Education) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	e.ID = r.nextID("edu")
	p.Education = append([]domain.Education{e}, p.Education...)
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) RemoveEducation(_ context.Context, userID, entryID string) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	kept := make([]domain.Education, 0, len(p.Education))
	for _, e := range p.Education {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	return cloneProfile(p), nil
}

type stubRepoLister struct {
	repos map[string][]domain.RepoSummary
	calls int
}

func (l *stubRepoLister) ListRepos(_ context.Context, username string) ([]domain.RepoSummary, error) {
	l.calls++
	repos, ok := l.repos[username]
	if !ok {
		return nil, domain.ErrGithubUserNotFound
	}
	return repos, nil
}

type stubRepoCache struct {
	entries map[string][]domain.RepoSummary
	getErr  error
	setErr  error
	sets    int
}

func newStubRepoCache() *stubRepoCache {
	return &stubRepoCache{entries: make(map[string][]domain.RepoSummary)}
}

func (c *stubRepoCache) Get(_ context.Context, username string) ([]domain.RepoSummary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	repos, ok := c.entries[username]
	return repos, ok, nil
}

func (c *stubRepoCache) Set(_ context.Context, username string, repos []domain.RepoSummary) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[username] = repos
	return nil
}

type profileFixture struct {
	svc      *ProfileService
	profiles *stubProfileRepo
	users    *stubUserRepo
	github   *stubRepoLister
	cache    *stubRepoCache
	userID   string
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	users := newStubUserRepo()
	profiles := newStubProfileRepo()
	github := &stubRepoLister{repos: make(map[string][]domain.RepoSummary)}
	cache := newStubRepoCache()

	owner, err := users.Create(context.Background(), &domain.User{
		Name:   "Alice",
		Email:  "alice@example.com",
		Avatar: "https://www.gravatar.com/avatar/abc",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	return &profileFixture{
		svc:      NewProfileService(profiles, users, github, cache, zerolog.Nop()),
		profiles: profiles,
		users:    users,
		github:   github,
		cache:    cache,
		userID:   owner.ID,
	}
}

func TestProfileService_Upsert_NormalizesSkills(t *testing.T) {
	f := newProfileFixture(t)

	profile, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID,
		Status: "Developer",
		Skills: " Go, MongoDB ,, Redis ",
	})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	want := []string{"Go", "MongoDB", "Redis"}
	if !reflect.DeepEqual(profile.Skills, want) {
		t.Fatalf("skills = %v, want %v", profile.Skills, want)
	}
}

func TestProfileService_Upsert_SparseMerge(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID:  f.userID,
		Status:  "Developer",
		Skills:  "Go",
		Company: "Acme",
		Youtube: "https://youtube.com/acme",
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// Second upsert omits company and youtube; both must survive, and the
	// twitter key merges in alongside.
	profile, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID:  f.userID,
		Status:  "Senior Developer",
		Skills:  "Go,Redis",
		Twitter: "https://twitter.com/acme",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if profile.Company != "Acme" {
		t.Fatalf("absent company field clobbered stored value: %q", profile.Company)
	}
	if profile.Status != "Senior Developer" {
		t.Fatalf("present status field not overwritten: %q", profile.Status)
	}
	if profile.Social.Youtube != "https://youtube.com/acme" || profile.Social.Twitter != "https://twitter.com/acme" {
		t.Fatalf("social links not merged key by key: %+v", profile.Social)
	}
}

func TestProfileService_Upsert_Idempotent(t *testing.T) {
	f := newProfileFixture(t)

	input := ports.UpsertProfileInput{
		UserID: f.userID,
		Status: "Developer",
		Skills: "Go,Redis",
	}
	first, err := f.svc.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := f.svc.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat upsert created a new profile: %s vs %s", first.ID, second.ID)
	}
	if !reflect.DeepEqual(first.Skills, second.Skills) || first.Status != second.Status {
		t.Fatalf("repeat upsert changed state: %+v vs %+v", first, second)
	}
}

func TestProfileService_Reads_JoinOwner(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID, Status: "Developer", Skills: "Go",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	profile, err := f.svc.GetOwnProfile(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("GetOwnProfile: %v", err)
	}
	if profile.User == nil || profile.User.Name != "Alice" {
		t.Fatalf("owner not joined: %+v", profile.User)
	}

	// A vanished owner leaves the profile readable but unpopulated.
	if err := f.users.Delete(context.Background(), f.userID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	profile, err = f.svc.GetByUserID(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.User != nil {
		t.Fatalf("expected nil owner after user deletion, got %+v", profile.User)
	}
}

func TestProfileService_GetOwnProfile_Missing(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.GetOwnProfile(context.Background(), f.userID); err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_DeleteAccount(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID, Status: "Developer", Skills: "Go",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := f.svc.DeleteAccount(context.Background(), f.userID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, ok := f.profiles.profiles[f.userID]; ok {
		t.Fatalf("profile not deleted")
	}
	if _, ok := f.users.users[f.userID]; ok {
		t.Fatalf("user not deleted")
	}
}

func TestProfileService_DeleteAccount_WithoutProfile(t *testing.T) {
	f := newProfileFixture(t)

	// Deleting an account that never created a profile still removes the user.
	if err := f.svc.DeleteAccount(context.Background(), f.userID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, ok := f.users.users[f.userID]; ok {
		t.Fatalf("user not deleted")
	}
}

func TestProfileService_AddExperience(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID, Status: "Developer", Skills: "Go",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	profile, err := f.svc.AddExperience(context.Background(), f.userID, ports.ExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    "2020-01-15",
	})
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if len(profile.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(profile.Experience))
	}
	entry := profile.Experience[0]
	if entry.ID == "" {
		t.Fatalf("entry has no id")
	}
	if entry.From.Year() != 2020 || entry.From.Month() != time.January {
		t.Fatalf("from date not parsed: %v", entry.From)
	}
	if entry.To != nil {
		t.Fatalf("expected open-ended entry, got to=%v", entry.To)
	}

	// Newest entry goes first.
	profile, err = f.svc.AddExperience(context.Background(), f.userID, ports.ExperienceInput{
		Title:   "Senior Engineer",
		Company: "Acme",
		From:    "2022-06-01",
	})
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if profile.Experience[0].Title != "Senior Engineer" {
		t.Fatalf("new entry not prepended: %+v", profile.Experience)
	}
}

func TestProfileService_AddExperience_InvalidDate(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID, Status: "Developer", Skills: "Go",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	_, err := f.svc.AddExperience(context.Background(), f.userID, ports.ExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    "not-a-date",
	})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestProfileService_AddExperience_NoProfile(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.svc.AddExperience(context.Background(), f.userID, ports.ExperienceInput{
		Title:   "Engineer",
		Company: "Acme",
		From:    "2020-01-15",
	})
	if err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_RemoveExperience_UnknownIDIsNoop(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID, Status: "Developer", Skills: "Go",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := f.svc.AddExperience(context.Background(), f.userID, ports.ExperienceInput{
		Title: "Engineer", Company: "Acme", From: "2020-01-15",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	profile, err := f.svc.RemoveExperience(context.Background(), f.userID, "unknown")
	if err != nil {
		t.Fatalf("RemoveExperience: %v", err)
	}
	if len(profile.Experience) != 1 {
		t.Fatalf("no-op removal changed the list: %+v", profile.Experience)
	}
}

func TestProfileService_Education_AddAndRemove(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: f.userID, Status: "Developer", Skills: "Go",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	profile, err := f.svc.AddEducation(context.Background(), f.userID, ports.EducationInput{
		School:       "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         "2015-09-01",
		To:           "2019-06-01",
	})
	if err != nil {
		t.Fatalf("AddEducation: %v", err)
	}
	if len(profile.Education) != 1 || profile.Education[0].To == nil {
		t.Fatalf("unexpected education list: %+v", profile.Education)
	}

	profile, err = f.svc.RemoveEducation(context.Background(), f.userID, profile.Education[0].ID)
	if err != nil {
		t.Fatalf("RemoveEducation: %v", err)
	}
	if len(profile.Education) != 0 {
		t.Fatalf("entry not removed: %+v", profile.Education)
	}
}

func TestProfileService_GithubRepos_CacheMissThenHit(t *testing.T) {
	f := newProfileFixture(t)

	want := []domain.RepoSummary{{Name: "devconnect", Stargazers: 42}}
	f.github.repos["alice"] = want

	repos, err := f.svc.GithubRepos(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GithubRepos: %v", err)
	}
	if !reflect.DeepEqual(repos, want) {
		t.Fatalf("repos = %+v, want %+v", repos, want)
	}
	if f.github.calls != 1 || f.cache.sets != 1 {
		t.Fatalf("expected one upstream call and one cache write, got %d/%d", f.github.calls, f.cache.sets)
	}

	// Second lookup is served from cache.
	if _, err := f.svc.GithubRepos(context.Background(), "alice"); err != nil {
		t.Fatalf("GithubRepos: %v", err)
	}
	if f.github.calls != 1 {
		t.Fatalf("cache hit still called upstream: %d calls", f.github.calls)
	}
}

func TestProfileService_GithubRepos_CacheFailuresAreNonFatal(t *testing.T) {
	f := newProfileFixture(t)

	want := []domain.RepoSummary{{Name: "devconnect"}}
	f.github.repos["alice"] = want
	f.cache.getErr = errors.New("redis down")
	f.cache.setErr = errors.New("redis down")

	repos, err := f.svc.GithubRepos(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GithubRepos: %v", err)
	}
	if !reflect.DeepEqual(repos, want) {
		t.Fatalf("repos = %+v, want %+v", repos, want)
	}
}

func TestProfileService_GithubRepos_UnknownUser(t *testing.T) {
	f := newProfileFixture(t)

	if _, err := f.svc.GithubRepos(context.Background(), "nobody"); err != domain.ErrGithubUserNotFound {
		t.Fatalf("expected ErrGithubUserNotFound, got %v", err)
	}
}
