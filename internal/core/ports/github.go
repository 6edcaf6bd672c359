package ports

import (
	"context"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

// RepoLister is the external repository-listing collaborator. A non-success
// response from the upstream surfaces as domain.ErrGithubUserNotFound; the
// call carries no retry policy.
type RepoLister interface {
	ListRepos(ctx context.Context, username string) ([]domain.RepoSummary, error)
}

// RepoCache caches repo listings per username. A miss is reported through
// the ok result, not an error; cache failures must not fail the lookup.
type RepoCache interface {
	Get(ctx context.Context, username string) ([]domain.RepoSummary, bool, error)
	Set(ctx context.Context, username string, repos []domain.RepoSummary) error
}
