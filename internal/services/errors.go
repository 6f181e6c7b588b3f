package services

import (
	stderrors "errors"

	"github.com/abrezinsky/archeryscore/internal/errors"
	"github.com/abrezinsky/archeryscore/internal/repository"
)

// Service errors
var (
	ErrCompetitionNotFound = errors.NotFound("Competition not found")
	ErrCompetitionExists   = errors.Conflict("A competition with this name already exists")
	ErrArcherNotFound      = errors.NotFound("Archer not found")
	ErrNoArchers           = errors.NotFound("No archers found")
	ErrBaseURLNotSet       = errors.Validation("base_url not configured")
)

// translate maps repository sentinels onto application errors. notFound is
// returned for repository.ErrNotFound; other errors become internal errors.
func translate(err error, notFound *errors.Error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, repository.ErrNotFound):
		return notFound
	case stderrors.Is(err, repository.ErrDuplicate):
		return errors.Wrap(err, errors.ErrConflict, "duplicate record")
	default:
		return errors.Internal(err)
	}
}
