package store

import (
	"context"
	"errors"

	"github.com/orgintake/intake/model"
)

// ErrNotFound is returned by lookups that resolved to no record.
var ErrNotFound = errors.New("not found")

// Store is the remote collaborator holding questions, organizations,
// submitted responses and saved progress. Pipelines receive it as an
// explicit capability so tests can substitute a fake.
type Store interface {
	// Questions returns the enabled questions of one form, ordered by
	// identifier ascending.
	Questions(ctx context.Context, formID int) ([]model.Question, error)

	// OrganizationByEmail resolves the organization an email identifies.
	// ErrNotFound when no organization matches.
	OrganizationByEmail(ctx context.Context, email string) (model.Organization, error)

	// UpsertResponses writes submitted answers in one batch, overwriting
	// any prior answer for the same (organization, question) pair.
	UpsertResponses(ctx context.Context, orgID int, records []model.ResponseRecord) error

	// Responses returns all previously submitted answers of one
	// organization.
	Responses(ctx context.Context, orgID int) ([]model.ResponseRecord, error)

	// UpsertProgress writes saved progress in one batch, overwriting any
	// prior record for the same (form, email, question) triple.
	UpsertProgress(ctx context.Context, formID int, email string, records []model.ProgressRecord) error

	// Progress returns the saved progress records of one (form, email)
	// pair.
	Progress(ctx context.Context, formID int, email string) ([]model.ProgressRecord, error)
}
