package store

import (
	"context"
	"errors"

	"github.com/mkravets/upkeep/internal/forms"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines persistence for the maintenance domain: form templates,
// submissions, locations, and assets. Implementations must be safe for
// concurrent use.
//
// Create methods assign IDs and timestamps when absent and return the stored
// record. Delete methods are idempotent.
type Store interface {
	ListTemplates(ctx context.Context) ([]forms.Template, error)
	GetTemplate(ctx context.Context, id string) (*forms.Template, error)
	CreateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error)
	// UpdateTemplate replaces the stored template and bumps its version.
	UpdateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	// ListSubmissions returns submissions for a template, newest first.
	ListSubmissions(ctx context.Context, templateID string) ([]forms.Submission, error)
	GetSubmission(ctx context.Context, id string) (*forms.Submission, error)
	CreateSubmission(ctx context.Context, s forms.Submission) (*forms.Submission, error)
	DeleteSubmission(ctx context.Context, id string) error

	ListLocations(ctx context.Context) ([]forms.Location, error)
	GetLocation(ctx context.Context, id string) (*forms.Location, error)
	CreateLocation(ctx context.Context, l forms.Location) (*forms.Location, error)
	UpdateLocation(ctx context.Context, l forms.Location) (*forms.Location, error)
	DeleteLocation(ctx context.Context, id string) error

	// ListAssets returns all assets, optionally filtered by location.
	ListAssets(ctx context.Context, locationID string) ([]forms.Asset, error)
	GetAsset(ctx context.Context, id string) (*forms.Asset, error)
	CreateAsset(ctx context.Context, a forms.Asset) (*forms.Asset, error)
	UpdateAsset(ctx context.Context, a forms.Asset) (*forms.Asset, error)
	DeleteAsset(ctx context.Context, id string) error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
