package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/forms"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
// Template fields/conditions and submission values are stored as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables if they do not exist yet. It is safe to
// call on every startup.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS form_templates (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			fields      JSONB NOT NULL DEFAULT '[]',
			conditions  JSONB NOT NULL DEFAULT '[]',
			version     INT NOT NULL DEFAULT 1,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS form_submissions (
			id           UUID PRIMARY KEY,
			template_id  UUID NOT NULL REFERENCES form_templates(id) ON DELETE CASCADE,
			values_json  JSONB NOT NULL DEFAULT '{}',
			submitted_by TEXT NOT NULL DEFAULT '',
			location_id  TEXT NOT NULL DEFAULT '',
			asset_id     TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_form_submissions_template
			ON form_submissions(template_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			address    TEXT NOT NULL DEFAULT '',
			latitude   DOUBLE PRECISION NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS assets (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			tag         TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL,
			location_id TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --- Templates ---

const templateColumns = `id, name, description, fields, conditions, version, created_at, updated_at`

func (p *PostgresStore) ListTemplates(ctx context.Context) ([]forms.Template, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+templateColumns+` FROM form_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var result []forms.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (p *PostgresStore) GetTemplate(ctx context.Context, id string) (*forms.Template, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM form_templates WHERE id = $1`, id)
	t, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStore) CreateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.Version = 1
	t.CreatedAt = now
	t.UpdatedAt = now

	fieldsJSON, condsJSON, err := marshalTemplateJSON(t)
	if err != nil {
		return nil, err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO form_templates (id, name, description, fields, conditions, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Name, t.Description, fieldsJSON, condsJSON, t.Version, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return &t, nil
}

func (p *PostgresStore) UpdateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error) {
	fieldsJSON, condsJSON, err := marshalTemplateJSON(t)
	if err != nil {
		return nil, err
	}
	row := p.pool.QueryRow(ctx,
		`UPDATE form_templates
		 SET name = $2, description = $3, fields = $4, conditions = $5,
		     version = version + 1, updated_at = now()
		 WHERE id = $1
		 RETURNING version, created_at, updated_at`,
		t.ID, t.Name, t.Description, fieldsJSON, condsJSON)
	if err := row.Scan(&t.Version, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update template: %w", err)
	}
	return &t, nil
}

func (p *PostgresStore) DeleteTemplate(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM form_templates WHERE id = $1`, id)
	return err
}

func marshalTemplateJSON(t forms.Template) (fieldsJSON, condsJSON []byte, err error) {
	fieldsJSON, err = json.Marshal(t.Fields)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal fields: %w", err)
	}
	conds := t.Conditions
	if conds == nil {
		conds = []conditions.Condition{}
	}
	condsJSON, err = json.Marshal(conds)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal conditions: %w", err)
	}
	return fieldsJSON, condsJSON, nil
}

func scanTemplate(row pgx.Row) (forms.Template, error) {
	var t forms.Template
	var fieldsJSON, condsJSON []byte
	err := row.Scan(&t.ID, &t.Name, &t.Description, &fieldsJSON, &condsJSON, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if err := json.Unmarshal(fieldsJSON, &t.Fields); err != nil {
		return t, fmt.Errorf("unmarshal fields: %w", err)
	}
	if err := json.Unmarshal(condsJSON, &t.Conditions); err != nil {
		return t, fmt.Errorf("unmarshal conditions: %w", err)
	}
	return t, nil
}

// --- Submissions ---

const submissionColumns = `id, template_id, values_json, submitted_by, location_id, asset_id, created_at`

func (p *PostgresStore) ListSubmissions(ctx context.Context, templateID string) ([]forms.Submission, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM form_submissions
		 WHERE template_id = $1 ORDER BY created_at DESC, id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var result []forms.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (p *PostgresStore) GetSubmission(ctx context.Context, id string) (*forms.Submission, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+submissionColumns+` FROM form_submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) CreateSubmission(ctx context.Context, s forms.Submission) (*forms.Submission, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()

	valuesJSON, err := json.Marshal(s.Values)
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO form_submissions (id, template_id, values_json, submitted_by, location_id, asset_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.TemplateID, valuesJSON, s.SubmittedBy, s.LocationID, s.AssetID, s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) DeleteSubmission(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM form_submissions WHERE id = $1`, id)
	return err
}

func scanSubmission(row pgx.Row) (forms.Submission, error) {
	var s forms.Submission
	var valuesJSON []byte
	err := row.Scan(&s.ID, &s.TemplateID, &valuesJSON, &s.SubmittedBy, &s.LocationID, &s.AssetID, &s.CreatedAt)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(valuesJSON, &s.Values); err != nil {
		return s, fmt.Errorf("unmarshal values: %w", err)
	}
	return s, nil
}

// --- Locations ---

func (p *PostgresStore) ListLocations(ctx context.Context) ([]forms.Location, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, address, latitude, longitude, created_at, updated_at FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var result []forms.Location
	for rows.Next() {
		var l forms.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (p *PostgresStore) GetLocation(ctx context.Context, id string) (*forms.Location, error) {
	var l forms.Location
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, address, latitude, longitude, created_at, updated_at FROM locations WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (p *PostgresStore) CreateLocation(ctx context.Context, l forms.Location) (*forms.Location, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	_, err := p.pool.Exec(ctx,
		`INSERT INTO locations (id, name, address, latitude, longitude, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.Name, l.Address, l.Latitude, l.Longitude, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return &l, nil
}

func (p *PostgresStore) UpdateLocation(ctx context.Context, l forms.Location) (*forms.Location, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE locations SET name = $2, address = $3, latitude = $4, longitude = $5, updated_at = now()
		 WHERE id = $1 RETURNING created_at, updated_at`,
		l.ID, l.Name, l.Address, l.Latitude, l.Longitude)
	if err := row.Scan(&l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update location: %w", err)
	}
	return &l, nil
}

func (p *PostgresStore) DeleteLocation(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}

// --- Assets ---

func (p *PostgresStore) ListAssets(ctx context.Context, locationID string) ([]forms.Asset, error) {
	query := `SELECT id, name, tag, status, location_id, created_at, updated_at FROM assets`
	args := []any{}
	if locationID != "" {
		query += ` WHERE location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY id`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var result []forms.Asset
	for rows.Next() {
		var a forms.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Tag, &a.Status, &a.LocationID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (p *PostgresStore) GetAsset(ctx context.Context, id string) (*forms.Asset, error) {
	var a forms.Asset
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, tag, status, location_id, created_at, updated_at FROM assets WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Tag, &a.Status, &a.LocationID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (p *PostgresStore) CreateAsset(ctx context.Context, a forms.Asset) (*forms.Asset, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := p.pool.Exec(ctx,
		`INSERT INTO assets (id, name, tag, status, location_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Name, a.Tag, a.Status, a.LocationID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return &a, nil
}

func (p *PostgresStore) UpdateAsset(ctx context.Context, a forms.Asset) (*forms.Asset, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE assets SET name = $2, tag = $3, status = $4, location_id = $5, updated_at = now()
		 WHERE id = $1 RETURNING created_at, updated_at`,
		a.ID, a.Name, a.Tag, a.Status, a.LocationID)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return &a, nil
}

func (p *PostgresStore) DeleteAsset(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}

// Ping verifies database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
