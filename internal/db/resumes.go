package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrResumeNotFound is returned by writes that target a résumé id that does not exist.
var ErrResumeNotFound = errors.New("resume not found")

const (
	// DefaultListLimit caps ListResumes when no limit is given
	DefaultListLimit = 50
	// MaxListLimit is the largest page ListResumes will return
	MaxListLimit = 500
)

const resumeColumns = `id, title, template_id, data, visible, created_at, updated_at`

// ResumeSummary is a lightweight view of a saved résumé for listing
type ResumeSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"templateId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// SaveResume inserts a new résumé and returns the stored record
func (db *DB) SaveResume(ctx context.Context, req *types.SaveResumeRequest) (*types.ResumeRecord, error) {
	data, visible, err := encodeResume(req)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (title, template_id, data, visible)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		req.Title, req.TemplateID, data, visible,
	)
	record, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return record, nil
}

// GetResume retrieves a résumé by ID. It returns nil, nil when no such résumé exists.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`,
		id,
	)
	record, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return record, nil
}

// ListResumes retrieves the most recently updated résumés
func (db *DB) ListResumes(ctx context.Context, limit int) ([]ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template_id, updated_at
		 FROM resumes ORDER BY updated_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.TemplateID, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return summaries, nil
}

// UpdateResume replaces the stored content of a résumé. It returns nil, nil when no such
// résumé exists.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, req *types.SaveResumeRequest) (*types.ResumeRecord, error) {
	data, visible, err := encodeResume(req)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $2, template_id = $3, data = $4, visible = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+resumeColumns,
		id, req.Title, req.TemplateID, data, visible,
	)
	record, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return record, nil
}

// DeleteResume deletes a résumé by ID
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrResumeNotFound, id)
	}
	return nil
}

// encodeResume marshals the JSONB columns of a save request. A nil visibility map is stored
// as NULL so it reads back as "everything visible".
func encodeResume(req *types.SaveResumeRequest) (data, visible []byte, err error) {
	if req == nil {
		return nil, nil, fmt.Errorf("failed to marshal resume: nil request")
	}
	resume := req.Data
	if resume == nil {
		resume = types.NewResumeData()
	}
	data, err = json.Marshal(resume)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	if req.Visible != nil {
		visible, err = json.Marshal(req.Visible)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal visibility: %w", err)
		}
	}
	return data, visible, nil
}

// scanResume reads one row of resumeColumns into a record
func scanResume(row rowScanner) (*types.ResumeRecord, error) {
	var record types.ResumeRecord
	var data, visible []byte

	if err := row.Scan(&record.ID, &record.Title, &record.TemplateID, &data, &visible, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}

	record.Data = types.NewResumeData()
	if len(data) > 0 {
		if err := json.Unmarshal(data, record.Data); err != nil {
			return nil, fmt.Errorf("failed to decode resume data: %w", err)
		}
	}
	if len(visible) > 0 && string(visible) != "null" {
		if err := json.Unmarshal(visible, &record.Visible); err != nil {
			return nil, fmt.Errorf("failed to decode visibility: %w", err)
		}
	}
	return &record, nil
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
