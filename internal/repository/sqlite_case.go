package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/legalaid/caseprogress/internal/db"
	"github.com/legalaid/caseprogress/internal/domain"
)

const caseColumns = `id, title, client_name, category, status, opened_at, closed_at, created_at, updated_at`

// SQLiteCaseRepo implements CaseRepo using a SQLite database.
type SQLiteCaseRepo struct {
	db db.DBTX
}

// NewSQLiteCaseRepo creates a new SQLiteCaseRepo.
func NewSQLiteCaseRepo(db db.DBTX) *SQLiteCaseRepo {
	return &SQLiteCaseRepo{db: db}
}

func (r *SQLiteCaseRepo) Create(ctx context.Context, c *domain.LegalCase) error {
	query := `INSERT INTO cases (` + caseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Title,
		c.ClientName,
		string(c.Category),
		string(c.Status),
		formatTime(c.OpenedAt),
		formatNullableTime(c.ClosedAt),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting case: %w", err)
	}
	return nil
}

func (r *SQLiteCaseRepo) GetByID(ctx context.Context, id string) (*domain.LegalCase, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = ?`
	c, err := scanCase(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("case %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCaseRepo) List(ctx context.Context, includeClosed bool) ([]*domain.LegalCase, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE status = 'open' ORDER BY opened_at, id`
	if includeClosed {
		query = `SELECT ` + caseColumns + ` FROM cases ORDER BY opened_at, id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var cases []*domain.LegalCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}
	return cases, nil
}

func (r *SQLiteCaseRepo) Update(ctx context.Context, c *domain.LegalCase) error {
	query := `UPDATE cases SET title = ?, client_name = ?, category = ?, status = ?, closed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Title,
		c.ClientName,
		string(c.Category),
		string(c.Status),
		formatNullableTime(c.ClosedAt),
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating case: %w", err)
	}
	return requireAffected(res, "case", c.ID)
}

func (r *SQLiteCaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting case: %w", err)
	}
	return requireAffected(res, "case", id)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*domain.LegalCase, error) {
	var c domain.LegalCase
	var categoryStr, statusStr, openedAtStr, createdAtStr, updatedAtStr string
	var closedAtStr sql.NullString

	err := row.Scan(
		&c.ID, &c.Title, &c.ClientName,
		&categoryStr, &statusStr,
		&openedAtStr, &closedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning case: %w", err)
	}

	c.Category = domain.CaseCategory(categoryStr)
	c.Status = domain.CaseStatus(statusStr)
	c.ClosedAt = parseNullableTime(closedAtStr)

	if c.OpenedAt, err = parseColumnTime("opened_at", openedAtStr); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseColumnTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseColumnTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}
