package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/legalaid/caseprogress/internal/db"
	"github.com/legalaid/caseprogress/internal/domain"
)

const recordColumns = `id, case_id, service_type, status, start_time, end_time, notes, created_at`

// SQLiteServiceRecordRepo implements ServiceRecordRepo using a SQLite database.
// Create writes the record and its dependency rows with separate statements;
// pass a transaction-backed DBTX to make them atomic.
type SQLiteServiceRecordRepo struct {
	db db.DBTX
}

// NewSQLiteServiceRecordRepo creates a new SQLiteServiceRecordRepo.
func NewSQLiteServiceRecordRepo(db db.DBTX) *SQLiteServiceRecordRepo {
	return &SQLiteServiceRecordRepo{db: db}
}

func (r *SQLiteServiceRecordRepo) Create(ctx context.Context, rec *domain.ServiceRecord) error {
	query := `INSERT INTO service_records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.CaseID,
		string(rec.ServiceType),
		string(rec.Status),
		formatTime(rec.StartTime),
		formatNullableTime(rec.EndTime),
		rec.Notes,
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting service record: %w", err)
	}

	for _, pred := range rec.DependsOn {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO record_dependencies (predecessor_record_id, successor_record_id) VALUES (?, ?)`,
			pred, rec.ID)
		if err != nil {
			return fmt.Errorf("inserting record dependency %s -> %s: %w", pred, rec.ID, err)
		}
	}
	return nil
}

func (r *SQLiteServiceRecordRepo) GetByID(ctx context.Context, id string) (*domain.ServiceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM service_records WHERE id = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("service record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	deps, err := r.dependencies(ctx, `WHERE successor_record_id = ?`, id)
	if err != nil {
		return nil, err
	}
	rec.DependsOn = deps[rec.ID]
	return rec, nil
}

// ListByCase returns a case's records ordered by start time, each with its
// dependency list filled in.
func (r *SQLiteServiceRecordRepo) ListByCase(ctx context.Context, caseID string) ([]domain.ServiceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM service_records WHERE case_id = ? ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("listing service records: %w", err)
	}
	defer rows.Close()

	var records []domain.ServiceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating service records: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	deps, err := r.dependencies(ctx,
		`WHERE successor_record_id IN (SELECT id FROM service_records WHERE case_id = ?)`, caseID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].DependsOn = deps[records[i].ID]
	}
	return records, nil
}

func (r *SQLiteServiceRecordRepo) UpdateStatus(ctx context.Context, id string, status domain.RecordStatus, end *time.Time) error {
	query := `UPDATE service_records SET status = ?, end_time = COALESCE(?, end_time) WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), formatNullableTime(end), id)
	if err != nil {
		return fmt.Errorf("updating service record status: %w", err)
	}
	return requireAffected(res, "service record", id)
}

func (r *SQLiteServiceRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting service record: %w", err)
	}
	return requireAffected(res, "service record", id)
}

// dependencies loads predecessor IDs keyed by successor record ID.
func (r *SQLiteServiceRecordRepo) dependencies(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	query := `SELECT successor_record_id, predecessor_record_id FROM record_dependencies ` + where +
		` ORDER BY successor_record_id, predecessor_record_id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing record dependencies: %w", err)
	}
	defer rows.Close()

	deps := make(map[string][]string)
	for rows.Next() {
		var succ, pred string
		if err := rows.Scan(&succ, &pred); err != nil {
			return nil, fmt.Errorf("scanning record dependency: %w", err)
		}
		deps[succ] = append(deps[succ], pred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record dependencies: %w", err)
	}
	return deps, nil
}

func scanRecord(row rowScanner) (*domain.ServiceRecord, error) {
	var rec domain.ServiceRecord
	var typeStr, statusStr, startStr, createdAtStr string
	var endStr sql.NullString

	err := row.Scan(
		&rec.ID, &rec.CaseID, &typeStr, &statusStr,
		&startStr, &endStr, &rec.Notes, &createdAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning service record: %w", err)
	}

	rec.ServiceType = domain.ServiceType(typeStr)
	rec.Status = domain.RecordStatus(statusStr)
	rec.EndTime = parseNullableTime(endStr)

	if rec.StartTime, err = parseColumnTime("start_time", startStr); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseColumnTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	return &rec, nil
}
