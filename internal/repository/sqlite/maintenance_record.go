package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

var _ repository.MaintenanceRecordRepository = (*MaintenanceRecordRepo)(nil)

// MaintenanceRecordRepo implements repository.MaintenanceRecordRepository.
type MaintenanceRecordRepo struct {
	conn *sql.DB
}

// MaintenanceRecords returns the maintenance repository backed by this
// database.
func (db *DB) MaintenanceRecords() *MaintenanceRecordRepo {
	return &MaintenanceRecordRepo{conn: db.conn}
}

// performed_at is cast so the driver hands back the stored text verbatim
// instead of parsing the DATETIME-declared column into a time.Time.
const maintenanceColumns = "id, type, CAST(performed_at AS TEXT), description, created_at"

func scanMaintenanceRecord(rs rowScanner) (*model.MaintenanceRecord, error) {
	var m model.MaintenanceRecord
	var typ string
	var performed any
	var desc sql.NullString
	if err := rs.Scan(&m.ID, &typ, &performed, &desc, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Type = model.MaintenanceType(typ)
	m.PerformedAt = datetimeString(performed)
	m.Description = desc.String
	return &m, nil
}

func (r *MaintenanceRecordRepo) Create(ctx context.Context, in repository.CreateMaintenanceRecord) (*model.MaintenanceRecord, error) {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO maintenance_records (type, performed_at, description, created_at)
		 VALUES (?, ?, ?, ?)`,
		string(in.Type), in.PerformedAt, nullIfEmpty(in.Description), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: creating maintenance record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading maintenance record insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *MaintenanceRecordRepo) GetByID(ctx context.Context, id int64) (*model.MaintenanceRecord, error) {
	m, err := scanMaintenanceRecord(r.conn.QueryRowContext(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_records WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("maintenance record", id)
		}
		return nil, fmt.Errorf("sqlite: getting maintenance record %d: %w", id, err)
	}
	return m, nil
}

// List returns records newest first, optionally filtered by type.
func (r *MaintenanceRecordRepo) List(ctx context.Context, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records`
	args := []any{}
	if typ != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*typ))
	}
	query += ` ORDER BY performed_at DESC`
	return r.list(ctx, query, args...)
}

// FindByDateRange returns records performed on a calendar date between
// startDate and endDate, both bounds inclusive, optionally filtered by
// type.
func (r *MaintenanceRecordRepo) FindByDateRange(ctx context.Context, startDate, endDate string, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE date(performed_at) BETWEEN ? AND ?`
	args := []any{startDate, endDate}
	if typ != nil {
		query += ` AND type = ?`
		args = append(args, string(*typ))
	}
	query += ` ORDER BY performed_at DESC`
	return r.list(ctx, query, args...)
}

// FindRecent returns records from the last N days. The cutoff is computed
// from the clock at call time and bound as a parameter.
func (r *MaintenanceRecordRepo) FindRecent(ctx context.Context, days int, typ *model.MaintenanceType) ([]model.MaintenanceRecord, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE date(performed_at) >= ?`
	args := []any{cutoff}
	if typ != nil {
		query += ` AND type = ?`
		args = append(args, string(*typ))
	}
	query += ` ORDER BY performed_at DESC`
	return r.list(ctx, query, args...)
}

func (r *MaintenanceRecordRepo) list(ctx context.Context, query string, args ...any) ([]model.MaintenanceRecord, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing maintenance records: %w", err)
	}
	defer rows.Close()

	records := []model.MaintenanceRecord{}
	for rows.Next() {
		m, err := scanMaintenanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning maintenance record row: %w", err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating maintenance records: %w", err)
	}
	return records, nil
}

// Stats counts events per type over an inclusive date range. Types with
// no rows in the range report 0.
func (r *MaintenanceRecordRepo) Stats(ctx context.Context, startDate, endDate string) (*model.MaintenanceStats, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT type, COUNT(*)
		 FROM maintenance_records
		 WHERE date(performed_at) BETWEEN ? AND ?
		 GROUP BY type`,
		startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: computing maintenance stats: %w", err)
	}
	defer rows.Close()

	stats := &model.MaintenanceStats{}
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning maintenance stats row: %w", err)
		}
		switch model.MaintenanceType(typ) {
		case model.MaintenanceWater:
			stats.Water = count
		case model.MaintenanceToilet:
			stats.Toilet = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating maintenance stats: %w", err)
	}
	return stats, nil
}

func (r *MaintenanceRecordRepo) Update(ctx context.Context, id int64, in repository.UpdateMaintenanceRecord) (*model.MaintenanceRecord, error) {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if in.Type != nil {
		set = append(set, "type = ?")
		args = append(args, string(*in.Type))
	}
	if in.PerformedAt != nil {
		set = append(set, "performed_at = ?")
		args = append(args, *in.PerformedAt)
	}
	if in.Description != nil {
		set = append(set, "description = ?")
		args = append(args, nullIfEmpty(*in.Description))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE maintenance_records SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating maintenance record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("maintenance record", id)
	}
	return r.GetByID(ctx, id)
}

func (r *MaintenanceRecordRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM maintenance_records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting maintenance record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n > 0, nil
}
