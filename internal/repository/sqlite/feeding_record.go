package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markwat1/feeding/internal/apperror"
	"github.com/markwat1/feeding/internal/model"
	"github.com/markwat1/feeding/internal/repository"
)

var _ repository.FeedingRecordRepository = (*FeedingRecordRepo)(nil)

// FeedingRecordRepo implements repository.FeedingRecordRepository.
// Reads hydrate two levels: record → schedule → food type.
type FeedingRecordRepo struct {
	conn *sql.DB
}

// FeedingRecords returns the record repository backed by this database.
func (db *DB) FeedingRecords() *FeedingRecordRepo {
	return &FeedingRecordRepo{conn: db.conn}
}

// actual_time is cast so the driver hands back the stored text verbatim
// instead of parsing the DATETIME-declared column into a time.Time.
const feedingRecordSelect = `SELECT
	fr.id, fr.feeding_schedule_id, CAST(fr.actual_time AS TEXT), fr.completed, fr.notes, fr.created_at,
	fs.id, fs.time, fs.food_type_id, fs.is_active, fs.created_at, fs.updated_at,
	ft.id, ft.name, ft.brand, ft.description, ft.created_at, ft.updated_at
FROM feeding_records fr
LEFT JOIN feeding_schedules fs ON fr.feeding_schedule_id = fs.id
LEFT JOIN food_types ft ON fs.food_type_id = ft.id`

// scanFeedingRecord maps one joined row to a model.FeedingRecord. Dangling
// references leave the nested schedule (and its food type) nil without
// suppressing the record.
func scanFeedingRecord(rs rowScanner) (*model.FeedingRecord, error) {
	var rec model.FeedingRecord
	var actualTime any
	var completed int64
	var notes sql.NullString
	var fsID, fsFoodTypeID, fsActive sql.NullInt64
	var fsTime sql.NullString
	var fsCreated, fsUpdated sql.NullTime
	var ftID sql.NullInt64
	var ftName, ftBrand, ftDesc sql.NullString
	var ftCreated, ftUpdated sql.NullTime
	if err := rs.Scan(
		&rec.ID, &rec.FeedingScheduleID, &actualTime, &completed, &notes, &rec.CreatedAt,
		&fsID, &fsTime, &fsFoodTypeID, &fsActive, &fsCreated, &fsUpdated,
		&ftID, &ftName, &ftBrand, &ftDesc, &ftCreated, &ftUpdated,
	); err != nil {
		return nil, err
	}
	rec.ActualTime = datetimeString(actualTime)
	rec.Completed = completed != 0
	rec.Notes = notes.String
	if fsID.Valid {
		rec.FeedingSchedule = &model.FeedingSchedule{
			ID:         fsID.Int64,
			Time:       fsTime.String,
			FoodTypeID: fsFoodTypeID.Int64,
			IsActive:   fsActive.Int64 != 0,
			CreatedAt:  fsCreated.Time,
			UpdatedAt:  fsUpdated.Time,
		}
		if ftID.Valid {
			rec.FeedingSchedule.FoodType = &model.FoodType{
				ID:          ftID.Int64,
				Name:        ftName.String,
				Brand:       ftBrand.String,
				Description: ftDesc.String,
				CreatedAt:   ftCreated.Time,
				UpdatedAt:   ftUpdated.Time,
			}
		}
	}
	return &rec, nil
}

func (r *FeedingRecordRepo) Create(ctx context.Context, in repository.CreateFeedingRecord) (*model.FeedingRecord, error) {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO feeding_records (feeding_schedule_id, actual_time, completed, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		in.FeedingScheduleID, in.ActualTime, boolToInt(in.Completed), nullIfEmpty(in.Notes), time.Now().UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.InvalidReference("feedingScheduleId", "invalid feeding schedule ID")
		}
		return nil, fmt.Errorf("sqlite: creating feeding record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading feeding record insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *FeedingRecordRepo) GetByID(ctx context.Context, id int64) (*model.FeedingRecord, error) {
	rec, err := scanFeedingRecord(r.conn.QueryRowContext(ctx,
		feedingRecordSelect+` WHERE fr.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("feeding record", id)
		}
		return nil, fmt.Errorf("sqlite: getting feeding record %d: %w", id, err)
	}
	return rec, nil
}

// List returns records newest first. A positive limit caps the page and
// offset skips rows before it; both are bound as query parameters.
func (r *FeedingRecordRepo) List(ctx context.Context, limit, offset int) ([]model.FeedingRecord, error) {
	query := feedingRecordSelect + ` ORDER BY fr.actual_time DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	return r.list(ctx, query, args...)
}

// FindByDateRange returns records whose actual_time falls on a calendar
// date between startDate and endDate, both bounds inclusive.
func (r *FeedingRecordRepo) FindByDateRange(ctx context.Context, startDate, endDate string) ([]model.FeedingRecord, error) {
	return r.list(ctx,
		feedingRecordSelect+` WHERE date(fr.actual_time) BETWEEN ? AND ? ORDER BY fr.actual_time DESC`,
		startDate, endDate)
}

func (r *FeedingRecordRepo) list(ctx context.Context, query string, args ...any) ([]model.FeedingRecord, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing feeding records: %w", err)
	}
	defer rows.Close()

	records := []model.FeedingRecord{}
	for rows.Next() {
		rec, err := scanFeedingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning feeding record row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating feeding records: %w", err)
	}
	return records, nil
}

// CompletionRate aggregates completion over an inclusive date range. An
// empty range yields {0, 0, 0}; the rate is a percentage rounded to two
// decimal places.
func (r *FeedingRecordRepo) CompletionRate(ctx context.Context, startDate, endDate string) (*model.CompletionStats, error) {
	var stats model.CompletionStats
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0)
		 FROM feeding_records
		 WHERE date(actual_time) BETWEEN ? AND ?`,
		startDate, endDate,
	).Scan(&stats.Total, &stats.Completed)
	if err != nil {
		return nil, fmt.Errorf("sqlite: computing completion rate: %w", err)
	}
	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.Rate = math.Round(rate*100) / 100
	}
	return &stats, nil
}

// Update applies the supplied fields. Feeding records carry no updated_at,
// so edits keep the original creation timestamp.
func (r *FeedingRecordRepo) Update(ctx context.Context, id int64, in repository.UpdateFeedingRecord) (*model.FeedingRecord, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if in.FeedingScheduleID != nil {
		set = append(set, "feeding_schedule_id = ?")
		args = append(args, *in.FeedingScheduleID)
	}
	if in.ActualTime != nil {
		set = append(set, "actual_time = ?")
		args = append(args, *in.ActualTime)
	}
	if in.Completed != nil {
		set = append(set, "completed = ?")
		args = append(args, boolToInt(*in.Completed))
	}
	if in.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, nullIfEmpty(*in.Notes))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE feeding_records SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.InvalidReference("feedingScheduleId", "invalid feeding schedule ID")
		}
		return nil, fmt.Errorf("sqlite: updating feeding record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("feeding record", id)
	}
	return r.GetByID(ctx, id)
}

func (r *FeedingRecordRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM feeding_records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting feeding record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n > 0, nil
}
