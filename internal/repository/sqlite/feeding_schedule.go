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

var _ repository.FeedingScheduleRepository = (*FeedingScheduleRepo)(nil)

// FeedingScheduleRepo implements repository.FeedingScheduleRepository.
// Reads hydrate the referenced food type via a left join.
type FeedingScheduleRepo struct {
	conn *sql.DB
}

// FeedingSchedules returns the schedule repository backed by this database.
func (db *DB) FeedingSchedules() *FeedingScheduleRepo {
	return &FeedingScheduleRepo{conn: db.conn}
}

const feedingScheduleSelect = `SELECT
	fs.id, fs.time, fs.food_type_id, fs.is_active, fs.created_at, fs.updated_at,
	ft.id, ft.name, ft.brand, ft.description, ft.created_at, ft.updated_at
FROM feeding_schedules fs
LEFT JOIN food_types ft ON fs.food_type_id = ft.id`

// scanFeedingSchedule maps one joined row to a model.FeedingSchedule.
// A dangling food-type reference leaves FoodType nil without suppressing
// the schedule itself.
func scanFeedingSchedule(rs rowScanner) (*model.FeedingSchedule, error) {
	var s model.FeedingSchedule
	var active int64
	var ftID sql.NullInt64
	var ftName, ftBrand, ftDesc sql.NullString
	var ftCreated, ftUpdated sql.NullTime
	if err := rs.Scan(
		&s.ID, &s.Time, &s.FoodTypeID, &active, &s.CreatedAt, &s.UpdatedAt,
		&ftID, &ftName, &ftBrand, &ftDesc, &ftCreated, &ftUpdated,
	); err != nil {
		return nil, err
	}
	s.IsActive = active != 0
	if ftID.Valid {
		s.FoodType = &model.FoodType{
			ID:          ftID.Int64,
			Name:        ftName.String,
			Brand:       ftBrand.String,
			Description: ftDesc.String,
			CreatedAt:   ftCreated.Time,
			UpdatedAt:   ftUpdated.Time,
		}
	}
	return &s, nil
}

func (r *FeedingScheduleRepo) Create(ctx context.Context, in repository.CreateFeedingSchedule) (*model.FeedingSchedule, error) {
	now := time.Now().UTC()
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO feeding_schedules (time, food_type_id, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		in.Time, in.FoodTypeID, boolToInt(in.IsActive), now, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.InvalidReference("foodTypeId", "invalid food type ID")
		}
		return nil, fmt.Errorf("sqlite: creating feeding schedule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading feeding schedule insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *FeedingScheduleRepo) GetByID(ctx context.Context, id int64) (*model.FeedingSchedule, error) {
	s, err := scanFeedingSchedule(r.conn.QueryRowContext(ctx,
		feedingScheduleSelect+` WHERE fs.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("feeding schedule", id)
		}
		return nil, fmt.Errorf("sqlite: getting feeding schedule %d: %w", id, err)
	}
	return s, nil
}

func (r *FeedingScheduleRepo) List(ctx context.Context) ([]model.FeedingSchedule, error) {
	return r.list(ctx, feedingScheduleSelect+` ORDER BY fs.time ASC`)
}

// FindActive lists only schedules with is_active set, in time order.
func (r *FeedingScheduleRepo) FindActive(ctx context.Context) ([]model.FeedingSchedule, error) {
	return r.list(ctx, feedingScheduleSelect+` WHERE fs.is_active = 1 ORDER BY fs.time ASC`)
}

func (r *FeedingScheduleRepo) list(ctx context.Context, query string, args ...any) ([]model.FeedingSchedule, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing feeding schedules: %w", err)
	}
	defer rows.Close()

	schedules := []model.FeedingSchedule{}
	for rows.Next() {
		s, err := scanFeedingSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning feeding schedule row: %w", err)
		}
		schedules = append(schedules, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating feeding schedules: %w", err)
	}
	return schedules, nil
}

func (r *FeedingScheduleRepo) Update(ctx context.Context, id int64, in repository.UpdateFeedingSchedule) (*model.FeedingSchedule, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if in.Time != nil {
		set = append(set, "time = ?")
		args = append(args, *in.Time)
	}
	if in.FoodTypeID != nil {
		set = append(set, "food_type_id = ?")
		args = append(args, *in.FoodTypeID)
	}
	if in.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, boolToInt(*in.IsActive))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE feeding_schedules SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.InvalidReference("foodTypeId", "invalid food type ID")
		}
		return nil, fmt.Errorf("sqlite: updating feeding schedule %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("feeding schedule", id)
	}
	return r.GetByID(ctx, id)
}

func (r *FeedingScheduleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM feeding_schedules WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperror.DeleteBlocked("feeding schedule", id)
		}
		return false, fmt.Errorf("sqlite: deleting feeding schedule %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n > 0, nil
}
