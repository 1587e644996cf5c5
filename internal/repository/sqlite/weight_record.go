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

var _ repository.WeightRecordRepository = (*WeightRecordRepo)(nil)

// WeightRecordRepo implements repository.WeightRecordRepository.
// Reads hydrate the referenced pet via a left join.
type WeightRecordRepo struct {
	conn *sql.DB
}

// WeightRecords returns the weight repository backed by this database.
func (db *DB) WeightRecords() *WeightRecordRepo {
	return &WeightRecordRepo{conn: db.conn}
}

const weightRecordSelect = `SELECT
	wr.id, wr.pet_id, wr.weight, wr.recorded_date, wr.notes, wr.created_at,
	p.id, p.name, p.species, p.birth_date, p.created_at, p.updated_at
FROM weight_records wr
LEFT JOIN pets p ON wr.pet_id = p.id`

// scanWeightRecord maps one joined row to a model.WeightRecord. A dangling
// pet reference leaves Pet nil without suppressing the record.
func scanWeightRecord(rs rowScanner) (*model.WeightRecord, error) {
	var w model.WeightRecord
	var recorded, pBirth any
	var notes sql.NullString
	var pID sql.NullInt64
	var pName, pSpecies sql.NullString
	var pCreated, pUpdated sql.NullTime
	if err := rs.Scan(
		&w.ID, &w.PetID, &w.Weight, &recorded, &notes, &w.CreatedAt,
		&pID, &pName, &pSpecies, &pBirth, &pCreated, &pUpdated,
	); err != nil {
		return nil, err
	}
	w.RecordedDate = dateString(recorded)
	w.Notes = notes.String
	if pID.Valid {
		w.Pet = &model.Pet{
			ID:        pID.Int64,
			Name:      pName.String,
			Species:   pSpecies.String,
			BirthDate: dateString(pBirth),
			CreatedAt: pCreated.Time,
			UpdatedAt: pUpdated.Time,
		}
	}
	return &w, nil
}

func (r *WeightRecordRepo) Create(ctx context.Context, in repository.CreateWeightRecord) (*model.WeightRecord, error) {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO weight_records (pet_id, weight, recorded_date, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		in.PetID, in.Weight, in.RecordedDate, nullIfEmpty(in.Notes), time.Now().UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.InvalidReference("petId", "invalid pet ID")
		}
		return nil, fmt.Errorf("sqlite: creating weight record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading weight record insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *WeightRecordRepo) GetByID(ctx context.Context, id int64) (*model.WeightRecord, error) {
	w, err := scanWeightRecord(r.conn.QueryRowContext(ctx,
		weightRecordSelect+` WHERE wr.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("weight record", id)
		}
		return nil, fmt.Errorf("sqlite: getting weight record %d: %w", id, err)
	}
	return w, nil
}

// List returns weight records, optionally filtered to one pet, newest
// recorded date first.
func (r *WeightRecordRepo) List(ctx context.Context, petID *int64) ([]model.WeightRecord, error) {
	if petID != nil {
		return r.list(ctx,
			weightRecordSelect+` WHERE wr.pet_id = ? ORDER BY wr.recorded_date DESC, wr.created_at DESC`,
			*petID)
	}
	return r.list(ctx,
		weightRecordSelect+` ORDER BY wr.recorded_date DESC, wr.created_at DESC`)
}

// FindByPetAndDateRange returns one pet's records with recorded_date in
// the inclusive range, oldest first (chart order).
func (r *WeightRecordRepo) FindByPetAndDateRange(ctx context.Context, petID int64, startDate, endDate string) ([]model.WeightRecord, error) {
	return r.list(ctx,
		weightRecordSelect+` WHERE wr.pet_id = ? AND wr.recorded_date BETWEEN ? AND ? ORDER BY wr.recorded_date ASC`,
		petID, startDate, endDate)
}

// FindLatestByPet returns the pet's most recent weigh-in, breaking
// same-day ties by creation time.
func (r *WeightRecordRepo) FindLatestByPet(ctx context.Context, petID int64) (*model.WeightRecord, error) {
	w, err := scanWeightRecord(r.conn.QueryRowContext(ctx,
		weightRecordSelect+` WHERE wr.pet_id = ? ORDER BY wr.recorded_date DESC, wr.created_at DESC LIMIT 1`,
		petID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("weight record for pet", petID)
		}
		return nil, fmt.Errorf("sqlite: getting latest weight record for pet %d: %w", petID, err)
	}
	return w, nil
}

func (r *WeightRecordRepo) list(ctx context.Context, query string, args ...any) ([]model.WeightRecord, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing weight records: %w", err)
	}
	defer rows.Close()

	records := []model.WeightRecord{}
	for rows.Next() {
		w, err := scanWeightRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning weight record row: %w", err)
		}
		records = append(records, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating weight records: %w", err)
	}
	return records, nil
}

// Update applies the supplied fields; weight records carry no updated_at.
func (r *WeightRecordRepo) Update(ctx context.Context, id int64, in repository.UpdateWeightRecord) (*model.WeightRecord, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if in.PetID != nil {
		set = append(set, "pet_id = ?")
		args = append(args, *in.PetID)
	}
	if in.Weight != nil {
		set = append(set, "weight = ?")
		args = append(args, *in.Weight)
	}
	if in.RecordedDate != nil {
		set = append(set, "recorded_date = ?")
		args = append(args, *in.RecordedDate)
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
		`UPDATE weight_records SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperror.InvalidReference("petId", "invalid pet ID")
		}
		return nil, fmt.Errorf("sqlite: updating weight record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("weight record", id)
	}
	return r.GetByID(ctx, id)
}

func (r *WeightRecordRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM weight_records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting weight record %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n > 0, nil
}
