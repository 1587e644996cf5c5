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

var _ repository.PetRepository = (*PetRepo)(nil)

// PetRepo implements repository.PetRepository.
type PetRepo struct {
	conn *sql.DB
}

// Pets returns the pet repository backed by this database.
func (db *DB) Pets() *PetRepo { return &PetRepo{conn: db.conn} }

const petColumns = "id, name, species, birth_date, created_at, updated_at"

// scanPet maps one pets row to a model.Pet. Every pet query goes through
// this function so the NULL birth_date → "" coercion happens exactly once.
func scanPet(rs rowScanner) (*model.Pet, error) {
	var p model.Pet
	var birth any
	if err := rs.Scan(&p.ID, &p.Name, &p.Species, &birth, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.BirthDate = dateString(birth)
	return &p, nil
}

func (r *PetRepo) Create(ctx context.Context, in repository.CreatePet) (*model.Pet, error) {
	now := time.Now().UTC()
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO pets (name, species, birth_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		in.Name, in.Species, nullIfEmpty(in.BirthDate), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: creating pet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading pet insert id: %w", err)
	}
	// Read the row back so the caller sees exactly what was persisted,
	// including defaulted and coerced fields.
	return r.GetByID(ctx, id)
}

func (r *PetRepo) GetByID(ctx context.Context, id int64) (*model.Pet, error) {
	pet, err := scanPet(r.conn.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("pet", id)
		}
		return nil, fmt.Errorf("sqlite: getting pet %d: %w", id, err)
	}
	return pet, nil
}

func (r *PetRepo) List(ctx context.Context) ([]model.Pet, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+petColumns+` FROM pets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing pets: %w", err)
	}
	defer rows.Close()

	pets := []model.Pet{}
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning pet row: %w", err)
		}
		pets = append(pets, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating pets: %w", err)
	}
	return pets, nil
}

// Update applies exactly the fields present in the partial input. A fully
// empty partial performs no write and returns the current row; updated_at
// is refreshed only when something changes.
func (r *PetRepo) Update(ctx context.Context, id int64, in repository.UpdatePet) (*model.Pet, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if in.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Species != nil {
		set = append(set, "species = ?")
		args = append(args, *in.Species)
	}
	if in.BirthDate != nil {
		set = append(set, "birth_date = ?")
		args = append(args, nullIfEmpty(*in.BirthDate))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE pets SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating pet %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("pet", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a pet. It returns false, nil when no row matched and a
// conflict error when weight records still reference the pet — the
// schema restricts rather than cascades.
func (r *PetRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperror.DeleteBlocked("pet", id)
		}
		return false, fmt.Errorf("sqlite: deleting pet %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n > 0, nil
}
