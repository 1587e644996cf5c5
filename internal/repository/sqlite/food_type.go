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

var _ repository.FoodTypeRepository = (*FoodTypeRepo)(nil)

// FoodTypeRepo implements repository.FoodTypeRepository.
type FoodTypeRepo struct {
	conn *sql.DB
}

// FoodTypes returns the food-type repository backed by this database.
func (db *DB) FoodTypes() *FoodTypeRepo { return &FoodTypeRepo{conn: db.conn} }

const foodTypeColumns = "id, name, brand, description, created_at, updated_at"

func scanFoodType(rs rowScanner) (*model.FoodType, error) {
	var ft model.FoodType
	var brand, desc sql.NullString
	if err := rs.Scan(&ft.ID, &ft.Name, &brand, &desc, &ft.CreatedAt, &ft.UpdatedAt); err != nil {
		return nil, err
	}
	ft.Brand = brand.String
	ft.Description = desc.String
	return &ft, nil
}

func (r *FoodTypeRepo) Create(ctx context.Context, in repository.CreateFoodType) (*model.FoodType, error) {
	now := time.Now().UTC()
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO food_types (name, brand, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		in.Name, nullIfEmpty(in.Brand), nullIfEmpty(in.Description), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: creating food type: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading food type insert id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *FoodTypeRepo) GetByID(ctx context.Context, id int64) (*model.FoodType, error) {
	ft, err := scanFoodType(r.conn.QueryRowContext(ctx,
		`SELECT `+foodTypeColumns+` FROM food_types WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("food type", id)
		}
		return nil, fmt.Errorf("sqlite: getting food type %d: %w", id, err)
	}
	return ft, nil
}

func (r *FoodTypeRepo) List(ctx context.Context) ([]model.FoodType, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+foodTypeColumns+` FROM food_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing food types: %w", err)
	}
	defer rows.Close()

	foodTypes := []model.FoodType{}
	for rows.Next() {
		ft, err := scanFoodType(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning food type row: %w", err)
		}
		foodTypes = append(foodTypes, *ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating food types: %w", err)
	}
	return foodTypes, nil
}

func (r *FoodTypeRepo) Update(ctx context.Context, id int64, in repository.UpdateFoodType) (*model.FoodType, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if in.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Brand != nil {
		set = append(set, "brand = ?")
		args = append(args, nullIfEmpty(*in.Brand))
	}
	if in.Description != nil {
		set = append(set, "description = ?")
		args = append(args, nullIfEmpty(*in.Description))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.conn.ExecContext(ctx,
		`UPDATE food_types SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating food type %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("food type", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a food type. Deleting one still referenced by a feeding
// schedule is rejected by the store and surfaced as a conflict.
func (r *FoodTypeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM food_types WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperror.DeleteBlocked("food type", id)
		}
		return false, fmt.Errorf("sqlite: deleting food type %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n > 0, nil
}
