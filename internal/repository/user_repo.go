package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/yusufkecer/momentum-backend/internal/domain"
)

const mysqlDuplicateEntry = 1062

const userColumns = `id, name, email, password_hash, gender, height_cm, weight_kg, profile_completed, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, gender, height_cm, weight_kg, profile_completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, string(u.Gender), u.HeightCm, u.WeightKg, u.ProfileCompleted, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return 0, domain.ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return result.LastInsertId()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET name = ?, gender = ?, height_cm = ?, weight_kg = ?, profile_completed = ?, updated_at = ?
		 WHERE id = ?`,
		u.Name, string(u.Gender), u.HeightCm, u.WeightKg, u.ProfileCompleted, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var gender string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &gender, &u.HeightCm, &u.WeightKg,
		&u.ProfileCompleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Gender = domain.Gender(gender)
	return &u, nil
}
