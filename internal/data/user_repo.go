package data

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/target/dialtone/internal/data/pgxutil"
	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
)

// UserRepo reads user records and verifies submitted credentials.
// It implements ports.CredentialStore.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// dummyHash is compared against when no user matches the phone, so a
// rejected login costs one bcrypt comparison regardless of whether the
// account exists. The digest is of an unguessable random value.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Verify looks up the user by phone and compares the password against the
// stored bcrypt hash. It returns (nil, nil) for both an unknown phone and a
// wrong password; only store failures surface as errors.
func (r *UserRepo) Verify(ctx context.Context, phone, password string) (*domainauth.User, error) {
	if phone == "" || password == "" {
		return nil, nil
	}

	user, err := r.findByPhone(ctx, phone)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Equalize timing with the found-user path.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	return user, nil
}

// findByPhone fetches a user row by its unique phone identifier.
func (r *UserRepo) findByPhone(ctx context.Context, phone string) (*domainauth.User, error) {
	var u domainauth.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, phone, password_hash, created_at
			FROM users
			WHERE phone = $1`, phone)
		if err != nil {
			return err
		}
		defer rows.Close()
		u, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &u, nil
}

// GetByID fetches a user by id. Sessions reference users by id and look
// them up fresh on every request; a dangling reference maps to NotFound.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domainauth.User, error) {
	var u domainauth.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, phone, password_hash, created_at
			FROM users
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		u, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &u, nil
}

// Create inserts a user with a bcrypt-hashed password. Registration is
// out-of-band for this service; this exists for seeding and admin tooling.
func (r *UserRepo) Create(ctx context.Context, phone, password string, cost int) (*domainauth.User, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInfrastructure, "hash password")
	}

	var u domainauth.User
	id := uuid.NewString()
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, phone, password_hash)
			VALUES ($1, $2, $3)
			RETURNING id, phone, password_hash, created_at`, id, phone, string(hash))
		if err != nil {
			return err
		}
		defer rows.Close()
		u, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &u, nil
}

// HashPassword produces a bcrypt hash at the given cost, clamping out-of-range
// costs to the bcrypt default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
