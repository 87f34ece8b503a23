// Package devseed populates a development database with known login
// accounts. It is wired only into the admin binary, never the server.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/target/dialtone/internal/data"
	apperrors "github.com/target/dialtone/internal/errors"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB         *sql.DB
	BcryptCost int

	users *data.UserRepo
}

// NewServices constructs the repositories required for seeding.
func NewServices(db *sql.DB, bcryptCost int) Services {
	return Services{
		DB:         db,
		BcryptCost: bcryptCost,
		users:      data.NewUserRepo(db),
	}
}

type seedUser struct {
	Phone    string
	Password string
}

// devUsers are the well-known development accounts. Their passwords are
// intentionally public; never seed a shared environment.
var devUsers = []seedUser{
	{Phone: "+15550100001", Password: "dialtone-dev-1"},
	{Phone: "+15550100002", Password: "dialtone-dev-2"},
}

// Run seeds the development accounts. Re-running is safe: an account that
// already exists is skipped.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	for _, su := range devUsers {
		user, err := svcs.users.Create(ctx, su.Phone, su.Password, svcs.BcryptCost)
		if err != nil {
			if apperrors.IsConflict(err) {
				if logger != nil {
					logger.InfoContext(ctx, "seed user already exists", "phone", su.Phone)
				}
				continue
			}
			failures++
			if logger != nil {
				logger.ErrorContext(ctx, "seed user failed", "phone", su.Phone, "error", err)
			}
			continue
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded user", "phone", user.Phone, "id", user.ID)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}
