package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/studyportal/internal/config"
)

// AdminEnsurer creates or promotes the administrator account.
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, email, password string) error
}

// ErrAdminPasswordMissing is returned when an admin email is configured without a password.
var ErrAdminPasswordMissing = errors.New("portal.admin_password is required when portal.admin_email is set")

// CreateDefaultData makes sure the configured administrator exists. Without an
// admin email nothing is seeded.
func CreateDefaultData(ctx context.Context, cfg *config.Config, admins AdminEnsurer, lgr zerolog.Logger) error {
	email := cfg.Portal.AdminEmail
	if email == "" {
		lgr.Info().Msg("No admin email configured, skipping admin seeding")
		return nil
	}
	if cfg.Portal.AdminPassword == "" {
		return ErrAdminPasswordMissing
	}

	lgr.Info().Str("email", email).Msg("Checking/Creating default admin user...")
	if err := admins.EnsureAdmin(ctx, email, cfg.Portal.AdminPassword); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	lgr.Info().Msg("Default data check/creation finished.")
	return nil
}
