// Package cli holds the operator subcommands run against the database directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/flowcast/internal/db"
	"github.com/terraincognita07/flowcast/internal/logger"
	"github.com/terraincognita07/flowcast/internal/security"
	"github.com/terraincognita07/flowcast/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the user's password with a generated temporary
// one and prints it. The user has to change it on the next login.
func RunResetPasswordCommand(ctx context.Context, database *gorm.DB, email string, out io.Writer, log *logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}

	repos := db.NewRepositories(database)
	user, err := services.NewAuthService(repos.Users).ResetPassword(ctx, email, temporaryPassword)
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return fmt.Errorf("invalid email address %q", email)
	case errors.Is(err, services.ErrUserNotFound):
		return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
	case err != nil:
		return fmt.Errorf("reset password: %w", err)
	}

	log.Info("password reset", "user_id", user.ID)
	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
