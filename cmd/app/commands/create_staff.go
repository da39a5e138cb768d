package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
	staffUseCase "github.com/allisson/credvault/internal/staff/usecase"
)

// CreateStaffParams holds the flags of the create-staff command.
type CreateStaffParams struct {
	Name     string
	Email    string
	Password string
	Role     string
	Format   string
}

// RunCreateStaff provisions a staff account from the command line. It is the
// only way to create the first ADMIN, since the HTTP API requires one.
func RunCreateStaff(
	ctx context.Context,
	useCase staffUseCase.StaffUseCase,
	logger *slog.Logger,
	writer io.Writer,
	params CreateStaffParams,
) error {
	if err := validateFormat(params.Format); err != nil {
		return err
	}

	role := authDomain.Role(strings.ToUpper(strings.TrimSpace(params.Role)))
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q: must be 'ADMIN' or 'USER'", params.Role)
	}

	logger.Info("creating staff account", slog.String("role", string(role)))

	staff, err := useCase.Provision(ctx, &staffDomain.CreateStaffInput{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}

	if params.Format == formatJSON {
		if err := writeJSON(writer, map[string]any{
			"id":    staff.ID.String(),
			"name":  staff.Name,
			"email": staff.Email,
			"role":  string(staff.Role),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Staff account created successfully\n\n")
		_, _ = fmt.Fprintf(writer, "ID:    %s\n", staff.ID)
		_, _ = fmt.Fprintf(writer, "Name:  %s\n", staff.Name)
		_, _ = fmt.Fprintf(writer, "Email: %s\n", staff.Email)
		_, _ = fmt.Fprintf(writer, "Role:  %s\n", staff.Role)
	}

	logger.Info("staff account created", slog.String("staff_id", staff.ID.String()))
	return nil
}
