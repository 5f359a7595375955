package cli

import (
	"context"
	"errors"

	"portfolio-contact/internal/domain"
	"portfolio-contact/internal/usecase"
	"portfolio-contact/pkg/apperror"

	"github.com/spf13/cobra"
)

type CommandDeps struct {
	// NewController returns a fresh controller; each command run owns one form
	NewController func() domain.ContactController
	Health        usecase.HealthUsecase
	// RunForm drives a controller interactively until the user quits
	RunForm func(ctx context.Context, ctrl domain.ContactController) error
}

func NewRootCommand(deps CommandDeps) *cobra.Command {
	root := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the portfolio contact form",
		Long: `contact relays a message from the portfolio contact form to its owner.

Without a subcommand it opens the interactive form. The relay is configured
through the environment (or a .env file): CONTACT_PROVIDER, CONTACT_EMAIL_TO,
EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID, EMAILJS_PUBLIC_KEY or the SMTP_* set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.RunForm(cmd.Context(), deps.NewController())
		},
	}

	root.AddCommand(
		newFormCommand(deps),
		newSendCommand(deps),
		newValidateCommand(deps),
		newDoctorCommand(deps),
	)
	return root
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if apperror.IsKind(err, apperror.KindValidation) {
		return 2
	}
	return 1
}

// Reported reports whether err was already rendered to the user by a command
func Reported(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
