package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"portfolio-contact/internal/delivery/cli/response"
	"portfolio-contact/internal/domain"
	"portfolio-contact/pkg/apperror"

	"github.com/spf13/cobra"
)

// fieldFlags binds one flag per contact form field
type fieldFlags struct {
	form        domain.ContactForm
	messageFile string
	asJSON      bool
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.form.Name, "name", "", "your name")
	flags.StringVar(&f.form.Email, "email", "", "your email address")
	flags.StringVar(&f.form.Subject, "subject", "", "message subject")
	flags.StringVar(&f.form.Message, "message", "", "message body (10 to 1000 characters)")
	flags.StringVar(&f.messageFile, "message-file", "", "read the message body from a file, - for stdin")
	flags.BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")
}

// fill copies the flag values into ctrl the same way typing into the form does
func (f *fieldFlags) fill(cmd *cobra.Command, ctrl domain.ContactController) error {
	if f.messageFile != "" {
		body, err := readMessageFile(cmd.InOrStdin(), f.messageFile)
		if err != nil {
			return err
		}
		f.form.Message = body
	}
	for _, field := range domain.ContactFields {
		ctrl.UpdateField(field, f.form.Get(field))
	}
	return nil
}

func readMessageFile(stdin io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func newFormCommand(deps CommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.RunForm(cmd.Context(), deps.NewController())
		},
	}
}

func newSendCommand(deps CommandDeps) *cobra.Command {
	flags := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate the given fields and send them once",
		Example: `  contact send --name "Jane" --email jane@example.com \
    --subject "Project inquiry" --message "I would like to talk about a project."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := deps.NewController()
			if err := flags.fill(cmd, ctrl); err != nil {
				return err
			}

			outcome := ctrl.Submit(cmd.Context())
			return reportSubmission(cmd.OutOrStdout(), outcome, ctrl.Snapshot(), flags.asJSON)
		},
	}
	flags.register(cmd)
	return cmd
}

func newValidateCommand(deps CommandDeps) *cobra.Command {
	flags := &fieldFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the given fields without sending anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := deps.NewController()
			if err := flags.fill(cmd, ctrl); err != nil {
				return err
			}

			errs := ctrl.Validate()
			w := cmd.OutOrStdout()
			if errs.Valid() {
				if flags.asJSON {
					return response.Success(w, "Form is valid", nil, "")
				}
				fmt.Fprintln(w, "Form is valid")
				return nil
			}

			if flags.asJSON {
				if err := response.Error(w, "Form is invalid", errs, ""); err != nil {
					return err
				}
			} else {
				writeErrors(w, errs)
			}
			return apperror.Validation("contact form is invalid")
		},
	}
	flags.register(cmd)
	return cmd
}

func reportSubmission(w io.Writer, outcome domain.SubmissionOutcome, snap domain.ContactSnapshot, asJSON bool) error {
	switch outcome {
	case domain.OutcomeSent:
		if asJSON {
			return response.Success(w, snap.Notice.Text, nil, snap.SubmissionID)
		}
		fmt.Fprintln(w, snap.Notice.Text)
		return nil

	case domain.OutcomeInvalid:
		if asJSON {
			if err := response.Error(w, "Form is invalid", snap.Errors, ""); err != nil {
				return err
			}
		} else {
			writeErrors(w, snap.Errors)
		}
		return apperror.Validation("contact form is invalid")

	case domain.OutcomeFailed:
		if asJSON {
			if err := response.Error(w, snap.Notice.Text, nil, snap.SubmissionID); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(w, snap.Notice.Text)
		}
		return apperror.Submission(snap.Notice.Text, nil)
	}

	msg := "A submission is already in progress"
	if asJSON {
		_ = response.Error(w, msg, nil, snap.SubmissionID)
	} else {
		fmt.Fprintln(w, msg)
	}
	return apperror.Submission(msg, nil)
}

// writeErrors prints one line per invalid field in form order
func writeErrors(w io.Writer, errs domain.ErrorMap) {
	for _, f := range domain.ContactFields {
		if fe, ok := errs[f]; ok {
			fmt.Fprintf(w, "%-8s %s\n", string(f)+":", fe.Message)
		}
	}
}
