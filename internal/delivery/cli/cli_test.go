package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio-contact/internal/delivery/cli"
	"portfolio-contact/internal/domain"
	"portfolio-contact/internal/usecase"
	"portfolio-contact/pkg/apperror"
	"portfolio-contact/pkg/audit"
	"portfolio-contact/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSender struct {
	result   *domain.SendResult
	err      error
	payloads []domain.ContactPayload
}

func (s *stubSender) Send(ctx context.Context, payload domain.ContactPayload) (*domain.SendResult, error) {
	s.payloads = append(s.payloads, payload)
	return s.result, s.err
}

func newDeps(sender domain.MessageSender, health usecase.HealthUsecase) cli.CommandDeps {
	v := validator.New()
	validation.RegisterValidators(v)
	return cli.CommandDeps{
		NewController: func() domain.ContactController {
			return usecase.NewContactController(sender, v, usecase.ContactOptions{
				Recipient: "owner@example.com",
				Provider:  "test",
				Events:    audit.NewLogger(zap.NewNop(), "portfolio-contact", "test"),
			})
		},
		Health: health,
		RunForm: func(ctx context.Context, ctrl domain.ContactController) error {
			return errors.New("interactive form not available in tests")
		},
	}
}

func execute(t *testing.T, deps cli.CommandDeps, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand(deps)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var validArgs = []string{
	"--name", "Anas",
	"--email", "a@b.com",
	"--subject", "Hello there",
	"--message", "This is a sufficiently long message.",
}

func TestSendCommand_Success(t *testing.T) {
	sender := &stubSender{result: &domain.SendResult{StatusCode: 200, Text: "OK"}}
	deps := newDeps(sender, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

	out, err := execute(t, deps, append([]string{"send"}, validArgs...)...)

	require.NoError(t, err)
	assert.Contains(t, out, domain.NoticeSentText)
	require.Len(t, sender.payloads, 1)
	assert.Equal(t, domain.ContactPayload{
		FromName:  "Anas",
		FromEmail: "a@b.com",
		Subject:   "Hello there",
		Message:   "This is a sufficiently long message.",
		ToEmail:   "owner@example.com",
	}, sender.payloads[0])
	assert.Equal(t, 0, cli.ExitCode(err))
}

func TestSendCommand_InvalidListsErrorsInFormOrder(t *testing.T) {
	sender := &stubSender{}
	deps := newDeps(sender, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

	out, err := execute(t, deps, "send", "--name", "A", "--email", "bad")

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.True(t, cli.Reported(err))
	assert.Equal(t, 2, cli.ExitCode(err))
	assert.Empty(t, sender.payloads)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "name:"))
	assert.True(t, strings.HasPrefix(lines[1], "email:"))
	assert.True(t, strings.HasPrefix(lines[2], "subject:"))
	assert.True(t, strings.HasPrefix(lines[3], "message:"))
	assert.Contains(t, lines[1], "Please enter a valid email address")
}

func TestSendCommand_ProviderFailure(t *testing.T) {
	sender := &stubSender{result: &domain.SendResult{StatusCode: 400, Text: "The Public Key is invalid"}}
	deps := newDeps(sender, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

	out, err := execute(t, deps, append([]string{"send"}, validArgs...)...)

	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindSubmission))
	assert.Equal(t, 1, cli.ExitCode(err))
	assert.Contains(t, out, domain.NoticeFailedText)
	assert.NotContains(t, out, "Public Key")
}

func TestSendCommand_JSON(t *testing.T) {
	sender := &stubSender{result: &domain.SendResult{StatusCode: 200, Text: "OK"}}
	deps := newDeps(sender, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

	out, err := execute(t, deps, append([]string{"send", "--json"}, validArgs...)...)
	require.NoError(t, err)

	var resp struct {
		Success      bool   `json:"success"`
		Message      string `json:"message"`
		SubmissionID string `json:"submission_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.NoticeSentText, resp.Message)
	assert.NotEmpty(t, resp.SubmissionID)
}

func TestSendCommand_MessageFile(t *testing.T) {
	sender := &stubSender{result: &domain.SendResult{StatusCode: 200, Text: "OK"}}
	deps := newDeps(sender, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

	path := filepath.Join(t.TempDir(), "message.txt")
	require.NoError(t, os.WriteFile(path, []byte("Body read from a file on disk.\n"), 0o600))

	_, err := execute(t, deps, "send",
		"--name", "Anas", "--email", "a@b.com", "--subject", "Hello there",
		"--message-file", path)

	require.NoError(t, err)
	require.Len(t, sender.payloads, 1)
	assert.Equal(t, "Body read from a file on disk.", sender.payloads[0].Message)
}

func TestSendCommand_MessageFlagsExclusive(t *testing.T) {
	deps := newDeps(&stubSender{}, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

	_, err := execute(t, deps, "send", "--message", "inline message body", "--message-file", "x.txt")

	require.Error(t, err)
	assert.False(t, cli.Reported(err))
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		contains string
	}{
		{
			name:     "valid form",
			args:     validArgs,
			contains: "Form is valid",
		},
		{
			name:     "short message",
			args:     []string{"--name", "Anas", "--email", "a@b.com", "--subject", "Hello", "--message", "too short"},
			wantErr:  true,
			contains: "at least 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{}
			deps := newDeps(sender, usecase.NewHealthUsecase(usecase.ProviderInfo{}))

			out, err := execute(t, deps, append([]string{"validate"}, tt.args...)...)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, apperror.KindValidation))
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.contains)
			assert.Empty(t, sender.payloads)
		})
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		health := usecase.NewHealthUsecase(usecase.ProviderInfo{Name: "emailjs", Configured: true, Recipient: "owner@example.com"})
		out, err := execute(t, newDeps(&stubSender{}, health), "doctor")

		require.NoError(t, err)
		assert.Contains(t, out, "status:")
		assert.Contains(t, out, "ok")
		assert.Contains(t, out, "emailjs")
	})

	t.Run("missing recipient", func(t *testing.T) {
		health := usecase.NewHealthUsecase(usecase.ProviderInfo{Name: "emailjs", Configured: true})
		out, err := execute(t, newDeps(&stubSender{}, health), "doctor", "--json")

		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))

		var resp struct {
			Success bool              `json:"success"`
			Error   map[string]string `json:"error"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "degraded", resp.Error["status"])
		assert.Equal(t, "false", resp.Error["recipient_configured"])
	})
}

func TestRootCommand_RunsForm(t *testing.T) {
	var got domain.ContactController
	deps := newDeps(&stubSender{}, usecase.NewHealthUsecase(usecase.ProviderInfo{}))
	deps.RunForm = func(ctx context.Context, ctrl domain.ContactController) error {
		got = ctrl
		return nil
	}

	_, err := execute(t, deps)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusIdle, got.Snapshot().Status)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, cli.ExitCode(nil))
	assert.Equal(t, 2, cli.ExitCode(apperror.Validation("bad")))
	assert.Equal(t, 1, cli.ExitCode(apperror.Configuration("missing")))
	assert.Equal(t, 1, cli.ExitCode(errors.New("boom")))
}
