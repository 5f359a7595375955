package domain

import "context"

type CtxKey string

const (
	KeySubmissionID CtxKey = "SubmissionID"
)

// SubmissionIDFrom returns the submission id carried by ctx, or ""
func SubmissionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeySubmissionID).(string)
	return id
}
