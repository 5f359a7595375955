package usecase

import (
	"context"
	"strconv"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// ProviderInfo is what the health check knows about the configured relay
type ProviderInfo struct {
	Name       string
	Configured bool
	Recipient  string
}

type healthUsecase struct {
	provider ProviderInfo
}

func NewHealthUsecase(provider ProviderInfo) HealthUsecase {
	return &healthUsecase{provider: provider}
}

// Check reports "ok" when submissions can reach the provider, "degraded" when
// they would fail with a configuration error.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := "ok"
	if !u.provider.Configured || u.provider.Recipient == "" {
		status = "degraded"
	}
	return map[string]string{
		"status":               status,
		"provider":             u.provider.Name,
		"provider_configured":  strconv.FormatBool(u.provider.Configured),
		"recipient_configured": strconv.FormatBool(u.provider.Recipient != ""),
	}
}
