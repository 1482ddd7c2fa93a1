package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/studyportal/internal/config"
)

type recordingEnsurer struct {
	calls []string
	err   error
}

func (r *recordingEnsurer) EnsureAdmin(ctx context.Context, email, password string) error {
	r.calls = append(r.calls, email+"/"+password)
	return r.err
}

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	ens := &recordingEnsurer{}
	if err := CreateDefaultData(ctx, cfg, ens, zerolog.Nop()); err != nil || len(ens.calls) != 0 {
		t.Fatalf("no admin email: err=%v calls=%v", err, ens.calls)
	}

	cfg.Portal.AdminEmail = "admin@example.com"
	if err := CreateDefaultData(ctx, cfg, ens, zerolog.Nop()); !errors.Is(err, ErrAdminPasswordMissing) {
		t.Fatalf("missing password: err=%v", err)
	}

	cfg.Portal.AdminPassword = "change-me-now"
	if err := CreateDefaultData(ctx, cfg, ens, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if len(ens.calls) != 1 || ens.calls[0] != "admin@example.com/change-me-now" {
		t.Errorf("calls = %v", ens.calls)
	}

	ens.err = errors.New("db down")
	if err := CreateDefaultData(ctx, cfg, ens, zerolog.Nop()); err == nil {
		t.Error("expected the ensure error to surface")
	}
}
