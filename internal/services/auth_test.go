package services

import (
	"context"
	"testing"
	"time"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/repos"
	"github.com/aethermind/rag-backend/internal/requestdata"
	"github.com/aethermind/rag-backend/internal/types"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	return NewAuthService(
		db,
		log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		"test-secret",
		15*time.Minute,
		24*time.Hour,
	)
}

func registerAndLogin(t *testing.T, svc AuthService, email string) (string, string) {
	t.Helper()
	ctx := context.Background()
	user := &types.User{
		Email:     email,
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if err := svc.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	access, refresh, err := svc.LoginUser(ctx, email, "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	return access, refresh
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newAuthFixture(t)
	access, refresh := registerAndLogin(t, svc, "ada@example.com")
	if access == "" || refresh == "" {
		t.Fatalf("empty tokens from login")
	}

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID.String() == "" {
		t.Fatalf("request data not populated from token")
	}
	if rd.RefreshToken != refresh {
		t.Fatalf("refresh token not resolved from access token")
	}
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	svc := newAuthFixture(t)
	registerAndLogin(t, svc, "dup@example.com")

	err := svc.RegisterUser(context.Background(), &types.User{
		Email:    "DUP@example.com",
		Password: "password123",
	})
	if err == nil {
		t.Fatalf("expected duplicate email rejection")
	}
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("want validation_error, got %s", apperrors.CodeOf(err))
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	svc := newAuthFixture(t)
	registerAndLogin(t, svc, "ada@example.com")

	_, _, err := svc.LoginUser(context.Background(), "ada@example.com", "wrong-password")
	if err == nil {
		t.Fatalf("expected unauthorized")
	}
	if apperrors.CodeOf(err) != apperrors.CodeUnauthorized {
		t.Fatalf("want unauthorized, got %s", apperrors.CodeOf(err))
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc := newAuthFixture(t)
	access, refresh := registerAndLogin(t, svc, "ada@example.com")

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}

	newAccess, newRefresh, err := svc.RefreshUser(ctx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token not rotated")
	}
	if newAccess == "" {
		t.Fatalf("empty access token from refresh")
	}

	// The old refresh token is gone after rotation.
	staleCtx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString:  access,
		RefreshToken: refresh,
	})
	if _, _, err := svc.RefreshUser(staleCtx); err == nil {
		t.Fatalf("expected rotation to invalidate old refresh token")
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc := newAuthFixture(t)
	access, _ := registerAndLogin(t, svc, "ada@example.com")

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if err := svc.LogoutUser(ctx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}

	// The JWT still parses, but its session row is gone.
	ctx2, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken after logout: %v", err)
	}
	rd := requestdata.GetRequestData(ctx2)
	if rd == nil {
		t.Fatalf("request data missing")
	}
	if rd.RefreshToken != "" {
		t.Fatalf("session row should be gone after logout")
	}
}

func TestSetContextFromTokenGarbageRejected(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.SetContextFromToken(context.Background(), "not-a-jwt")
	if err == nil {
		t.Fatalf("expected parse failure")
	}
	if apperrors.CodeOf(err) != apperrors.CodeUnauthorized {
		t.Fatalf("want unauthorized, got %s", apperrors.CodeOf(err))
	}
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	svc := newAuthFixture(t)
	err := svc.RegisterUser(context.Background(), &types.User{
		Email:    "short@example.com",
		Password: "short",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("want validation_error, got %s", apperrors.CodeOf(err))
	}
}
