package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/internal/auth"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

type stubAuthService struct {
	result *auth.LoginResult
	err    error
}

func (s stubAuthService) Login(_ context.Context, _ auth.LoginInput) (*auth.LoginResult, error) {
	return s.result, s.err
}

func (s stubAuthService) CreateUser(_ context.Context, _ auth.CreateUserInput) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func TestAuthLoginSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	handler := AuthLogin(stubAuthService{result: &auth.LoginResult{
		Token:     "jwt-token",
		UserID:    userID,
		Email:     "ops@netrix.com.co",
		Role:      enums.UserRoleAdmin,
		ExpiresAt: time.Now().Add(2 * time.Hour),
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ops@netrix.com.co","password":"hunter22"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope struct {
		Data loginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data.Token != "jwt-token" {
		t.Fatalf("token = %q", envelope.Data.Token)
	}
	if envelope.Data.UserID != userID {
		t.Fatalf("user_id = %s, want %s", envelope.Data.UserID, userID)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	t.Parallel()

	handler := AuthLogin(stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ops@netrix.com.co","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	handler := AuthLogin(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
