package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/security"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	created []*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.created = append(f.created, u)
	return u, nil
}
func (f *fakeUserRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}
func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}
func (f *fakeUserRepo) ListAll(_ context.Context) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]any) error {
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "netrix-test", ExpirationMinutes: 30}
	pwCfg := config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
	return jwtCfg, pwCfg
}

func TestLogin(t *testing.T) {
	jwtCfg, pwCfg := testConfigs()
	hash, err := security.HashPassword("operator-pass", pwCfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	repo := &fakeUserRepo{byEmail: map[string]*models.User{
		"ops@netrix.test": {ID: uuid.New(), Email: "ops@netrix.test", PasswordHash: hash, Role: enums.UserRoleAdmin},
	}}
	svc, err := NewService(repo, jwtCfg, pwCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginInput{Email: "Ops@Netrix.Test", Password: "operator-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a minted token")
	}
	if result.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected role %s", result.Role)
	}

	_, err = svc.Login(ctx, LoginInput{Email: "ops@netrix.test", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@netrix.test", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	jwtCfg, pwCfg := testConfigs()
	repo := &fakeUserRepo{byEmail: map[string]*models.User{}}
	svc, err := NewService(repo, jwtCfg, pwCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{Email: "New@Netrix.Test", Password: "long-enough"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "new@netrix.test" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != enums.UserRoleOperator {
		t.Fatalf("expected default operator role, got %s", user.Role)
	}
	if !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", user.PasswordHash)
	}

	if _, err := svc.CreateUser(ctx, CreateUserInput{Email: "x@y.z", Password: "short"}); err == nil {
		t.Fatal("expected error for short password")
	}
}
