package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_SECRET_SSM_PARAMETER", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("ADMIN_PASSWORD", "not-the-default")
}

func TestLoad_Defaults(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("ACCEPTED_ORIGINS", "https://example.com, http://localhost:3000 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddr())
	assert.Equal(t, 180*time.Second, cfg.ReadTimeout())
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, []string{"https://example.com", "http://localhost:3000"}, cfg.AcceptedOrigins)
	assert.False(t, cfg.EmailNotificationsEnabled())
	assert.False(t, cfg.SMSNotificationsEnabled())
}

func TestLoad_DefaultAdminPassword(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrDefaultAdminPassword)

	t.Setenv("APP_ENV", "staging")
	_, err = Load()
	assert.ErrorIs(t, err, ErrDefaultAdminPassword)

	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "admin123", cfg.AdminPassword)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_SupabaseDSN(t *testing.T) {
	t.Setenv("DB_TYPE", "supa")
	t.Setenv("ADMIN_PASSWORD", "not-the-default")
	t.Setenv("SUPABASE_DB_HOST", "db.example.supabase.co")
	t.Setenv("SUPABASE_DB_USER", "postgres")
	t.Setenv("SUPABASE_DB_PASSWORD", "secret")
	t.Setenv("SUPABASE_DB_NAME", "portfolio")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t,
		"host=db.example.supabase.co user=postgres password=secret dbname=portfolio port=5432 sslmode=require",
		cfg.Supabase.DSN())
}

func TestLoad_UnknownDBType(t *testing.T) {
	t.Setenv("DB_TYPE", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

type fakeSSM struct {
	values map[string]string
	err    error
}

func (f *fakeSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[aws.ToString(params.Name)]
	if !ok {
		return &ssm.GetParameterOutput{}, nil
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}, nil
}

func TestResolveJWTSecret(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps explicit secret", func(t *testing.T) {
		cfg := &Config{JWTSecret: "from-env"}
		require.NoError(t, cfg.ResolveJWTSecret(ctx, nil))
		assert.Equal(t, "from-env", cfg.JWTSecret)
	})

	t.Run("fails fast without any source", func(t *testing.T) {
		cfg := &Config{}
		assert.ErrorIs(t, cfg.ResolveJWTSecret(ctx, nil), ErrMissingJWTSecret)
	})

	t.Run("reads from parameter store", func(t *testing.T) {
		store := &ssmParameterStore{client: &fakeSSM{values: map[string]string{"/portfolio/jwt": "from-ssm"}}}
		cfg := &Config{JWTSecretSSMParameter: "/portfolio/jwt"}
		require.NoError(t, cfg.ResolveJWTSecret(ctx, store))
		assert.Equal(t, "from-ssm", cfg.JWTSecret)
	})

	t.Run("missing parameter value", func(t *testing.T) {
		store := &ssmParameterStore{client: &fakeSSM{values: map[string]string{}}}
		cfg := &Config{JWTSecretSSMParameter: "/portfolio/jwt"}
		assert.Error(t, cfg.ResolveJWTSecret(ctx, store))
		assert.Empty(t, cfg.JWTSecret)
	})

	t.Run("parameter store failure", func(t *testing.T) {
		store := &ssmParameterStore{client: &fakeSSM{err: errors.New("access denied")}}
		cfg := &Config{JWTSecretSSMParameter: "/portfolio/jwt"}
		err := cfg.ResolveJWTSecret(ctx, store)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})
}
