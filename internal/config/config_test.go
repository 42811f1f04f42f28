package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tjorim/rota-backend/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("DATABASE_DSN", "postgres://localhost/rota")
	t.Setenv("INITIAL_ADMIN_PASSWORD", "secret")
	t.Setenv("INITIAL_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SEED_USER_PASSWORD", "secret")
	t.Setenv("EMAIL_USER_DOMAIN", "example.com")
	t.Setenv("EMAIL_SMTP_USERNAME", "mailer@example.com")
	t.Setenv("EMAIL_SMTP_PASSWORD", "secret")
	t.Setenv("EMAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("RABBITMQ_DSN", "amqp://localhost")
	t.Setenv("REDIS_PASSWORD", "secret")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/rota", cfg.Database.DSN)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "2025-01-06", cfg.Rotation.ReferenceDate)
	assert.Equal(t, 1, cfg.Rotation.ReferenceTeam)
	assert.Equal(t, 1, cfg.InitialAdmin.Team)
}

// 缺少必填项时必须返回错误，而不是带着空配置继续启动
func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)

	// t.Setenv 登记了恢复逻辑之后再 unset，测试结束后环境会还原
	t.Setenv("DATABASE_DSN", "")
	os.Unsetenv("DATABASE_DSN")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}
