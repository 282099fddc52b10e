package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadReadsYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
database:
  url: "postgres://localhost/test"
auth:
  jwt_secret: "desde-el-yaml"
chatbot:
  base_url: "http://bot:9090"
  timeout_seconds: 3
`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "postgres://localhost/test", cfg.Database.URL)
	assert.Equal(t, "desde-el-yaml", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Chatbot.TimeoutSeconds)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "desde-el-yaml"
`)

	t.Setenv("JWT_SECRET", "desde-el-entorno")
	t.Setenv("SERVER_ADDR", ":7777")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "desde-el-entorno", cfg.Auth.JWTSecret)
	assert.Equal(t, ":7777", cfg.Server.Addr)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{}`))
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, 10, cfg.Chatbot.TimeoutSeconds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/existe/config.yaml")
	assert.Error(t, err)
}
