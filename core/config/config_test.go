package config_test

import (
	"testing"

	"nc-usersync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "users.csv", cfg.Roster.File)
	assert.Equal(t, ";", cfg.Roster.Delimiter)
	assert.Equal(t, 12, cfg.Roster.PasswordLength)
	assert.Equal(t, 30, cfg.Nextcloud.TimeoutSeconds)
	assert.Equal(t, "en", cfg.Nextcloud.Language)
	assert.Equal(t, "sqlite", cfg.History.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Report.PDF)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("NEXTCLOUD_URL", "https://cloud.example.org")
	t.Setenv("NEXTCLOUD_ADMIN_USER", "ncadmin")
	t.Setenv("ROSTER_PASSWORD_LENGTH", "20")
	t.Setenv("SYNC_PROTECTED", "principal,it-support")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://cloud.example.org", cfg.Nextcloud.URL)
	assert.Equal(t, "ncadmin", cfg.Nextcloud.AdminUser)
	assert.Equal(t, 20, cfg.Roster.PasswordLength)
	assert.Equal(t, []string{"principal", "it-support"}, cfg.Sync.Protected)
}
