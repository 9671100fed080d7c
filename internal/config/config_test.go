package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SHOP_PORT", "9090")
	t.Setenv("SHOP_JWT_SECRET", testSecret)
	t.Setenv("SHOP_TOKEN_TTL", "1h")
	t.Setenv("SHOP_CASCADE_ON_PURCHASE", "false")
	t.Setenv("SHOP_METRICS_ENABLED", "false")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, testSecret, cfg.JWTSecret)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.False(t, cfg.CascadeOnPurchase)
	require.False(t, cfg.MetricsEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	body := "port: \"7000\"\nstaff_email: staff@shop.test\nstaff_password: hunter2hunter2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Port)
	require.Equal(t, "staff@shop.test", cfg.StaffEmail)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt_secret")

	cfg.JWTSecret = testSecret
	require.NoError(t, cfg.Validate())

	cfg.StaffEmail = "staff@shop.test"
	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "set together")
}
