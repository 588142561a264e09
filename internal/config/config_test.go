package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vgn360/internal/screen"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "https://www.vgn360.com", cfg.API.BaseURL)
	assert.Equal(t, "https://vgn360.com", cfg.API.LeadBaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, screen.OTPBypass, cfg.OTPMode())
	assert.Equal(t, "9884358122", cfg.OTP.TestMobile)
	assert.Equal(t, "1234", cfg.OTP.TestCode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("VGN360_API_TIMEOUT", "3s")
	t.Setenv("VGN360_OTP_MODE", "server")
	t.Setenv("VGN360_API_BASE_URL", "http://localhost:9000/")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, screen.OTPServer, cfg.OTPMode())
	assert.Equal(t, "http://localhost:9000", cfg.Gateway().BaseURL)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vgn360.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\notp:\n  test_code: \"9999\"\n"), 0o600))

	cfg, err := Load(Options{File: path})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9999", cfg.OTP.TestCode)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("VGN360_LOG_FILE=/tmp/vgn360-test.log\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("VGN360_LOG_FILE") })

	cfg, err := Load(Options{EnvFile: path})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vgn360-test.log", cfg.Log.File)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), ".env")})
	assert.NoError(t, err)
}

func TestLoad_Flags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--otp-mode=server", "--timeout=250ms"}))

	cfg, err := Load(Options{Flags: fs})
	require.NoError(t, err)
	assert.Equal(t, screen.OTPServer, cfg.OTPMode())
	assert.Equal(t, 250*time.Millisecond, cfg.API.Timeout)
	assert.Equal(t, "https://www.vgn360.com", cfg.API.BaseURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("VGN360_OTP_MODE", "sms")
	_, err := Load(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mode")

	t.Setenv("VGN360_OTP_MODE", "bypass")
	t.Setenv("VGN360_OTP_TEST_MOBILE", "12345")
	_, err = Load(Options{})
	assert.Error(t, err)
}
