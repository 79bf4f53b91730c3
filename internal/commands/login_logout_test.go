package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbridge/internal/commands"
	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
)

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	t.Setenv("TASKBRIDGE_CLIENT_ID", "")
	t.Setenv("TASKBRIDGE_CLIENT_SECRET", "")

	cfg := &config.Config{Dir: t.TempDir()}
	var outBuf, errBuf bytes.Buffer

	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, errBuf.String(), "no OAuth client credentials")
	assert.Contains(t, errBuf.String(), config.OAuthClientFile)
}

func TestLoginCommand_InvalidOAuthClientFile(t *testing.T) {
	t.Setenv("TASKBRIDGE_CLIENT_ID", "")
	t.Setenv("TASKBRIDGE_CLIENT_SECRET", "")

	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(cfg.OAuthClientPath(), []byte(`{"client_id": ""}`), 0600))

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, errBuf.String(), "client_id or client_secret")
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	var outBuf, errBuf bytes.Buffer

	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "not logged in\n", outBuf.String())
}

func TestLogoutCommand_RemovesToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	tokenPath := filepath.Join(cfg.Dir, config.TokenFile)
	require.NoError(t, os.WriteFile(tokenPath, []byte(`{"access_token":"at-1"}`), 0600))

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", outBuf.String())
	assert.NoFileExists(t, tokenPath)
}

func TestLogoutCommand_Quiet(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir(), Quiet: true}
	var outBuf, errBuf bytes.Buffer

	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, outBuf.String())
}
