package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accumanage/portal/internal/config"
)

func testLoader() ConfigLoader {
	return func() (*config.Config, error) {
		return &config.Config{Auth: config.AuthConfig{
			JWTSecret:              "cli-secret",
			SessionTTLMinutes:      60,
			AdminSessionTTLMinutes: 15,
		}}, nil
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(testLoader())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMintThenInspect(t *testing.T) {
	token, err := execute(t, "mint", "--user-id", "42", "--email", "ops@example.com", "--role", "admin", "--admin")
	require.NoError(t, err)
	token = strings.TrimSpace(token)
	require.Len(t, strings.Split(token, "."), 3)

	out, err := execute(t, "inspect", token)
	require.NoError(t, err)

	var report InspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Agree)
	require.True(t, report.Codec.OK)
	assert.Equal(t, "42", report.Codec.Claims.UserID)
	assert.Equal(t, int64(15*60), report.Codec.Claims.ExpiresAt-report.Codec.Claims.IssuedAt)
}

func TestInspectRejectedTokenStillAgrees(t *testing.T) {
	out, err := execute(t, "inspect", "a.b.c")
	require.NoError(t, err)

	var report InspectReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Codec.OK)
	assert.False(t, report.Edge.OK)
	assert.True(t, report.Agree)
}

func TestMintRejectsUnknownRole(t *testing.T) {
	_, err := execute(t, "mint", "--user-id", "1", "--role", "owner")
	assert.ErrorContains(t, err, "unknown role")
}

func TestMintRequiresUserID(t *testing.T) {
	_, err := execute(t, "mint")
	assert.Error(t, err)
}
