package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScriptParsesAndCompiles(t *testing.T) {
	script, err := LoadScript("../../examples/customer_server.bot")
	require.NoError(t, err)
	assert.Equal(t, "customer_server.bot", script.Filename)
	assert.Contains(t, script.Program.BotOrder, "custBot")
}

func TestLoadScriptMissingFileErrors(t *testing.T) {
	_, err := LoadScript("../../examples/does_not_exist.bot")
	assert.Error(t, err)
}

func TestListScriptsReturnsSortedBotFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bot"), []byte("bot b {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bot"), []byte("bot a {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	names, err := ListScripts(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bot", "b.bot"}, names)
}

func TestFirstBotNameReturnsFirstDeclaredBot(t *testing.T) {
	script, err := LoadScript("../../examples/profile_manager.bot")
	require.NoError(t, err)
	name, ok := FirstBotName(script.Program)
	assert.True(t, ok)
	assert.Equal(t, "profBot", name)
}
