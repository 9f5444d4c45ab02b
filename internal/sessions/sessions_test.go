package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, root, project, id string, lines ...string) string {
	t.Helper()
	dir := filepath.Join(root, project)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, id+".jsonl")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func toolUseLine(id, command string) string {
	return fmt.Sprintf(`{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":%q,"name":"Bash","input":{"command":%q}}]}}`, id, command)
}

func toolResultLine(id, output string, isError bool) string {
	return fmt.Sprintf(`{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":%q,"is_error":%t,"content":%q}]}}`, id, isError, output)
}

func TestDiscoverSessions(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-home-alice-webapp", "aaaa", toolUseLine("t1", "ls"))
	writeSession(t, root, "-home-alice-webapp", "bbbb", toolUseLine("t1", "ls"))
	writeSession(t, root, "-home-alice-api", "cccc", toolUseLine("t1", "ls"))

	p := NewProvider(Options{Root: root})

	all, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	webapp, err := p.DiscoverSessions("webapp", 0)
	require.NoError(t, err)
	require.Len(t, webapp, 2)
	for _, s := range webapp {
		assert.Equal(t, "-home-alice-webapp", s.Project)
	}

	none, err := p.DiscoverSessions("no-such-project", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDiscoverSessions_MissingRoot(t *testing.T) {
	p := NewProvider(Options{Root: filepath.Join(t.TempDir(), "does-not-exist")})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDiscoverSessions_AllKeyword(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-home-alice-webapp", "aaaa", toolUseLine("t1", "ls"))

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("all", 0)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestExtractCommands_PairsResults(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-proj", "s1",
		toolUseLine("t1", "git status"),
		toolResultLine("t1", "On branch main\nnothing to commit", false),
		toolUseLine("t2", "npm run build"),
		toolResultLine("t2", "Unknown option '--foo'", true),
	)

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	cmds, err := p.ExtractCommands(sessions[0])
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	assert.Equal(t, "git status", cmds[0].Command)
	assert.False(t, cmds[0].IsError)
	assert.True(t, cmds[0].HasOutputLen)
	assert.Equal(t, len("On branch main\nnothing to commit"), cmds[0].OutputLen)
	assert.Contains(t, cmds[0].Output, "On branch main")

	assert.Equal(t, "npm run build", cmds[1].Command)
	assert.True(t, cmds[1].IsError)
}

func TestExtractCommands_MissingResultKept(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-proj", "s1",
		toolUseLine("t1", "go test ./..."),
		// Session interrupted before the result arrived.
	)

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)

	cmds, err := p.ExtractCommands(sessions[0])
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "go test ./...", cmds[0].Command)
	assert.False(t, cmds[0].HasOutputLen)
}

func TestExtractCommands_NonBashToolsSkipped(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-proj", "s1",
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Read","input":{"file_path":"/tmp/x"}}]}}`,
		`{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"thinking..."}]}}`,
		`{"type":"summary","summary":"a session"}`,
		toolUseLine("t2", "ls -la"),
	)

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)

	cmds, err := p.ExtractCommands(sessions[0])
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "ls -la", cmds[0].Command)
}

func TestExtractCommands_StringContentIgnored(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-proj", "s1",
		`{"type":"user","message":{"role":"user","content":"please run the tests"}}`,
		toolUseLine("t1", "pytest"),
	)

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)

	cmds, err := p.ExtractCommands(sessions[0])
	require.NoError(t, err)
	assert.Len(t, cmds, 1)
}

func TestExtractCommands_ResultBlockArray(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-proj", "s1",
		toolUseLine("t1", "echo hi"),
		`{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1","content":[{"type":"text","text":"hi"},{"type":"text","text":"!"}]}]}}`,
	)

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)

	cmds, err := p.ExtractCommands(sessions[0])
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "hi!", cmds[0].Output)
}

func TestExtractCommands_MalformedLineFailsSession(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "-proj", "s1",
		toolUseLine("t1", "ls"),
		`{this is not json`,
	)

	p := NewProvider(Options{Root: root})
	sessions, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)

	_, err = p.ExtractCommands(sessions[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s1")
}

func TestDiscoverSessions_TimeWindow(t *testing.T) {
	root := t.TempDir()
	oldPath := writeSession(t, root, "-proj", "old", toolUseLine("t1", "ls"))
	writeSession(t, root, "-proj", "new", toolUseLine("t1", "ls"))

	// Age the old session past a 7-day window.
	old := timeDaysAgo(30)
	require.NoError(t, os.Chtimes(oldPath, old, old))

	p := NewProvider(Options{Root: root})
	recent, err := p.DiscoverSessions("", 7)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].ID)

	all, err := p.DiscoverSessions("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
