package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_FlagCorrection(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "npm run build", IsError: true, Output: "Unknown option '--foo'"},
		{Command: "npm run build --force", IsError: false, Output: "built in 2.1s"},
	}

	candidates := d.Detect(cmds)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "npm", c.BaseCommand)
	assert.Equal(t, KindFlag, c.ErrorType)
	assert.Equal(t, "npm run build", c.WrongPattern)
	assert.Equal(t, "npm run build --force", c.RightPattern)
	assert.Greater(t, c.Confidence, 0.0)
	assert.LessOrEqual(t, c.Confidence, 1.0)
}

func TestDetect_FixWithinWindow(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "npm run build", IsError: true, Output: "unknown option --foo"},
		{Command: "ls -la", IsError: false},
		{Command: "npm run build --force", IsError: false, Output: "done"},
	}

	candidates := d.Detect(cmds)
	require.Len(t, candidates, 1)
	assert.Equal(t, "npm", candidates[0].BaseCommand)

	// The immediate fix in TestDetect_FlagCorrection scores higher than this
	// one found a step further away.
	immediate := d.Detect([]CommandExecution{
		{Command: "npm run build", IsError: true, Output: "unknown option --foo"},
		{Command: "npm run build --force", IsError: false},
	})
	require.Len(t, immediate, 1)
	assert.Greater(t, immediate[0].Confidence, candidates[0].Confidence)
}

func TestDetect_FixOutsideWindowIgnored(t *testing.T) {
	d := NewDetector(DetectorConfig{Window: 2})

	cmds := []CommandExecution{
		{Command: "go test ./...", IsError: true, Output: "FAIL: unknown flag -buggy"},
		{Command: "ls", IsError: false},
		{Command: "pwd", IsError: false},
		{Command: "go test -run TestFoo ./...", IsError: false},
	}

	assert.Empty(t, d.Detect(cmds))
}

func TestDetect_InferredFailure(t *testing.T) {
	// No explicit error flag; the failure is inferred from the output text.
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "cat config.yml", IsError: false, Output: "cat: config.yml: No such file or directory"},
		{Command: "cat config.yaml", IsError: false, Output: "server:\n  port: 8080"},
	}

	candidates := d.Detect(cmds)
	require.Len(t, candidates, 1)
	assert.Equal(t, KindPath, candidates[0].ErrorType)

	// Inferred failures score below explicit ones for the same shape.
	explicit := d.Detect([]CommandExecution{
		{Command: "cat config.yml", IsError: true, Output: "cat: config.yml: No such file or directory"},
		{Command: "cat config.yaml", IsError: false, Output: "ok"},
	})
	require.Len(t, explicit, 1)
	assert.Greater(t, explicit[0].Confidence, candidates[0].Confidence)
}

func TestDetect_DifferentToolNotACorrection(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "yarn build", IsError: true, Output: "error: command failed"},
		{Command: "npm run build", IsError: false},
	}

	assert.Empty(t, d.Detect(cmds))
}

func TestDetect_RetrySkippedVariantFound(t *testing.T) {
	// A verbatim retry is not a correction; the real variant after it is.
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "npm run build", IsError: true, Output: "unknown option"},
		{Command: "npm run build", IsError: false},
		{Command: "npm run build --force", IsError: false},
	}

	candidates := d.Detect(cmds)
	require.Len(t, candidates, 1)
	assert.Equal(t, "npm run build --force", candidates[0].RightPattern)
}

func TestDetect_FailedFixNotMatched(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "git pus", IsError: true, Output: "git: 'pus' is not a valid command"},
		{Command: "git push --fore", IsError: true, Output: "error: unknown option `fore'"},
	}

	// The second command is itself an error and cannot serve as the fix,
	// but it starts its own episode with nothing after it.
	assert.Empty(t, d.Detect(cmds))
}

func TestDetect_SuccessOnlySessionEmpty(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "git status", IsError: false, Output: "clean"},
		{Command: "go test ./...", IsError: false, Output: "ok"},
	}

	assert.Empty(t, d.Detect(cmds))
}

func TestDetect_PathsNormalizedIntoPatterns(t *testing.T) {
	d := NewDetector(DefaultDetectorConfig())

	cmds := []CommandExecution{
		{Command: "python /Users/alice/scripts/run.py", IsError: true, Output: "No such file or directory"},
		{Command: "python /Users/alice/scripts/main.py --verbose", IsError: false},
	}

	candidates := d.Detect(cmds)
	require.Len(t, candidates, 1)
	assert.Equal(t, "python <path>", candidates[0].WrongPattern)
	assert.Equal(t, "python <path> --verbose", candidates[0].RightPattern)
}

func TestClassifyOutput(t *testing.T) {
	tests := []struct {
		output      string
		wantKind    ErrorKind
		wantMatched bool
	}{
		{"Unknown option '--foo'", KindFlag, true},
		{"flag provided but not defined: -x", KindFlag, true},
		{"git: 'pus' is not a valid command", KindSubcommand, true},
		{"ls: /nope: No such file or directory", KindPath, true},
		{"bash: gti: command not found", KindPath, true},
		{"open /root/secret: permission denied", KindPermission, true},
		{"fatal: not a git repository", KindGeneric, true},
		{"all 42 tests passed", KindGeneric, false},
		{"", KindGeneric, false},
	}

	for _, tt := range tests {
		kind, matched := classifyOutput(tt.output)
		assert.Equal(t, tt.wantMatched, matched, "output %q", tt.output)
		if tt.wantMatched {
			assert.Equal(t, tt.wantKind, kind, "output %q", tt.output)
		}
	}
}
