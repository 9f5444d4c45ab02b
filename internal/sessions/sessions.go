// Package sessions locates and parses Claude Code session transcripts.
//
// Claude Code stores one JSONL file per session under
// ~/.claude/projects/<munged-project-path>/<uuid>.jsonl, where the project
// path is munged by replacing separators with dashes. This provider finds
// session files for a project and time window and extracts the shell
// commands the assistant ran, paired with their captured output.
package sessions

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// maxTranscriptLine bounds the scanner buffer. Tool results routinely carry
// hundreds of kilobytes of build output on a single JSONL line.
const maxTranscriptLine = 8 * 1024 * 1024

// ExtractedCommand is one shell invocation recovered from a transcript.
type ExtractedCommand struct {
	Command      string
	Output       string // captured output body; "" when not captured
	OutputLen    int    // measured output byte length
	HasOutputLen bool   // false when the transcript carried no output record
	IsError      bool   // the tool reported the invocation as failed
}

// Session is a locator for one transcript file.
type Session struct {
	ID      string // uuid portion of the filename
	Path    string // absolute path to the .jsonl file
	Project string // munged project directory name
	ModTime time.Time
}

// Options configures a Provider.
type Options struct {
	// Root overrides the transcript root directory. Empty means
	// ~/.claude/projects.
	Root string

	Logger *slog.Logger
}

// Provider discovers and parses session transcripts.
type Provider struct {
	root   string
	logger *slog.Logger
}

// NewProvider creates a provider. Root resolution errors are deferred to
// DiscoverSessions so construction never fails.
func NewProvider(opts Options) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{root: opts.Root, logger: logger}
}

// DefaultRoot returns the standard Claude Code transcript root.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "projects"), nil
}

// DiscoverSessions lists session files, optionally filtered to a project and
// a trailing time window. projectFilter "" or "all" matches every project;
// otherwise it is a case-insensitive substring match against the project
// directory name. sinceDays <= 0 means no time filtering. A missing root
// yields zero sessions, not an error.
func (p *Provider) DiscoverSessions(projectFilter string, sinceDays int) ([]Session, error) {
	root := p.root
	if root == "" {
		var err error
		root, err = DefaultRoot()
		if err != nil {
			return nil, err
		}
	}

	projectDirs, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript root %s: %w", root, err)
	}

	var cutoff time.Time
	if sinceDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -sinceDays)
	}

	var sessions []Session
	for _, dir := range projectDirs {
		if !dir.IsDir() || !matchesProject(dir.Name(), projectFilter) {
			continue
		}
		found, err := p.sessionsInDir(filepath.Join(root, dir.Name()), dir.Name(), cutoff)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, found...)
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Path < sessions[j].Path })
	p.logger.Debug("discovered sessions", "count", len(sessions), "filter", projectFilter)
	return sessions, nil
}

func (p *Provider) sessionsInDir(dir, project string, cutoff time.Time) ([]Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read project dir %s: %w", dir, err)
	}

	var sessions []Session
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !cutoff.IsZero() && info.ModTime().Before(cutoff) {
			continue
		}
		sessions = append(sessions, Session{
			ID:      strings.TrimSuffix(e.Name(), ".jsonl"),
			Path:    filepath.Join(dir, e.Name()),
			Project: project,
			ModTime: info.ModTime(),
		})
	}
	return sessions, nil
}

func matchesProject(dirName, filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}
	return strings.Contains(strings.ToLower(dirName), strings.ToLower(filter))
}

// transcriptLine is the subset of a Claude Code JSONL record we consume.
type transcriptLine struct {
	Type    string `json:"type"`
	Message struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

// contentBlock is one element of a message content array.
type contentBlock struct {
	Type  string `json:"type"`
	Name  string `json:"name"` // tool_use: tool name
	ID    string `json:"id"`   // tool_use: invocation id
	Input struct {
		Command string `json:"command"`
	} `json:"input"`
	ToolUseID string          `json:"tool_use_id"` // tool_result: pairs with ID
	IsError   bool            `json:"is_error"`
	Content   json.RawMessage `json:"content"` // tool_result: string or blocks
}

// ExtractCommands parses one session transcript and returns its shell
// commands in chronological order. Bash tool_use blocks are paired with the
// tool_result blocks that reference them; a command whose result never
// appears (interrupted session) is kept with no output record. A malformed
// line fails the whole session — the caller counts it and moves on.
func (p *Provider) ExtractCommands(s Session) ([]ExtractedCommand, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", s.ID, err)
	}
	defer f.Close()

	var (
		commands []ExtractedCommand
		byToolID = make(map[string]int) // tool_use id -> index in commands
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxTranscriptLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line transcriptLine
		if err := json.Unmarshal(raw, &line); err != nil {
			return nil, fmt.Errorf("parse session %s line %d: %w", s.ID, lineNo, err)
		}
		if line.Type != "assistant" && line.Type != "user" {
			continue
		}

		blocks, err := decodeContentBlocks(line.Message.Content)
		if err != nil {
			return nil, fmt.Errorf("parse session %s line %d content: %w", s.ID, lineNo, err)
		}

		for _, b := range blocks {
			switch b.Type {
			case "tool_use":
				if b.Name != "Bash" || strings.TrimSpace(b.Input.Command) == "" {
					continue
				}
				byToolID[b.ID] = len(commands)
				commands = append(commands, ExtractedCommand{Command: b.Input.Command})
			case "tool_result":
				idx, ok := byToolID[b.ToolUseID]
				if !ok {
					continue
				}
				output := decodeResultText(b.Content)
				commands[idx].Output = output
				commands[idx].OutputLen = len(output)
				commands[idx].HasOutputLen = true
				commands[idx].IsError = b.IsError
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan session %s: %w", s.ID, err)
	}

	p.logger.Debug("extracted commands", "session", s.ID, "count", len(commands))
	return commands, nil
}

// decodeContentBlocks handles the two shapes message content takes: a plain
// string (no tool activity) or an array of typed blocks.
func decodeContentBlocks(raw json.RawMessage) ([]contentBlock, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, nil
	}
	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// decodeResultText flattens a tool_result content payload — either a bare
// string or an array of text blocks — into one string.
func decodeResultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, b := range blocks {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String()
}
