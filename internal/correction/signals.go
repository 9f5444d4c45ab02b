// Package correction detects and deduplicates correction episodes in shell
// session transcripts: a failed command followed, within the same session,
// by a working variant of the same tool. The detector is recall-oriented;
// every candidate carries a confidence score and downstream consumers filter
// by threshold.
package correction

import "strings"

// ErrorKind classifies what went wrong in the failed half of an episode.
type ErrorKind string

const (
	KindFlag       ErrorKind = "flag"       // missing or incorrect flag
	KindSubcommand ErrorKind = "subcommand" // unknown subcommand
	KindPath       ErrorKind = "path"       // missing file or bad path
	KindPermission ErrorKind = "permission" // permission or access error
	KindGeneric    ErrorKind = "generic"    // failed, cause not recognized
)

// failureSignatures maps lowercase output phrases to error kinds, checked in
// order. More specific phrases come first: "unknown option" must win over a
// generic "error:" match, and file-not-found phrasing must not be swallowed
// by the bare "not found" of command lookup failures.
var failureSignatures = []struct {
	phrase string
	kind   ErrorKind
}{
	{"unknown option", KindFlag},
	{"unknown flag", KindFlag},
	{"unrecognized option", KindFlag},
	{"invalid option", KindFlag},
	{"invalid flag", KindFlag},
	{"flag provided but not defined", KindFlag},
	{"illegal option", KindFlag},

	{"unknown subcommand", KindSubcommand},
	{"unknown command", KindSubcommand},
	{"is not a valid command", KindSubcommand},
	{"no such subcommand", KindSubcommand},

	{"no such file or directory", KindPath},
	{"no such file", KindPath},
	{"cannot find", KindPath},
	{"does not exist", KindPath},
	{"not a directory", KindPath},
	{"command not found", KindPath},
	{"not found", KindPath},

	{"permission denied", KindPermission},
	{"operation not permitted", KindPermission},
	{"access denied", KindPermission},
	{"eacces", KindPermission},

	{"fatal:", KindGeneric},
	{"error:", KindGeneric},
	{"panic:", KindGeneric},
	{"exit status", KindGeneric},
	{"exited with code", KindGeneric},
	{"non-zero exit", KindGeneric},
	{"traceback (most recent call last)", KindGeneric},
}

// classifyOutput scans captured output for a known failure signature.
// The second return is false when no signature matched.
func classifyOutput(output string) (ErrorKind, bool) {
	if output == "" {
		return KindGeneric, false
	}
	lower := strings.ToLower(output)
	for _, sig := range failureSignatures {
		if strings.Contains(lower, sig.phrase) {
			return sig.kind, true
		}
	}
	return KindGeneric, false
}
