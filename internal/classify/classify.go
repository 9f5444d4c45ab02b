// Package classify maps atomic shell commands onto the rtk taxonomy.
//
// Classification is a pure function of the command text: the registry is
// built once at init and never mutated, so the same input always yields the
// same verdict regardless of session context or call order.
package classify

import "strings"

// WrapperName is the invocation name of the optimizing wrapper. Commands
// already routed through it are counted separately by the aggregator.
const WrapperName = "rtk"

// Kind discriminates the classification union.
type Kind int

const (
	// KindSupported means the command has an rtk equivalent.
	KindSupported Kind = iota
	// KindUnsupported means the command is real work rtk does not cover.
	KindUnsupported
	// KindIgnored means the command is noise or already optimized.
	KindIgnored
)

// Status describes how far along rtk support is for a registry entry.
type Status string

const (
	StatusExisting     Status = "existing"      // dedicated filter shipped
	StatusPassthrough  Status = "passthrough"   // rtk forwards, trims banner noise only
	StatusNotSupported Status = "not_supported" // mapped, filter not built yet
)

// Classification is the verdict for one atomic command.
//
// For KindSupported, RTKEquivalent, Category, SavingsPct, and Status are
// set. For KindUnsupported, BaseCommand is set. KindIgnored carries no
// metadata.
type Classification struct {
	Kind          Kind
	RTKEquivalent string
	Category      string
	SavingsPct    float64
	Status        Status
	BaseCommand   string
}

// Classify maps one atomic command string to its taxonomy verdict.
//
// Matching policy: the first two whitespace-delimited tokens are tried
// against the registry (multi-word tools such as "git status"), then the
// first token alone. A command invoking the wrapper itself, or a recognized
// noise command, is Ignored. Everything else is Unsupported keyed by its
// base command.
func Classify(cmd string) Classification {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return Classification{Kind: KindIgnored}
	}

	base := fields[0]
	if base == WrapperName {
		return Classification{Kind: KindIgnored}
	}

	if len(fields) >= 2 {
		if entry, ok := registry[base+" "+fields[1]]; ok {
			return supported(entry)
		}
	}
	if entry, ok := registry[base]; ok {
		return supported(entry)
	}

	if _, ok := noiseCommands[base]; ok {
		return Classification{Kind: KindIgnored}
	}

	return Classification{Kind: KindUnsupported, BaseCommand: base}
}

// BaseCommand returns the first whitespace-delimited token of a command, or
// "" for blank input.
func BaseCommand(cmd string) string {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsWrapperInvocation reports whether the command invokes the wrapper
// directly (exactly "rtk" or an "rtk ..." command line).
func IsWrapperInvocation(cmd string) bool {
	return BaseCommand(cmd) == WrapperName
}

func supported(e Entry) Classification {
	return Classification{
		Kind:          KindSupported,
		RTKEquivalent: e.Equivalent,
		Category:      e.Category,
		SavingsPct:    e.SavingsPct,
		Status:        e.Status,
	}
}
