// Package troubleshoot explains PostgreSQL error messages and suggests
// fixes.
package troubleshoot

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// CodeLookup describes an error code, typically from the PostgreSQL
// error-codes appendix.
type CodeLookup interface {
	LookupErrorCode(ctx context.Context, code string) (string, error)
}

var (
	numericCode = regexp.MustCompile(`ERROR:\s+(\d+)`)
	sqlState    = regexp.MustCompile(`(?i)(?:SQL\s*state:?|SQLSTATE)\s*\[?([0-9A-Z]{5})\b`)
	syntaxHint  = regexp.MustCompile(`ERROR:[^\n]*\n[^\n]*`)
)

// Analyzer classifies errors and attaches code details when a lookup is
// configured.
type Analyzer struct {
	lookup CodeLookup
	log    zerolog.Logger
}

// NewAnalyzer returns an analyzer. lookup may be nil.
func NewAnalyzer(lookup CodeLookup, log zerolog.Logger) *Analyzer {
	return &Analyzer{lookup: lookup, log: log}
}

// ExtractCode finds an error code in the message: a number following
// "ERROR:", or else a five-character SQLSTATE.
func ExtractCode(text string) string {
	if m := numericCode.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := sqlState.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// Analyze explains text. Empty text yields the Unknown analysis asking
// for the full message.
func (a *Analyzer) Analyze(ctx context.Context, text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return Analysis{
			ErrorType:   "Unknown",
			Explanation: "No error text provided for analysis.",
			Solution:    "Please provide the complete error message for analysis.",
		}
	}

	code := ExtractCode(text)
	typ := Classify(text)
	d := errorDetails[typ]
	explanation := d.explanation

	if code != "" && a.lookup != nil {
		info, err := a.lookup.LookupErrorCode(ctx, code)
		if err != nil {
			a.log.Debug().Err(err).Str("code", code).Msg("error code lookup failed")
		} else if info != "" {
			explanation += "\n\nError Code Details: " + info
		}
	}

	if typ == TypeSyntaxError {
		if m := syntaxHint.FindString(text); m != "" {
			explanation += "\n\nSpecific Error: " + m
		}
	}

	return Analysis{
		ErrorType:   Title(typ),
		Explanation: explanation,
		Solution:    d.solution,
		ErrorCode:   code,
	}
}

// Title renders an error type for display: syntax_error becomes
// "Syntax Error".
func Title(typ ErrorType) string {
	words := strings.Split(string(typ), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
