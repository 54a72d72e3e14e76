// Package policyfile imports ARPA2 ACL policy text files into an acl.Store,
// caching the result against the source file's modification time the way
// the original importer caches against a sibling ".db" file.
package policyfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/arpa2/go-a2acl/acl"
	"github.com/rs/zerolog"
	"golang.org/x/net/idna"
)

// LineError reports a malformed line at a specific 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("policyfile: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Loader imports policy text files into a Store.
type Loader struct {
	Store  acl.Store
	Logger zerolog.Logger
}

// NewLoader returns a Loader that imports into store, logging nothing
// unless a logger is attached afterwards.
func NewLoader(store acl.Store) *Loader {
	return &Loader{Store: store, Logger: zerolog.Nop()}
}

// LoadFile reads path line by line, parsing each as a policy line and
// storing the resulting rule. Blank lines and lines starting with '#' are
// skipped, matching the textual convention of hand-edited policy files
// (the original importer has no comment syntax; this is an addition for
// hand-maintained files, never fed to a2acl_fromdes itself).
//
// Returns the number of rules imported.
func (l *Loader) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	imported := 0
	lineNo := 0

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lineNo++
		line := sc.Text()

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		pl, err := acl.ParsePolicyLine(line)
		if err != nil {
			return imported, &LineError{Line: lineNo, Err: err}
		}

		remoteSel := normalizeDomain(pl.RemoteSel)
		localID := normalizeDomain(pl.LocalID)

		if err := l.Store.Put(remoteSel, localID, pl.ACLRule); err != nil {
			return imported, &LineError{Line: lineNo, Err: err}
		}
		imported++
	}
	if err := sc.Err(); err != nil {
		return imported, err
	}

	l.Logger.Info().Str("file", path).Int("rules", imported).Msg("policy file imported")
	return imported, nil
}

// normalizeDomain rewrites the domain part of an A2ID/selector string
// (everything from the last '@' onward) to its IDNA A-label form.
// Selector-only domains like "@." or "@" or a domain with an empty label
// are left untouched — IDNA has nothing meaningful to say about them, and
// the A2ID grammar, not IDNA, is authoritative for their syntax.
func normalizeDomain(id string) string {
	at := strings.LastIndexByte(id, '@')
	if at == -1 {
		return id
	}
	local, domain := id[:at], id[at+1:]
	if domain == "" || domain == "." {
		return id
	}

	trimmed := strings.TrimSuffix(domain, ".")
	ascii, err := idna.Lookup.ToASCII(trimmed)
	if err != nil {
		return id
	}
	if strings.HasSuffix(domain, ".") {
		ascii += "."
	}
	return local + "@" + strings.ToLower(ascii)
}
