package acl

import "fmt"

// minPolicyLineLen mirrors sizeof("@. a@b %B+") - 1 from the original parser:
// the shortest line that could possibly hold a selector, a local id and a
// rule, each at their own minimum length, separated by single spaces.
const minPolicyLineLen = len("@. a@b %B+")

// PolicyLineError reports a malformed policy line at a specific byte offset.
type PolicyLineError struct {
	Offset int
}

func (e *PolicyLineError) Error() string {
	return fmt.Sprintf("acl: malformed policy line at offset %d", e.Offset)
}

func isGraph(c byte) bool { return c > ' ' && c < 0x7f }
func isPrint(c byte) bool { return c >= ' ' && c < 0x7f }

// PolicyLine is one parsed "remotesel localid aclrule" triplet from a
// policy file.
type PolicyLine struct {
	RemoteSel string
	LocalID   string
	ACLRule   string
}

// ParsePolicyLine parses line as:
//
//	policyline = *WSP remotesel 1*WSP localid 1*WSP aclrule
//	remotesel  = 2*graph
//	localid    = 3*graph
//	aclrule    = 3*print
//
// blanks beyond the separating whitespace are not otherwise significant.
func ParsePolicyLine(line string) (PolicyLine, error) {
	if len(line) < minPolicyLineLen {
		return PolicyLine{}, &PolicyLineError{Offset: 0}
	}

	n := 0

	for n < len(line) && isBlank(line[n]) {
		n++
	}
	if n == len(line) {
		return PolicyLine{}, &PolicyLineError{Offset: n - 1}
	}
	remoteStart := n
	for n < len(line) && isGraph(line[n]) {
		n++
	}
	if n == len(line) {
		return PolicyLine{}, &PolicyLineError{Offset: n - 1}
	}
	if !isBlank(line[n]) {
		return PolicyLine{}, &PolicyLineError{Offset: n}
	}
	remoteSel := line[remoteStart:n]
	if len(remoteSel) < 2 {
		return PolicyLine{}, &PolicyLineError{Offset: n}
	}

	for n < len(line) && isBlank(line[n]) {
		n++
	}
	if n == len(line) {
		return PolicyLine{}, &PolicyLineError{Offset: n - 1}
	}
	localStart := n
	for n < len(line) && isGraph(line[n]) {
		n++
	}
	if n == len(line) {
		return PolicyLine{}, &PolicyLineError{Offset: n - 1}
	}
	if !isBlank(line[n]) {
		return PolicyLine{}, &PolicyLineError{Offset: n}
	}
	localID := line[localStart:n]
	if len(localID) < 3 {
		return PolicyLine{}, &PolicyLineError{Offset: n}
	}

	for n < len(line) && isBlank(line[n]) {
		n++
	}
	if n == len(line) {
		return PolicyLine{}, &PolicyLineError{Offset: n - 1}
	}
	ruleStart := n
	for n < len(line) && isPrint(line[n]) {
		n++
	}
	if n != len(line) {
		return PolicyLine{}, &PolicyLineError{Offset: n}
	}
	aclRule := line[ruleStart:n]
	if len(aclRule) < 3 {
		return PolicyLine{}, &PolicyLineError{Offset: n - 1}
	}

	return PolicyLine{RemoteSel: remoteSel, LocalID: localID, ACLRule: aclRule}, nil
}
