// Package acl implements the ARPA2 ACL rule grammar: segment iteration,
// policy-line parsing, a pluggable rule store and the whichlist decision
// procedure that resolves a (remote, local) identifier pair to a list
// verdict.
package acl

import "fmt"

// List is the single-letter ACL list tag: Whitelist, Greylist, Blacklist or
// Abandoned.
type List byte

const (
	Whitelist List = 'W'
	Greylist  List = 'G'
	Blacklist List = 'B'
	Abandoned List = 'A'
)

func (l List) String() string { return string(l) }

// Valid reports whether l is one of the four defined list tags.
func (l List) Valid() bool {
	switch l {
	case Whitelist, Greylist, Blacklist, Abandoned:
		return true
	default:
		return false
	}
}

// MailAction describes the mail-filter action a milter-style collaborator
// would take for l. It performs no I/O; callers decide how to actually act
// on a verdict (a milter daemon, a log line, a test assertion).
func (l List) MailAction() string {
	switch l {
	case Whitelist:
		return "continue"
	case Blacklist:
		return "reject"
	case Abandoned:
		return "reject" // the sender never learns the difference from Blacklist
	default:
		return "tempfail" // Greylist and anything unrecognized
	}
}

// Segment is one parsed ACL segment: either a wildcard (Text == "") or a
// named option-segment value, optionally requiring the subject identifier
// to carry signature flags.
type Segment struct {
	List        List
	Text        string
	ReqSigFlags bool
}

// SyntaxError reports a malformed ACL rule at a specific byte offset.
type SyntaxError struct {
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("acl: syntax error in rule at offset %d", e.Offset)
}

type segState int

const (
	segS segState = iota
	segSetList
	segList
	segWildcard
	segReqSigFlags
	segSegmentName
	segSubSegment
	segPostSegment
	segE
)

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// SegmentIter walks the segments of a single ACL rule, one %-tagged list
// at a time. Obtain one with NewSegmentIter and call Next until it reports
// ok == false.
type SegmentIter struct {
	rule  string
	n     int
	state segState
	list  byte
}

// NewSegmentIter returns an iterator over rule's segments.
func NewSegmentIter(rule string) *SegmentIter {
	return &SegmentIter{rule: rule, state: segS}
}

// Next returns the next segment in the rule. ok is false once the rule is
// exhausted; err is non-nil on malformed syntax.
func (it *SegmentIter) Next() (seg Segment, ok bool, err error) {
	var segStart, segLen int

scan:
	for ; it.n < len(it.rule); it.n++ {
		c := it.rule[it.n]

		switch it.state {
		case segS:
			switch {
			case isBlank(c):
			case c == '%':
				it.state = segSetList
			default:
				break scan
			}
		case segSetList:
			switch c {
			case 'W', 'G', 'B', 'A':
				it.list = c
				it.state = segList
			default:
				break scan
			}
		case segList:
			switch {
			case isBlank(c):
			case c == '+':
				it.state = segWildcard
			default:
				break scan
			}
		case segWildcard:
			switch {
			case isBlank(c):
				it.state = segPostSegment
				return Segment{List: List(it.list)}, true, nil
			case c == '+':
				it.state = segReqSigFlags
			case isBasechar(c) || c == '.':
				segStart = it.n
				segLen = 1
				it.state = segSegmentName
			default:
				break scan
			}
		case segSegmentName:
			switch {
			case isBasechar(c) || c == '.':
				segLen++
			case isBlank(c):
				it.state = segPostSegment
				return Segment{List: List(it.list), Text: it.rule[segStart : segStart+segLen]}, true, nil
			case c == '+':
				var lookahead byte
				if it.n+1 < len(it.rule) {
					lookahead = it.rule[it.n+1]
				}
				switch {
				case isBasechar(lookahead) || lookahead == '.':
					segLen++
					it.state = segSubSegment
				case lookahead == 0 || isBlank(lookahead):
					it.state = segReqSigFlags
				default:
					break scan
				}
			default:
				break scan
			}
		case segSubSegment:
			switch {
			case isBasechar(c) || c == '.':
				segLen++
				it.state = segSegmentName
			default:
				break scan
			}
		case segPostSegment:
			switch {
			case isBlank(c):
			case c == '+':
				it.state = segWildcard
			case c == '%':
				it.state = segSetList
			default:
				break scan
			}
		case segReqSigFlags:
			switch {
			case isBlank(c):
				it.state = segPostSegment
				return Segment{List: List(it.list), Text: it.rule[segStart : segStart+segLen], ReqSigFlags: true}, true, nil
			default:
				break scan
			}
		}
	}

	if it.n != len(it.rule) {
		return Segment{}, false, &SyntaxError{Offset: it.n}
	}

	switch it.state {
	case segWildcard:
		it.state = segE
		return Segment{List: List(it.list)}, true, nil
	case segSegmentName:
		it.state = segE
		return Segment{List: List(it.list), Text: it.rule[segStart : segStart+segLen]}, true, nil
	case segReqSigFlags:
		it.state = segE
		return Segment{List: List(it.list), Text: it.rule[segStart : segStart+segLen], ReqSigFlags: true}, true, nil
	case segPostSegment:
		return Segment{}, false, nil
	case segE:
		return Segment{}, false, nil
	default:
		return Segment{}, false, &SyntaxError{Offset: it.n}
	}
}
