package acl

import "github.com/arpa2/go-a2acl/a2id"

// SegmentMatches reports whether id's option segments satisfy seg: a
// signature requirement must be met first, a wildcard segment (Text == "")
// always matches, and a named segment must be a prefix of id's option text
// ending exactly at an option boundary ('+') or the end of the option text.
//
// The comparison is byte-exact (not case-folded), unlike a2id.Match's
// localpart comparison — ACL segment text is operator-authored policy, not
// user-supplied identifier text, so the original keeps it case-sensitive.
func SegmentMatches(id *a2id.Id, seg Segment) bool {
	if seg.ReqSigFlags && !id.HasSignature() {
		return false
	}

	if seg.Text == "" {
		return true
	}

	opts := id.OptionSegments()
	if opts == "" {
		return false
	}

	if len(seg.Text) > len(opts) {
		return false
	}

	if opts[:len(seg.Text)] != seg.Text {
		return false
	}

	if len(seg.Text) == len(opts) {
		return true
	}

	next := opts[len(seg.Text)]
	return next == ' ' || next == '+'
}
