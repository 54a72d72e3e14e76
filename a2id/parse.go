package a2id

// state is one node of the identifier-parsing state machine.
type state int

const (
	stStart state = iota
	stService
	stLocalPart
	stOption
	stDomain
	stNewLabel
)

// Parse scans in as an A2ID (isSelector == false) or an A2ID Selector
// (isSelector == true) and returns the resulting Id. On failure it returns
// a *ParseError naming the offset of the first byte that could not be
// consumed, or ErrTooLong if in exceeds MaxLen bytes.
func Parse(in string, isSelector bool) (*Id, error) {
	if len(in) > MaxLen {
		return nil, ErrTooLong
	}

	const unset = -1

	var (
		state                      = stStart
		curOpt, prevOpt, secondOpt = unset, unset, unset
		basenameOff                = unset
		firstOptOff                = unset
		domainOff                  = unset
		nrOpts                     int
		i                          int
	)

loop:
	for i = 0; i < len(in); i++ {
		c := in[i]

		switch state {
		case stStart:
			switch {
			case isBasechar(c) || c == '.':
				basenameOff = i
				state = stLocalPart
			case c == '+':
				state = stService
			case c == '@':
				domainOff = i
				state = stNewLabel
			default:
				break loop
			}
		case stService:
			switch {
			case isBasechar(c) || c == '.':
				basenameOff = i
				state = stLocalPart
			case isSelector && c == '@':
				domainOff = i
				state = stNewLabel
			case isSelector && c == '+':
				curOpt = i
				firstOptOff = i
				nrOpts++
				state = stOption
			default:
				break loop
			}
		case stLocalPart:
			switch {
			case isBasechar(c) || c == '.':
				// keep going
			case c == '+':
				prevOpt = curOpt
				curOpt = i
				if firstOptOff == unset {
					firstOptOff = i
				} else if secondOpt == unset {
					secondOpt = i
				}
				nrOpts++
				state = stOption
			case c == '@':
				domainOff = i
				state = stNewLabel
			default:
				break loop
			}
		case stOption:
			switch {
			case isBasechar(c) || c == '.':
				state = stLocalPart
			case c == '+':
				prevOpt = curOpt
				curOpt = i
				if secondOpt == unset {
					secondOpt = i
				}
				nrOpts++
			case c == '@':
				domainOff = i
				state = stNewLabel
			default:
				break loop
			}
		case stDomain:
			switch {
			case isBasechar(c):
				// keep going
			case c == '.':
				state = stNewLabel
			default:
				break loop
			}
		case stNewLabel:
			switch {
			case isBasechar(c):
				state = stDomain
			case isSelector && c == '.':
				// keep going
			default:
				break loop
			}
		}
	}

	if i < len(in) {
		return nil, &ParseError{Offset: i}
	}

	if isSelector {
		if state != stDomain && state != stNewLabel {
			return nil, &ParseError{Offset: i}
		}
	} else if state != stDomain {
		return nil, &ParseError{Offset: i}
	}

	id := &Id{isSelector: isSelector}
	id.buf = []byte(in[:i])
	id.idLen = i
	id.domainOff = domainOff
	id.domainLen = i - domainOff
	id.localPartLen = domainOff

	if id.localPartLen == 0 {
		id.typ = DomainOnly
	} else if id.buf[0] == '+' {
		id.typ = Service
	} else {
		id.typ = Generic
	}

	// Step 1: detect a trailing "+X+" signature segment.
	if curOpt != unset && prevOpt != unset && curOpt+1 == domainOff {
		id.hasSignature = true
		id.sigFlagsOff = prevOpt
		id.sigFlagsLen = curOpt - prevOpt
		nrOpts -= 2
		if nrOpts == 0 {
			firstOptOff = unset
		}
	} else {
		id.hasSignature = false
		id.sigFlagsLen = 0
		id.sigFlagsOff = domainOff
	}
	id.nrOpts = nrOpts

	if firstOptOff != unset {
		switch {
		case secondOpt != unset:
			id.firstOptLen = secondOpt - firstOptOff
		case id.sigFlagsLen > 0:
			id.firstOptLen = id.sigFlagsOff - firstOptOff
		default:
			id.firstOptLen = domainOff - firstOptOff
		}
		id.firstOptOff = firstOptOff
	} else {
		id.firstOptLen = 0
		id.firstOptOff = domainOff
	}

	if basenameOff != unset {
		switch {
		case id.firstOptLen > 0:
			id.basenameLen = id.firstOptOff - basenameOff
		case id.sigFlagsLen > 0:
			id.basenameLen = id.sigFlagsOff - basenameOff
		default:
			id.basenameLen = domainOff - basenameOff
		}
		id.basenameOff = basenameOff
	} else {
		id.basenameLen = 0
		id.basenameOff = domainOff
	}

	return id, nil
}
