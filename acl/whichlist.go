package acl

import (
	"github.com/arpa2/go-a2acl/a2id"
	"github.com/rs/zerolog"
)

// Engine resolves (remote, local) identifier pairs to a list verdict
// against a Store of policy rules.
type Engine struct {
	store  Store
	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger used to trace generalisation
// steps and rule misses. The zero Engine logs nothing.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an Engine backed by store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Whichlist decides which list governs communication from remoteID to
// localID: remoteID is progressively generalised until a matching rule is
// found or the universal selector "@." is reached, at which point the
// decision defaults to Greylist.
//
// remoteID is mutated by repeated Generalize calls, the same way the
// original API generalises its remoteid argument in place; callers that
// need the original identifier afterwards should parse a fresh copy first.
func (e *Engine) Whichlist(remoteID, localID *a2id.Id) (List, error) {
	coreID := localID.CoreForm()

	for {
		remoteStr := remoteID.String()

		rule, ok, err := e.store.Get(remoteStr, coreID)
		if err != nil {
			return 0, err
		}

		if !ok {
			e.logger.Debug().Str("remote", remoteStr).Str("local", coreID).Msg("no rule, generalising")
			if remoteID.Generalize() {
				continue
			}
			break
		}

		list, matched, err := e.evalRule(rule, localID)
		if err != nil {
			return 0, err
		}
		if matched {
			e.logger.Debug().Str("remote", remoteStr).Str("local", coreID).Str("list", list.String()).Msg("rule matched")
			return list, nil
		}

		if !remoteID.Generalize() {
			break
		}
	}

	return Greylist, nil
}

func (e *Engine) evalRule(rule string, localID *a2id.Id) (List, bool, error) {
	it := NewSegmentIter(rule)
	for {
		seg, ok, err := it.Next()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		if SegmentMatches(localID, seg) {
			return seg.List, true, nil
		}
	}
}
