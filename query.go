package depot

import (
	"github.com/TheBitDrifter/depot/bitset"
)

type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
)

func (a Access) String() string {
	if a == AccessWrite {
		return "write"
	}
	return "read"
}

// Term is one component of a query together with the access requested for it.
type Term struct {
	component Component
	access    Access
}

func (t Term) Component() Component {
	return t.component
}

func (t Term) Access() Access {
	return t.access
}

var _ Query = &query{}

type query struct {
	terms []Term
}

// newQuery validates the terms. A component may appear only once, whatever
// its access, so a write term never aliases another term.
func newQuery(terms ...Term) (Query, error) {
	if len(terms) == 0 {
		return nil, EmptyQueryError{}
	}
	var seen bitset.BitSet
	for i, term := range terms {
		info, ok := componentInfoOf(term.component)
		if !ok {
			return nil, InvalidTermError{Index: i}
		}
		if seen.Get(int(info.index)) {
			return nil, DuplicateTermError{
				Component: term.component,
				First:     firstAccess(terms[:i], term.component),
				Second:    term.access,
			}
		}
		seen.On(int(info.index))
	}
	return &query{terms: append([]Term(nil), terms...)}, nil
}

func firstAccess(terms []Term, c Component) Access {
	for _, term := range terms {
		if term.component == c {
			return term.access
		}
	}
	return AccessRead
}

func (q *query) Terms() []Term {
	return append([]Term(nil), q.terms...)
}
