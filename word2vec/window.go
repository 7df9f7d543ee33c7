package word2vec

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/sgns"
)

// A Pair is a center word and one of its context words.
type Pair struct {
	Center  int
	Context int
}

// A PairGenerator lazily produces the (center, context)
// pairs of a document.
//
// For every position, a window radius is drawn uniformly
// from [1, window], and every other word within that
// radius becomes a context word.
//
// A PairGenerator cannot be restarted; create a new one
// for every document.
type PairGenerator struct {
	doc    []int
	window int
	gen    sgns.Rand

	pos     int
	ctx     int
	ctxEnd  int
	started bool
}

// NewPairGenerator creates a PairGenerator for the
// document.
func NewPairGenerator(doc []int, window int, gen sgns.Rand) *PairGenerator {
	return &PairGenerator{doc: doc, window: window, gen: gen}
}

// Next returns the next pair.
// The second return value is false once the document is
// exhausted.
func (p *PairGenerator) Next() (Pair, bool) {
	for p.pos < len(p.doc) {
		if !p.started {
			p.enterPosition()
		}
		for p.ctx <= p.ctxEnd {
			c := p.ctx
			p.ctx++
			if c != p.pos {
				return Pair{Center: p.doc[p.pos], Context: p.doc[c]}, true
			}
		}
		p.pos++
		p.started = false
	}
	return Pair{}, false
}

func (p *PairGenerator) enterPosition() {
	radius := p.gen.Intn(p.window) + 1
	p.ctx = essentials.MaxInt(0, p.pos-radius)
	p.ctxEnd = essentials.MinInt(p.pos+radius, len(p.doc)-1)
	p.started = true
}

// Pairs collects all the remaining pairs.
func (p *PairGenerator) Pairs() []Pair {
	var res []Pair
	for {
		pair, ok := p.Next()
		if !ok {
			return res
		}
		res = append(res, pair)
	}
}
