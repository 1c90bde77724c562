package grammar

import "github.com/kymmt90/lrcc/bitset"

// configPool interns (rule, dot) configurations for the state currently
// under construction, per C6. A fresh pool is created for every getState
// call and discarded once that state's closure and shifts are built; the
// config objects themselves outlive the pool, referenced from the owning
// State.
type configPool struct {
	byKey map[configKey]*config
	order []*config // discovery order: basis items first, then closure additions
}

func newConfigPool() *configPool {
	return &configPool{byKey: make(map[configKey]*config)}
}

// add interns (ruleIndex, dot), creating a new config sized for nTerm
// FOLLOW bits on first use. The bool result reports whether this call
// created it.
func (p *configPool) add(ruleIndex, dot, nTerm int) (*config, bool) {
	key := configKey{ruleIndex, dot}
	if c, ok := p.byKey[key]; ok {
		return c, false
	}
	c := &config{
		ruleIndex: ruleIndex,
		dot:       dot,
		follow:    bitset.New(nTerm),
	}
	p.byKey[key] = c
	p.order = append(p.order, c)
	return c, true
}
