package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kymmt90/lrcc/symbol"
)

// basisItem names one configuration to seed a (possibly new) state's
// basis, carrying the predecessor config (in the state doing the shift)
// that the resulting config's backward propagation link should point at.
// pred is nil only for the automaton's very first state.
type basisItem struct {
	ruleIndex int
	dot       int
	pred      *config
}

func sortBasisItems(items []basisItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].ruleIndex != items[j].ruleIndex {
			return items[i].ruleIndex < items[j].ruleIndex
		}
		return items[i].dot < items[j].dot
	})
}

func basisKey(items []basisItem) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(strconv.Itoa(it.ruleIndex))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(it.dot))
		b.WriteByte(';')
	}
	return b.String()
}

func sortConfigs(cfgs []*config) {
	sort.Slice(cfgs, func(i, j int) bool {
		if cfgs[i].ruleIndex != cfgs[j].ruleIndex {
			return cfgs[i].ruleIndex < cfgs[j].ruleIndex
		}
		return cfgs[i].dot < cfgs[j].dot
	})
}

// BuildStates runs C7: it seeds the automaton with the augmenting
// production "{accept} -> • Start" (basis = { (S' → • S, {$}) }, per
// §4.3) and recursively discovers every reachable state via getState.
func (g *Grammar) BuildStates() {
	accept := g.Symbols.Intern("{accept}")
	g.startRule = &Rule{Index: -1, LHS: accept, RHS: []symbol.Symbol{g.Start}, Precedence: symbol.NoSymbol}
	g.stateByBasis = make(map[string]*State)

	start := g.getState([]basisItem{{ruleIndex: -1, dot: 0}})
	// Seed the start configuration's FOLLOW with {$}, per §4.3.
	start.Basis[0].follow.Add(int(g.End))
}

// getState implements the recursive construction in §4.3: sort the
// pending basis, hash it, and either merge backward links into an
// existing state or build a brand new one (closure, then shifts).
func (g *Grammar) getState(items []basisItem) *State {
	sortBasisItems(items)
	key := basisKey(items)

	if st, ok := g.stateByBasis[key]; ok {
		for i, it := range items {
			if it.pred != nil {
				st.Basis[i].bwd = append(st.Basis[i].bwd, it.pred)
			}
		}
		return st
	}

	pool := newConfigPool()
	basis := make([]*config, len(items))
	for i, it := range items {
		c, _ := pool.add(it.ruleIndex, it.dot, g.NTerminal)
		if it.pred != nil {
			c.bwd = append(c.bwd, it.pred)
		}
		basis[i] = c
	}

	st := &State{Num: len(g.States), Basis: basis}
	g.States = append(g.States, st)
	g.stateByBasis[key] = st

	g.closeState(pool, st)

	closure := append([]*config(nil), pool.order...)
	sortConfigs(closure)
	st.Closure = closure

	g.buildShifts(st, pool)
	return st
}

// closeState computes the closure of st's basis, per §4.3: for each
// configuration with the dot before a nonterminal N, add basis-less
// configurations for every rule of N, with FOLLOW computed by scanning
// the remainder of the outer rule.
func (g *Grammar) closeState(pool *configPool, st *State) {
	for i := 0; i < len(pool.order); i++ {
		cfg := pool.order[i]
		r := g.rule(cfg.ruleIndex)
		if cfg.dot >= len(r.RHS) {
			continue
		}
		sp := r.RHS[cfg.dot]
		if g.Symbols.Kind(sp) != symbol.NonTerminal {
			continue
		}

		rules := g.RulesFor(sp)
		if len(rules) == 0 && sp != g.ErrorSym {
			g.Errors.Add(g.Filename, r.Line, fmt.Errorf("%w: %q", errNonterminalNoRules, g.Symbols.Name(sp)))
		}

		for _, nr := range rules {
			newcfg, _ := pool.add(nr.Index, 0, g.NTerminal)
			fellOff := true
			for j := cfg.dot + 1; j < len(r.RHS); j++ {
				xsp := r.RHS[j]
				if g.Symbols.Kind(xsp) == symbol.Terminal {
					newcfg.follow.Add(int(xsp))
					fellOff = false
					break
				}
				newcfg.follow.Union(g.Symbols.First(xsp, g.NTerminal))
				if !g.Symbols.Lambda(xsp) {
					fellOff = false
					break
				}
			}
			if fellOff {
				cfg.fwd = append(cfg.fwd, newcfg)
			}
		}
	}
}

// buildShifts implements §4.3's "build shifts": every not-yet-handled
// configuration with the dot before some symbol X collects its siblings
// on X, advances their dots into a new basis, and recurses into getState.
func (g *Grammar) buildShifts(st *State, pool *configPool) {
	done := make(map[*config]bool, len(pool.order))
	for _, cfg := range pool.order {
		if done[cfg] {
			continue
		}
		r := g.rule(cfg.ruleIndex)
		if cfg.dot >= len(r.RHS) {
			continue
		}
		x := r.RHS[cfg.dot]

		var items []basisItem
		for _, cfg2 := range pool.order {
			if done[cfg2] {
				continue
			}
			r2 := g.rule(cfg2.ruleIndex)
			if cfg2.dot >= len(r2.RHS) || r2.RHS[cfg2.dot] != x {
				continue
			}
			done[cfg2] = true
			items = append(items, basisItem{ruleIndex: cfg2.ruleIndex, dot: cfg2.dot + 1, pred: cfg2})
		}

		target := g.getState(items)
		st.Shifts = append(st.Shifts, Shift{Symbol: x, Target: target})
	}
}
