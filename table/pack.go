package table

import "github.com/kymmt90/lrcc/grammar"

// Entry is one slot of the packed, open-addressed action table: "if the
// lookahead is Lookahead, do Action; otherwise follow Next (or fall
// through to the state's default if Next is -1)". An empty slot carries
// Lookahead == Packed.NoCode.
type Entry struct {
	Lookahead int
	Action    int
	Next      int
}

// StatePack is the per-state summary needed by the emitter: where this
// state's slice of Entries starts, the bucket mask (tablesize-1), and
// the fallback action for lookaheads the hash table doesn't cover.
type StatePack struct {
	TabStart      int
	Mask          int
	DefaultAction int
}

// Packed is the flat, emission-ready action table: one contiguous
// []Entry with each state owning a power-of-two-sized slice of it,
// exactly like lemon.c's single yyActionTable indexed by per-state
// tabstart offsets.
type Packed struct {
	Entries []Entry
	States  []StatePack
	NoCode  int // Lookahead value meaning "unused slot"
}

// ActionCode computes the integer the generated parser switches on for
// action a, per lemon.c's compute_action: SHIFT codes as the target
// state number, REDUCE as nstates+rule.Index, ERROR as nstates+nrules,
// ACCEPT as nstates+nrules+1. Anything else (a demoted or conflicted
// action, or one compression deleted) has no code and is dropped from
// the table entirely — its lookahead falls through to the state
// default instead.
func ActionCode(g *grammar.Grammar, a *grammar.Action) int {
	nstates := len(g.States)
	nrules := len(g.Rules)
	switch a.Kind {
	case grammar.ActionShift:
		return a.ShiftTarget.Num
	case grammar.ActionReduce:
		return nstates + a.Rule.Index
	case grammar.ActionError:
		return nstates + nrules
	case grammar.ActionAccept:
		return nstates + nrules + 1
	default:
		return -1
	}
}

// Pack builds the packed action table for every state in g, after
// Compress has run. States must already have Num assigned in
// construction order (C7) and a stable Rules slice (no further rule
// renumbering after this point).
func Pack(g *grammar.Grammar) *Packed {
	p := &Packed{NoCode: g.Symbols.Len()}
	errCode := len(g.States) + len(g.Rules)

	for _, st := range g.States {
		p.States = append(p.States, packState(g, st, p, errCode))
	}
	return p
}

type candidate struct {
	symIdx int
	action int
}

// packState hashes st's actions into a power-of-two table sized to the
// action count, resolves collisions by relocating the colliding entry
// into the first free slot found scanning forward, and appends the
// result onto p.Entries. This is a direct translation of lemon.c's
// per-state loop in ReportTable: ap->collide chains move with the
// candidate they were attached to, not with the slot.
func packState(g *grammar.Grammar, st *grammar.State, p *Packed, errCode int) StatePack {
	var cands []candidate
	for _, a := range st.Actions {
		code := ActionCode(g, a)
		if code < 0 {
			continue
		}
		cands = append(cands, candidate{symIdx: int(a.Symbol), action: code})
	}

	tablesize := 1
	for tablesize < len(cands) {
		tablesize *= 2
	}
	mask := tablesize - 1

	occupant := make([]int, tablesize)
	for i := range occupant {
		occupant[i] = -1
	}
	chainNext := make([]int, len(cands))
	for i := range chainNext {
		chainNext[i] = -1
	}
	for i, c := range cands {
		h := c.symIdx & mask
		chainNext[i] = occupant[h]
		occupant[h] = i
	}

	relocated := make([]int, tablesize)
	for i := range relocated {
		relocated[i] = -1
	}
	k := 0
	for j := 0; j < tablesize; j++ {
		if occupant[j] != -1 && chainNext[occupant[j]] != -1 {
			for occupant[k] != -1 {
				k++
			}
			moved := chainNext[occupant[j]]
			occupant[k] = moved
			relocated[j] = k
			chainNext[occupant[j]] = -1
			if k < j {
				j = k - 1
			}
		}
	}

	base := len(p.Entries)
	for j := 0; j < tablesize; j++ {
		if occupant[j] == -1 {
			p.Entries = append(p.Entries, Entry{Lookahead: p.NoCode, Next: -1})
			continue
		}
		c := cands[occupant[j]]
		next := -1
		if relocated[j] != -1 {
			next = base + relocated[j]
		}
		p.Entries = append(p.Entries, Entry{Lookahead: c.symIdx, Action: c.action, Next: next})
	}

	dflt := errCode
	if st.Default != nil {
		dflt = len(g.States) + st.Default.Rule.Index
	}

	st.TabStart = base
	st.Mask = mask

	return StatePack{TabStart: base, Mask: mask, DefaultAction: dflt}
}
