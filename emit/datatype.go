// Package emit implements C11: interleaving the action/state tables C10
// produced with a template file, plus the small analyses that only make
// sense at emission time (the typed-union slot assignment, and rewriting
// $$/alias references inside rule action code).
package emit

import (
	"strings"

	"github.com/kymmt90/lrcc/grammar"
)

// DataTypes is the typed-union slot table §4.7/§9 describe: slot 0 always
// means "no typed value"; every other distinct %type string (compared with
// surrounding whitespace trimmed) gets its own slot, assigned in discovery
// order (%token_type is not consulted); the error symbol gets
// a dedicated slot regardless of whether any declared type matches it.
type DataTypes struct {
	Slots []string // Slots[i] is the datatype text for dtnum i
}

type dtSlot struct {
	used bool
	text string
	id   int
}

// hashText is a small FNV-1a hash used only to seed the open-addressed
// scratch table below; collisions are resolved by linear probing, not by
// the hash being collision-free.
func hashText(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// AssignDataTypes walks every interned symbol and assigns its dtnum,
// deduplicating identical datatype strings through an open-addressed
// scratch table sized to the next power of two covering every symbol
// (a generous upper bound on the number of distinct types actually
// declared). The error symbol always receives its own slot, typed as a
// plain int, per §9.
func AssignDataTypes(g *grammar.Grammar) *DataTypes {
	all := g.Symbols.All()

	size := 4
	for size < 2*(len(all)+1) {
		size *= 2
	}
	mask := uint32(size - 1)
	scratch := make([]dtSlot, size)

	dt := &DataTypes{Slots: []string{""}}

	assign := func(text string) int {
		if text == "" {
			return 0
		}
		h := hashText(text) & mask
		for scratch[h].used {
			if scratch[h].text == text {
				return scratch[h].id
			}
			h = (h + 1) & mask
		}
		id := len(dt.Slots)
		dt.Slots = append(dt.Slots, text)
		scratch[h] = dtSlot{used: true, text: text, id: id}
		return id
	}

	for _, s := range all {
		if s == g.ErrorSym {
			continue
		}
		id := assign(strings.TrimSpace(g.Symbols.DataType(s)))
		g.Symbols.SetDtNum(s, id)
	}

	errSlot := len(dt.Slots)
	dt.Slots = append(dt.Slots, "int")
	g.Symbols.SetDtNum(g.ErrorSym, errSlot)

	return dt
}
