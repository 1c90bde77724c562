package grammar

// InvertPropagationLinks turns every backward link recorded during C7's
// buildShifts into a forward link, per §4.4: "invert every backward link
// into a forward link (attach each configuration to the source side of
// the edge)". Every configuration starts INCOMPLETE, since every one is a
// candidate to still push its FOLLOW set somewhere.
func (g *Grammar) InvertPropagationLinks() {
	for _, st := range g.States {
		for _, cfg := range st.Closure {
			cfg.incomplete = true
			for _, src := range cfg.bwd {
				src.fwd = append(src.fwd, cfg)
			}
			cfg.bwd = nil
		}
	}
}

// PropagateFollow runs §4.4's fixed point: repeat until a full pass makes
// no change, unioning every INCOMPLETE configuration's FOLLOW into each
// forward-linked target and marking changed targets INCOMPLETE again. It
// terminates because FOLLOW sets are bounded subsets of a fixed terminal
// alphabet, so unions can only succeed finitely many times.
func (g *Grammar) PropagateFollow() {
	for {
		progress := false
		for _, st := range g.States {
			for _, cfg := range st.Closure {
				if !cfg.incomplete {
					continue
				}
				for _, t := range cfg.fwd {
					if t.follow.Union(cfg.follow) {
						t.incomplete = true
						progress = true
					}
				}
				cfg.incomplete = false
			}
		}
		if !progress {
			break
		}
	}
}
