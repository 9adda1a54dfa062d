package schedule

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Derived from Knust and von Thaden, "Balanced home-away assignments",
// Discrete Optimization 3(4), 2006.

// repairer moves a ledger one step closer to balance. Each step must lower
// the ledger's imbalance.
type repairer interface {
	name() string
	step(l *ledger, log logrus.FieldLogger) error
}

func strategyFor(l *ledger) repairer {
	if l.hasBye {
		return exactParity{}
	}
	return withinOne{}
}

// rebalance flips games until the ledger is balanced.
func rebalance(l *ledger, r repairer, log logrus.FieldLogger) error {
	limit := len(l.teams) * len(l.teams)
	steps := 0
	for !l.balanced() {
		if steps >= limit {
			return fmt.Errorf("%w: %s repair still unbalanced after %d steps", ErrInvariant, r.name(), steps)
		}
		before := l.imbalance()
		if err := r.step(l, log); err != nil {
			return err
		}
		if after := l.imbalance(); after >= before {
			return fmt.Errorf("%w: %s repair did not reduce imbalance (%d -> %d)", ErrInvariant, r.name(), before, after)
		}
		steps++
	}
	log.WithFields(logrus.Fields{
		"strategy": r.name(),
		"steps":    steps,
	}).Debug("home/away balanced")
	return nil
}

// exactParity is used when a team sits out every round. Every team then
// plays an even number of games, so home must equal away.
type exactParity struct{}

func (exactParity) name() string { return "exact-parity" }

func (exactParity) step(l *ledger, log logrus.FieldLogger) error {
	over := l.first(func(d int) bool { return d > 0 })
	under := l.first(func(d int) bool { return d < 0 })
	if over < 0 || under < 0 {
		return fmt.Errorf("%w: unbalanced ledger has no home and away surplus pair", ErrInvariant)
	}

	if i, ok := l.hosting(over, under); ok {
		flipGames(l, log, i)
		return nil
	}

	// over visits under, so route the swap through a third team that
	// over hosts and that hosts under. Flipping both leaves it even.
	for mid := range l.teams {
		a, ok := l.hosting(over, mid)
		if !ok {
			continue
		}
		b, ok := l.hosting(mid, under)
		if !ok {
			continue
		}
		flipGames(l, log, a, b)
		return nil
	}
	return fmt.Errorf("%w: no team hosted by %q that hosts %q", ErrInvariant, l.teams[over], l.teams[under])
}

// withinOne is used when every team plays every round. Every team then plays
// an odd number of games and can be off by one.
type withinOne struct{}

func (withinOne) name() string { return "within-one" }

func (withinOne) step(l *ledger, log logrus.FieldLogger) error {
	if over := l.first(func(d int) bool { return d > 1 }); over >= 0 {
		for i, g := range l.games {
			if g.home == over && l.surplus(g.away) < 0 {
				flipGames(l, log, i)
				return nil
			}
		}
		path := l.chain(over, true, func(t int) bool { return l.surplus(t) < 0 })
		if path == nil {
			return fmt.Errorf("%w: no game chain from %q to a team short of home games", ErrInvariant, l.teams[over])
		}
		flipGames(l, log, path...)
		return nil
	}

	under := l.first(func(d int) bool { return d < -1 })
	if under < 0 {
		return fmt.Errorf("%w: unbalanced ledger has no team off by more than one", ErrInvariant)
	}
	for i, g := range l.games {
		if g.away == under && l.surplus(g.home) > 0 {
			flipGames(l, log, i)
			return nil
		}
	}
	path := l.chain(under, false, func(t int) bool { return l.surplus(t) > 0 })
	if path == nil {
		return fmt.Errorf("%w: no game chain to %q from a team short of away games", ErrInvariant, l.teams[under])
	}
	flipGames(l, log, path...)
	return nil
}

// chain finds the shortest run of games linking src to a team accepted by
// done and returns their indices. Forward follows host to guest starting at
// src; backward follows guest to host. Flipping the whole run moves one
// game of surplus from one end to the other and leaves the teams in
// between untouched. Candidates are tried in team order so the result is
// deterministic.
func (l *ledger) chain(src int, forward bool, done func(t int) bool) []int {
	n := len(l.teams)
	parent := make([]int, n)
	via := make([]int, n)
	seen := make([]bool, n)
	seen[src] = true

	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for w := 0; w < n; w++ {
			if seen[w] {
				continue
			}
			var i int
			var ok bool
			if forward {
				i, ok = l.hosting(v, w)
			} else {
				i, ok = l.hosting(w, v)
			}
			if !ok {
				continue
			}
			seen[w] = true
			parent[w] = v
			via[w] = i
			if done(w) {
				var path []int
				for t := w; t != src; t = parent[t] {
					path = append(path, via[t])
				}
				return path
			}
			queue = append(queue, w)
		}
	}
	return nil
}

func flipGames(l *ledger, log logrus.FieldLogger, indices ...int) {
	for _, i := range indices {
		l.flip(i)
		g := l.games[i]
		log.WithFields(logrus.Fields{
			"round": g.round + 1,
			"home":  l.teams[g.home],
			"away":  l.teams[g.away],
		}).Debug("flipped venue")
	}
}
