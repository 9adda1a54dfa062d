package schedule

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// game is an oriented pairing of team indices. Records are replaced on a
// flip, never edited.
type game struct {
	round int
	home  int
	away  int
}

// gameEdge points from host to guest and remembers which game it is.
type gameEdge struct {
	from, to graph.Node
	index    int
}

func (e gameEdge) From() graph.Node { return e.from }
func (e gameEdge) To() graph.Node   { return e.to }

func (e gameEdge) ReversedEdge() graph.Edge {
	return gameEdge{from: e.to, to: e.from, index: e.index}
}

// ledger is the working state of one Generate call: the games, the
// home/away tallies they imply, and the directed game graph used to find
// games by host and guest. flip is the only way to change it after assign.
type ledger struct {
	teams  []string
	hasBye bool

	games  []game
	home   []int
	away   []int
	rounds int

	graph *simple.DirectedGraph
}

func newLedger(teams []string, hasBye bool) *ledger {
	l := &ledger{
		teams:  teams,
		hasBye: hasBye,
		home:   make([]int, len(teams)),
		away:   make([]int, len(teams)),
		graph:  simple.NewDirectedGraph(),
	}
	for i := range teams {
		l.graph.AddNode(simple.Node(i))
	}
	return l
}

// assign orients the circle pairings. In even rounds the seat read from the
// back of the ring hosts, in odd rounds the front seat does, so a team's
// venue alternates from one round to the next.
func (l *ledger) assign(rounds [][]seat) {
	for r, pairs := range rounds {
		for _, p := range pairs {
			home, away := p.first, p.second
			if r%2 == 0 {
				home, away = away, home
			}
			l.add(r, home, away)
		}
	}
	l.rounds = len(rounds)
}

func (l *ledger) add(round, home, away int) {
	l.games = append(l.games, game{round: round, home: home, away: away})
	l.graph.SetEdge(gameEdge{
		from:  simple.Node(home),
		to:    simple.Node(away),
		index: len(l.games) - 1,
	})
	l.home[home]++
	l.away[away]++
}

// flip swaps home and away of game i and updates the tallies.
func (l *ledger) flip(i int) {
	g := l.games[i]
	l.graph.RemoveEdge(int64(g.home), int64(g.away))
	l.games[i] = game{round: g.round, home: g.away, away: g.home}
	l.graph.SetEdge(gameEdge{
		from:  simple.Node(g.away),
		to:    simple.Node(g.home),
		index: i,
	})

	l.home[g.home]--
	l.away[g.home]++
	l.home[g.away]++
	l.away[g.away]--
}

// hosting returns the index of the game home plays at home against away.
func (l *ledger) hosting(home, away int) (int, bool) {
	e := l.graph.Edge(int64(home), int64(away))
	if e == nil {
		return -1, false
	}
	return e.(gameEdge).index, true
}

// surplus is home minus away games for team t.
func (l *ledger) surplus(t int) int {
	return l.home[t] - l.away[t]
}

// first returns the lowest team index whose surplus satisfies ok, or -1.
func (l *ledger) first(ok func(surplus int) bool) int {
	for t := range l.teams {
		if ok(l.surplus(t)) {
			return t
		}
	}
	return -1
}

// balanced reports whether every team is as balanced as possible: exactly
// even when the team count is odd, within one game otherwise.
func (l *ledger) balanced() bool {
	limit := 1
	if l.hasBye {
		limit = 0
	}
	for t := range l.teams {
		if d := l.surplus(t); d > limit || d < -limit {
			return false
		}
	}
	return true
}

// imbalance is the sum over teams of |home - away|. Every repair step must
// lower it.
func (l *ledger) imbalance() int {
	total := 0
	for t := range l.teams {
		d := l.surplus(t)
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}

func (l *ledger) schedule() Schedule {
	s := make(Schedule, l.rounds)
	for r := range s {
		s[r] = Round{}
	}
	for _, g := range l.games {
		s[g.round] = append(s[g.round], Pairing{Home: l.teams[g.home], Away: l.teams[g.away]})
	}
	return s
}
