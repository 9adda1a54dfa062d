package schedule

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgerOf builds a ledger from explicit host/guest games, all in round 0.
func ledgerOf(teams []string, hasBye bool, games ...[2]int) *ledger {
	l := newLedger(teams, hasBye)
	for _, g := range games {
		l.add(0, g[0], g[1])
	}
	l.rounds = 1
	return l
}

func TestCircleFourTeams(t *testing.T) {
	want := [][]seat{
		{{0, 3}, {1, 2}},
		{{0, 2}, {3, 1}},
		{{0, 1}, {2, 3}},
	}
	assert.Equal(t, want, circle(4))
}

func TestCircleDropsBye(t *testing.T) {
	rounds := circle(3)
	require.Len(t, rounds, 3)
	for _, pairs := range rounds {
		require.Len(t, pairs, 1)
		assert.NotEqual(t, bye, pairs[0].first)
		assert.NotEqual(t, bye, pairs[0].second)
	}
}

func TestCircleTooSmall(t *testing.T) {
	assert.Nil(t, circle(0))
	assert.Nil(t, circle(1))
}

func TestLedgerFlip(t *testing.T) {
	l := ledgerOf([]string{"A", "B", "C"}, true, [2]int{0, 1}, [2]int{0, 2})

	assert.Equal(t, 2, l.surplus(0))
	i, ok := l.hosting(0, 1)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	l.flip(i)

	assert.Equal(t, 0, l.surplus(0))
	assert.Equal(t, 1, l.surplus(1))
	assert.Equal(t, game{round: 0, home: 1, away: 0}, l.games[0])

	_, ok = l.hosting(0, 1)
	assert.False(t, ok, "old orientation removed")
	i, ok = l.hosting(1, 0)
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestLedgerBalanced(t *testing.T) {
	tests := []struct {
		name   string
		hasBye bool
		games  [][2]int
		want   bool
	}{
		{"even within one", false, [][2]int{{0, 1}}, true},
		{"even off by two", false, [][2]int{{0, 1}, {0, 2}}, false},
		{"odd exact", true, [][2]int{{0, 1}, {1, 2}, {2, 0}}, true},
		{"odd off by one", true, [][2]int{{0, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledgerOf([]string{"A", "B", "C"}, tt.hasBye, tt.games...)
			assert.Equal(t, tt.want, l.balanced())
		})
	}
}

func TestExactParityDirectFlip(t *testing.T) {
	// A hosts both B and C, B hosts C: A +2, C -2.
	l := ledgerOf([]string{"A", "B", "C"}, true, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 2})

	require.NoError(t, exactParity{}.step(l, discard()))

	assert.Equal(t, game{round: 0, home: 2, away: 0}, l.games[1])
	assert.True(t, l.balanced())
}

func TestExactParityThroughIntermediary(t *testing.T) {
	// A (+2) visits E (-2), so the swap goes A -> B -> E.
	teams := []string{"A", "B", "C", "D", "E"}
	l := ledgerOf(teams, true,
		[2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}, [2]int{4, 0},
		[2]int{1, 4}, [2]int{2, 4}, [2]int{3, 4},
		[2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1},
	)
	require.Equal(t, 2, l.surplus(0))
	require.Equal(t, -2, l.surplus(4))
	before := l.surplus(1)

	require.NoError(t, exactParity{}.step(l, discard()))

	assert.Equal(t, 0, l.surplus(0))
	assert.Equal(t, 0, l.surplus(4))
	assert.Equal(t, before, l.surplus(1), "intermediary keeps its tally")
	assert.True(t, l.balanced())
}

func TestExactParityNoIntermediary(t *testing.T) {
	// Incomplete game graph: A hosts C, D hosts B, nothing links A to B.
	l := ledgerOf([]string{"A", "B", "C", "D"}, true, [2]int{0, 2}, [2]int{3, 1})

	err := exactParity{}.step(l, discard())
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestWithinOneDirectFlip(t *testing.T) {
	// Four teams as the circle method orients them before repair: D is +3.
	l := newLedger([]string{"A", "B", "C", "D"}, false)
	l.assign(circle(4))
	require.Equal(t, 3, l.surplus(3))

	require.NoError(t, withinOne{}.step(l, discard()))

	assert.Equal(t, game{round: 0, home: 0, away: 3}, l.games[0])
	assert.True(t, l.balanced())
}

func TestWithinOneAwaySurplus(t *testing.T) {
	// Mirror image of the circle orientation: D is -3.
	l := newLedger([]string{"A", "B", "C", "D"}, false)
	l.assign(circle(4))
	for i := range l.games {
		l.flip(i)
	}
	require.Equal(t, -3, l.surplus(3))

	require.NoError(t, withinOne{}.step(l, discard()))

	assert.Equal(t, game{round: 0, home: 3, away: 0}, l.games[0])
	assert.True(t, l.balanced())
}

func TestWithinOneChain(t *testing.T) {
	// A (+3) only hosts teams that are even, but B hosts E (-3).
	teams := []string{"A", "B", "C", "D", "E"}
	l := ledgerOf(teams, false,
		[2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3},
		[2]int{1, 4}, [2]int{2, 4}, [2]int{3, 4},
	)
	require.Equal(t, 0, l.surplus(1))

	require.NoError(t, withinOne{}.step(l, discard()))

	assert.Equal(t, 1, l.surplus(0))
	assert.Equal(t, 0, l.surplus(1))
	assert.Equal(t, -1, l.surplus(4))
	assert.Equal(t, game{round: 0, home: 1, away: 0}, l.games[0])
	assert.Equal(t, game{round: 0, home: 4, away: 1}, l.games[3])
}

func TestWithinOneCorruptTally(t *testing.T) {
	l := ledgerOf([]string{"A", "B"}, false, [2]int{0, 1})
	l.home[0] = 3
	l.away[1] = 0

	err := withinOne{}.step(l, discard())
	assert.ErrorIs(t, err, ErrInvariant)
}

type stuck struct{}

func (stuck) name() string { return "stuck" }

func (stuck) step(*ledger, logrus.FieldLogger) error { return nil }

func TestRebalanceRequiresProgress(t *testing.T) {
	l := ledgerOf([]string{"A", "B", "C"}, false, [2]int{0, 1}, [2]int{0, 2})

	err := rebalance(l, stuck{}, discard())
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestRebalanceLogsFlips(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	_, err := Generate([]string{"A", "B", "C", "D"}, WithLogger(log))
	require.NoError(t, err)

	var flips int
	for _, e := range hook.AllEntries() {
		if e.Message == "flipped venue" {
			flips++
		}
	}
	assert.Equal(t, 1, flips)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "home/away balanced", hook.LastEntry().Message)
	assert.Equal(t, "within-one", hook.LastEntry().Data["strategy"])
}
