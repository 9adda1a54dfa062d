package schedule

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidInput is returned when the team list cannot produce a
	// round robin, e.g. because a team appears twice.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariant is returned when the home/away repair cannot make
	// progress. It means the working state was corrupted upstream.
	ErrInvariant = errors.New("schedule invariant violated")
)

// Pairing is a single game: Home hosts Away.
type Pairing struct {
	Home string
	Away string
}

// Round is the set of games played in one round. No team appears twice.
type Round []Pairing

// Schedule is a full round robin, in round order.
type Schedule []Round

// Record is a team's home/away tally.
type Record struct {
	Home int
	Away int
}

// Games returns the total games in the record.
func (r Record) Games() int {
	return r.Home + r.Away
}

// Fixture is a game with its 1-based round number.
type Fixture struct {
	Round int
	Home  string
	Away  string
}

type options struct {
	log logrus.FieldLogger
}

// Option configures Generate.
type Option func(*options)

// WithLogger makes Generate log every home/away repair at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Generate builds a single round robin for teams: every team meets every
// other team exactly once, split into rounds, with home and away games as
// balanced as the team count allows. With an even count every team's home
// and away games differ by one; with an odd count each team sits out one
// round and plays as many home games as away games.
//
// The result depends only on the order of teams. Fewer than two teams
// yield an empty schedule.
func Generate(teams []string, opts ...Option) (Schedule, error) {
	o := options{log: discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkUnique(teams); err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return Schedule{}, nil
	}

	l := newLedger(teams, len(teams)%2 == 1)
	l.assign(circle(len(teams)))

	if err := rebalance(l, strategyFor(l), o.log); err != nil {
		return nil, err
	}
	return l.schedule(), nil
}

func checkUnique(teams []string) error {
	seen := make(map[string]int, len(teams))
	for i, team := range teams {
		if prev, ok := seen[team]; ok {
			return fmt.Errorf("%w: team %q appears at positions %d and %d", ErrInvalidInput, team, prev+1, i+1)
		}
		seen[team] = i
	}
	return nil
}

// Fixtures flattens the schedule into games tagged with their round.
func (s Schedule) Fixtures() []Fixture {
	var fixtures []Fixture
	for r, round := range s {
		for _, p := range round {
			fixtures = append(fixtures, Fixture{Round: r + 1, Home: p.Home, Away: p.Away})
		}
	}
	return fixtures
}

// Records tallies home and away games per team.
func (s Schedule) Records() map[string]Record {
	records := make(map[string]Record)
	for _, round := range s {
		for _, p := range round {
			h := records[p.Home]
			h.Home++
			records[p.Home] = h

			a := records[p.Away]
			a.Away++
			records[p.Away] = a
		}
	}
	return records
}

// Byes returns, for each round, the first of teams with no game that round,
// or "" when everybody plays.
func (s Schedule) Byes(teams []string) []string {
	byes := make([]string, len(s))
	for r, round := range s {
		playing := make(map[string]bool, 2*len(round))
		for _, p := range round {
			playing[p.Home] = true
			playing[p.Away] = true
		}
		for _, team := range teams {
			if !playing[team] {
				byes[r] = team
				break
			}
		}
	}
	return byes
}

// Mirror returns a copy of the schedule with home and away swapped in
// every game.
func (s Schedule) Mirror() Schedule {
	mirrored := make(Schedule, len(s))
	for r, round := range s {
		mirrored[r] = make(Round, len(round))
		for i, p := range round {
			mirrored[r][i] = Pairing{Home: p.Away, Away: p.Home}
		}
	}
	return mirrored
}
