package strategy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/camzach/roundrobin/internal/config"
	"github.com/camzach/roundrobin/internal/schedule"
)

// Strategy generates the rounds of a season.
type Strategy interface {
	Generate(teams []string) (schedule.Schedule, error)
	// Legs is how many times each pair of teams meets.
	Legs() int
}

// Get returns a Strategy by name. log receives the generator's debug output
// and may be nil.
func Get(name string, log logrus.FieldLogger) (Strategy, error) {
	switch name {
	case config.StrategyRoundRobin, "":
		return &RoundRobin{Log: log}, nil
	case config.StrategyDoubleRoundRobin:
		return &DoubleRoundRobin{Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// RoundRobin plays every opponent once.
type RoundRobin struct {
	Log logrus.FieldLogger
}

func (s *RoundRobin) Generate(teams []string) (schedule.Schedule, error) {
	return schedule.Generate(teams, schedule.WithLogger(s.Log))
}

func (s *RoundRobin) Legs() int { return 1 }

// DoubleRoundRobin plays every opponent twice, once at each venue. The
// second half of the season repeats the first with home and away swapped.
type DoubleRoundRobin struct {
	Log logrus.FieldLogger
}

func (s *DoubleRoundRobin) Generate(teams []string) (schedule.Schedule, error) {
	first, err := schedule.Generate(teams, schedule.WithLogger(s.Log))
	if err != nil {
		return nil, err
	}
	return append(first, first.Mirror()...), nil
}

func (s *DoubleRoundRobin) Legs() int { return 2 }
