package validator

import (
	"fmt"
	"sort"

	"github.com/camzach/roundrobin/internal/config"
	"github.com/camzach/roundrobin/internal/document"
	"github.com/camzach/roundrobin/internal/schedule"
)

// Violation represents a problem found in a schedule.
type Violation struct {
	Round   int    // 1-based; 0 when the problem is not tied to one round
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule document and checks it against the config.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	doc, err := document.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	legs := 1
	if cfg.Strategy == config.StrategyDoubleRoundRobin {
		legs = 2
	}

	var violations []Violation
	if doc.Strategy != "" && doc.Strategy != cfg.Strategy {
		violations = append(violations, Violation{
			Type:    "warning",
			Message: fmt.Sprintf("schedule was generated with strategy %q, config says %q", doc.Strategy, cfg.Strategy),
		})
	}
	return append(violations, Check(cfg.Teams, legs, doc.Schedule(), cfg.Guidelines)...), nil
}

// Check verifies that s is a round robin of teams in which every pair meets
// legs times, with home and away games balanced. Guideline breaches are
// reported as warnings.
func Check(teams []string, legs int, s schedule.Schedule, g config.Guidelines) []Violation {
	var violations []Violation

	// Hard constraints
	violations = append(violations, checkRoundShape(teams, legs, s)...)
	violations = append(violations, checkMatchups(teams, legs, s)...)
	violations = append(violations, checkBalance(teams, legs, s)...)

	// Guidelines
	violations = append(violations, checkStreaks(teams, s, g)...)

	return violations
}

func checkRoundShape(teams []string, legs int, s schedule.Schedule) []Violation {
	known := make(map[string]bool, len(teams))
	for _, team := range teams {
		known[team] = true
	}

	var violations []Violation

	n := len(teams)
	want := 0
	if n >= 2 {
		want = n - 1
		if n%2 == 1 {
			want = n
		}
		want *= legs
	}
	if len(s) != want {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("schedule has %d rounds, want %d", len(s), want),
		})
	}

	for i, round := range s {
		r := i + 1
		if len(round) != n/2 {
			violations = append(violations, Violation{
				Round:   r,
				Type:    "error",
				Message: fmt.Sprintf("round %d has %d games, want %d", r, len(round), n/2),
			})
		}

		playing := make(map[string]bool)
		for _, p := range round {
			if p.Home == p.Away {
				violations = append(violations, Violation{
					Round:   r,
					Type:    "error",
					Message: fmt.Sprintf("%s plays itself in round %d", p.Home, r),
				})
			}
			for _, team := range []string{p.Home, p.Away} {
				if !known[team] {
					violations = append(violations, Violation{
						Round:   r,
						Type:    "error",
						Message: fmt.Sprintf("unknown team %q in round %d", team, r),
					})
					continue
				}
				if playing[team] && p.Home != p.Away {
					violations = append(violations, Violation{
						Round:   r,
						Type:    "error",
						Message: fmt.Sprintf("%s plays more than once in round %d", team, r),
					})
				}
				playing[team] = true
			}
		}
	}
	return violations
}

func checkMatchups(teams []string, legs int, s schedule.Schedule) []Violation {
	type venue struct{ home, away string }
	games := make(map[venue]int)
	for _, f := range s.Fixtures() {
		games[venue{f.Home, f.Away}]++
	}

	var violations []Violation
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			a, b := teams[i], teams[j]
			ab, ba := games[venue{a, b}], games[venue{b, a}]
			if ab+ba != legs {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s vs %s meet %d times, want %d", a, b, ab+ba, legs),
				})
				continue
			}
			if legs == 2 && ab != 1 {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s vs %s are both played at %s", a, b, homeOf(a, b, ab)),
				})
			}
		}
	}
	return violations
}

func homeOf(a, b string, aHosts int) string {
	if aHosts > 0 {
		return a
	}
	return b
}

// checkBalance enforces the tightest home/away split the format allows:
// exact when every team plays an even number of games, within one otherwise.
func checkBalance(teams []string, legs int, s schedule.Schedule) []Violation {
	limit := 1
	if legs == 2 || len(teams)%2 == 1 {
		limit = 0
	}

	records := s.Records()
	var violations []Violation
	for _, team := range teams {
		rec := records[team]
		diff := rec.Home - rec.Away
		if diff > limit || diff < -limit {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has %d home and %d away games", team, rec.Home, rec.Away),
			})
		}
	}
	return violations
}

// checkStreaks warns about runs of consecutive home or away games longer
// than the guideline. A bye does not end a run.
func checkStreaks(teams []string, s schedule.Schedule, g config.Guidelines) []Violation {
	if g.MaxStreak <= 0 {
		return nil
	}

	venues := make(map[string][]bool) // team -> home? per game played
	rounds := make(map[string][]int)
	for _, f := range s.Fixtures() {
		venues[f.Home] = append(venues[f.Home], true)
		rounds[f.Home] = append(rounds[f.Home], f.Round)
		venues[f.Away] = append(venues[f.Away], false)
		rounds[f.Away] = append(rounds[f.Away], f.Round)
	}

	var violations []Violation
	for _, team := range teams {
		v := venues[team]
		run := 1
		for i := 1; i <= len(v); i++ {
			if i < len(v) && v[i] == v[i-1] {
				run++
				continue
			}
			if run > g.MaxStreak {
				where := "away"
				if v[i-1] {
					where = "home"
				}
				start, end := rounds[team][i-run], rounds[team][i-1]
				violations = append(violations, Violation{
					Round: start,
					Type:  "warning",
					Message: fmt.Sprintf("%s plays %d straight %s games in rounds %d-%d (max %d)",
						team, run, where, start, end, g.MaxStreak),
				})
			}
			run = 1
		}
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Round < violations[j].Round
	})
	return violations
}
