package document

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/camzach/roundrobin/internal/config"
	"github.com/camzach/roundrobin/internal/schedule"
)

// Game is one fixture in the document.
type Game struct {
	Label string `yaml:"label"`
	Home  string `yaml:"home"`
	Away  string `yaml:"away"`
}

// Round lists a round's games and the team sitting it out, if any.
type Round struct {
	Number int    `yaml:"round"`
	Bye    string `yaml:"bye,omitempty"`
	Games  []Game `yaml:"games"`
}

// Document is the generated season handed to whatever stores it.
type Document struct {
	League   string   `yaml:"league,omitempty"`
	Strategy string   `yaml:"strategy"`
	Teams    []string `yaml:"teams"`
	Rounds   []Round  `yaml:"rounds"`
}

// New builds a document from a generated schedule. Games are labelled
// "Game 1", "Game 2", ... across the whole season.
func New(cfg *config.Config, s schedule.Schedule) *Document {
	doc := &Document{
		League:   cfg.League,
		Strategy: cfg.Strategy,
		Teams:    cfg.Teams,
		Rounds:   make([]Round, 0, len(s)),
	}

	byes := s.Byes(cfg.Teams)
	gameNum := 1
	for i, round := range s {
		r := Round{Number: i + 1, Bye: byes[i], Games: make([]Game, 0, len(round))}
		for _, p := range round {
			r.Games = append(r.Games, Game{
				Label: fmt.Sprintf("Game %d", gameNum),
				Home:  p.Home,
				Away:  p.Away,
			})
			gameNum++
		}
		doc.Rounds = append(doc.Rounds, r)
	}
	return doc
}

// Schedule rebuilds the schedule the document describes. Rounds are taken
// in document order.
func (d *Document) Schedule() schedule.Schedule {
	s := make(schedule.Schedule, len(d.Rounds))
	for i, r := range d.Rounds {
		s[i] = make(schedule.Round, len(r.Games))
		for j, g := range r.Games {
			s[i][j] = schedule.Pairing{Home: g.Home, Away: g.Away}
		}
	}
	return s
}

// Write encodes the document as YAML.
func Write(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return enc.Close()
}

// Read decodes a YAML document.
func Read(r io.Reader) (*Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("schedule is empty")
		}
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	return &d, nil
}

func WriteFile(path string, d *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
