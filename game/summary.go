package game

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Summary describes a finished (or interrupted) run.
type Summary struct {
	Planet string
	Days   int
	Agents int
	Alive  int
	Dead   int
	Births int
	Deaths int

	OldestName string
	OldestAge  int

	MostFertileName     string
	MostFertileChildren int
}

// Summary reports on the run so far.
func (p *Planet) Summary() Summary {
	day := p.clock.Day
	c := p.field.Census(day)
	s := Summary{
		Planet: p.name,
		Days:   day,
		Agents: p.field.Len(),
		Alive:  c.Alive,
		Dead:   c.Dead,
		Births: p.births,
		Deaths: p.deaths,
	}

	if id, stats, ok := p.lifetimes.Oldest(day); ok {
		s.OldestName = p.nameOf(id)
		s.OldestAge = stats.Age(day)
	}
	if id, stats, ok := p.lifetimes.MostFertile(); ok {
		s.MostFertileName = p.nameOf(id)
		s.MostFertileChildren = stats.Children
	}
	return s
}

func (p *Planet) nameOf(id uuid.UUID) string {
	if a, ok := p.field.Agent(id); ok {
		return a.FullName()
	}
	return id.String()
}

// String formats the summary for people.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Planet %s lived %s days: %s agents, %s alive, %s dead.",
		s.Planet, humanize.Comma(int64(s.Days)), humanize.Comma(int64(s.Agents)),
		humanize.Comma(int64(s.Alive)), humanize.Comma(int64(s.Dead)))
	fmt.Fprintf(&b, " %s born, %s died.", humanize.Comma(int64(s.Births)), humanize.Comma(int64(s.Deaths)))
	if s.OldestName != "" {
		fmt.Fprintf(&b, " Oldest: %s, who saw the %s day of life.", s.OldestName, humanize.Ordinal(s.OldestAge))
	}
	if s.MostFertileName != "" {
		fmt.Fprintf(&b, " Most children: %s (%d).", s.MostFertileName, s.MostFertileChildren)
	}
	return b.String()
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("planet", s.Planet),
		slog.Int("days", s.Days),
		slog.Int("agents", s.Agents),
		slog.Int("alive", s.Alive),
		slog.Int("dead", s.Dead),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.String("oldest", s.OldestName),
		slog.Int("oldest_age", s.OldestAge),
		slog.String("most_fertile", s.MostFertileName),
		slog.Int("most_children", s.MostFertileChildren),
	)
}
