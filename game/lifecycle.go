package game

import (
	"fmt"
	"log/slog"

	"github.com/ahtohbi4/nature-simulator/population"
	"github.com/ahtohbi4/nature-simulator/telemetry"
)

// Born implements population.Observer.
func (p *Planet) Born(child population.Agent, day int) {
	parents := child.Parents()
	p.lifetimes.Register(child.ID(), day, child.Kind())
	p.collector.Record(telemetry.NewBirthEvent(day, child.ID(), parents.Mother, parents.Father, child.Kind()))

	event := "agent_seeded"
	if parents.HasParents() {
		event = "agent_born"
	}
	slog.Debug(event,
		"day", day,
		"id", child.ID(),
		"name", child.FullName(),
		"gender", child.Gender().String(),
	)
}

// Died implements population.Observer.
func (p *Planet) Died(agent population.Agent, day int) {
	p.deaths++
	_, reason, _ := agent.Death()
	p.lifetimes.RecordDeath(agent.ID(), day)
	p.collector.Record(telemetry.NewDeathEvent(day, agent.ID(), agent.Kind(), reason.String()))

	slog.Info("agent_died",
		"day", day,
		"name", agent.FullName(),
		"age", agent.Age(day),
		"reason", reason.String(),
	)
	if err := p.Notify(fmt.Sprintf("The %s %s has died.", agent.Kind(), agent.Name())); err != nil {
		slog.Error("failed to notify", "error", err)
	}
}

// Childbirth implements population.Observer.
func (p *Planet) Childbirth(mother, father, child population.Agent, day int) {
	p.births++
	p.lifetimes.RecordChild(mother.ID())
	p.lifetimes.RecordChild(father.ID())

	slog.Info("childbirth",
		"day", day,
		"mother", mother.FullName(),
		"father", father.FullName(),
		"child", child.FullName(),
	)
}
