package game

import (
	"github.com/ahtohbi4/nature-simulator/telemetry"
)

// step simulates one day. It is the clock's OnDay callback.
func (p *Planet) step(day int) error {
	p.perf.StartDay()

	p.perf.StartPhase(telemetry.PhaseDistances)
	rel := p.field.Distances()

	p.perf.StartPhase(telemetry.PhaseAgents)
	if err := p.field.StepWith(day, rel); err != nil {
		p.perf.EndDay()
		return err
	}

	p.perf.StartPhase(telemetry.PhaseRender)
	p.render()

	p.perf.StartPhase(telemetry.PhaseTelemetry)
	p.flushTelemetry(day + 1)

	p.perf.EndDay()
	return nil
}
