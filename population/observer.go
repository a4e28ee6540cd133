package population

// Observer receives lifecycle events from a Field. Methods are called
// synchronously from inside Spawn and Step.
type Observer interface {
	Born(child Agent, day int)
	Died(agent Agent, day int)
	Childbirth(mother, father, child Agent, day int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Born(Agent, int)                     {}
func (NopObserver) Died(Agent, int)                     {}
func (NopObserver) Childbirth(Agent, Agent, Agent, int) {}
