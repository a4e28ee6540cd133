package systems

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is an agent position in population order.
type Point struct {
	E   ecs.Entity
	Pos orb.Point
}

// Neighbor is another agent and its distance from the query origin.
type Neighbor struct {
	E        ecs.Entity
	Distance float64
}

// Neighborhood is one agent's view of the population for a tick.
// Unseen counts agents left out because they are beyond the query radius.
type Neighborhood struct {
	Neighbors []Neighbor
	Unseen    int
}

// Relation maps every agent to its neighbourhood.
type Relation struct {
	index map[ecs.Entity]int
	hoods []Neighborhood
}

func newRelation(points []Point) Relation {
	r := Relation{
		index: make(map[ecs.Entity]int, len(points)),
		hoods: make([]Neighborhood, len(points)),
	}
	for i, p := range points {
		r.index[p.E] = i
	}
	return r
}

// Of returns the neighbourhood of e. Unknown entities get an empty one.
func (r Relation) Of(e ecs.Entity) Neighborhood {
	i, ok := r.index[e]
	if !ok {
		return Neighborhood{}
	}
	return r.hoods[i]
}

// Distance returns the recorded distance from a to b.
func (r Relation) Distance(a, b ecs.Entity) (float64, bool) {
	for _, n := range r.Of(a).Neighbors {
		if n.E == b {
			return n.Distance, true
		}
	}
	return 0, false
}

// Len returns the number of agents in the relation.
func (r Relation) Len() int {
	return len(r.hoods)
}

// PairwiseDistances computes the distance of every unordered pair once and
// records it for both agents. Each agent's neighbours keep population order.
func PairwiseDistances(points []Point) Relation {
	r := newRelation(points)
	n := len(points)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := planar.Distance(points[i].Pos, points[j].Pos)
			r.hoods[i].Neighbors = append(r.hoods[i].Neighbors, Neighbor{E: points[j].E, Distance: d})
			r.hoods[j].Neighbors = append(r.hoods[j].Neighbors, Neighbor{E: points[i].E, Distance: d})
		}
	}
	return r
}
