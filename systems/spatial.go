// Package systems provides the per-tick spatial computations of the simulation.
package systems

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SpatialGrid buckets point indices into square cells so radius queries only
// touch nearby cells.
type SpatialGrid struct {
	cellSize float64
	origin   orb.Point
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a grid covering bound.
func NewSpatialGrid(bound orb.Bound, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int((bound.Right()-bound.Left())/cellSize) + 1
	rows := int((bound.Top()-bound.Bottom())/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		origin:   bound.Min,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds the point index idx at p.
func (g *SpatialGrid) Insert(idx int, p orb.Point) {
	col, row := g.cell(p)
	g.cells[row*g.cols+col] = append(g.cells[row*g.cols+col], idx)
}

// QueryRadiusInto appends to dst the indices stored in every cell that a
// circle of radius around p overlaps. Callers filter by exact distance.
func (g *SpatialGrid) QueryRadiusInto(dst []int, p orb.Point, radius float64) []int {
	colMin, rowMin := g.cell(orb.Point{p.X() - radius, p.Y() - radius})
	colMax, rowMax := g.cell(orb.Point{p.X() + radius, p.Y() + radius})

	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cell returns the clamped cell coordinates for p.
func (g *SpatialGrid) cell(p orb.Point) (col, row int) {
	col = int(math.Floor((p.X() - g.origin.X()) / g.cellSize))
	row = int(math.Floor((p.Y() - g.origin.Y()) / g.cellSize))

	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}

// GridDistances returns, for every point, the neighbours within radius in
// population order, matching PairwiseDistances restricted to that radius.
// Agents beyond the radius are counted in Neighborhood.Unseen.
func GridDistances(points []Point, cellSize, radius float64) Relation {
	r := newRelation(points)
	if len(points) == 0 {
		return r
	}

	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = p.Pos
	}
	if cellSize <= 0 {
		cellSize = radius
	}

	grid := NewSpatialGrid(mp.Bound(), cellSize)
	for i, p := range points {
		grid.Insert(i, p.Pos)
	}

	var candidates []int
	for i, p := range points {
		candidates = grid.QueryRadiusInto(candidates[:0], p.Pos, radius)
		slices.Sort(candidates)

		hood := &r.hoods[i]
		for _, j := range candidates {
			if j == i {
				continue
			}
			d := planar.Distance(p.Pos, points[j].Pos)
			if d <= radius {
				hood.Neighbors = append(hood.Neighbors, Neighbor{E: points[j].E, Distance: d})
			}
		}
		hood.Unseen = len(points) - 1 - len(hood.Neighbors)
	}
	return r
}
