package graph

import (
	"math"
	"time"

	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/observability"
)

// Geometry shared by layout, hit testing and drawing. Lengths are in world
// units, where the world is one unit wide.
const (
	NodeRadius    = 0.035
	EdgeTolerance = 16.0 / 1000
	LoopRadius    = 0.75 * NodeRadius
	AspectRatio   = 5.0 / 3.0

	// reciprocalBend is how far a straight edge's endpoints are rotated away
	// from the center line when the reverse edge also exists.
	reciprocalBend = math.Pi / 6

	loopSampleFirst = -5  // degrees
	loopSampleLast  = 355 // exclusive
	loopSampleStep  = 10
)

// World returns the logical rectangle nodes live in: [0,1] × [0,1/AspectRatio].
func World() geom.Rect {
	return geom.Rect{W: 1, H: 1 / AspectRatio}
}

// Style is the render geometry of an edge: either a [LineStyle] or a
// [LoopStyle].
type Style interface {
	// Contains reports whether p, in world coordinates, hits the edge.
	Contains(p geom.Point) bool

	isStyle()
}

// LineStyle draws an edge as a straight arrow from Start to End, both on the
// borders of the endpoint nodes.
type LineStyle struct {
	Start, End geom.Point
}

func (LineStyle) isStyle() {}

// Contains maps p into a frame whose y axis runs along the segment and tests
// that it lies within the segment span and half the edge tolerance of the line.
func (s LineStyle) Contains(p geom.Point) bool {
	v := s.End.Sub(s.Start)
	length := v.Len()
	if length == 0 {
		return false
	}
	along := v.Scale(1 / length)
	across := along.Rotate(math.Pi / 2)
	c := p.Sub(s.Start)

	x, y := across.Dot(c), along.Dot(c)
	return math.Abs(x) <= EdgeTolerance/2 && y >= 0 && y <= length
}

// LoopStyle draws a self-loop as a circle of Radius around Center. Arrow is
// where the loop re-enters the node border and the arrowhead sits.
type LoopStyle struct {
	Center geom.Point
	Arrow  geom.Point
	Radius float64
}

func (LoopStyle) isStyle() {}

// Contains reports whether p lies in the band of width EdgeTolerance on either
// side of the loop circle.
func (s LoopStyle) Contains(p geom.Point) bool {
	return math.Abs(p.Sub(s.Center).Len()-s.Radius) < EdgeTolerance
}

// relayout recomputes every edge style. Straight edges are placed first and
// become obstacles for self-loops, which are then placed one at a time, each
// becoming an obstacle for the next.
func (g *Graph) relayout() {
	start := time.Now()

	lines := append([]geom.Segment(nil), World().Edges()...)
	var loops []*Edge
	for _, e := range g.Edges() {
		if e.IsLoop() {
			loops = append(loops, e)
			continue
		}
		s := g.lineStyle(e)
		e.style = s
		lines = append(lines, geom.Segment{P0: s.Start, P1: s.End})
	}

	circles := make([]geom.Circle, 0, len(g.nodes)+len(loops))
	for _, n := range g.Nodes() {
		circles = append(circles, geom.Circle{Center: n.pos, Radius: NodeRadius})
	}
	for _, e := range loops {
		s := placeLoop(g.nodes[e.From].pos, lines, circles)
		e.style = s
		circles = append(circles, geom.Circle{Center: s.Center, Radius: s.Radius})
	}

	elapsed := time.Since(start)
	g.logger.Debug("layout", "lines", len(lines)-4, "loops", len(loops), "elapsed", elapsed)
	observability.Layout().OnLayoutComplete(len(lines)-4, len(loops), elapsed)
}

// lineStyle trims the center-to-center segment to the node borders. With a
// reciprocal edge present both endpoints are rotated off the center line, in
// opposite senses, so the two arrows separate.
func (g *Graph) lineStyle(e *Edge) LineStyle {
	p0, p1 := g.nodes[e.From].pos, g.nodes[e.To].pos
	d0 := p1.Sub(p0).Unit()
	d1 := p0.Sub(p1).Unit()
	if g.HasEdge(e.To, e.From) {
		d0 = d0.Rotate(-reciprocalBend)
		d1 = d1.Rotate(reciprocalBend)
	}
	return LineStyle{
		Start: p0.Add(d0.Scale(NodeRadius)),
		End:   p1.Add(d1.Scale(NodeRadius)),
	}
}

// placeLoop puts a self-loop on the node at pos at the angle found by
// [LoopAngle] and anchors the arrow where the loop circle meets the node
// border, measured counterclockwise from the loop center.
func placeLoop(pos geom.Point, lines []geom.Segment, circles []geom.Circle) LoopStyle {
	theta := LoopAngle(pos, lines, circles)
	center := pos.Add(geom.UnitToward(theta).Scale(NodeRadius))

	// Law of cosines on the triangle node center, loop center, intersection;
	// the two sides from the node center both have length NodeRadius.
	arc := math.Acos(1 - (LoopRadius*LoopRadius)/(2*NodeRadius*NodeRadius))
	arrow := pos.Add(center.Sub(pos).Rotate(arc))

	return LoopStyle{Center: center, Arrow: arrow, Radius: LoopRadius}
}

// LoopAngle samples candidate loop directions around the node at pos, counts
// how many obstacles a loop circle would hit in each direction, and returns
// the midpoint of the longest circular run of minimum-count samples, in
// (-π, π]. Ties go to the run found first.
func LoopAngle(pos geom.Point, lines []geom.Segment, circles []geom.Circle) float64 {
	var counts []int
	for deg := loopSampleFirst; deg < loopSampleLast; deg += loopSampleStep {
		theta := geom.Radians(float64(deg))
		center := pos.Add(geom.UnitToward(theta).Scale(NodeRadius))
		counts = append(counts, geom.Collisions(center, LoopRadius, lines, circles))
	}
	start, length := longestMinRun(counts)

	low := float64(loopSampleFirst + start*loopSampleStep)
	high := float64(loopSampleFirst + (start+length-1)*loopSampleStep)
	return geom.NormalizeAngle(geom.Radians((low + high) / 2))
}

// longestMinRun finds the longest run of minimal values in the circular
// sequence counts. A run that wraps past the end is reported by its start
// index with a length reaching beyond len(counts). If every value is minimal
// the wrapped run covers the sequence twice.
func longestMinRun(counts []int) (start, length int) {
	n := len(counts)
	if n == 0 {
		return 0, 0
	}
	lowest := counts[0]
	for _, c := range counts[1:] {
		lowest = min(lowest, c)
	}

	// Seed the current run with the minimal suffix so a run crossing the
	// sequence boundary is measured in one piece.
	currStart, currLen := 0, 0
	for i := n - 1; i >= 0 && counts[i] == lowest; i-- {
		currStart = i
		currLen++
	}

	bestStart, bestLen := 0, 0
	for i, c := range counts {
		if c == lowest {
			if currLen == 0 {
				currStart = i
			}
			currLen++
			continue
		}
		if currLen > bestLen {
			bestStart, bestLen = currStart, currLen
		}
		currLen = 0
	}
	if currLen > bestLen {
		bestStart, bestLen = currStart, currLen
	}
	return bestStart, bestLen
}
