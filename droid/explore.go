package droid

import (
	"math/rand"

	"github.com/pkg/errors"
)

var (
	// ErrTrapped is returned when every direction from the droid is walled.
	ErrTrapped = errors.New("droid is walled in")
	// ErrMoveLimit is returned when exploration exceeds Explorer.MaxMoves.
	ErrMoveLimit = errors.New("move limit reached")
)

// Explorer records what a droid learns about the maze as it moves.
type Explorer struct {
	Area  Area
	Pos   Point
	Moves int

	// MaxMoves bounds the number of moves made by FindGoal and Map.
	// Zero means no limit.
	MaxMoves int

	// OnMove, if not nil, is called after every move.
	OnMove func(e *Explorer, d Direction, r Reply)

	Logf func(format string, args ...any)

	rand *rand.Rand
}

// NewExplorer returns an Explorer positioned at the start of an unexplored
// maze. Random choices are made from a source seeded with seed.
func NewExplorer(seed int64) *Explorer {
	return &Explorer{
		Area: Area{{}: Start},
		Logf: func(string, ...any) {},
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Move moves the droid in direction d and records the outcome.
func (e *Explorer) Move(c Controller, d Direction) (Reply, error) {
	if e.MaxMoves > 0 && e.Moves >= e.MaxMoves {
		return 0, ErrMoveLimit
	}
	r, err := c.Move(d)
	if err != nil {
		return 0, err
	}
	e.Moves++
	next := e.Pos.Move(d)
	switch r {
	case HitWall:
		e.Area[next] = Wall
	case Moved:
		if e.Area[next] == Unknown {
			e.Area[next] = Free
		}
		e.Pos = next
	case ReachedGoal:
		if e.Area[next] != Goal {
			e.Logf("droid: goal at %v after %d moves", next, e.Moves)
		}
		e.Area[next] = Goal
		e.Pos = next
	}
	if e.OnMove != nil {
		e.OnMove(e, d, r)
	}
	return r, nil
}

// FindGoal wanders at random, never walking into a known wall, until the
// droid reaches the goal.
func (e *Explorer) FindGoal(c Controller) (Point, error) {
	for {
		var open []Direction
		for _, d := range Directions {
			if e.Area[e.Pos.Move(d)] != Wall {
				open = append(open, d)
			}
		}
		if len(open) == 0 {
			return Point{}, ErrTrapped
		}
		r, err := e.Move(c, open[e.rand.Intn(len(open))])
		if err != nil {
			return Point{}, err
		}
		if r == ReachedGoal {
			return e.Pos, nil
		}
	}
}

// Map explores every reachable point of the maze depth first and returns
// the droid to where it was.
func (e *Explorer) Map(c Controller) error {
	for _, d := range Directions {
		if e.Area[e.Pos.Move(d)] != Unknown {
			continue
		}
		r, err := e.Move(c, d)
		if err != nil {
			return err
		}
		if r == HitWall {
			continue
		}
		if err := e.Map(c); err != nil {
			return err
		}
		if r, err := e.Move(c, d.Reverse()); err != nil {
			return err
		} else if r == HitWall {
			return errors.Errorf("cannot backtrack %v from %v", d.Reverse(), e.Pos)
		}
	}
	return nil
}

// ShortestPath returns the fewest moves between two points over known
// passable tiles, and false if no known path exists.
func ShortestPath(a Area, from, to Point) (int, bool) {
	n, ok := flood(a, from)[to]
	return n, ok
}

// FillTime returns the number of steps needed for something spreading one
// tile per step from origin to reach every connected passable tile.
func FillTime(a Area, origin Point) int {
	t := 0
	for _, n := range flood(a, origin) {
		t = max(t, n)
	}
	return t
}

// flood returns the distance to every passable point reachable from origin.
func flood(a Area, origin Point) map[Point]int {
	dist := map[Point]int{}
	if !a[origin].Passable() {
		return dist
	}
	dist[origin] = 0
	queue := []Point{origin}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			q := p.Move(d)
			if _, seen := dist[q]; seen || !a[q].Passable() {
				continue
			}
			dist[q] = dist[p] + 1
			queue = append(queue, q)
		}
	}
	return dist
}
