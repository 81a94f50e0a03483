package position

import "golang.org/x/exp/constraints"

type Direction uint8

const (
	DirectionN Direction = iota
	DirectionNE
	DirectionE
	DirectionSE
	DirectionS
	DirectionSW
	DirectionW
	DirectionNW

	TotalDirections = 8
)

var (
	// Directions lists every compass direction, clockwise from N.
	Directions = [TotalDirections]Direction{
		DirectionN, DirectionNE, DirectionE, DirectionSE,
		DirectionS, DirectionSW, DirectionW, DirectionNW,
	}

	// N points towards rank 0.
	directionOffset = [TotalDirections][2]Pos{
		DirectionN:  {0, -1},
		DirectionNE: {1, -1},
		DirectionE:  {1, 0},
		DirectionSE: {1, 1},
		DirectionS:  {0, 1},
		DirectionSW: {-1, 1},
		DirectionW:  {-1, 0},
		DirectionNW: {-1, -1},
	}

	edgeDistance [TotalDirections][TotalCells]Pos
)

func init() {
	initEdgeDistance()
}

func initEdgeDistance() {
	for pos := Pos(0); pos < TotalCells; pos++ {
		x, y := pos.X(), pos.Y()
		n := y
		e := MaxComponentScalar - 1 - x
		s := MaxComponentScalar - 1 - y
		w := x

		edgeDistance[DirectionN][pos] = n
		edgeDistance[DirectionE][pos] = e
		edgeDistance[DirectionS][pos] = s
		edgeDistance[DirectionW][pos] = w
		edgeDistance[DirectionNE][pos] = min(n, e)
		edgeDistance[DirectionNW][pos] = min(n, w)
		edgeDistance[DirectionSE][pos] = min(s, e)
		edgeDistance[DirectionSW][pos] = min(s, w)
	}
}

// EdgeDistance returns how many squares lie between pos and the board edge along d.
func EdgeDistance(d Direction, pos Pos) Pos {
	return edgeDistance[d][pos]
}

// Offset returns the (file, rank) delta of a single step.
func (d Direction) Offset() (Pos, Pos) {
	o := directionOffset[d]
	return o[0], o[1]
}

func (d Direction) Opposite() Direction {
	return (d + TotalDirections/2) % TotalDirections
}

func (d Direction) String() string {
	switch d {
	case DirectionN:
		return "N"
	case DirectionNE:
		return "NE"
	case DirectionE:
		return "E"
	case DirectionSE:
		return "SE"
	case DirectionS:
		return "S"
	case DirectionSW:
		return "SW"
	case DirectionW:
		return "W"
	case DirectionNW:
		return "NW"
	default:
		return ""
	}
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

// Abs returns the absolute value of x.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
