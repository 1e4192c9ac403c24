package model

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is a unit step. Each component is -1, 0 or 1.
type Direction struct {
	DRow int
	DCol int
}

func (d Direction) IsZero() bool {
	return d.DRow == 0 && d.DCol == 0
}

// Delta returns dest minus origin, row and column.
func Delta(origin, dest Position) (int, int) {
	return dest.Row - origin.Row, dest.Col - origin.Col
}

// Sign maps a delta component to -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

// Ray returns the squares from one step past origin towards the board
// edge along dir. A zero direction yields no squares.
func Ray(origin Position, dir Direction) []Position {
	if dir.IsZero() {
		return nil
	}
	line := []Position{}
	pos := Position{Row: origin.Row + dir.DRow, Col: origin.Col + dir.DCol}
	for InBounds(pos) {
		line = append(line, pos)
		pos = Position{Row: pos.Row + dir.DRow, Col: pos.Col + dir.DCol}
	}
	return line
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
