package buffer

// Position addresses a grapheme cluster: Y is the line index, X the cluster
// index within that line. Y == Len() is the append point below the last line
// and X == line length is end-of-line.
type Position struct {
	X, Y int
}

// Direction selects which way a search proceeds.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}
