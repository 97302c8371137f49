package board

// IsLegalMove checks that target is one knight move away from origin, is not
// Barrier or Rock, and that at least one of the two L-shaped approach lines
// is not walled off by Barrier on both of its intermediate cells.
func (b *Board) IsLegalMove(origin, target Coordinate) bool {
	if !b.OnBoard(origin) || !b.OnBoard(target) {
		return false
	}

	dx := target.X - origin.X
	dy := target.Y - origin.Y
	if dx*dx+dy*dy != knightDistanceSquared {
		return false
	}

	if !b.TerrainAt(target).Passable() {
		return false
	}

	first, second := approachLines(origin, dx, dy)
	return !(b.lineBlocked(first) && b.lineBlocked(second))
}

// approachLines returns the two intermediate cells of each L-shaped route from
// origin to origin+(dx,dy): the long leg first, then the short leg first.
func approachLines(origin Coordinate, dx, dy int) ([2]Coordinate, [2]Coordinate) {
	sx, sy := sign(dx), sign(dy)
	if abs(dx) > abs(dy) {
		return [2]Coordinate{
				{origin.X + sx, origin.Y},
				{origin.X + 2*sx, origin.Y},
			}, [2]Coordinate{
				{origin.X, origin.Y + sy},
				{origin.X + sx, origin.Y + sy},
			}
	}
	return [2]Coordinate{
			{origin.X, origin.Y + sy},
			{origin.X, origin.Y + 2*sy},
		}, [2]Coordinate{
			{origin.X + sx, origin.Y},
			{origin.X + sx, origin.Y + sy},
		}
}

func (b *Board) lineBlocked(line [2]Coordinate) bool {
	return b.isBarrier(line[0]) && b.isBarrier(line[1])
}

func (b *Board) isBarrier(c Coordinate) bool {
	return b.OnBoard(c) && b.TerrainAt(c) == Barrier
}

// LegalMoves lists the legal destinations from c in enumeration order
func (b *Board) LegalMoves(c Coordinate) []Coordinate {
	var moves []Coordinate
	for _, off := range knightOffsets {
		t := Coordinate{c.X + off.X, c.Y + off.Y}
		if b.IsLegalMove(c, t) {
			moves = append(moves, t)
		}
	}
	return moves
}

// Validate reports whether path is a sequence of legal knight moves.
// An empty path is invalid and a single cell is valid when it is on the board.
func (b *Board) Validate(path []Coordinate) bool {
	return b.validate(path, false)
}

// ValidateRoute is Validate that also accepts a teleport hop: a legal move onto
// one teleport followed directly by the other teleport of the pair.
func (b *Board) ValidateRoute(path []Coordinate) bool {
	return b.validate(path, true)
}

func (b *Board) validate(path []Coordinate, teleports bool) bool {
	if len(path) == 0 {
		return false
	}
	if len(path) == 1 {
		return b.OnBoard(path[0])
	}
	for i := 1; i < len(path); i++ {
		o, t := path[i-1], path[i]
		if !b.OnBoard(o) || !b.OnBoard(t) {
			return false
		}
		if b.IsLegalMove(o, t) {
			continue
		}
		if teleports && b.isTeleportHop(o, t) {
			continue
		}
		return false
	}
	return true
}

// isTeleportHop reports whether a knight on o can reach t by stepping onto the
// paired teleport of t, or is already standing on it
func (b *Board) isTeleportHop(o, t Coordinate) bool {
	if len(b.teleports) != MaxTeleports {
		return false
	}
	a, z := b.teleports[0], b.teleports[1]
	switch t {
	case a:
		return o == z || b.IsLegalMove(o, z)
	case z:
		return o == a || b.IsLegalMove(o, a)
	}
	return false
}

// MoveKnight validates path and, when annotate is set, leaves Start, End,
// PathPoint and Knight markers on the board for the rendering collaborator.
func (b *Board) MoveKnight(path []Coordinate, annotate bool) bool {
	return b.replay(path, annotate, nil)
}

// Replay is MoveKnight with annotation that also captures the board rows after
// every step. Frames recorded before an illegal step are returned with false.
func (b *Board) Replay(path []Coordinate) ([][]string, bool) {
	var frames [][]string
	ok := b.replay(path, true, func() {
		frames = append(frames, b.Rows())
	})
	return frames, ok
}

func (b *Board) replay(path []Coordinate, annotate bool, onStep func()) bool {
	b.ClearMarks()

	if len(path) == 0 {
		return false
	}

	if len(path) == 1 {
		if !b.OnBoard(path[0]) {
			return false
		}
		if annotate {
			b.setMark(path[0], Knight)
			if onStep != nil {
				onStep()
			}
		}
		return true
	}

	if annotate {
		b.setMark(path[0], Start)
		b.setMark(path[len(path)-1], End)
	}

	for oi, ti := 0, 1; ti < len(path); oi, ti = oi+1, ti+1 {
		o, t := path[oi], path[ti]
		if !b.OnBoard(o) || !b.OnBoard(t) {
			return false
		}
		if !b.IsLegalMove(o, t) {
			return false
		}
		if annotate {
			if oi == 0 {
				b.setMark(o, Start)
			} else {
				b.setMark(o, PathPoint)
			}
			b.setMark(t, Knight)
			if onStep != nil {
				onStep()
			}
		}
	}

	return true
}
