package skyward

// Outcome lists what one tick's collision pass found.
type Outcome struct {
	Crashed bool
	Passed  *Pipe  // pipe scored this tick, if any
	Coins   []Coin // coins collected this tick
}

// HitsBoundary reports whether the player touches the top or bottom edge.
func HitsBoundary(p Player, t Tuning) bool {
	return p.Y <= 0 || p.Y >= t.Floor()
}

// HitsPipe reports whether the player overlaps a pipe outside its gap.
func HitsPipe(p Player, pipe Pipe, t Tuning) bool {
	box := t.PlayerBox(p.Y)
	if !box.OverlapsX(pipe.X, pipe.Right(t)) {
		return false
	}
	return box.Y < pipe.GapTop(t) || box.Bottom() > pipe.GapBottom(t)
}

// Collide evaluates terminal and scoring events on post-move positions.
// It flags at most one pipe as scored and removes every collected coin.
func (w *World) Collide(t Tuning) Outcome {
	var out Outcome

	if HitsBoundary(w.Player, t) {
		out.Crashed = true
	} else {
		for _, pipe := range w.Pipes {
			if HitsPipe(w.Player, pipe, t) {
				out.Crashed = true
				break
			}
		}
	}

	for i := range w.Pipes {
		if !w.Pipes[i].Scored && w.Pipes[i].Right(t) < t.PlayerX {
			w.Pipes[i].Scored = true
			passed := w.Pipes[i]
			out.Passed = &passed
			break
		}
	}

	box := t.PlayerBox(w.Player.Y)
	kept := w.Coins[:0]
	for _, c := range w.Coins {
		if box.Intersects(c.Box(t)) {
			out.Coins = append(out.Coins, c)
			continue
		}
		kept = append(kept, c)
	}
	w.Coins = kept

	return out
}
