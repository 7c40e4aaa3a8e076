package skyward

// Snapshot contains the observable game state, used to compare runs.
type Snapshot struct {
	Tick     uint64
	Phase    string
	Balance  int
	Run      RunStats
	PlayerY  float64
	Vel      float64
	Rotation float64
	Frame    int

	// Each pipe is 3 values: X, GapY, Scored (0/1)
	PipeData []float64
	// Each coin is 3 values: ID, X, Y
	CoinData []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	pipeData := make([]float64, 0, len(g.world.Pipes)*3)
	for _, p := range g.world.Pipes {
		scored := 0.0
		if p.Scored {
			scored = 1
		}
		pipeData = append(pipeData, p.X, p.GapY, scored)
	}
	coinData := make([]float64, 0, len(g.world.Coins)*3)
	for _, c := range g.world.Coins {
		coinData = append(coinData, float64(c.ID), c.X, c.Y)
	}
	return Snapshot{
		Tick:     g.tick,
		Phase:    g.phase.String(),
		Balance:  g.ledger.Balance(),
		Run:      g.run,
		PlayerY:  g.world.Player.Y,
		Vel:      g.world.Player.Vel,
		Rotation: g.world.Player.Rotation,
		Frame:    g.world.Frame,
		PipeData: pipeData,
		CoinData: coinData,
	}
}
