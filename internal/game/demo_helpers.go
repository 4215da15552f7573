package game

import "golang.org/x/exp/rand"

// RandomPlay picks a random legal play for the current holder, standing a piecen on a
// claimable feature about half the time. It returns false when no tile is in hand.
// This is a helper intended for demos, testing, or simple baseline agents.
func RandomPlay(m *Manager, rng *rand.Rand) (PlayRequest, bool) {
	tile, ok := m.CurrentTile()
	if !ok {
		return PlayRequest{}, false
	}
	locs := m.LegalPlacements()
	if len(locs) == 0 {
		return PlayRequest{}, false
	}

	loc := locs[rng.Intn(len(locs))]
	orients := m.LegalOrientations(loc)
	req := PlayRequest{
		Tile:     tile,
		Location: loc,
		Orient:   orients[rng.Intn(len(orients))],
	}

	if m.PiecensAvailable(m.Holder()) > 0 && rng.Float32() < 0.5 {
		features, err := m.ClaimableFeatures(req.Location, req.Orient)
		if err == nil && len(features) > 0 {
			req.Piecen = true
			req.Feature = features[rng.Intn(len(features))]
		}
	}

	m.logger.Debug().
		Int("player_id", m.Holder()).
		Str("tile", tile.String()).
		Str("location", loc.String()).
		Str("orient", req.Orient.String()).
		Bool("piecen", req.Piecen).
		Msg("Generated random play")
	return req, true
}
