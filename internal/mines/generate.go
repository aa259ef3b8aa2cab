package mines

import "math/rand/v2"

// sampleMines picks n distinct indices out of [0, total) with every n-subset
// equally likely.
func sampleMines(total, n int, r *rand.Rand) []int {
	candidates := make([]int, total)
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Pick n off the list at random, moving the last unpicked
	 * candidate into the hole each time.
	 */
	picked := make([]int, 0, n)
	k := total
	for range n {
		i := r.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked
}

// layMines resets the board and places mines at the given flat indices,
// counting each mine into its neighbours.
func (g *Game) layMines(indices []int) {
	w, h, _ := g.settings.Unpack()
	g.board = make([]Cell, w*h)
	for _, i := range indices {
		g.board[i].mine = true
	}
	for _, i := range indices {
		g.settings.neighbours(i%w, i/w, func(xx, yy int) {
			g.board[yy*w+xx].adjacent++
		})
	}
}
