package mines

// neighbours calls fn for every in-bounds cell of the Moore neighbourhood
// around x:y, excluding x:y itself.
func (s Settings) neighbours(x, y int, fn func(xx, yy int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if s.InBounds(x+dx, y+dy) {
				fn(x+dx, y+dy)
			}
		}
	}
}
