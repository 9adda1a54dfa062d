package schedule

// bye marks the empty seat added when the team count is odd.
const bye = -1

// seat is an unordered pairing of team indices. first sits in the
// anchored half of the ring, second in the half that is read backwards.
type seat struct {
	first, second int
}

// circle applies the circle method to n teams and returns the pairings of
// each round as team indices. Index 0 stays put while the others rotate
// one place per round. Pairings against the bye seat are dropped, so with
// an odd n one team is idle each round.
func circle(n int) [][]seat {
	if n < 2 {
		return nil
	}

	size := n + n%2
	ring := make([]int, 0, size-1)
	for i := 1; i < n; i++ {
		ring = append(ring, i)
	}
	if size > n {
		ring = append(ring, bye)
	}

	half := size / 2
	rounds := make([][]seat, 0, size-1)
	for r := 0; r < size-1; r++ {
		order := append([]int{0}, ring...)

		pairs := make([]seat, 0, half)
		for i := 0; i < half; i++ {
			a, b := order[i], order[size-1-i]
			if a == bye || b == bye {
				continue
			}
			pairs = append(pairs, seat{first: a, second: b})
		}
		rounds = append(rounds, pairs)

		// Last seat of the ring moves to its front.
		last := ring[len(ring)-1]
		copy(ring[1:], ring[:len(ring)-1])
		ring[0] = last
	}
	return rounds
}
