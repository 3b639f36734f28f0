package game

// rankThreshold is the minimum score for a rank letter
type rankThreshold struct {
	Letter string
	Min    int
}

// ranks is ordered from best to worst; the last entry is the floor
var ranks = []rankThreshold{
	{Letter: "S", Min: 12000},
	{Letter: "A", Min: 9000},
	{Letter: "B", Min: 6500},
	{Letter: "C", Min: 4200},
	{Letter: "D", Min: 2500},
	{Letter: "E", Min: 0},
}

// Rank returns the letter grade for a score
func Rank(score int) string {
	for _, r := range ranks {
		if score >= r.Min {
			return r.Letter
		}
	}
	return ranks[len(ranks)-1].Letter
}

// Ranks lists the rank letters from best to worst
func Ranks() []string {
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Letter
	}
	return out
}
