package matching

// Frequencies maps a token to its number of occurrences in one token sequence.
type Frequencies map[string]int

// Count tallies tokens. The sum of the counts equals len(tokens).
func Count(tokens []string) Frequencies {
	f := make(Frequencies, len(tokens))
	for _, t := range tokens {
		f[t]++
	}
	return f
}

// Get returns the count for token, 0 when absent.
func (f Frequencies) Get(token string) int {
	return f[token]
}

// Total returns the sum of all counts.
func (f Frequencies) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}
