package trace

import "github.com/booktrace/mdbook-trace/internal/config"

// Number computes the hierarchical number for the count-th trace marker
// (1-based, reset per chapter) of a chapter whose own number is prefix
// and which has subchapters child chapters. The prefix is never mutated.
func Number(policy config.ParentNumbering, prefix []int, count, subchapters int) []int {
	n := make([]int, 0, len(prefix)+2)
	n = append(n, prefix...)

	switch policy {
	case config.NumberingAllowDuplicates:
		n = append(n, count)
	case config.NumberingOffset:
		n = append(n, count+subchapters)
	default: // config.NumberingZero
		if subchapters > 0 {
			n = append(n, 0)
		}
		n = append(n, count)
	}
	return n
}
