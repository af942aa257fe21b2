package sweep

// LevelPolicy produces the ordered concurrency levels a sweep visits.
type LevelPolicy interface {
	Levels() []int
}

// Doubling yields Start, Start*2, ... up to and including Max. Max below
// Start yields just the start level: a sweep always measures at least one
// point.
type Doubling struct {
	Start int
	Max   int
}

func (d Doubling) Levels() []int {
	start := d.Start
	if start < 1 {
		start = 1
	}
	if d.Max < start {
		return []int{start}
	}
	var out []int
	for n := start; n <= d.Max; n *= 2 {
		out = append(out, n)
	}
	return out
}

// Explicit yields a caller-supplied list as-is.
type Explicit struct {
	Values []int
}

func (e Explicit) Levels() []int {
	out := make([]int, len(e.Values))
	copy(out, e.Values)
	return out
}
