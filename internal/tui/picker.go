package tui

// picker cycles through the values of one facet. Index 0 is "no constraint".
type picker struct {
	label  string
	values []string
	index  int
}

func (p picker) value() string {
	if p.index == 0 {
		return ""
	}
	return p.values[p.index-1]
}

func (p *picker) move(delta int) {
	n := len(p.values) + 1
	p.index = ((p.index+delta)%n + n) % n
}
