package aggregate

// layout is the tuple geometry computed once at construction: byte widths
// and offsets derived from the group-column widths and the aggregate
// descriptor list. aggOffsets and countOffset are absolute byte offsets
// from a slot's own start (its FLAG byte), so AddChunk/Scan locate any
// field by adding the relevant entry to a slot address, rather than
// recomputing the offset on the fly while walking aggregates in order.
type layout struct {
	groupWidth   int   // G
	payloadWidth int   // P
	aggOffsets   []int // per-aggregate state offset, absolute from slot start
	stride       int   // T = 1 + G + P + 8
	countOffset  int   // COUNT field offset, absolute from slot start
}

func newLayout(groupWidths []int, descs []Descriptor) *layout {
	g := 0
	for _, w := range groupWidths {
		g += w
	}
	offs := make([]int, len(descs))
	p := 0
	for i, d := range descs {
		offs[i] = 1 + g + p
		p += d.StateWidth()
	}
	return &layout{
		groupWidth:   g,
		payloadWidth: p,
		aggOffsets:   offs,
		stride:       1 + g + p + 8,
		countOffset:  1 + g + p,
	}
}
