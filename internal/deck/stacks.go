package deck

// StackSize is the number of card copies per visual stack in the image-grid
// layout.
const StackSize = 4

// BuildStacks groups per-card indices into fixed-size stacks for grid
// display. Each copy of card i contributes one i to the sequence; the
// sequence is chunked into ceil(total/size) groups of at most size entries.
// counts gives the copy count per card, in display order.
func BuildStacks(counts []int, size int) [][]int {
	if size <= 0 {
		size = StackSize
	}
	var stacks [][]int
	current := make([]int, 0, size)
	for ix, count := range counts {
		for c := 0; c < count; c++ {
			current = append(current, ix)
			if len(current) == size {
				stacks = append(stacks, current)
				current = make([]int, 0, size)
			}
		}
	}
	if len(current) > 0 {
		stacks = append(stacks, current)
	}
	return stacks
}
