package aggregators

// CountBucket is a fixed-length sequence of access counts, one slot per discrete time unit.
// Slots only ever grow; the sum of all slots is the number of entries counted into it.
type CountBucket struct {
	counts []int64
}

func NewCountBucket(size int) *CountBucket {
	return &CountBucket{counts: make([]int64, size)}
}

func (b *CountBucket) Len() int {
	return len(b.counts)
}

// InRange reports whether index addresses a slot.
func (b *CountBucket) InRange(index int) bool {
	return index >= 0 && index < len(b.counts)
}

// Increment adds one to the slot at index. index must be InRange.
func (b *CountBucket) Increment(index int) {
	b.counts[index]++
}

func (b *CountBucket) Count(index int) int64 {
	return b.counts[index]
}

func (b *CountBucket) Total() int64 {
	var total int64
	for _, c := range b.counts {
		total += c
	}
	return total
}

// ExtremeIndex returns the index of the largest (selectMax) or smallest count.
// Ties go to the lowest index: the running best is only replaced on a strict improvement,
// so an empty or all-equal bucket yields 0.
func (b *CountBucket) ExtremeIndex(selectMax bool) int {
	best := 0
	for i := 1; i < len(b.counts); i++ {
		if selectMax && b.counts[i] > b.counts[best] {
			best = i
		}
		if !selectMax && b.counts[i] < b.counts[best] {
			best = i
		}
	}
	return best
}

// BusiestWindow returns the start index of the width-slot contiguous run with the largest sum.
// The run starting at 0 is the initial candidate and ties go to the lowest start.
// Returns 0 when the bucket is shorter than width.
func (b *CountBucket) BusiestWindow(width int) int {
	if width <= 0 || width > len(b.counts) {
		return 0
	}

	var sum int64
	for i := 0; i < width; i++ {
		sum += b.counts[i]
	}

	bestStart, bestSum := 0, sum
	for start := 1; start+width <= len(b.counts); start++ {
		sum += b.counts[start+width-1] - b.counts[start-1]
		if sum > bestSum {
			bestStart, bestSum = start, sum
		}
	}
	return bestStart
}

// Snapshot returns a copy of the counts.
func (b *CountBucket) Snapshot() []int64 {
	out := make([]int64, len(b.counts))
	copy(out, b.counts)
	return out
}
