package textregion

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Run is a maximal span of offsets sharing one label.
type Run[L comparable] struct {
	Length int
	Label  L
}

// Region is a run-length encoded sequence of labels.
// The zero value is an empty region ready to use.
type Region[L comparable] struct {
	runs   []Run[L]
	length int
}

// New creates an empty region.
func New[L comparable]() *Region[L] {
	return &Region[L]{}
}

// Len returns the total length covered by the region.
func (r *Region[L]) Len() int {
	return r.length
}

// NumRuns returns the number of runs.
func (r *Region[L]) NumRuns() int {
	return len(r.runs)
}

// Runs returns a copy of the runs in offset order.
func (r *Region[L]) Runs() []Run[L] {
	return slices.Clone(r.runs)
}

// Insert inserts length units of label at offset, shifting everything at or
// after offset to the right.
func (r *Region[L]) Insert(offset, length int, label L) {
	if offset < 0 || length < 0 || offset > r.length {
		panic(fmt.Errorf("%w: insert %d+%d into length %d", ErrOutOfRange, offset, length, r.length))
	}
	if length == 0 {
		return
	}

	i := r.split(offset)
	r.runs = slices.Insert(r.runs, i, Run[L]{Length: length, Label: label})
	r.length += length
	r.coalesce(i)
}

// Remove deletes length units starting at offset, shifting everything after
// the removed span to the left.
func (r *Region[L]) Remove(offset, length int) {
	r.checkSpan("remove", offset, length)
	if length == 0 {
		return
	}

	i := r.split(offset)
	j := r.split(offset + length)
	r.runs = slices.Delete(r.runs, i, j)
	r.length -= length
	r.coalesce(i - 1)
}

// Replace relabels [offset, offset+length) with label. The total length is
// unchanged.
func (r *Region[L]) Replace(offset, length int, label L) {
	r.checkSpan("replace", offset, length)
	if length == 0 {
		return
	}

	i := r.split(offset)
	j := r.split(offset + length)
	r.runs = slices.Replace(r.runs, i, j, Run[L]{Length: length, Label: label})
	r.coalesce(i)
}

// ForEachInRange calls fn with the starting offset of every run that
// intersects [begin, end), in ascending order. Runs are passed whole, not
// clipped to the range. If fn returns true the walk stops and
// ForEachInRange returns true.
//
// The region must not be modified from within fn.
func (r *Region[L]) ForEachInRange(begin, end int, fn func(offset int, run Run[L]) bool) bool {
	if begin < 0 || begin > end || end > r.length {
		panic(fmt.Errorf("%w: range [%d,%d) over length %d", ErrOutOfRange, begin, end, r.length))
	}
	if begin == end {
		return false
	}

	start := 0
	for _, run := range r.runs {
		runEnd := start + run.Length
		if runEnd > begin && fn(start, run) {
			return true
		}
		start = runEnd
		if start >= end {
			break
		}
	}
	return false
}

// All returns an iterator over the runs intersecting [begin, end). Each call
// returns a fresh iterator.
func (r *Region[L]) All(begin, end int) iter.Seq2[int, Run[L]] {
	return func(yield func(int, Run[L]) bool) {
		r.ForEachInRange(begin, end, func(offset int, run Run[L]) bool {
			return !yield(offset, run)
		})
	}
}

// String returns the runs formatted as [start,end)=label.
func (r *Region[L]) String() string {
	var sb strings.Builder
	start := 0
	for i, run := range r.runs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "[%d,%d)=%v", start, start+run.Length, run.Label)
		start += run.Length
	}
	return sb.String()
}

func (r *Region[L]) checkSpan(op string, offset, length int) {
	if offset < 0 || length < 0 || offset+length > r.length {
		panic(fmt.Errorf("%w: %s %d+%d from length %d", ErrOutOfRange, op, offset, length, r.length))
	}
}

// locate returns the index of the run containing offset and that run's
// starting offset. For offset == Len() it returns len(runs) and Len().
func (r *Region[L]) locate(offset int) (int, int) {
	start := 0
	for i, run := range r.runs {
		if offset < start+run.Length {
			return i, start
		}
		start += run.Length
	}
	return len(r.runs), start
}

// split makes sure a run starts at offset and returns that run's index.
// The two halves of a split run share a label until the caller coalesces.
func (r *Region[L]) split(offset int) int {
	i, start := r.locate(offset)
	if i == len(r.runs) || start == offset {
		return i
	}

	head := offset - start
	tail := Run[L]{Length: r.runs[i].Length - head, Label: r.runs[i].Label}
	r.runs[i].Length = head
	r.runs = slices.Insert(r.runs, i+1, tail)
	return i + 1
}

// coalesce merges the run at i into its neighbours when labels are equal.
func (r *Region[L]) coalesce(i int) {
	if i < 0 || i >= len(r.runs) {
		return
	}
	if i+1 < len(r.runs) && r.runs[i].Label == r.runs[i+1].Label {
		r.runs[i].Length += r.runs[i+1].Length
		r.runs = slices.Delete(r.runs, i+1, i+2)
	}
	if i > 0 && r.runs[i-1].Label == r.runs[i].Label {
		r.runs[i-1].Length += r.runs[i].Length
		r.runs = slices.Delete(r.runs, i, i+1)
	}
}
