package collect

import (
	"nikand.dev/go/heap"

	"github.com/slowlang/mmir/compiler/mmir"
)

// SortBySpan orders functions by source position.
// Functions with equal spans keep their relative order.
func SortBySpan(fs []Function) {
	h := heap.Heap[int]{
		Less: func(d []int, i, j int) bool {
			return spanLess(fs[d[i]].Body.Span, fs[d[j]].Body.Span, d[i], d[j])
		},
	}

	for i := range fs {
		h.Push(i)
	}

	sorted := make([]Function, 0, len(fs))

	for h.Len() != 0 {
		sorted = append(sorted, fs[h.Pop()])
	}

	copy(fs, sorted)
}

// SortBodies is SortBySpan for bare bodies.
func SortBodies(bs []mmir.Body) {
	fs := make([]Function, len(bs))

	for i, b := range bs {
		fs[i].Body = b
	}

	SortBySpan(fs)

	for i := range fs {
		bs[i] = fs[i].Body
	}
}

func spanLess(a, b mmir.Span, ai, bi int) bool {
	if a.Lo != b.Lo {
		return a.Lo < b.Lo
	}

	if a.Hi != b.Hi {
		return a.Hi < b.Hi
	}

	return ai < bi
}
