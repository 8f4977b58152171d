package diag

import (
	"sort"
)

// Bag collects the diagnostics of one analysis pass.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag returns a bag that keeps at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add appends d unless the limit is reached.
// It returns false when the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns the backing slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// Sort orders diagnostics by file, then by anchor. Anchors are pre-order
// node ids, so the result is the traversal order of the pass.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Anchor != dj.Anchor {
			return di.Anchor < dj.Anchor
		}
		return di.Code < dj.Code
	})
}

type dedupKey struct {
	code   Code
	anchor uint32
	file   uint32
	msg    string
}

// Dedup drops repeated diagnostics with the same code, anchor and message.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := dedupKey{code: d.Code, anchor: uint32(d.Anchor), file: uint32(d.Primary.File), msg: d.Message}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}

// Filter keeps only the diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	out := b.items[:0]
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// Transform rewrites every diagnostic in place.
func (b *Bag) Transform(fn func(Diagnostic) Diagnostic) {
	for i := range b.items {
		b.items[i] = fn(b.items[i])
	}
}
