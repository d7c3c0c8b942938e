package object

// Pool is an indexed arena of entities. Removal only marks a slot; Compact
// drops the marked slots in a single pass, so indices stay stable while a
// frame iterates over the pool.
type Pool[T Entity] struct {
	items   []T
	removed []bool
	pending int
}

// NewPool creates an empty pool with room for capacity entities.
func NewPool[T Entity](capacity int) *Pool[T] {
	return &Pool[T]{
		items:   make([]T, 0, capacity),
		removed: make([]bool, 0, capacity),
	}
}

// Add appends an entity and returns its index.
func (p *Pool[T]) Add(item T) int {
	p.items = append(p.items, item)
	p.removed = append(p.removed, false)
	return len(p.items) - 1
}

// Len returns the number of slots, including ones marked for removal.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// Live returns the number of slots not marked for removal.
func (p *Pool[T]) Live() int {
	return len(p.items) - p.pending
}

// At returns the entity in slot i.
func (p *Pool[T]) At(i int) T {
	return p.items[i]
}

// Items returns the backing slice. It is only valid until the next Add,
// Compact or Reset.
func (p *Pool[T]) Items() []T {
	return p.items
}

// Remove marks slot i for removal. Marking twice is a no-op.
func (p *Pool[T]) Remove(i int) {
	if p.removed[i] {
		return
	}
	p.removed[i] = true
	p.pending++
}

// Compact drops every marked slot, keeping the order of the rest.
// Dropped entities that implement Releasable are released.
func (p *Pool[T]) Compact() {
	if p.pending == 0 {
		return
	}
	kept := 0
	var zero T
	for i, item := range p.items {
		if p.removed[i] {
			if r, ok := any(item).(Releasable); ok {
				r.Release()
			}
			continue
		}
		p.items[kept] = item
		p.removed[kept] = false
		kept++
	}
	for i := kept; i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = p.items[:kept]
	p.removed = p.removed[:kept]
	p.pending = 0
}

// AdvanceAll advances every entity by dt and drops the ones that are no
// longer alive.
func (p *Pool[T]) AdvanceAll(dt float64) {
	for i, item := range p.items {
		if p.removed[i] {
			continue
		}
		item.Advance(dt)
		if !item.Alive() {
			p.Remove(i)
		}
	}
	p.Compact()
}

// Reset empties the pool, releasing every entity.
func (p *Pool[T]) Reset() {
	for i := range p.items {
		p.Remove(i)
	}
	p.Compact()
}
