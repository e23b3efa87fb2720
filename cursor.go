package depot

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(q Query, sto Storage) *Cursor {
	validated, ok := q.(*query)
	if !ok {
		// Queries from elsewhere go through validation again.
		checked, err := newQuery(q.Terms()...)
		if err != nil {
			panic(err)
		}
		validated = checked.(*query)
	}
	return &Cursor{
		query:   validated,
		storage: sto.(*storage),
	}
}

// Next moves to the next matching entity. Iteration runs in the dense order of
// the query's last term. When it is exhausted, Next resets the cursor and
// returns false.
func (c *Cursor) Next() bool {
	c.initialize()
	if c.advance() {
		return true
	}
	c.Reset()
	return false
}

// Entities yields every remaining match and resets the cursor afterwards.
// Component accessors may be used inside the loop.
func (c *Cursor) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		c.initialize()
		defer c.Reset()
		for c.advance() {
			if !yield(c.current) {
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.storage.Lock()
	c.initialized = true

	terms := c.query.terms
	c.sets = c.sets[:0]
	c.slots = make([]int, len(terms))
	c.matchable = true
	for _, term := range terms {
		cid, ok := c.storage.lookup(term.component)
		set := c.storage.setAt(cid)
		if !ok || set == nil || set.Len() == 0 {
			c.matchable = false
		}
		c.sets = append(c.sets, set)
	}
	if !c.matchable {
		return
	}

	// Every term but the driver is looked up by key
	c.lookups = make([]map[int]int, len(terms)-1)
	for i := range c.lookups {
		set := c.sets[i]
		lookup := make(map[int]int, set.Len())
		for slot := 0; slot < set.Len(); slot++ {
			lookup[set.KeyAt(slot)] = slot
		}
		c.lookups[i] = lookup
	}
}

func (c *Cursor) advance() bool {
	if !c.matchable {
		return false
	}
	last := len(c.sets) - 1
	driver := c.sets[last]
	for c.driverIndex < driver.Len() {
		slot := c.driverIndex
		c.driverIndex++
		key := driver.KeyAt(slot)
		if c.lookupAll(key, c.slots) {
			c.slots[last] = slot
			c.current = EntityID(key)
			return true
		}
	}
	c.current = 0
	return false
}

func (c *Cursor) lookupAll(key int, slots []int) bool {
	for i, lookup := range c.lookups {
		slot, ok := lookup[key]
		if !ok {
			return false
		}
		if slots != nil {
			slots[i] = slot
		}
	}
	return true
}

// Reset releases the storage lock and rewinds the cursor.
func (c *Cursor) Reset() {
	if !c.initialized {
		return
	}
	c.initialized = false
	c.matchable = false
	c.driverIndex = 0
	c.current = 0
	c.sets = c.sets[:0]
	c.lookups = nil
	c.storage.Unlock()
}

// CurrentEntity returns the entity the cursor is positioned on, or zero.
func (c *Cursor) CurrentEntity() EntityID {
	return c.current
}

func (c *Cursor) positioned() bool {
	return c.initialized && c.current != 0
}

func (c *Cursor) termFor(comp Component) (int, bool) {
	for i, term := range c.query.terms {
		if term.component == comp {
			return i, true
		}
	}
	return 0, false
}

// TotalMatched counts all matches without moving the cursor.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.initialize()
		defer c.Reset()
	}
	if !c.matchable {
		return 0
	}
	total := 0
	driver := c.sets[len(c.sets)-1]
	for slot := 0; slot < driver.Len(); slot++ {
		if c.lookupAll(driver.KeyAt(slot), nil) {
			total++
		}
	}
	return total
}
