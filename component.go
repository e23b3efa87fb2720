package depot

import (
	"math"
	"reflect"
	"sync"

	"github.com/TheBitDrifter/table"

	"github.com/TheBitDrifter/depot/buffer"
)

// Component represents a data attribute/state that can be attached to entities
// Components can be used to create queries for entities
type Component interface {
	table.ElementType
}

type componentInfo struct {
	element Component
	layout  buffer.Layout
	index   uint32
}

// components maps Go types to their process-wide Component handle, so every
// FactoryNewComponent[T] call for the same T yields the same handle.
var components = struct {
	sync.Mutex
	byType    *SimpleCache[reflect.Type, componentInfo]
	byElement map[Component]int
}{
	byType: &SimpleCache[reflect.Type, componentInfo]{
		itemIndices: make(map[reflect.Type]int),
		maxCapacity: math.MaxInt,
	},
	byElement: make(map[Component]int),
}

func componentFor[T any]() Component {
	t := reflect.TypeFor[T]()

	components.Lock()
	defer components.Unlock()

	if idx, ok := components.byType.GetIndex(t); ok {
		return components.byType.GetItem(idx).element
	}
	info := componentInfo{
		element: table.FactoryNewElementType[T](),
		layout:  buffer.LayoutFor(t),
		index:   uint32(components.byType.Len()),
	}
	idx, err := components.byType.Register(t, info)
	if err != nil {
		panic(err)
	}
	components.byElement[info.element] = idx
	return info.element
}

// elementOf unwraps typed handles so a handle and its element type resolve to
// the same component.
func elementOf(c Component) Component {
	if h, ok := c.(interface{ element() Component }); ok {
		return h.element()
	}
	return c
}

func (c AccessibleComponent[T]) element() Component {
	return c.Component
}

func componentInfoOf(c Component) (componentInfo, bool) {
	c = elementOf(c)
	if c == nil {
		return componentInfo{}, false
	}
	components.Lock()
	defer components.Unlock()

	idx, ok := components.byElement[c]
	if !ok {
		return componentInfo{}, false
	}
	return *components.byType.GetItem(idx), true
}

func componentName(c Component) string {
	info, ok := componentInfoOf(c)
	if !ok {
		return "<unknown>"
	}
	return info.layout.Type().String()
}
