package dom

import "sync"

// Document models the shared document-level event infrastructure.
// Each open popover instance acquires a mousedown listener on it and
// releases the listener on close or teardown, so many instances can
// coexist without leaking handlers.
type Document struct {
	mu        sync.Mutex
	nextID    uint64
	mousedown map[uint64]func(*Event)
}

// NewDocument creates an empty document event registry.
func NewDocument() *Document {
	return &Document{
		mousedown: make(map[uint64]func(*Event)),
	}
}

// AddMouseDown registers a document-level mousedown listener and
// returns the function that removes it. The remove function is safe
// to call more than once.
func (d *Document) AddMouseDown(fn func(*Event)) (remove func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.mousedown[id] = fn
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.mousedown, id)
			d.mu.Unlock()
		})
	}
}

// DispatchMouseDown delivers a mousedown event to every registered
// listener. Listeners registered during dispatch are not invoked for
// this event.
func (d *Document) DispatchMouseDown(ev *Event) {
	d.mu.Lock()
	listeners := make([]func(*Event), 0, len(d.mousedown))
	for _, fn := range d.mousedown {
		listeners = append(listeners, fn)
	}
	d.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// MouseDownListeners returns the number of registered mousedown
// listeners. Useful for asserting listener hygiene in tests.
func (d *Document) MouseDownListeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.mousedown)
}
