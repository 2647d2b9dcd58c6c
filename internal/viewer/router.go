package viewer

// Binding describes one row of the viewer key table.
type Binding struct {
	Keys      []string `json:"keys"`
	Condition string   `json:"condition"`
	Action    string   `json:"action"`
}

// Bindings returns the key table the router implements, in display order.
func Bindings() []Binding {
	return []Binding{
		{Keys: []string{KeyEscape}, Condition: "viewer open", Action: "close"},
		{Keys: []string{KeyArrowLeft}, Condition: "viewer open, more than one item", Action: "navigate previous"},
		{Keys: []string{KeyArrowRight}, Condition: "viewer open, more than one item", Action: "navigate next"},
		{Keys: []string{"+", "="}, Condition: "viewer open, current item is an image", Action: "zoom in"},
		{Keys: []string{"-"}, Condition: "viewer open, current item is an image", Action: "zoom out"},
		{Keys: []string{"r", "R"}, Condition: "viewer open, current item is an image", Action: "rotate"},
	}
}

// KeyRouter translates key events into State operations while the viewer is
// open, and holds a ScrollLock for as long as the viewer stays open.
//
// Attach and Detach are idempotent. Detach releases the lock when the
// viewer is still open, which covers teardown without an explicit close.
type KeyRouter struct {
	state *State
	lock  *ScrollLock

	unsubKeys  func()
	unsubState func()
	release    func()
}

// NewKeyRouter creates a detached router. A nil lock means PageScroll.
func NewKeyRouter(state *State, lock *ScrollLock) *KeyRouter {
	if lock == nil {
		lock = PageScroll
	}
	return &KeyRouter{state: state, lock: lock}
}

// Attach subscribes to src and to the state's open/close transitions.
func (r *KeyRouter) Attach(src KeySource) {
	if r.unsubKeys != nil {
		return
	}
	r.unsubKeys = src.Subscribe(func(key string) { r.HandleKey(key) })
	r.unsubState = r.state.Subscribe(r.onChange)
	if r.state.IsOpen() {
		r.hold()
	}
}

// Detach removes the key listener and the lock effect.
func (r *KeyRouter) Detach() {
	if r.unsubKeys == nil {
		return
	}
	r.unsubKeys()
	r.unsubState()
	r.unsubKeys, r.unsubState = nil, nil
	r.unhold()
}

// Attached reports whether the router currently listens for keys.
func (r *KeyRouter) Attached() bool {
	return r.unsubKeys != nil
}

// HandleKey applies the operation bound to key and reports whether one ran.
// Keys are ignored while the viewer is closed.
func (r *KeyRouter) HandleKey(key string) bool {
	if !r.state.IsOpen() {
		return false
	}

	switch key {
	case KeyEscape:
		r.state.Close()
		return true
	case KeyArrowLeft, KeyArrowRight:
		if r.state.Len() <= 1 {
			return false
		}
		dir := Next
		if key == KeyArrowLeft {
			dir = Previous
		}
		return r.state.Navigate(dir) == nil
	case "+", "=", "-", "r", "R":
		item, ok := r.state.CurrentItem()
		if !ok || !item.IsImage() {
			return false
		}
		switch key {
		case "+", "=":
			return r.state.Zoom(ZoomIn) == nil
		case "-":
			return r.state.Zoom(ZoomOut) == nil
		default:
			r.state.Rotate()
			return true
		}
	}
	return false
}

func (r *KeyRouter) onChange(c Change) {
	if c.After.Open {
		r.hold()
	} else {
		r.unhold()
	}
}

func (r *KeyRouter) hold() {
	if r.release == nil {
		r.release = r.lock.Acquire()
	}
}

func (r *KeyRouter) unhold() {
	if r.release != nil {
		r.release()
		r.release = nil
	}
}
