package engine

// subscribers is a change-notification list. Not safe for concurrent use; all
// notifications happen on the UI loop.
type subscribers[T any] struct {
	next int
	fns  map[int]func(T)
	// order keeps delivery in subscription order
	order []int
}

func (s *subscribers[T]) add(fn func(T)) func() {
	if s.fns == nil {
		s.fns = make(map[int]func(T))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	s.order = append(s.order, id)
	return func() { s.remove(id) }
}

func (s *subscribers[T]) remove(id int) {
	if _, ok := s.fns[id]; !ok {
		return
	}
	delete(s.fns, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *subscribers[T]) notify(v T) {
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.fns[id]; ok {
			fn(v)
		}
	}
}

func (s *subscribers[T]) len() int { return len(s.order) }
