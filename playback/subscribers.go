package playback

type subscribers[F any] struct {
	next int
	fns  map[int]F
}

func (s *subscribers[F]) add(fn F) func() {
	if s.fns == nil {
		s.fns = make(map[int]F)
	}

	id := s.next
	s.next++
	s.fns[id] = fn

	return func() {
		delete(s.fns, id)
	}
}

// each calls fn for every subscriber in registration order.
func (s *subscribers[F]) each(fn func(F)) {
	for id := 0; id < s.next; id++ {
		if f, ok := s.fns[id]; ok {
			fn(f)
		}
	}
}
