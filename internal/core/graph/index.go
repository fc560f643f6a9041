package graph

// idSet is an insertion-ordered set of ids. Removal leaves a tombstone that
// is compacted away once tombstones outnumber live entries.
type idSet struct {
	items []string
	pos   map[string]int
	dead  int
}

func newIDSet() *idSet {
	return &idSet{pos: make(map[string]int)}
}

func (s *idSet) add(id string) bool {
	if _, ok := s.pos[id]; ok {
		return false
	}
	s.pos[id] = len(s.items)
	s.items = append(s.items, id)
	return true
}

func (s *idSet) remove(id string) bool {
	i, ok := s.pos[id]
	if !ok {
		return false
	}
	delete(s.pos, id)
	s.items[i] = ""
	s.dead++
	if s.dead > 32 && s.dead*2 > len(s.items) {
		s.compact()
	}
	return true
}

func (s *idSet) has(id string) bool {
	_, ok := s.pos[id]
	return ok
}

func (s *idSet) len() int { return len(s.pos) }

// each visits live ids in insertion order until fn returns false.
func (s *idSet) each(fn func(id string) bool) {
	for _, id := range s.items {
		if id == "" {
			continue
		}
		if !fn(id) {
			return
		}
	}
}

func (s *idSet) list() []string {
	out := make([]string, 0, len(s.pos))
	s.each(func(id string) bool {
		out = append(out, id)
		return true
	})
	return out
}

func (s *idSet) compact() {
	live := make([]string, 0, len(s.pos))
	for _, id := range s.items {
		if id != "" {
			s.pos[id] = len(live)
			live = append(live, id)
		}
	}
	s.items = live
	s.dead = 0
}

// adjacency holds the incident relationship ids of one entity, split by
// direction so in/out queries need no filtering.
type adjacency struct {
	out *idSet
	in  *idSet
}

func newAdjacency() *adjacency {
	return &adjacency{out: newIDSet(), in: newIDSet()}
}
