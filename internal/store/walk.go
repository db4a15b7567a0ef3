// internal/store/walk.go
package store

// eachPreOrder visits every node root-first. fn returning false stops the walk.
func (s *Store) eachPreOrder(fn func(*node) bool) {
	if s.root == nil {
		return
	}
	stack := []*node{s.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
}

// eachLevelOrder visits nodes breadth-first, enqueueing left then right.
func (s *Store) eachLevelOrder(fn func(*node) bool) {
	if s.root == nil {
		return
	}
	queue := []*node{s.root}
	for len(queue) > 0 {
		n := queue[0]
		queue[0] = nil
		queue = queue[1:]
		if !fn(n) {
			return
		}
		if n.left != nil {
			queue = append(queue, n.left)
		}
		if n.right != nil {
			queue = append(queue, n.right)
		}
	}
}

// CountByInterest counts profiles whose interest flag equals want.
func (s *Store) CountByInterest(want bool) int {
	count := 0
	s.eachPreOrder(func(n *node) bool {
		if n.profile.ofInterest == want {
			count++
		}
		return true
	})
	return count
}

// CollectNotOfInterest returns the names of unflagged profiles in level order.
func (s *Store) CollectNotOfInterest() []string {
	names := make([]string, 0, s.CountByInterest(false))
	s.eachLevelOrder(func(n *node) bool {
		if !n.profile.ofInterest {
			names = append(names, n.name)
		}
		return true
	})
	return names
}

// Prune deletes every profile not of interest and returns the deleted names.
// The list is taken once up front; flags do not change while deleting.
func (s *Store) Prune() []string {
	names := s.CollectNotOfInterest()
	for _, name := range names {
		s.Delete(name)
	}
	return names
}

// MarkWhere flags every profile for which pred holds. Flags are never
// cleared. It returns how many profiles satisfied pred.
func (s *Store) MarkWhere(pred func(Profile) bool) int {
	hits := 0
	s.eachPreOrder(func(n *node) bool {
		if pred(*n.profile) {
			n.profile.ofInterest = true
			hits++
		}
		return true
	})
	return hits
}

// Walk calls fn for each profile in ascending name order until fn returns false.
// The profile passed to fn is a read-only copy.
func (s *Store) Walk(fn func(name string, p Profile) bool) {
	var stack []*node
	n := s.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.name, *n.profile) {
			return
		}
		n = n.right
	}
}

// LevelOrder calls fn for each profile breadth-first until fn returns false.
func (s *Store) LevelOrder(fn func(name string, p Profile) bool) {
	s.eachLevelOrder(func(n *node) bool {
		return fn(n.name, *n.profile)
	})
}

// Names returns every key in ascending order.
func (s *Store) Names() []string {
	names := make([]string, 0, s.size)
	s.Walk(func(name string, _ Profile) bool {
		names = append(names, name)
		return true
	})
	return names
}

// NodeView is a detached copy of one tree node and its subtrees.
type NodeView struct {
	Name        string
	Profile     Profile
	Left, Right *NodeView
}

// Snapshot copies the tree shape for rendering. It returns nil for an empty store.
func (s *Store) Snapshot() *NodeView {
	if s.root == nil {
		return nil
	}
	type pair struct {
		src *node
		dst *NodeView
	}
	root := &NodeView{Name: s.root.name, Profile: *s.root.profile}
	stack := []pair{{s.root, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if l := p.src.left; l != nil {
			p.dst.Left = &NodeView{Name: l.name, Profile: *l.profile}
			stack = append(stack, pair{l, p.dst.Left})
		}
		if r := p.src.right; r != nil {
			p.dst.Right = &NodeView{Name: r.name, Profile: *r.profile}
			stack = append(stack, pair{r, p.dst.Right})
		}
	}
	return root
}
