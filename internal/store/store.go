// internal/store/store.go
package store

import "strconv"

type node struct {
	name        string
	profile     *Profile
	left, right *node
}

// Store is an unbalanced binary search tree of profiles keyed by full name
// ("Last, First"), plus the two unknown sequences profiles are matched against.
//
// Keys are ordered by plain string comparison. There is no rebalancing, so a
// tree built from sorted input degenerates into a list; Height reports it.
// All walks are iterative so degenerate trees do not grow the goroutine stack.
//
// A Store is not safe for concurrent use.
type Store struct {
	root          *node
	size          int
	firstUnknown  string
	secondUnknown string
}

func New(firstUnknown, secondUnknown string) *Store {
	return &Store{firstUnknown: firstUnknown, secondUnknown: secondUnknown}
}

func (s *Store) SetUnknowns(first, second string) {
	s.firstUnknown, s.secondUnknown = first, second
}

func (s *Store) Unknowns() (first, second string) {
	return s.firstUnknown, s.secondUnknown
}

// Len is the number of nodes.
func (s *Store) Len() int { return s.size }

// Insert stores a copy of p under name. An existing name keeps its node and
// only has its profile replaced.
func (s *Store) Insert(name string, p *Profile) {
	if p == nil {
		panic("store: nil profile for " + strconv.Quote(name))
	}
	link := &s.root
	for *link != nil {
		n := *link
		switch {
		case name < n.name:
			link = &n.left
		case name > n.name:
			link = &n.right
		default:
			n.profile = p.clone()
			return
		}
	}
	*link = &node{name: name, profile: p.clone()}
	s.size++
}

// Delete removes name. Deleting a missing name is a no-op.
//
// A node without a right child is replaced by its left child. Otherwise the
// node takes the name and profile of its in-order successor and the successor
// is cut out of the right subtree.
func (s *Store) Delete(name string) {
	link := &s.root
	for *link != nil {
		n := *link
		switch {
		case name < n.name:
			link = &n.left
		case name > n.name:
			link = &n.right
		default:
			if n.right == nil {
				*link = n.left
			} else {
				succ := minNode(n.right)
				n.name, n.profile = succ.name, succ.profile
				n.right = deleteMin(n.right)
			}
			s.size--
			return
		}
	}
}

// minNode returns the leftmost node of the subtree rooted at n.
func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// deleteMin removes the leftmost node of the subtree rooted at n and returns
// the new subtree root.
func deleteMin(n *node) *node {
	link := &n
	for (*link).left != nil {
		link = &(*link).left
	}
	*link = (*link).right
	return n
}

// Lookup returns a detached copy of the profile stored under name.
func (s *Store) Lookup(name string) (Profile, bool) {
	n := s.root
	for n != nil {
		switch {
		case name < n.name:
			n = n.left
		case name > n.name:
			n = n.right
		default:
			return *n.profile.clone(), true
		}
	}
	return Profile{}, false
}

// Height is the number of nodes on the longest root-to-leaf path.
func (s *Store) Height() int {
	if s.root == nil {
		return 0
	}
	h := 0
	level := []*node{s.root}
	for len(level) > 0 {
		h++
		var next []*node
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return h
}
