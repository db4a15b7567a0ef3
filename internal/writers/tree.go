package writers

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"strdb/internal/store"
)

func init() {
	RegisterReport("tree", WriteTree)
}

// WriteTree draws the search tree shape. Children are tagged [L]/[R] and
// profiles of interest are suffixed with " *".
func WriteTree(w io.Writer, r Report) error {
	if r.Tree == nil {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	t := treeprint.NewWithRoot(nodeLabel(r.Tree))
	addChildren(t, r.Tree)
	_, err := io.WriteString(w, t.String())
	return err
}

func addChildren(t treeprint.Tree, n *store.NodeView) {
	for _, c := range []struct {
		side string
		v    *store.NodeView
	}{{"L", n.Left}, {"R", n.Right}} {
		if c.v == nil {
			continue
		}
		if c.v.Left == nil && c.v.Right == nil {
			t.AddMetaNode(c.side, nodeLabel(c.v))
			continue
		}
		addChildren(t.AddMetaBranch(c.side, nodeLabel(c.v)), c.v)
	}
}

func nodeLabel(n *store.NodeView) string {
	if n.Profile.OfInterest() {
		return n.Name + " *"
	}
	return n.Name
}
