// Released under an MIT license. See LICENSE.

package vector

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
)

// Node is an interior or leaf node of a vector's trie.
type Node struct {
	children []cell.I

	memo encoding.Memo
}

// NewNode creates a trie node.
func NewNode(children []cell.I) *Node {
	return &Node{children: children}
}

// Children returns the children of the node n.
func (n *Node) Children() []cell.I {
	return n.children
}

// Encode returns the canonical encoding of the node n.
func (n *Node) Encode() []byte {
	return n.memo.Encoding(func() []byte {
		b := encoding.AppendUvarint([]byte{encoding.VectorNode}, uint64(len(n.children)))

		for _, c := range n.children {
			b = encoding.Child(b, c)
		}

		return b
	})
}

// Equal returns true if c is a node with the same encoding.
func (n *Node) Equal(c cell.I) bool {
	o, ok := c.(*Node)

	return ok && (n == o || encoding.Equal(n, o))
}

// Name returns the type name for vector nodes.
func (n *Node) Name() string {
	return "vector-node"
}

func node(c cell.I) *Node {
	n, ok := ref.Deref(c).(*Node)
	if !ok {
		panic("corrupt vector: expected a node")
	}

	return n
}
