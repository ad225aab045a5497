package pagination

// Edge pairs a node with the cursor that resumes right after it.
type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

type PageInfo struct {
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
}

// Connection is the relay-style result handed to the schema layer.
// PageCursors is only set by the single-source resolver.
type Connection[T any] struct {
	TotalCount  int          `json:"totalCount"`
	Edges       []Edge[T]    `json:"edges"`
	PageInfo    PageInfo     `json:"pageInfo"`
	PageCursors *PageCursors `json:"pageCursors,omitempty"`
}

// Nodes returns the edge nodes in order.
func (c *Connection[T]) Nodes() []T {
	nodes := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// AnnotatedNode is a merged node together with the source that produced it
// and the offsets state after it was emitted.
type AnnotatedNode[K ~string, T any] struct {
	Node    T
	Source  K
	Offsets Offsets[K]
}

// HybridConnectionFromArraySlice builds a connection from nodes that are
// already the exact page to return. Cursors and page boundaries come from
// each node's offsets.
func HybridConnectionFromArraySlice[K ~string, T any](nodes []AnnotatedNode[K, T], totalCount int) *Connection[T] {
	conn := &Connection[T]{
		TotalCount: totalCount,
		Edges:      make([]Edge[T], 0, len(nodes)),
	}
	for _, n := range nodes {
		conn.Edges = append(conn.Edges, Edge[T]{Cursor: n.Offsets.Encoded(), Node: n.Node})
	}
	if len(nodes) == 0 {
		return conn
	}

	firstEdge, lastEdge := conn.Edges[0], conn.Edges[len(conn.Edges)-1]
	conn.PageInfo.StartCursor = &firstEdge.Cursor
	conn.PageInfo.EndCursor = &lastEdge.Cursor

	if pos, ok := nodes[0].Offsets.Position(); ok {
		conn.PageInfo.HasPreviousPage = pos > 0
	}
	if pos, ok := nodes[len(nodes)-1].Offsets.Position(); ok {
		conn.PageInfo.HasNextPage = pos+1 < totalCount
	}
	return conn
}
