// Package abstract stores the layered abstract graph: one Graph per
// abstraction level, sharing node identities and NodeInfo records.
//
// Storage model:
//
//   - Nodes live in an arena indexed by their integer id. A missing slot means
//     the node is absent from that layer. Ids are allocated by the owner of the
//     layers and are never reused.
//   - Each node keeps its outgoing edges in insertion order. AddEdge ignores a
//     second edge to a target that already has one, so edge sets behave like
//     ordered sets keyed by target.
//   - The same *NodeInfo is registered in every layer the node belongs to;
//     promoting a node's level is a single field update.
//
// Searching a layer:
//
//   - View binds a layer to a spatial Window and a position heuristic and
//     satisfies astar.Graph. Edges leading outside the window are invisible,
//     which keeps a level-L search inside the block of clusters it refines.
//     A View is a plain value: there is no hidden "current level" state.
package abstract
