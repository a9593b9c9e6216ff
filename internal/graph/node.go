package graph

// Annotations holds strategy-written node annotations such as "_depth",
// "_similarity_score", and "_score". Modeled as its own named type (instead
// of a bare map[string]any scattered through the engine) so the merge rule
// in Node.MergedMetadata has one obvious place to live.
type Annotations map[string]any

const (
	AnnotationDepth           = "_depth"
	AnnotationSimilarityScore = "_similarity_score"
	AnnotationScore           = "_score"
)

// Node is the traversal-time view of a Content: depth, similarity score, and
// the edges the extractor found for it. A Node is created once, when its id
// is first discovered, and is never mutated afterward except by writing into
// ExtraMetadata.
type Node struct {
	ID              string
	Content         string
	Embedding       []float64
	Metadata        map[string]any
	Depth           int
	SimilarityScore float64
	IncomingEdges   EdgeSet
	OutgoingEdges   EdgeSet
	ExtraMetadata   Annotations
}

// NewNode builds a Node from a Content, the edges the extractor found for
// it, and its traversal depth. SimilarityScore defaults to zero; the engine
// fills it in via a batched cosine call once all of a round's nodes are
// known.
func NewNode(c Content, edges Edges, depth int) *Node {
	return &Node{
		ID:            c.ID,
		Content:       c.Content,
		Embedding:     c.Embedding,
		Metadata:      c.Metadata,
		Depth:         depth,
		IncomingEdges: edges.Incoming,
		OutgoingEdges: edges.Outgoing,
		ExtraMetadata: Annotations{},
	}
}

// MergedMetadata returns the node's original document metadata with
// ExtraMetadata merged on top, ExtraMetadata winning on key conflict -- the
// shape consumers of the traversal output expect (§6 Node output shape).
func (n *Node) MergedMetadata() map[string]any {
	out := make(map[string]any, len(n.Metadata)+len(n.ExtraMetadata))
	for k, v := range n.Metadata {
		out[k] = v
	}
	for k, v := range n.ExtraMetadata {
		out[k] = v
	}
	return out
}
