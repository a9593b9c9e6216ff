// Package graph holds the immutable value types shared by every layer of the
// traversal engine: Content (what an adapter returns), Edge (a tagged
// adjacency relation), and Node (the traversal-time view of a Content).
package graph

// Content is the immutable record an Adapter returns for a single document.
// Id uniquely identifies a logical document within the store that produced
// it; Embedding vectors returned by the same store share a dimension.
type Content struct {
	ID        string
	Content   string
	Embedding []float64
	Metadata  map[string]any
	MimeType  string
}

// NewContent builds a Content, defaulting MimeType to "text/plain" the way
// every adapter in this module is expected to unless it knows otherwise.
func NewContent(id, content string, embedding []float64, metadata map[string]any) Content {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Content{
		ID:        id,
		Content:   content,
		Embedding: embedding,
		Metadata:  metadata,
		MimeType:  "text/plain",
	}
}
