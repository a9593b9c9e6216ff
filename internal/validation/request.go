package validation

// EdgeSpecRequest is the wire shape of a graph.EdgeSpec.
type EdgeSpecRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// TraversalRequest is the wire shape of a POST /traverse body.
type TraversalRequest struct {
	Query     string            `json:"query" validate:"required,max=8192"`
	Edges     []EdgeSpecRequest `json:"edges" validate:"required,min=1,dive"`
	Strategy  string            `json:"strategy" validate:"omitempty,oneof=eager scored mmr"`
	StartK    int               `json:"start_k" validate:"omitempty,gte=0,lte=1000"`
	AdjacentK int               `json:"adjacent_k" validate:"omitempty,gte=0,lte=1000"`
	SelectK   int               `json:"select_k" validate:"omitempty,gte=0,lte=1000"`
	// MaxDepth is a pointer so the wire layer can tell "omitted" (fall back
	// to the server's configured default) apart from an explicit 0 (seeds
	// only, no expansion) -- both are first-class traversal bounds.
	MaxDepth       *int           `json:"max_depth" validate:"omitempty,gte=0,lte=64"`
	MMRLambda      float64        `json:"mmr_lambda" validate:"omitempty,gte=0,lte=1"`
	InitialRootIDs []string       `json:"initial_root_ids" validate:"omitempty,dive,required"`
	MetadataFilter map[string]any `json:"metadata_filter"`
}
