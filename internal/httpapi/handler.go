// Package httpapi exposes the traversal engine over HTTP: a single
// POST /traverse handler, in the teacher's handler-struct-with-dependencies
// style. The health and metrics routes are mounted by cmd/traverse-server.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brain2labs/graphtraverse/internal/adapter"
	"github.com/brain2labs/graphtraverse/internal/config"
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/observability"
	"github.com/brain2labs/graphtraverse/internal/strategy"
	"github.com/brain2labs/graphtraverse/internal/traversal"
	"github.com/brain2labs/graphtraverse/internal/validation"
	apperrors "github.com/brain2labs/graphtraverse/pkg/errors"
)

// TraversalHandler serves the traversal endpoint against a shared adapter.
type TraversalHandler struct {
	store   adapter.Adapter
	cfg     *config.Config
	logger  *observability.Logger
	metrics *observability.Collector
}

// NewTraversalHandler builds a TraversalHandler.
func NewTraversalHandler(store adapter.Adapter, cfg *config.Config, logger *observability.Logger, metrics *observability.Collector) *TraversalHandler {
	return &TraversalHandler{store: store, cfg: cfg, logger: logger, metrics: metrics}
}

// nodeResponse is the wire shape of a selected graph.Node.
type nodeResponse struct {
	ID       string  `json:"id"`
	Content  string  `json:"content"`
	Depth    int     `json:"depth"`
	Score    float64 `json:"similarity_score"`
	Metadata any     `json:"metadata"`
}

// traverseResponse is the wire shape of a completed traversal.
type traverseResponse struct {
	TraversalID string         `json:"traversal_id"`
	Nodes       []nodeResponse `json:"nodes"`
}

// Traverse handles POST /traverse: validates the body, builds one
// traversal.Traversal from it, runs it exactly once, and reports the
// selected nodes.
func (h *TraversalHandler) Traverse(w http.ResponseWriter, r *http.Request) {
	traversalID := uuid.New().String()
	logger := h.logger.WithContext(r.Context())

	var req validation.TraversalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validation.Get().Validate(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	edgeSpecs := make([]graph.EdgeSpec, len(req.Edges))
	for i, e := range req.Edges {
		edgeSpecs[i] = graph.EdgeSpec{Source: e.Source, Target: e.Target}
	}

	strat := buildStrategy(req, h.cfg)

	h.metrics.TraversalsStarted.Inc()
	start := time.Now()

	tv, err := traversal.New(traversal.Options{
		Edges:          edgeSpecs,
		Strategy:       strat,
		Store:          h.store,
		MetadataFilter: req.MetadataFilter,
		InitialRootIDs: req.InitialRootIDs,
		Logger:         logger.Logger,
	})
	if err != nil {
		h.failTraversal(w, traversalID, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Traversal.RequestTimeout)
	defer cancel()

	nodes, err := tv.Traverse(ctx, req.Query)
	if err != nil {
		h.failTraversal(w, traversalID, err)
		return
	}

	h.metrics.TraversalsCompleted.Inc()
	logger.Info("traversal completed",
		zap.String("traversal_id", traversalID),
		zap.Int("nodes_selected", len(nodes)),
		zap.Duration("duration", time.Since(start)))

	resp := traverseResponse{TraversalID: traversalID, Nodes: make([]nodeResponse, len(nodes))}
	for i, n := range nodes {
		resp.Nodes[i] = nodeResponse{
			ID:       n.ID,
			Content:  n.Content,
			Depth:    n.Depth,
			Score:    n.SimilarityScore,
			Metadata: n.MergedMetadata(),
		}
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *TraversalHandler) failTraversal(w http.ResponseWriter, traversalID string, err error) {
	h.metrics.TraversalsFailed.WithLabelValues(string(kindOf(err))).Inc()
	h.logger.LogError("traversal failed", err, zap.String("traversal_id", traversalID))
	h.respondError(w, http.StatusUnprocessableEntity, err.Error())
}

func kindOf(err error) apperrors.Kind {
	if e, ok := err.(*apperrors.Error); ok {
		return e.Kind
	}
	return "UNKNOWN"
}

func buildStrategy(req validation.TraversalRequest, cfg *config.Config) strategy.Strategy {
	name := req.Strategy
	if name == "" {
		name = cfg.Traversal.DefaultStrategy
	}

	selectK := firstNonZero(req.SelectK, cfg.Traversal.SelectK)
	var strat strategy.Strategy
	switch name {
	case "scored":
		strat = strategy.NewScored(selectK, func(n *graph.Node) float64 {
			return n.SimilarityScore - 0.01*float64(n.Depth)
		})
	case "mmr":
		m := strategy.NewMmr(selectK)
		if req.MMRLambda != 0 {
			m.Lambda = req.MMRLambda
		} else if cfg.Traversal.MMRLambda != 0 {
			m.Lambda = cfg.Traversal.MMRLambda
		}
		strat = m
	default:
		strat = strategy.NewEager(selectK)
	}

	startK := firstNonZero(req.StartK, cfg.Traversal.StartK)
	adjacentK := firstNonZero(req.AdjacentK, cfg.Traversal.AdjacentK)

	strategy.Build(strat, strategy.BuildOptions{
		StartK:      &startK,
		AdjacentK:   &adjacentK,
		MaxDepth:    resolveMaxDepth(req.MaxDepth, cfg.Traversal.MaxDepth),
		MaxTraverse: resolveMaxTraverse(cfg.Traversal.MaxTraverse),
	})
	return strat
}

// resolveMaxDepth lets an explicit request bound -- including an explicit 0,
// "seeds only" -- through untouched, and otherwise falls back to the
// server's configured default; a zero-valued config default (operators may
// set max_depth: 0 server-wide) reaches the strategy as nil, i.e.
// unbounded, rather than being coerced into a concrete bound.
func resolveMaxDepth(requested *int, configured int) *int {
	if requested != nil {
		return requested
	}
	if configured > 0 {
		return &configured
	}
	return nil
}

// resolveMaxTraverse feeds the configured edge budget through to the
// strategy; an unconfigured (zero) budget reaches the strategy as nil, the
// engine's "no edge budget" representation.
func resolveMaxTraverse(configured int) *int {
	if configured > 0 {
		return &configured
	}
	return nil
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func (h *TraversalHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *TraversalHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]any{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
