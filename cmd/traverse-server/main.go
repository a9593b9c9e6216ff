// Command traverse-server runs a demo HTTP server over the traversal
// engine, backed by a small in-memory document set so the API is
// exercisable without a real vector-store backend wired in.
package main

import (
	"hash/fnv"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brain2labs/graphtraverse/internal/adapter/memory"
	"github.com/brain2labs/graphtraverse/internal/config"
	"github.com/brain2labs/graphtraverse/internal/di"
	"github.com/brain2labs/graphtraverse/internal/graph"
	"github.com/brain2labs/graphtraverse/internal/httpapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store := memory.New(hashEmbed, demoDocuments()...)

	container, err := di.NewContainer(cfg, di.WithAdapter(store))
	if err != nil {
		log.Fatalf("build container: %v", err)
	}
	defer container.Shutdown()

	router := newRouter(container)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	container.Logger.Info("starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func newRouter(c *di.Container) http.Handler {
	handler := httpapi.NewTraversalHandler(c.Adapter, c.Config, c.Logger, c.Metrics)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(c.Config.Traversal.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.HandlerFor(c.Metrics.Registry(), promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/traverse", handler.Traverse)
	})

	return r
}

// hashEmbed is a stand-in embedding function for the demo document set: it
// has no semantic meaning beyond giving each distinct token a stable
// direction, which is enough to exercise similarity ranking end to end.
func hashEmbed(text string) []float64 {
	const dims = 16
	vec := make([]float64, dims)
	for _, word := range splitWords(text) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[int(h.Sum32())%dims] += 1
	}
	return vec
}

func splitWords(text string) []string {
	var words []string
	var current []rune
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' || r == '?' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}
	return words
}

func demoDocuments() []graph.Content {
	return []graph.Content{
		graph.NewContent("paris", "Paris is the capital of France.", hashEmbed("Paris is the capital of France."), map[string]any{"country": "FR", "category": "geo"}),
		graph.NewContent("eiffel", "The Eiffel Tower stands in Paris.", hashEmbed("The Eiffel Tower stands in Paris."), map[string]any{"country": "FR", "category": "landmark"}),
		graph.NewContent("cuisine", "French cuisine is renowned worldwide.", hashEmbed("French cuisine is renowned worldwide."), map[string]any{"country": "FR", "category": "culture"}),
		graph.NewContent("london", "London is the capital of the United Kingdom.", hashEmbed("London is the capital of the United Kingdom."), map[string]any{"country": "UK", "category": "geo"}),
		graph.NewContent("bigben", "Big Ben overlooks the Thames in London.", hashEmbed("Big Ben overlooks the Thames in London."), map[string]any{"country": "UK", "category": "landmark"}),
	}
}
