// Package server Timeline
//
// The Timeline is a read-only service which assembles activity feeds (personal, followed, project, profile, community),
// reply threads and search results from timeline events.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/Decentr-net/timeline/internal/feed"
	mm "github.com/Decentr-net/timeline/internal/middleware"
)

const cacheTTL = time.Minute

type server struct {
	s feed.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s feed.Service, r chi.Router, timeout time.Duration) {
	r.Use(
		middleware.RequestID,
		loggerMiddleware,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		recovererMiddleware,
		middleware.Timeout(timeout),
	)

	srv := server{
		s: s,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/feeds/personal", srv.getPersonalFeed)
		r.Get("/feeds/followed", srv.getFollowedFeed)
		r.Get("/feeds/community", mm.Cached(cacheTTL, srv.getCommunityFeed))
		r.Get("/projects/{id}/feed", srv.getProjectFeed)
		r.Get("/profiles/{id}/feed", srv.getProfileFeed)
		r.Get("/events/search", mm.Cached(cacheTTL, srv.searchEvents))
		r.Get("/events/{id}/replies", srv.getReplies)
	})
}
