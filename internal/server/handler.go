package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/feed"
)

var errInvalidRequest = errors.New("invalid request")

func (s server) getPersonalFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feeds/personal Feeds GetPersonalFeed
	//
	// Returns events made by requester.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: requestedBy
	//   in: query
	//   required: true
	//   example: decentr1ltx6yymrs8eq4nmnhzfzxj6tspjuymh8mgd6gz
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	f, p, err := extractFeedParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.s.GetPersonalFeed(r.Context(), r.URL.Query().Get("requestedBy"), f, p)
	s.writeFeed(w, r, resp, err)
}

func (s server) getFollowedFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feeds/followed Feeds GetFollowedFeed
	//
	// Returns events made by actors followed by requester.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: requestedBy
	//   in: query
	//   required: true
	//   example: decentr1ltx6yymrs8eq4nmnhzfzxj6tspjuymh8mgd6gz
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	f, p, err := extractFeedParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.s.GetFollowedFeed(r.Context(), r.URL.Query().Get("requestedBy"), f, p)
	s.writeFeed(w, r, resp, err)
}

func (s server) getCommunityFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feeds/community Feeds GetCommunityFeed
	//
	// Returns public events of the whole community.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	f, p, err := extractFeedParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.s.GetCommunityFeed(r.Context(), f, p)
	s.writeFeed(w, r, resp, err)
}

func (s server) getProjectFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /projects/{id}/feed Feeds GetProjectFeed
	//
	// Returns events about project. Non-public events are visible to their actors only.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// - name: requestedBy
	//   in: query
	//   required: false
	//   example: decentr1ltx6yymrs8eq4nmnhzfzxj6tspjuymh8mgd6gz
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	f, p, err := extractFeedParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.s.GetProjectFeed(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("requestedBy"), f, p)
	s.writeFeed(w, r, resp, err)
}

func (s server) getProfileFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profiles/{id}/feed Feeds GetProfileFeed
	//
	// Returns events made by profile or about it.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	f, p, err := extractFeedParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.s.GetProfileFeed(r.Context(), chi.URLParam(r, "id"), f, p)
	s.writeFeed(w, r, resp, err)
}

func (s server) getReplies(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /events/{id}/replies Events GetReplies
	//
	// Returns reply tree of event. Tree is limited by 4 levels.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	//   format: uuid
	// - name: limit
	//   description: limits count of direct replies
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/RepliesResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	limit, err := extractInt(r.URL.Query(), "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	replies, err := s.s.GetReplies(r.Context(), id, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, RepliesResponse{Replies: toAPIEvents(replies)})
}

func (s server) searchEvents(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /events/search Events SearchEvents
	//
	// Searches public events by title and description.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: q
	//   description: search query, at least 2 characters
	//   in: query
	//   required: true
	//   example: bitcoin
	// - name: limit
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// - name: offset
	//   in: query
	//   required: false
	//   default: 0
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/SearchResponse"
	//   '400':
	//     schema:
	//       "$ref": "#/definitions/Error"

	q := r.URL.Query()

	limit, err := extractInt(q, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	offset, err := extractInt(q, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, total, err := s.s.SearchEvents(r.Context(), q.Get("q"), limit, offset)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, SearchResponse{
		Events: toAPIEvents(events),
		Total:  total,
	})
}

func (s server) writeFeed(w http.ResponseWriter, r *http.Request, resp *entities.FeedResponse, err error) {
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIFeedResponse(resp))
}

func (s server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, feed.ErrInvalidRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeInternalErrorf(r.Context(), w, "failed to process request: %s", err.Error())
}

func extractFeedParamsFromQuery(q url.Values) (entities.Filters, feed.PageRequest, error) {
	var (
		f   entities.Filters
		p   feed.PageRequest
		err error
	)

	if p.Page, err = extractInt(q, "page"); err != nil {
		return f, p, err
	}

	if p.Limit, err = extractInt(q, "limit"); err != nil {
		return f, p, err
	}

	if p.Limit > feed.MaxLimit {
		return f, p, fmt.Errorf("%w: limit is too big", errInvalidRequest)
	}

	for _, v := range splitList(q.Get("eventTypes")) {
		f.EventTypes = append(f.EventTypes, entities.EventType(v))
	}

	for _, v := range splitList(q.Get("visibility")) {
		f.Visibility = append(f.Visibility, entities.Visibility(v))
	}

	f.DateRange = entities.DateRange(q.Get("dateRange"))
	f.Actors = splitList(q.Get("actors"))
	f.Subjects = splitList(q.Get("subjects"))
	f.Tags = splitList(q.Get("tags"))

	return f, p, nil
}

func extractInt(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse %s", errInvalidRequest, key)
	}

	return int(v), nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
