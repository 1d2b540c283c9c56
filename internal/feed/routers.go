package feed

import (
	"context"
	"fmt"

	"github.com/Decentr-net/timeline/internal/entities"
	"github.com/Decentr-net/timeline/internal/storage"
)

func (s *service) GetPersonalFeed(ctx context.Context, viewerID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("%w: viewer is required", ErrInvalidRequest)
	}

	f, p, err := s.prepare(f, p)
	if err != nil {
		return nil, err
	}

	params := baseParams(f, p, s.e.Now())
	params.ActorIDs = restrictActors([]string{viewerID}, f.Actors)
	params.Viewer = &viewerID

	if len(params.ActorIDs) == 0 {
		return newResponse(nil, p, f, s.e.Now()), nil
	}

	q := &Query{
		Feed:   "personal",
		Key:    cacheKey("personal", []string{viewerID}, f, p),
		Params: params,
	}

	return s.serve(ctx, q, s.tiers(storage.EnrichedSource, false), p, f), nil
}

func (s *service) GetFollowedFeed(ctx context.Context, viewerID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("%w: viewer is required", ErrInvalidRequest)
	}

	f, p, err := s.prepare(f, p)
	if err != nil {
		return nil, err
	}

	followees, err := s.s.GetFollowees(ctx, viewerID)
	if err != nil {
		log.WithError(err).WithField("feed", "followed").Error("failed to get followees")
		return newResponse(nil, p, f, s.e.Now()), nil
	}

	params := baseParams(f, p, s.e.Now())
	params.ActorIDs = restrictActors(followees, f.Actors)
	params.Viewer = &viewerID

	if len(f.Visibility) == 0 {
		params.Visibility = []entities.Visibility{entities.PublicVisibility}
	}

	// nobody is followed, there is nothing to query
	if len(params.ActorIDs) == 0 {
		return newResponse(nil, p, f, s.e.Now()), nil
	}

	q := &Query{
		Feed:   "followed",
		Key:    cacheKey("followed", []string{viewerID}, f, p),
		Params: params,
	}

	return s.serve(ctx, q, s.tiers(storage.EnrichedSource, false), p, f), nil
}

func (s *service) GetProjectFeed(ctx context.Context, projectID, viewerID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project is required", ErrInvalidRequest)
	}

	f, p, err := s.prepare(f, p)
	if err != nil {
		return nil, err
	}

	project := entities.ProjectRef(projectID)

	params := baseParams(f, p, s.e.Now())
	params.Subject = &project

	if viewerID != "" {
		params.VisibleTo = &viewerID
		params.Viewer = &viewerID
	} else {
		params.Visibility = intersectVisibility(f.Visibility, entities.PublicVisibility)
		if len(params.Visibility) == 0 {
			return newResponse(nil, p, f, s.e.Now()), nil
		}
	}

	q := &Query{
		Feed:   "project",
		Key:    cacheKey("project", []string{projectID, viewerID}, f, p),
		Params: params,
	}

	return s.serve(ctx, q, s.tiers(storage.EnrichedSource, false), p, f), nil
}

func (s *service) GetProfileFeed(ctx context.Context, profileID string, f entities.Filters, p PageRequest) (*entities.FeedResponse, error) {
	if profileID == "" {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidRequest)
	}

	f, p, err := s.prepare(f, p)
	if err != nil {
		return nil, err
	}

	params := baseParams(f, p, s.e.Now())
	params.Profile = &profileID

	q := &Query{
		Feed:   "profile",
		Key:    cacheKey("profile", []string{profileID}, f, p),
		Params: params,
	}

	return s.serve(ctx, q, s.tiers(storage.EnrichedSource, false), p, f), nil
}

func (s *service) GetCommunityFeed(ctx context.Context, f entities.Filters, p PageRequest) (*entities.FeedResponse, error) {
	f, p, err := s.prepare(f, p)
	if err != nil {
		return nil, err
	}

	params := baseParams(f, p, s.e.Now())
	params.Visibility = intersectVisibility(f.Visibility, entities.PublicVisibility)

	if len(params.Visibility) == 0 {
		return newResponse(nil, p, f, s.e.Now()), nil
	}

	q := &Query{
		Feed:   "community",
		Key:    cacheKey("community", nil, f, p),
		Params: params,
	}

	return s.serve(ctx, q, s.tiers(storage.CommunitySource, true), p, f), nil
}

func (s *service) prepare(f entities.Filters, p PageRequest) (entities.Filters, PageRequest, error) {
	f, err := normalizeFilters(f)
	if err != nil {
		return entities.Filters{}, PageRequest{}, err
	}

	return f, normalizePage(p), nil
}
