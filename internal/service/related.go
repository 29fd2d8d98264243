package service

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"estate/internal/model"
	"estate/internal/search"
)

// Related builds the nearby, similar price and similar area sections for a
// property. The three queries run concurrently and any storage error fails
// the whole call. A missing reference property yields three empty buckets.
func (s *SearchService) Related(ctx context.Context, id string) (*model.RelatedListings, error) {
	ref, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	out := model.EmptyRelatedListings()
	if ref == nil {
		s.log.Debug().Str("property_id", id).Msg("related listings requested for missing property")
		return out, nil
	}

	tolerance := s.opts.RelatedTolerance
	g, gctx := errgroup.WithContext(ctx)
	s.relatedBucket(gctx, g, ref.ID, nearbyPredicates(ref), &out.Nearby)
	s.relatedBucket(gctx, g, ref.ID, rangePredicates(search.FieldPrice, &ref.Price, tolerance), &out.SimilarPrice)
	s.relatedBucket(gctx, g, ref.ID, rangePredicates(search.FieldArea, ref.Area, tolerance), &out.SimilarArea)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// relatedBucket schedules one bucket query. Nil criteria mean the reference
// lacks the data for this bucket, which then stays empty.
func (s *SearchService) relatedBucket(ctx context.Context, g *errgroup.Group, refID string, criteria []search.Predicate, dest *[]model.Property) {
	if criteria == nil {
		return
	}
	where := append([]search.Predicate{search.Active(), search.Neq(search.FieldID, refID)}, criteria...)

	g.Go(func() error {
		properties, err := s.repo.FindProperties(ctx, search.Query{Where: where, Limit: s.opts.RelatedLimit})
		if err != nil {
			return err
		}
		*dest = properties
		return nil
	})
}

// nearbyPredicates matches the same governorate and city
func nearbyPredicates(ref *model.Property) []search.Predicate {
	if ref.Governorate == nil || ref.City == nil {
		return nil
	}
	return []search.Predicate{
		search.Eq(search.FieldGovernorate, *ref.Governorate),
		search.Eq(search.FieldCity, *ref.City),
	}
}

// rangePredicates matches value*(1-tolerance) <= field <= value*(1+tolerance)
func rangePredicates(field search.Field, value *float64, tolerance float64) []search.Predicate {
	if value == nil {
		return nil
	}
	return []search.Predicate{
		search.Gte(field, roundBound(*value*(1-tolerance))),
		search.Lte(field, roundBound(*value*(1+tolerance))),
	}
}

// roundBound drops the binary rounding error of the multiplication, so
// 87*1.2 is 104.4 and not 104.39999999999999.
func roundBound(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
