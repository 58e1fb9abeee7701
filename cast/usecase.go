package cast

import (
	"context"
	"fmt"

	"moviecast/movie"
	"moviecast/pkg/metrics"
)

type Service interface {
	ListCast(ctx context.Context, q Query) (Result, error)
}

// Repository runs a Plan against the cast store and returns the records in
// the order the store yields them.
type Repository interface {
	Query(ctx context.Context, p Plan) ([]Member, error)
}

// Result is the success body. Movie is only set when metadata was requested.
type Result struct {
	Data  []Member     `json:"data"`
	Movie *movie.Movie `json:"movie,omitempty"`
}

type Usecase struct {
	r      Repository
	movies movie.Service
}

func NewUsecase(r Repository, movies movie.Service) *Usecase {
	return &Usecase{r: r, movies: movies}
}

func (uc *Usecase) ListCast(ctx context.Context, q Query) (Result, error) {
	plan := q.Plan()

	members, err := uc.r.Query(ctx, plan)
	if err != nil {
		metrics.CastQueries.WithLabelValues(plan.Kind.String(), metrics.OutcomeError).Inc()
		return Result{}, err
	}
	if members == nil {
		members = []Member{}
	}
	res := Result{Data: members}

	if q.WithMovie {
		if uc.movies == nil {
			metrics.CastQueries.WithLabelValues(plan.Kind.String(), metrics.OutcomeError).Inc()
			return Result{}, fmt.Errorf("cast: movie service not configured")
		}
		m, err := uc.movies.Metadata(ctx, q.MovieID)
		if err != nil {
			metrics.CastQueries.WithLabelValues(plan.Kind.String(), metrics.OutcomeError).Inc()
			return Result{}, err
		}
		res.Movie = &m
	}

	metrics.CastQueries.WithLabelValues(plan.Kind.String(), metrics.OutcomeOK).Inc()
	return res, nil
}
