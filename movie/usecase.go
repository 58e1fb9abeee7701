package movie

import "context"

type Service interface {
	Metadata(ctx context.Context, movieID int) (Movie, error)
}

// Repository looks movies up by id. A store may hold several records for
// the same id; callers use the first one.
type Repository interface {
	FindByMovieID(ctx context.Context, movieID int) ([]Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// Metadata returns the first stored record for movieID, or Placeholder
// when the store has none.
func (uc *Usecase) Metadata(ctx context.Context, movieID int) (Movie, error) {
	movies, err := uc.r.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return Placeholder(), nil
	}
	return movies[0], nil
}
