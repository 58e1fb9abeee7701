package movie_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviecast/movie"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) FindByMovieID(ctx context.Context, movieID int) ([]movie.Movie, error) {
	args := m.Called(ctx, movieID)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func TestMetadata(t *testing.T) {
	t.Run("should return the first stored record", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		movies := []movie.Movie{
			{"movieId": float64(42), "title": "First"},
			{"movieId": float64(42), "title": "Second"},
		}
		r.On("FindByMovieID", mock.Anything, 42).Return(movies, nil).Once()

		m, err := uc.Metadata(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, movies[0], m)
		r.AssertExpectations(t)
	})

	t.Run("should fall back to the placeholder", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		r.On("FindByMovieID", mock.Anything, 42).Return([]movie.Movie{}, nil).Once()

		m, err := uc.Metadata(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, movie.Placeholder(), m)
	})

	t.Run("should propagate store errors", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		storeErr := errors.New("timeout")
		r.On("FindByMovieID", mock.Anything, 42).Return(nil, storeErr).Once()

		_, err := uc.Metadata(context.Background(), 42)

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestMovie_MarshalJSON(t *testing.T) {
	t.Run("placeholder has no movieId", func(t *testing.T) {
		b, err := json.Marshal(movie.Placeholder())

		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Unknown Title","genreIds":[],"overview":"No overview available"}`, string(b))
	})

	t.Run("stored record is emitted as stored", func(t *testing.T) {
		m := movie.Movie{"movieId": float64(42), "title": "X"}

		b, err := json.Marshal(m)

		require.NoError(t, err)
		assert.JSONEq(t, `{"movieId":42,"title":"X"}`, string(b))
	})

	t.Run("zero movieId is kept", func(t *testing.T) {
		b, err := json.Marshal(movie.Movie{"movieId": float64(0), "genreIds": []interface{}{"18"}})

		require.NoError(t, err)
		assert.JSONEq(t, `{"movieId":0,"genreIds":["18"]}`, string(b))
	})
}

func TestIntAttr(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
		ok    bool
	}{
		{name: "float", value: float64(42), want: 42, ok: true},
		{name: "int", value: 7, want: 7, ok: true},
		{name: "json number", value: json.Number("12"), want: 12, ok: true},
		{name: "fraction", value: 4.5, ok: false},
		{name: "string", value: "42", ok: false},
		{name: "missing", value: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := movie.IntAttr(tt.value)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
