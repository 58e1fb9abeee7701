package cast_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviecast/cast"
	"moviecast/movie"
)

type MockCastRepository struct {
	mock.Mock
}

func (m *MockCastRepository) Query(ctx context.Context, p cast.Plan) ([]cast.Member, error) {
	args := m.Called(ctx, p)
	members, _ := args.Get(0).([]cast.Member)
	return members, args.Error(1)
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Metadata(ctx context.Context, movieID int) (movie.Movie, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func TestListCast(t *testing.T) {
	members := []cast.Member{
		{"movieId": float64(42), "actorName": "Ana", "roleName": "Lead"},
		{"movieId": float64(42), "actorName": "Ben", "roleName": "Sidekick"},
	}

	t.Run("should query by movie and skip metadata", func(t *testing.T) {
		r := new(MockCastRepository)
		ms := new(MockMovieService)
		uc := cast.NewUsecase(r, ms)
		r.On("Query", mock.Anything, cast.Plan{Kind: cast.PlanByMovie, MovieID: 42}).Return(members, nil).Once()

		res, err := uc.ListCast(context.Background(), cast.Query{MovieID: 42})

		require.NoError(t, err)
		assert.Equal(t, members, res.Data)
		assert.Nil(t, res.Movie)
		r.AssertExpectations(t)
		ms.AssertNotCalled(t, "Metadata")
	})

	t.Run("should use role plan when role and actor are both set", func(t *testing.T) {
		r := new(MockCastRepository)
		uc := cast.NewUsecase(r, nil)
		role, actor := "Lead", "Ben"
		r.On("Query", mock.Anything, cast.Plan{Kind: cast.PlanByRolePrefix, MovieID: 42, Prefix: "Lead"}).
			Return(members[:1], nil).Once()

		res, err := uc.ListCast(context.Background(), cast.Query{MovieID: 42, RoleName: &role, ActorName: &actor})

		require.NoError(t, err)
		assert.Equal(t, members[:1], res.Data)
		r.AssertExpectations(t)
	})

	t.Run("should attach movie metadata when requested", func(t *testing.T) {
		r := new(MockCastRepository)
		ms := new(MockMovieService)
		uc := cast.NewUsecase(r, ms)
		m := movie.Movie{"movieId": float64(42), "title": "Answer", "genreIds": []interface{}{float64(18)}, "overview": "Deep thought"}
		r.On("Query", mock.Anything, mock.Anything).Return(members, nil).Once()
		ms.On("Metadata", mock.Anything, 42).Return(m, nil).Once()

		res, err := uc.ListCast(context.Background(), cast.Query{MovieID: 42, WithMovie: true})

		require.NoError(t, err)
		require.NotNil(t, res.Movie)
		assert.Equal(t, m, *res.Movie)
		ms.AssertExpectations(t)
	})

	t.Run("should return empty data instead of null", func(t *testing.T) {
		r := new(MockCastRepository)
		uc := cast.NewUsecase(r, nil)
		r.On("Query", mock.Anything, mock.Anything).Return(nil, nil).Once()

		res, err := uc.ListCast(context.Background(), cast.Query{MovieID: 1})

		require.NoError(t, err)
		b, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[]}`, string(b))
	})

	t.Run("should fail when cast store fails", func(t *testing.T) {
		r := new(MockCastRepository)
		ms := new(MockMovieService)
		uc := cast.NewUsecase(r, ms)
		storeErr := errors.New("store unavailable")
		r.On("Query", mock.Anything, mock.Anything).Return(nil, storeErr).Once()

		_, err := uc.ListCast(context.Background(), cast.Query{MovieID: 42, WithMovie: true})

		assert.ErrorIs(t, err, storeErr)
		ms.AssertNotCalled(t, "Metadata")
	})

	t.Run("should discard cast data when metadata fails", func(t *testing.T) {
		r := new(MockCastRepository)
		ms := new(MockMovieService)
		uc := cast.NewUsecase(r, ms)
		metaErr := errors.New("movie table missing")
		r.On("Query", mock.Anything, mock.Anything).Return(members, nil).Once()
		ms.On("Metadata", mock.Anything, 42).Return(movie.Movie(nil), metaErr).Once()

		res, err := uc.ListCast(context.Background(), cast.Query{MovieID: 42, WithMovie: true})

		assert.ErrorIs(t, err, metaErr)
		assert.Empty(t, res.Data)
	})
}
