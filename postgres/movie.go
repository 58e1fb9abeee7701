package postgres

import (
	"context"
	"fmt"
	"time"

	"moviecast/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movie metadata
type MovieModel struct {
	ID      uint                   `gorm:"primaryKey"`
	MovieID int                    `gorm:"column:movie_id;not null;uniqueIndex"`
	Record  map[string]interface{} `gorm:"column:record;serializer:json;not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movie_metadata"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindByMovieID(ctx context.Context, movieID int) ([]movie.Movie, error) {
	var models []MovieModel
	start := time.Now()
	err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).Order("id").Find(&models).Error
	observe(MovieModel{}.TableName(), start, err)
	if err != nil {
		return nil, fmt.Errorf("postgres: query movie: %w", err)
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = movie.Movie(model.Record)
	}
	return movies, nil
}

func (r *MovieRepository) Save(ctx context.Context, movies []movie.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	models := make([]MovieModel, len(movies))
	for i, m := range movies {
		movieID, ok := m.MovieID()
		if !ok {
			return fmt.Errorf("postgres: save movie: record %d: movieId is required", i)
		}
		models[i] = MovieModel{MovieID: movieID, Record: m}
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"record"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("postgres: save movie: %w", err)
	}
	return nil
}
