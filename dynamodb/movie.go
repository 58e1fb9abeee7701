package dynamodb

import (
	"context"
	"fmt"
	"time"

	"moviecast/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type MovieRepository struct {
	client API
	table  string
}

func NewMovieRepository(client API, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

func (r *MovieRepository) FindByMovieID(ctx context.Context, movieID int) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	keyCond := expression.Key(movie.AttrMovieID).Equal(expression.Value(movieID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("dynamodb: build movie query: %w", err)
	}

	start := time.Now()
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	observe(r.table, start, err)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: query movie: %w", err)
	}

	movies := make([]movie.Movie, 0, len(out.Items))
	for _, item := range out.Items {
		m, err := decodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
		}
		movies = append(movies, movie.Movie(m))
	}

	return movies, nil
}

func (r *MovieRepository) Save(ctx context.Context, movies []movie.Movie) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	items := make([]map[string]types.AttributeValue, 0, len(movies))
	for _, m := range movies {
		item, err := encodeItem(m, movie.AttrMovieID)
		if err != nil {
			return fmt.Errorf("dynamodb: marshal movie: %w", err)
		}
		items = append(items, item)
	}

	return batchPut(ctx, r.client, r.table, items)
}
