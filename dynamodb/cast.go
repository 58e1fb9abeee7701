package dynamodb

import (
	"context"
	"fmt"
	"time"

	"moviecast/cast"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CastRepository reads cast members from a table keyed by
// (movieId, actorName) with a secondary index keyed by (movieId, roleName).
type CastRepository struct {
	client    API
	table     string
	roleIndex string
}

func NewCastRepository(client API, table, roleIndex string) *CastRepository {
	return &CastRepository{
		client:    client,
		table:     table,
		roleIndex: roleIndex,
	}
}

// Query issues a single Query call. Items come back in index order and
// exactly as stored.
func (r *CastRepository) Query(ctx context.Context, p cast.Plan) ([]cast.Member, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	input, err := r.queryInput(p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := r.client.Query(ctx, input)
	observe(r.table, start, err)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: query cast: %w", err)
	}

	members := make([]cast.Member, 0, len(out.Items))
	for _, item := range out.Items {
		m, err := decodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal cast: %w", err)
		}
		members = append(members, cast.Member(m))
	}

	return members, nil
}

// Save writes members with BatchWriteItem, overwriting existing records
// with the same key.
func (r *CastRepository) Save(ctx context.Context, members []cast.Member) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	items := make([]map[string]types.AttributeValue, 0, len(members))
	for _, m := range members {
		item, err := encodeItem(m, cast.AttrMovieID, cast.AttrActorName)
		if err != nil {
			return fmt.Errorf("dynamodb: marshal cast: %w", err)
		}
		items = append(items, item)
	}

	return batchPut(ctx, r.client, r.table, items)
}

func (r *CastRepository) queryInput(p cast.Plan) (*dynamodb.QueryInput, error) {
	keyCond := expression.Key(cast.AttrMovieID).Equal(expression.Value(p.MovieID))

	var index *string
	switch p.Kind {
	case cast.PlanByRolePrefix:
		keyCond = keyCond.And(expression.Key(cast.AttrRoleName).BeginsWith(p.Prefix))
		index = aws.String(r.roleIndex)
	case cast.PlanByActorPrefix:
		keyCond = keyCond.And(expression.Key(cast.AttrActorName).BeginsWith(p.Prefix))
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("dynamodb: build cast query: %w", err)
	}

	return &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 index,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, nil
}
