package postgres

import (
	"context"
	"fmt"
	"time"

	"moviecast/cast"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CastMemberModel mirrors the DynamoDB layout: (movie_id, actor_name) is
// the key, role_name has its own index. Record holds the full stored item.
type CastMemberModel struct {
	ID        uint                   `gorm:"primaryKey"`
	MovieID   int                    `gorm:"column:movie_id;not null;uniqueIndex:cast_members_movie_actor"`
	ActorName string                 `gorm:"column:actor_name;not null;uniqueIndex:cast_members_movie_actor"`
	RoleName  *string                `gorm:"column:role_name"`
	Record    map[string]interface{} `gorm:"column:record;serializer:json;not null"`
}

func (CastMemberModel) TableName() string {
	return "cast_members"
}

type CastRepository struct {
	db *gorm.DB
}

func NewCastRepository(db *gorm.DB) *CastRepository {
	return &CastRepository{db: db}
}

// Query orders rows the way the DynamoDB key or index would. Rows without
// a role never match the role plan, like items missing from a sparse index.
func (r *CastRepository) Query(ctx context.Context, p cast.Plan) ([]cast.Member, error) {
	q := r.db.WithContext(ctx).Where("movie_id = ?", p.MovieID)
	switch p.Kind {
	case cast.PlanByRolePrefix:
		q = q.Where("role_name LIKE ?", likePrefix(p.Prefix)).Order("role_name").Order("actor_name")
	case cast.PlanByActorPrefix:
		q = q.Where("actor_name LIKE ?", likePrefix(p.Prefix)).Order("actor_name")
	default:
		q = q.Order("actor_name")
	}

	var models []CastMemberModel
	start := time.Now()
	err := q.Find(&models).Error
	observe(CastMemberModel{}.TableName(), start, err)
	if err != nil {
		return nil, fmt.Errorf("postgres: query cast: %w", err)
	}

	members := make([]cast.Member, len(models))
	for i, m := range models {
		members[i] = cast.Member(m.Record)
	}
	return members, nil
}

// Save upserts members on (movie_id, actor_name).
func (r *CastRepository) Save(ctx context.Context, members []cast.Member) error {
	if len(members) == 0 {
		return nil
	}

	models := make([]CastMemberModel, len(members))
	for i, m := range members {
		movieID, ok := m.MovieID()
		if !ok || m.ActorName() == "" {
			return fmt.Errorf("postgres: save cast: record %d: movieId and actorName are required", i)
		}
		model := CastMemberModel{
			MovieID:   movieID,
			ActorName: m.ActorName(),
			Record:    m,
		}
		if role, ok := m[cast.AttrRoleName].(string); ok {
			model.RoleName = &role
		}
		models[i] = model
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "movie_id"}, {Name: "actor_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"role_name", "record"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("postgres: save cast: %w", err)
	}
	return nil
}
