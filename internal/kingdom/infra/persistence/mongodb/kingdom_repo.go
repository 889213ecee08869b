package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"TreeKingdom/internal/kingdom/entity"
	"TreeKingdom/internal/kingdom/infra/persistence/model"
	"TreeKingdom/internal/kingdom/sim"
)

const defaultCollectionName = "kingdoms"

type KingdomRepository struct {
	coll *mongo.Collection
}

func NewKingdomRepository(db *mongo.Database) *KingdomRepository {
	return &KingdomRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

// LoadKingdom 文档不存在返回 (nil, nil)，上层据此新建王国。
func (r *KingdomRepository) LoadKingdom(ctx context.Context, playerID int64) (*sim.State, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb kingdom collection is nil")
	}

	var doc model.KingdomDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": playerID}).Decode(&doc)
	if err == nil {
		return model.KingdomDocToState(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return nil, err
}

// Snapshot 整文档 upsert。按 _id 覆盖，天然幂等，重复写最后一次生效。
func (r *KingdomRepository) Snapshot(ctx context.Context, s *entity.KingdomPersistSnapshot) error {
	if s == nil || s.State == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb kingdom collection is nil")
	}

	doc := model.KingdomStateToDoc(s.State)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.PlayerID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
