package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainplan "motorent/internal/domain/plan"
	"motorent/internal/domain/shared/money"
)

// PlanRepository keeps the rental plan catalog, keyed by day count.
type PlanRepository struct {
	col *mongo.Collection
}

func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{col: db.Collection("cat_plan")}
}

// Seed upserts the provided catalog; safe to run on every boot.
func (r *PlanRepository) Seed(ctx context.Context, plans []domainplan.RentPlan) error {
	for _, p := range plans {
		doc := planCatalogDocument{ID: p.Days, DailyRate: p.DailyRate}
		opts := options.Update().SetUpsert(true)
		if _, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, opts); err != nil {
			return err
		}
	}
	return nil
}

func (r *PlanRepository) FindByDays(ctx context.Context, days int) (*domainplan.RentPlan, error) {
	var doc planCatalogDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": days}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	p := doc.toPlan()
	return &p, nil
}

func (r *PlanRepository) All(ctx context.Context) ([]domainplan.RentPlan, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domainplan.RentPlan
	for cursor.Next(ctx) {
		var doc planCatalogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		plans = append(plans, doc.toPlan())
	}
	return plans, cursor.Err()
}

type planCatalogDocument struct {
	ID        int         `bson:"_id"`
	DailyRate money.Money `bson:"daily_rate"`
}

func (d planCatalogDocument) toPlan() domainplan.RentPlan {
	return domainplan.RentPlan{Days: d.ID, DailyRate: d.DailyRate}
}
