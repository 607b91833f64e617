// internal/app/system/orgutil/counts.go
// Package orgutil holds aggregation helpers shared by the stores.
package orgutil

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Aggregator is satisfied by *mongo.Database.
type Aggregator interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

// AggregateCountByField counts the documents of coll matching match,
// grouped by the ObjectID stored in groupKey (e.g. "team_id").
func AggregateCountByField(ctx context.Context, db Aggregator, coll string, match bson.M, groupKey string) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + groupKey},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
		N  int64              `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]int64, len(rows))
	for _, row := range rows {
		out[row.ID] = row.N
	}
	return out, nil
}

// TeamMemberCounts returns the number of users on each of teamIDs within
// orgID. Every requested team appears in the result; teams without users
// map to 0.
func TeamMemberCounts(ctx context.Context, db Aggregator, orgID primitive.ObjectID, teamIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	counts, err := AggregateCountByField(ctx, db, "users", bson.M{
		"organization_id": orgID,
		"team_id":         bson.M{"$in": teamIDs},
	}, "team_id")
	if err != nil {
		return nil, err
	}
	for _, id := range teamIDs {
		if _, ok := counts[id]; !ok {
			counts[id] = 0
		}
	}
	return counts, nil
}
