package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database. Documents are addressed by their "id" field.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects, pings and ensures the id/query indexes.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}
	for name, fields := range indexPlan {
		if err := s.ensureIndexes(ctx, name, fields); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ensureIndexes creates a unique id index plus indexes for fields frequently used in queries.
func (s *MongoStore) ensureIndexes(ctx context.Context, name string, fields []string) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	for _, f := range fields {
		indexModels = append(indexModels, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}

	if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", name, err)
	}
	return nil
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Get(ctx context.Context, id string, dst any) error {
	err := c.coll.FindOne(ctx, bson.M{"id": id}).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

func (c *mongoCollection) Create(ctx context.Context, id string, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

func (c *mongoCollection) Update(ctx context.Context, id string, fields map[string]any) error {
	result, err := c.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", c.coll.Name(), id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) UpdateIfVersion(ctx context.Context, id string, version int64, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["version"] = version + 1

	result, err := c.coll.UpdateOne(ctx, bson.M{"id": id, "version": version}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", c.coll.Name(), id, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	n, err := c.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check %s/%s: %w", c.coll.Name(), id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrVersionConflict
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	result, err := c.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c.coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Find(ctx context.Context, q Query, dst any) error {
	opts := options.Find()
	if len(q.Orders) > 0 {
		sort := bson.D{}
		for _, o := range q.Orders {
			dir := 1
			if o.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: o.Field, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := c.coll.Find(ctx, mongoFilter(q), opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) Count(ctx context.Context, q Query) (int64, error) {
	opts := options.Count()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	n, err := c.coll.CountDocuments(ctx, mongoFilter(q), opts)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

var mongoOps = map[Op]string{
	OpGt:  "$gt",
	OpGte: "$gte",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpIn:  "$in",
}

// mongoFilter folds filters on the same field into one operator document.
func mongoFilter(q Query) bson.M {
	filter := bson.M{}
	for _, f := range q.Filters {
		if f.Op == OpEq {
			if existing, ok := filter[f.Field].(bson.M); ok {
				existing["$eq"] = f.Value
			} else {
				filter[f.Field] = f.Value
			}
			continue
		}
		cond, ok := filter[f.Field].(bson.M)
		if !ok {
			cond = bson.M{}
			if prev, exists := filter[f.Field]; exists {
				cond["$eq"] = prev
			}
		}
		cond[mongoOps[f.Op]] = f.Value
		filter[f.Field] = cond
	}
	return filter
}
