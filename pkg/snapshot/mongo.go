package snapshot

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
)

// Defaults for mongo-backed stores.
const (
	DefaultMongoDatabase   = "sketchdoc"
	DefaultMongoCollection = "snapshots"
)

// MongoConfig configures a mongo-backed store.
type MongoConfig struct {
	URI        string // mongodb:// connection string
	Database   string // defaults to DefaultMongoDatabase
	Collection string // defaults to DefaultMongoCollection
}

// MongoStore keeps snapshots in a mongo collection, one document per
// snapshot with a unique name index.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to mongo, verifies the connection, and
// ensures the unique name index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = DefaultMongoDatabase
	}
	collName := cfg.Collection
	if collName == "" {
		collName = DefaultMongoCollection
	}
	coll := client.Database(db).Collection(collName)

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create name index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, snap *Snapshot) error {
	if err := errors.ValidateSnapshotName(snap.Name); err != nil {
		return err
	}
	stored := snap.clone()
	stored.stamp()

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"name": stored.Name},
		stored,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", stored.Name, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return &snap, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"data": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cur.Close(ctx)

	var infos []Info
	if err := cur.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return infos, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
