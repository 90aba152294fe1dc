package mongostore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core"
	"github.com/charmakemoussa99-ops/gestion-de-l-cole/core/school"
)

const (
	collectionName = "documents"
	documentID     = 1
	opTimeout      = 10 * time.Second
)

type documentRecord struct {
	ID        int       `bson:"_id"`
	Version   int       `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
	// Doc holds the whole document as JSON so the wire shape stays
	// identical across store backends.
	Doc []byte `bson:"doc"`
}

// Store persists the document as a single record in a mongo
// collection; Replace is one upsert.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ school.Store = (*Store)(nil)

func Open(conf *core.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Storage.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "pinging mongo")
	}
	return &Store{
		client: client,
		coll:   client.Database(conf.Storage.MongoDatabase).Collection(collectionName),
	}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Load() (school.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var rec documentRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": documentID}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return school.NewDocument(), nil
	}
	if err != nil {
		return school.Document{}, errors.Wrap(err, "finding document")
	}

	var doc school.Document
	if err := json.Unmarshal(rec.Doc, &doc); err != nil {
		return school.Document{}, errors.Wrap(err, "unmarshaling document")
	}
	doc.Version = rec.Version
	doc.UpdatedAt = rec.UpdatedAt
	school.Normalize(&doc)
	return doc, nil
}

func (s *Store) Replace(doc school.Document) error {
	doc.Version++
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshaling document")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rec := documentRecord{ID: documentID, Version: doc.Version, UpdatedAt: doc.UpdatedAt, Doc: data}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": documentID}, rec, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "replacing document")
}
