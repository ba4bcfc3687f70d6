package visitormongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/guestpass/pkg/visitor"
)

const collectionName = "visitors"

// Store is a MongoDB-backed visitor store.
type Store struct {
	col *mongo.Collection
}

// New creates a visitor store on the "visitors" collection of db.
func New(db *mongo.Database) *Store {
	return &Store{col: db.Collection(collectionName)}
}

// document is the BSON shape of a visitor record. Kept separate from
// visitor.Record so driver concerns stay out of the core package.
type document struct {
	ID           string     `bson:"_id"`
	Email        string     `bson:"email"`
	Scope        string     `bson:"scope"`
	SessionsLeft int        `bson:"sessions_left"`
	IsActive     bool       `bson:"is_active"`
	ValidFrom    *time.Time `bson:"valid_from,omitempty"`
	ValidUntil   *time.Time `bson:"valid_until,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func toDocument(rec *visitor.Record) document {
	return document{
		ID:           rec.ID.String(),
		Email:        rec.Email,
		Scope:        rec.Scope,
		SessionsLeft: rec.SessionsLeft,
		IsActive:     rec.IsActive,
		ValidFrom:    rec.ValidFrom,
		ValidUntil:   rec.ValidUntil,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func (d document) toRecord() (*visitor.Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Join(visitor.ErrNotFound, err)
	}
	return &visitor.Record{
		ID:           id,
		Email:        d.Email,
		Scope:        d.Scope,
		SessionsLeft: d.SessionsLeft,
		IsActive:     d.IsActive,
		ValidFrom:    d.ValidFrom,
		ValidUntil:   d.ValidUntil,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// FindByID retrieves a record by identifier.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Record, error) {
	var doc document
	err := s.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, visitor.ErrNotFound
		}
		return nil, err
	}
	return doc.toRecord()
}

// Save upserts the record.
func (s *Store) Save(ctx context.Context, rec *visitor.Record) error {
	if rec == nil || rec.ID == uuid.Nil {
		return visitor.ErrNilRecord
	}

	doc := toDocument(rec)
	doc.UpdatedAt = time.Now()

	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Decrement consumes one unit of quota atomically. The sessions_left > 0
// filter makes the decrement-and-check a single document operation; unlimited
// and exhausted records match nothing and fall back to a plain read.
func (s *Store) Decrement(ctx context.Context, id uuid.UUID) (*visitor.Record, error) {
	var doc document
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String(), "sessions_left": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"sessions_left": -1},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return s.FindByID(ctx, id)
		}
		return nil, err
	}
	return doc.toRecord()
}
