// Package mongo stores users as documents in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

const (
	// DefaultDatabase is used when the connection string names no database.
	DefaultDatabase = "crimehub"
	usersCollection = "users"

	emailField    = "personal_info.email"
	usernameField = "personal_info.username"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// userDocument is the stored shape: the user record plus its ObjectID.
type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	models.User `bson:",inline"`
}

func (d userDocument) toModel() models.User {
	user := d.User
	user.ID = d.ID.Hex()
	return user
}

// Store provides MongoDB-backed persistence for users.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
}

// NewUserStore connects to uri, verifies the primary is reachable and
// ensures the unique indexes exist.
func NewUserStore(ctx context.Context, uri string) (*Store, error) {
	dbName, err := DatabaseName(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{
		client: client,
		users:  client.Database(dbName).Collection(usersCollection),
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// DatabaseName returns the database named in uri, or DefaultDatabase.
func DatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	if cs.Database == "" {
		return DefaultDatabase, nil
	}
	return cs.Database, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: emailField, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("personal_info_email_unique"),
		},
		{
			Keys:    bson.D{{Key: usernameField, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("personal_info_username_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// CreateUser inserts user as a new document.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := storage.Validate(user); err != nil {
		return models.User{}, err
	}

	doc := userDocument{ID: primitive.NewObjectID(), User: user}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.toModel(), nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.D{{Key: emailField, Value: email}})
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findOne(ctx, bson.D{{Key: usernameField, Value: username}})
}

func (s *Store) findOne(ctx context.Context, filter bson.D) (models.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	doc.JoinedAt = doc.JoinedAt.UTC()
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return doc.toModel(), nil
}
