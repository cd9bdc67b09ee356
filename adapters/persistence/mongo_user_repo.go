package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/khoahotran/video-hub/internal/domain/user"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

type userDocument struct {
	ID           string  `bson:"_id"`
	Email        string  `bson:"email"`
	Name         *string `bson:"name,omitempty"`
	PasswordHash string  `bson:"password_hash"`
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) user.Repository {
	return &mongoUserRepo{coll: db.Collection(usersCollection)}
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, apperror.NewInternal("error when query user", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, apperror.NewInternal("corrupt user id in document", err)
	}
	return &user.User{ID: id, Email: doc.Email, Name: doc.Name, PasswordHash: doc.PasswordHash}, nil
}

func (r *mongoUserRepo) Upsert(ctx context.Context, u *user.User) error {
	update := bson.M{
		"$set":         bson.M{"name": u.Name, "password_hash": u.PasswordHash},
		"$setOnInsert": bson.M{"_id": u.ID.String()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": u.Email}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return apperror.NewInternal("failed to upsert user", err)
	}

	stored, err := r.FindByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	u.ID = stored.ID
	return nil
}
