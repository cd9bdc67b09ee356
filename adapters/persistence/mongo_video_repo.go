package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

type videoDocument struct {
	ID                string    `bson:"_id"`
	UserID            string    `bson:"user_id"`
	Title             string    `bson:"title"`
	Description       string    `bson:"description"`
	Category          string    `bson:"category"`
	Tags              []string  `bson:"tags"`
	VideoURL          string    `bson:"video_url"`
	VideoPublicID     string    `bson:"video_public_id"`
	ThumbnailURL      string    `bson:"thumbnail_url"`
	ThumbnailPublicID string    `bson:"thumbnail_public_id"`
	LikedBy           []string  `bson:"liked_by"`
	DislikedBy        []string  `bson:"disliked_by"`
	ViewedBy          []string  `bson:"viewed_by"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func toVideoDocument(v *video.Video) videoDocument {
	return videoDocument{
		ID:                v.ID.String(),
		UserID:            v.UserID.String(),
		Title:             v.Title,
		Description:       v.Description,
		Category:          v.Category,
		Tags:              nonNilTags(v.Tags),
		VideoURL:          v.VideoURL,
		VideoPublicID:     v.VideoID,
		ThumbnailURL:      v.ThumbnailURL,
		ThumbnailPublicID: v.ThumbnailID,
		LikedBy:           userIDStrings(v.LikedBy),
		DislikedBy:        userIDStrings(v.DislikedBy),
		ViewedBy:          userIDStrings(v.ViewedBy),
		CreatedAt:         v.CreatedAt.UTC(),
		UpdatedAt:         v.UpdatedAt.UTC(),
	}
}

func (d videoDocument) toDomain() (*video.Video, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, apperror.NewInternal("corrupt video id in document", err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, apperror.NewInternal("corrupt user id in video document", err)
	}
	v := &video.Video{
		ID:           id,
		UserID:       userID,
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		Tags:         nonNilTags(d.Tags),
		VideoURL:     d.VideoURL,
		VideoID:      d.VideoPublicID,
		ThumbnailURL: d.ThumbnailURL,
		ThumbnailID:  d.ThumbnailPublicID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if v.LikedBy, err = parseUserIDs(d.LikedBy); err != nil {
		return nil, err
	}
	if v.DislikedBy, err = parseUserIDs(d.DislikedBy); err != nil {
		return nil, err
	}
	if v.ViewedBy, err = parseUserIDs(d.ViewedBy); err != nil {
		return nil, err
	}
	return v, nil
}

type mongoVideoRepo struct {
	coll *mongo.Collection
}

func NewMongoVideoRepo(db *mongo.Database) video.Repository {
	return &mongoVideoRepo{coll: db.Collection(videosCollection)}
}

func (r *mongoVideoRepo) Save(ctx context.Context, v *video.Video) error {
	if _, err := r.coll.InsertOne(ctx, toVideoDocument(v)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewConflict("video", "id", v.ID.String())
		}
		return apperror.NewInternal("failed to save video", err)
	}
	return nil
}

func (r *mongoVideoRepo) Update(ctx context.Context, v *video.Video) error {
	update := bson.M{"$set": bson.M{
		"title":               v.Title,
		"description":         v.Description,
		"category":            v.Category,
		"tags":                nonNilTags(v.Tags),
		"thumbnail_url":       v.ThumbnailURL,
		"thumbnail_public_id": v.ThumbnailID,
		"updated_at":          v.UpdatedAt.UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": v.ID.String()}, update)
	if err != nil {
		return apperror.NewInternal("failed to update video", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("video", v.ID.String())
	}
	return nil
}

func (r *mongoVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return apperror.NewInternal("failed to delete video", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFound("video", id.String())
	}
	return nil
}

func (r *mongoVideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	var doc videoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("video", id.String())
		}
		return nil, apperror.NewInternal("failed to find video", err)
	}
	return doc.toDomain()
}

func (r *mongoVideoRepo) List(ctx context.Context, f video.Filter) ([]*video.Video, error) {
	filter := bson.M{}
	if f.UserID != uuid.Nil {
		filter["user_id"] = f.UserID.String()
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.NewInternal("failed to query videos", err)
	}
	var docs []videoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewInternal("failed to decode videos", err)
	}

	videos := make([]*video.Video, 0, len(docs))
	for _, d := range docs {
		v, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func (r *mongoVideoRepo) AddView(ctx context.Context, id, userID uuid.UUID) (*video.Video, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"viewed_by": userID.String()},
	})
}

func (r *mongoVideoRepo) Like(ctx context.Context, id, userID uuid.UUID) (*video.Video, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"liked_by": userID.String()},
		"$pull":     bson.M{"disliked_by": userID.String()},
	})
}

func (r *mongoVideoRepo) Dislike(ctx context.Context, id, userID uuid.UUID) (*video.Video, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"disliked_by": userID.String()},
		"$pull":     bson.M{"liked_by": userID.String()},
	})
}

func (r *mongoVideoRepo) SetThumbnailURL(ctx context.Context, id uuid.UUID, thumbnailID, thumbnailURL string) error {
	filter := bson.M{"_id": id.String(), "thumbnail_public_id": thumbnailID}
	update := bson.M{"$set": bson.M{
		"thumbnail_url": thumbnailURL,
		"updated_at":    time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return apperror.NewInternal("failed to update thumbnail url", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("video thumbnail", thumbnailID)
	}
	return nil
}

func (r *mongoVideoRepo) findAndUpdate(ctx context.Context, id uuid.UUID, update bson.M) (*video.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc videoDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFound("video", id.String())
		}
		return nil, apperror.NewInternal("failed to update video reactions", err)
	}
	return doc.toDomain()
}
