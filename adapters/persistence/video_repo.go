package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/video-hub/internal/domain/video"
	"github.com/khoahotran/video-hub/pkg/apperror"
)

type postgresVideoRepo struct {
	db *pgxpool.Pool
}

func NewPostgresVideoRepo(db *pgxpool.Pool) video.Repository {
	return &postgresVideoRepo{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var videoColumns = []string{
	"id", "user_id", "title", "description", "category", "tags",
	"video_url", "video_public_id", "thumbnail_url", "thumbnail_public_id",
	"liked_by", "disliked_by", "viewed_by", "created_at", "updated_at",
}

const videoReturning = ` RETURNING id, user_id, title, description, category, tags,
	video_url, video_public_id, thumbnail_url, thumbnail_public_id,
	liked_by, disliked_by, viewed_by, created_at, updated_at`

func scanVideo(row pgx.Row, id string) (*video.Video, error) {
	v := &video.Video{}
	var likedBy, dislikedBy, viewedBy []string

	err := row.Scan(
		&v.ID, &v.UserID, &v.Title, &v.Description, &v.Category, &v.Tags,
		&v.VideoURL, &v.VideoID, &v.ThumbnailURL, &v.ThumbnailID,
		&likedBy, &dislikedBy, &viewedBy, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("video", id)
		}
		return nil, apperror.NewInternal("failed to scan video row", err)
	}

	if v.LikedBy, err = parseUserIDs(likedBy); err != nil {
		return nil, err
	}
	if v.DislikedBy, err = parseUserIDs(dislikedBy); err != nil {
		return nil, err
	}
	if v.ViewedBy, err = parseUserIDs(viewedBy); err != nil {
		return nil, err
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	return v, nil
}

func parseUserIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Sprintf("corrupt user id %q in video row", s), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func userIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (r *postgresVideoRepo) Save(ctx context.Context, v *video.Video) error {
	query, args, err := psql.Insert("videos").
		Columns(videoColumns...).
		Values(
			v.ID, v.UserID, v.Title, v.Description, v.Category, nonNilTags(v.Tags),
			v.VideoURL, v.VideoID, v.ThumbnailURL, v.ThumbnailID,
			userIDStrings(v.LikedBy), userIDStrings(v.DislikedBy), userIDStrings(v.ViewedBy),
			v.CreatedAt, v.UpdatedAt,
		).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert video query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save video", err)
	}
	return nil
}

func (r *postgresVideoRepo) Update(ctx context.Context, v *video.Video) error {
	query := `
		UPDATE videos SET
			title = $2, description = $3, category = $4, tags = $5,
			thumbnail_url = $6, thumbnail_public_id = $7, updated_at = $8
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		v.ID, v.Title, v.Description, v.Category, nonNilTags(v.Tags),
		v.ThumbnailURL, v.ThumbnailID, v.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to update video", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("video", v.ID.String())
	}
	return nil
}

func (r *postgresVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete video", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("video", id.String())
	}
	return nil
}

func (r *postgresVideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	query, args, err := psql.Select(videoColumns...).From("videos").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find video query", err)
	}
	return scanVideo(r.db.QueryRow(ctx, query, args...), id.String())
}

func (r *postgresVideoRepo) List(ctx context.Context, f video.Filter) ([]*video.Video, error) {
	builder := psql.Select(videoColumns...).
		From("videos").
		OrderBy("created_at DESC", "id DESC")

	if f.UserID != uuid.Nil {
		builder = builder.Where(sq.Eq{"user_id": f.UserID})
	}
	if f.Category != "" {
		builder = builder.Where(sq.Eq{"category": f.Category})
	}
	if f.Tag != "" {
		builder = builder.Where(sq.Expr("? = ANY(tags)", f.Tag))
	}
	if f.Limit > 0 {
		builder = builder.Limit(uint64(f.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list videos query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query videos", err)
	}
	defer rows.Close()

	videos := make([]*video.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows, "")
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating video rows", err)
	}
	return videos, nil
}

func (r *postgresVideoRepo) AddView(ctx context.Context, id, userID uuid.UUID) (*video.Video, error) {
	query := `
		UPDATE videos SET
			viewed_by = CASE WHEN $2::text = ANY(viewed_by) THEN viewed_by ELSE array_append(viewed_by, $2::text) END
		WHERE id = $1` + videoReturning
	return scanVideo(r.db.QueryRow(ctx, query, id, userID.String()), id.String())
}

func (r *postgresVideoRepo) Like(ctx context.Context, id, userID uuid.UUID) (*video.Video, error) {
	query := `
		UPDATE videos SET
			liked_by = CASE WHEN $2::text = ANY(liked_by) THEN liked_by ELSE array_append(liked_by, $2::text) END,
			disliked_by = array_remove(disliked_by, $2::text)
		WHERE id = $1` + videoReturning
	return scanVideo(r.db.QueryRow(ctx, query, id, userID.String()), id.String())
}

func (r *postgresVideoRepo) Dislike(ctx context.Context, id, userID uuid.UUID) (*video.Video, error) {
	query := `
		UPDATE videos SET
			disliked_by = CASE WHEN $2::text = ANY(disliked_by) THEN disliked_by ELSE array_append(disliked_by, $2::text) END,
			liked_by = array_remove(liked_by, $2::text)
		WHERE id = $1` + videoReturning
	return scanVideo(r.db.QueryRow(ctx, query, id, userID.String()), id.String())
}

func (r *postgresVideoRepo) SetThumbnailURL(ctx context.Context, id uuid.UUID, thumbnailID, thumbnailURL string) error {
	query, args, err := psql.Update("videos").
		Set("thumbnail_url", thumbnailURL).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "thumbnail_public_id": thumbnailID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build thumbnail update query", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update thumbnail url", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("video thumbnail", thumbnailID)
	}
	return nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
