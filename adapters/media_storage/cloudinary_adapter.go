package media_storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/internal/application/service"
	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/pkg/logger"
	"github.com/khoahotran/video-hub/pkg/metrics"
)

const breakerName = "cloudinary"

// errRejected marks a request Cloudinary answered but refused, such as a bad file or unknown asset.
var errRejected = errors.New("cloudinary rejected request")

type cloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	cb     *gobreaker.CircuitBreaker[any]
	logger logger.Logger
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	log.Info("connect Cloudinary successfully.")
	return &cloudinaryAdapter{cld: cld, cb: newBreaker(log), logger: log}, nil
}

// newBreaker opens after 5 consecutive failures and lets trial requests through after 30s.
func newBreaker(log logger.Logger) *gobreaker.CircuitBreaker[any] {
	metrics.MediaStoreBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Media store circuit breaker state changed",
				zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
			metrics.MediaStoreBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// isBreakerSuccess treats caller cancellations and refused inputs as healthy responses.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, errRejected)
}

func (a *cloudinaryAdapter) execute(operation string, fn func() (any, error)) (any, error) {
	res, err := a.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.MediaStoreRequests.WithLabelValues(operation, "rejected").Inc()
		return nil, fmt.Errorf("media store unavailable: %w", err)
	case errors.Is(err, errRejected):
		metrics.MediaStoreRequests.WithLabelValues(operation, "invalid").Inc()
		return nil, err
	case err != nil:
		metrics.MediaStoreRequests.WithLabelValues(operation, "failure").Inc()
		return nil, err
	}
	metrics.MediaStoreRequests.WithLabelValues(operation, "success").Inc()
	return res, nil
}

func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, folder string, resource service.ResourceType) (*service.Asset, error) {
	res, err := a.execute("upload", func() (any, error) {
		result, err := a.cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder:       folder,
			ResourceType: string(resource),
		})
		if err != nil {
			return nil, err
		}
		if result.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", errRejected, result.Error.Message)
		}
		return result, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload cloudinary: %w", err)
	}

	result := res.(*uploader.UploadResult)
	return &service.Asset{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, publicID string, resource service.ResourceType) error {
	_, err := a.execute("destroy", func() (any, error) {
		result, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     publicID,
			ResourceType: string(resource),
		})
		if err != nil {
			return nil, err
		}
		if result.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", errRejected, result.Error.Message)
		}
		if result.Result != "ok" {
			a.logger.Warn("Cloudinary destroy did not remove an asset",
				zap.String("public_id", publicID), zap.String("result", result.Result))
		}
		return result, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	return nil
}

func (a *cloudinaryAdapter) TransformedURL(publicID, transformation string) (string, error) {
	img, err := a.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to create cloudinary asset: %w", err)
	}
	img.Transformation = transformation
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build transformed URL: %w", err)
	}
	return url, nil
}
