package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
)

type UploadService struct {
	client *api.Client
	cache  *query.Cache
	config Config
}

func NewUploadService(client *api.Client, cache *query.Cache, cfg Config) *UploadService {
	return &UploadService{client: client, cache: cache, config: cfg}
}

// Send uploads the batch file at path for gateway.
func (us *UploadService) Send(ctx context.Context, path string, gateway model.Gateway) (*model.UploadSession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can not open %s: %w", path, err)
	}
	defer f.Close()

	return query.Mutate(ctx, us.cache, query.MutationUpload, func(ctx context.Context) (*model.UploadSession, error) {
		return us.client.Upload(ctx, filepath.Base(path), f, gateway)
	})
}

func (us *UploadService) List(ctx context.Context, q api.UploadQuery) (*model.UploadPage, error) {
	if q.Limit <= 0 {
		q.Limit = us.config.PageSize
	}
	key := query.NewKey(query.ResourceUploads, q.Params())
	return query.Fetch(ctx, us.cache, key, func(ctx context.Context) (*model.UploadPage, error) {
		return us.client.ListUploads(ctx, q)
	})
}

// Search backs the interactive picker: one page of sessions whose file name
// matches term.
func (us *UploadService) Search(ctx context.Context, term string) ([]model.UploadSession, error) {
	page, err := us.List(ctx, api.UploadQuery{Page: 1, Search: term})
	if err != nil {
		return nil, err
	}
	return page.Sessions, nil
}

// Status reads the session straight from the server.
func (us *UploadService) Status(ctx context.Context, uploadID string) (*model.UploadSession, error) {
	q := api.UploadQuery{Page: 1, Limit: 1, UploadID: uploadID}
	key := query.NewKey(query.ResourceUploads, q.Params())
	page, err := query.Refetch(ctx, us.cache, key, func(ctx context.Context) (*model.UploadPage, error) {
		return us.client.ListUploads(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	for i := range page.Sessions {
		if page.Sessions[i].UploadID == uploadID {
			return &page.Sessions[i], nil
		}
	}
	return nil, ErrUploadNotFound
}

// Watch polls the session until processing finishes, calling progress after
// every poll. The last session seen is returned.
func (us *UploadService) Watch(ctx context.Context, uploadID string, progress func(model.UploadSession)) (*model.UploadSession, error) {
	ticker := time.NewTicker(us.config.PollInterval)
	defer ticker.Stop()

	for {
		session, err := us.Status(ctx, uploadID)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			progress(*session)
		}
		if session.Status.Terminal() {
			if session.Status == model.UploadCompleted {
				if err := us.cache.Invalidate(ctx, query.MutationUpload); err != nil {
					return session, err
				}
			}
			return session, nil
		}

		select {
		case <-ctx.Done():
			return session, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Retry resumes a failed session past its bad row.
func (us *UploadService) Retry(ctx context.Context, uploadID string) (*model.UploadSession, error) {
	return query.Mutate(ctx, us.cache, query.MutationRetryUpload, func(ctx context.Context) (*model.UploadSession, error) {
		return us.client.ResumeUpload(ctx, uploadID)
	})
}

func (us *UploadService) Delete(ctx context.Context, uploadID string) (string, error) {
	return query.Mutate(ctx, us.cache, query.MutationDeleteUpload, func(ctx context.Context) (string, error) {
		return us.client.DeleteUpload(ctx, uploadID)
	})
}

// Download writes the original file to w and returns its server-side name.
func (us *UploadService) Download(ctx context.Context, uploadID string, w io.Writer) (string, error) {
	return us.client.DownloadFile(ctx, uploadID, w)
}
