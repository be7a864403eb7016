package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"docpilot/internal/assistant"
	"docpilot/internal/model"
)

// gdrivePrefix marks a file path as a Google Drive file ID.
const gdrivePrefix = "gdrive:"

// ingestFiles reads every attached file into a FileBlob and stores each
// blob into memory as a side effect. Reads fan out concurrently; the
// resulting slice keeps the request order. A failed read skips that file
// only, and a failed memory write is logged and ignored.
func (uc *implUseCase) ingestFiles(ctx context.Context, s assistant.State) (assistant.State, error) {
	if len(s.FilePaths) == 0 {
		return s, nil
	}

	blobs := make([]*model.FileBlob, len(s.FilePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentFileReads)
	for i, path := range s.FilePaths {
		g.Go(func() error {
			blob, err := uc.readFile(gctx, path)
			if err != nil {
				uc.l.Warnf(gctx, "ingestFiles: skipping %s: %v", path, err)
				return nil
			}
			blobs[i] = blob
			return nil
		})
	}
	_ = g.Wait() // per-file failures never abort the batch

	for _, blob := range blobs {
		if blob == nil {
			continue
		}
		s.FileContents = append(s.FileContents, *blob)

		if _, err := uc.store.Store(ctx, blob.Content, model.MemoryMetadata{
			Kind:          model.MemoryKindFile,
			SourceExcerpt: truncateRunes(blob.Name+": "+blob.Content, MaxSourceExcerptChars),
		}); err != nil {
			uc.l.Warnf(ctx, "ingestFiles: failed to store %s in memory: %v", blob.Name, err)
		}
	}

	uc.l.Infof(ctx, "ingestFiles: read %d/%d files", len(s.FileContents), len(s.FilePaths))
	return s, nil
}

// readFile resolves one path: a local file, or a Drive file via gdrive:<id>.
func (uc *implUseCase) readFile(ctx context.Context, path string) (*model.FileBlob, error) {
	if strings.HasPrefix(path, gdrivePrefix) {
		if uc.drive == nil {
			return nil, fmt.Errorf("google drive source is not configured")
		}
		file, err := uc.drive.FetchText(ctx, strings.TrimPrefix(path, gdrivePrefix))
		if err != nil {
			return nil, err
		}
		return &model.FileBlob{Name: file.Name, Content: file.Content}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &model.FileBlob{Name: filepath.Base(path), Content: string(content)}, nil
}
