package ports

import "context"

// DraftStore persists opaque form drafts by key. Load returns
// domain.ErrNotFound when no draft exists. Save overwrites.
type DraftStore interface {
	Save(ctx context.Context, key string, payload []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
