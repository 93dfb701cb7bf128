package prefs

import "context"

type PrefsStore interface {
	Get(ctx context.Context, userID, key string, out any) bool
	Set(ctx context.Context, userID, key string, value any) error
	Delete(ctx context.Context, userID, key string) error
}
