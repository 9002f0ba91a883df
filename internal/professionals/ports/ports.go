// Package ports defines the outbound capability interfaces of the
// professionals context. Implementations live in internal/agents and
// internal/adapters.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Summarizer condenses a professional's raw profile corpus into a short
// capability summary. Implementations may be unavailable (no credentials);
// callers degrade to a sentinel summary rather than failing registration.
type Summarizer interface {
	Summarize(ctx context.Context, corpus string) (string, error)
	Available() bool
}

// SkillExtractor pulls a ranked list of skill names out of the corpus.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, corpus string) ([]string, error)
	Available() bool
}

// ScreeningEnqueuer schedules an asynchronous screening run for a
// professional. Implemented by the scheduler context.
type ScreeningEnqueuer interface {
	EnqueueScreening(ctx context.Context, professionalID uuid.UUID) error
}

// ObjectStorage stores professional credential documents and hands out
// presigned URLs so file bytes never pass through the API.
type ObjectStorage interface {
	PresignedPutURL(ctx context.Context, key, contentType string, sizeBytes int64, expiry time.Duration) (string, error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
	Enabled() bool
}
