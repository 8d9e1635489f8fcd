package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/polkiloo/findash/internal/domain/repository"
)

const nonceSize = 24

var errUnsealed = errors.New("session: value cannot be opened")

var _ repository.StateRepository = (*SealedRepository)(nil)

// SealedRepository encrypts values with NaCl secretbox before handing them to
// the wrapped repository. Values that fail to open read as absent.
type SealedRepository struct {
	inner  repository.StateRepository
	key    [32]byte
	logger *slog.Logger
}

// NewSealedRepository derives the box key from secret with BLAKE2b-256.
func NewSealedRepository(inner repository.StateRepository, secret string, logger *slog.Logger) *SealedRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SealedRepository{
		inner:  inner,
		key:    blake2b.Sum256([]byte(secret)),
		logger: logger,
	}
}

func (r *SealedRepository) Load(ctx context.Context, keys ...string) (map[string]string, error) {
	values, err := r.inner.Load(ctx, keys...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		plain, err := r.open(v)
		if err != nil {
			r.logger.Warn("dropping unreadable sealed value", slog.String("key", k))
			continue
		}
		out[k] = plain
	}
	return out, nil
}

func (r *SealedRepository) Save(ctx context.Context, entries map[string]string) error {
	sealed := make(map[string]string, len(entries))
	for k, v := range entries {
		s, err := r.seal(v)
		if err != nil {
			return fmt.Errorf("seal %s: %w", k, err)
		}
		sealed[k] = s
	}
	return r.inner.Save(ctx, sealed)
}

func (r *SealedRepository) Remove(ctx context.Context, keys ...string) error {
	return r.inner.Remove(ctx, keys...)
}

func (r *SealedRepository) seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &r.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (r *SealedRepository) open(value string) (string, error) {
	box, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", errUnsealed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &r.key)
	if !ok {
		return "", errUnsealed
	}
	return string(plain), nil
}
