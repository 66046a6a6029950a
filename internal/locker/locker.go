package locker

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/PilotarApp/lesson-scheduler/internal/config"
)

// Locker garante que as varreduras periódicas rodem em uma instância por
// vez. As varreduras são idempotentes; o lock só evita trabalho repetido.
type Locker struct {
	client *redis.Client
}

func New(cfg *config.Config) *Locker {
	return &Locker{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
	}
}

// Acquire tenta tomar o lock nomeado com TTL. Retorna false quando outra
// instância já o detém.
func (l *Locker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, "lock:"+name, "1", ttl).Result()
}

func (l *Locker) Release(ctx context.Context, name string) error {
	return l.client.Del(ctx, "lock:"+name).Err()
}
