package redis

import (
	"context"
	"time"

	"github.com/DRSN-tech/rawline/pkg/clients"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/jimlawless/whereami"
)

// AdminSessionRepo хранит выданные токены админки до истечения TTL.
type AdminSessionRepo struct {
	client *clients.RedisClient
}

func NewAdminSessionRepo(client *clients.RedisClient) *AdminSessionRepo {
	return &AdminSessionRepo{client: client}
}

func (s *AdminSessionRepo) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Client.Set(ctx, adminSessionKey(token), time.Now().UTC().Unix(), ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (s *AdminSessionRepo) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Client.Exists(ctx, adminSessionKey(token)).Result()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}
	return n == 1, nil
}

func (s *AdminSessionRepo) Delete(ctx context.Context, token string) error {
	if err := s.client.Client.Del(ctx, adminSessionKey(token)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
