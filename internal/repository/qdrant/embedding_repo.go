package qdrant

import (
	"context"

	"github.com/DRSN-tech/rawline/internal/cfg"
	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// EmbeddingRepo хранит текстовые эмбеддинги товаров в Qdrant. ID точки совпадает с ID товара.
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет эмбеддинги в коллекции каталога.
func (q *EmbeddingRepo) Upsert(ctx context.Context, embeddings []domain.Embedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(embeddings))
	for _, emb := range embeddings {
		if len(emb.Vector) == 0 {
			return e.Wrap(whereami.WhereAmI(), e.ErrVectorEmbeddingEmpty)
		}
		payload, err := qdrant.TryValueMap(emb.Payload)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(emb.ID),
			Vectors: qdrant.NewVectors(emb.Vector...),
			Payload: payload,
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет точки товаров из коллекции.
func (q *EmbeddingRepo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, qdrant.NewIDUUID(id))
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points:         qdrant.NewPointsSelector(pointIDs...),
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Similar возвращает ID ближайших товаров к товару id, от ближайшего к дальнему.
func (q *EmbeddingRepo) Similar(ctx context.Context, id string, limit uint64) ([]string, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Query:          qdrant.NewQueryID(qdrant.NewIDUUID(id)),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(false),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ids := make([]string, 0, len(points))
	for _, point := range points {
		if uuid := point.GetId().GetUuid(); uuid != "" && uuid != id {
			ids = append(ids, uuid)
		}
	}

	return ids, nil
}
