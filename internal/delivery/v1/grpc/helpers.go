package grpc

import (
	"errors"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return status.Error(codes.NotFound, e.ErrProductNotFound.Error())
	case errors.Is(err, e.ErrStatusBadRequest):
		return status.Error(codes.InvalidArgument, e.ErrStatusBadRequest.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// toGRPCProduct кодирует товар в structpb.Struct. Цена передаётся строкой, чтобы не терять точность.
func toGRPCProduct(pr *domain.Product) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":          pr.ID,
		"title":       pr.Title,
		"handle":      pr.Handle,
		"price":       pr.Price.StringFixed(2),
		"description": pr.Description,
		"fabric":      pr.Fabric,
		"fit":         pr.Fit,
		"care":        pr.Care,
		"images":      toAnySlice(pr.Images),
		"sizes":       toAnySlice(pr.Sizes),
	})
}

func toArrGRPCProduct(prs []domain.Product) (*structpb.ListValue, error) {
	res := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(prs))}
	for i := range prs {
		s, err := toGRPCProduct(&prs[i])
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, structpb.NewStructValue(s))
	}
	return res, nil
}

func toAnySlice(values []string) []any {
	res := make([]any, len(values))
	for i, v := range values {
		res[i] = v
	}
	return res
}
