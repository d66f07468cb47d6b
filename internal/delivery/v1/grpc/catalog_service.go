package grpc

import (
	"context"
	"strings"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	CatalogServiceName            = "rawline.catalog.v1.CatalogService"
	listProductsMethod            = "ListProducts"
	getProductByHandleMethod      = "GetProductByHandle"
	CatalogListProductsFullMethod = "/" + CatalogServiceName + "/" + listProductsMethod
	CatalogGetProductFullMethod   = "/" + CatalogServiceName + "/" + getProductByHandleMethod
)

// CatalogServiceServer — read-only API каталога поверх well-known типов protobuf.
type CatalogServiceServer interface {
	ListProducts(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	GetProductByHandle(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: listProductsMethod, Handler: listProductsHandler},
		{MethodName: getProductByHandleMethod, Handler: getProductByHandleHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rawline/catalog/v1/catalog.proto",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

func listProductsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CatalogListProductsFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ListProducts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getProductByHandleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetProductByHandle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CatalogGetProductFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetProductByHandle(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogServiceClient — клиент к CatalogService.
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogListProductsFullMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) GetProductByHandle(ctx context.Context, handle string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CatalogGetProductFullMethod, wrapperspb.String(handle), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type CatalogService struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogService(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogService {
	return &CatalogService{catalogUC: catalogUC, logger: logger}
}

func (g *CatalogService) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	const op = "grpc.ListProducts"

	products, err := toArrGRPCProduct(g.catalogUC.ListProducts(ctx))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"products": structpb.NewListValue(products),
	}}, nil
}

func (g *CatalogService) GetProductByHandle(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.GetProductByHandle"

	if strings.TrimSpace(req.GetValue()) == "" {
		return nil, GRPCErrorResponse(e.Wrap(op, e.ErrStatusBadRequest))
	}

	product, err := g.catalogUC.GetProductByHandle(ctx, req.GetValue())
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := toGRPCProduct(product)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}
	return res, nil
}
