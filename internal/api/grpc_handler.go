package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"catalog-browser/internal/catalog"
	"catalog-browser/internal/metrics"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully-qualified gRPC names of the catalog browser service.
const (
	CatalogServiceName   = "catalog.v1.CatalogBrowser"
	ListOwnersFullMethod = "/" + CatalogServiceName + "/ListOwners"
	GetViewFullMethod    = "/" + CatalogServiceName + "/GetView"
)

// CatalogBrowserServer is the server API of catalog.v1.CatalogBrowser.
// Messages are well-known protobuf types, so no generated code is involved:
// GetView takes a Struct with optional "owner_id" (number) and "query" (string)
// and returns the rendered view as a Struct.
type CatalogBrowserServer interface {
	ListOwners(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetView(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCatalogBrowserServer registers srv on s.
func RegisterCatalogBrowserServer(s grpc.ServiceRegistrar, srv CatalogBrowserServer) {
	s.RegisterService(&catalogBrowserServiceDesc, srv)
}

var catalogBrowserServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogBrowserServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListOwners", Handler: listOwnersHandler},
		{MethodName: "GetView", Handler: getViewHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}

func listOwnersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogBrowserServer).ListOwners(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListOwnersFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogBrowserServer).ListOwners(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getViewHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogBrowserServer).GetView(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetViewFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogBrowserServer).GetView(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCHandler implements CatalogBrowserServer over a Browser.
type GRPCHandler struct {
	browser *catalog.Browser
	metrics *metrics.Metrics
}

var _ CatalogBrowserServer = (*GRPCHandler)(nil)

// NewGRPCHandler creates a new GRPCHandler.
func NewGRPCHandler(b *catalog.Browser, m *metrics.Metrics) *GRPCHandler {
	return &GRPCHandler{browser: b, metrics: m}
}

func (s *GRPCHandler) ListOwners(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	owners := make([]interface{}, 0, len(s.browser.Owners()))
	for _, u := range s.browser.Owners() {
		owners = append(owners, map[string]interface{}{
			"id":   float64(u.ID),
			"name": u.Name,
			"sex":  string(u.Sex),
		})
	}
	out, err := structpb.NewStruct(map[string]interface{}{"owners": owners})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode owners: %v", err)
	}
	return out, nil
}

func (s *GRPCHandler) GetView(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID := catalog.NoOwner
	query := ""

	fields := req.GetFields()
	if v, ok := fields["owner_id"]; ok {
		n, isNum := v.GetKind().(*structpb.Value_NumberValue)
		if !isNum || n.NumberValue < 0 || n.NumberValue != float64(int64(n.NumberValue)) {
			return nil, status.Errorf(codes.InvalidArgument, "owner_id must be a non-negative integer")
		}
		ownerID = int64(n.NumberValue)
	}
	if v, ok := fields["query"]; ok {
		str, isStr := v.GetKind().(*structpb.Value_StringValue)
		if !isStr {
			return nil, status.Errorf(codes.InvalidArgument, "query must be a string")
		}
		query = str.StringValue
	}

	st, err := s.browser.StateFor(ownerID, query)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownOwner) {
			return nil, status.Errorf(codes.NotFound, "owner with ID %d not found", ownerID)
		}
		return nil, status.Errorf(codes.Internal, "failed to build view: %v", err)
	}

	view := s.browser.Render(st)
	s.metrics.ObserveRender(view.NoResults)

	out, err := toStruct(view)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode view: %v", err)
	}
	return out, nil
}

// toStruct converts any JSON-encodable value into a protobuf Struct.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// LoggingInterceptor logs every unary RPC with its status code and duration.
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start).Milliseconds()

		if err != nil {
			st, _ := status.FromError(err)
			slog.Warn("RPC error",
				"method", info.FullMethod,
				"code", st.Code().String(),
				"error", st.Message(),
				"duration_ms", duration,
			)
		} else {
			slog.Info("RPC ok", "method", info.FullMethod, "duration_ms", duration)
		}
		return resp, err
	}
}
