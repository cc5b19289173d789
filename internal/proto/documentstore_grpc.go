// Package proto declares the StudentHub document store gRPC service.
//
// Messages are protobuf well-known types: requests and responses are
// google.protobuf.Struct (fields named by the Field* constants) or
// google.protobuf.Empty, so no generated code is needed on either side.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const DocumentStore_ServiceName = "studenthub.v1.DocumentStore"

const (
	DocumentStore_Register_FullMethodName        = "/studenthub.v1.DocumentStore/Register"
	DocumentStore_GetSalt_FullMethodName         = "/studenthub.v1.DocumentStore/GetSalt"
	DocumentStore_Login_FullMethodName           = "/studenthub.v1.DocumentStore/Login"
	DocumentStore_RefreshToken_FullMethodName    = "/studenthub.v1.DocumentStore/RefreshToken"
	DocumentStore_Ping_FullMethodName            = "/studenthub.v1.DocumentStore/Ping"
	DocumentStore_Save_FullMethodName            = "/studenthub.v1.DocumentStore/Save"
	DocumentStore_Delete_FullMethodName          = "/studenthub.v1.DocumentStore/Delete"
	DocumentStore_FetchAll_FullMethodName        = "/studenthub.v1.DocumentStore/FetchAll"
	DocumentStore_PresignSnapshot_FullMethodName = "/studenthub.v1.DocumentStore/PresignSnapshot"
)

// DocumentStoreClient is the client API for the DocumentStore service.
type DocumentStoreClient interface {
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetSalt(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Save(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	FetchAll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	PresignSnapshot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type documentStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentStoreClient(cc grpc.ClientConnInterface) DocumentStoreClient {
	return &documentStoreClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, DocumentStore_Register_FullMethodName, in, opts)
}

func (c *documentStoreClient) GetSalt(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, DocumentStore_GetSalt_FullMethodName, in, opts)
}

func (c *documentStoreClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, DocumentStore_Login_FullMethodName, in, opts)
}

func (c *documentStoreClient) RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, DocumentStore_RefreshToken_FullMethodName, in, opts)
}

func (c *documentStoreClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, DocumentStore_Ping_FullMethodName, in, opts)
}

func (c *documentStoreClient) Save(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, DocumentStore_Save_FullMethodName, in, opts)
}

func (c *documentStoreClient) Delete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, DocumentStore_Delete_FullMethodName, in, opts)
}

func (c *documentStoreClient) FetchAll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, DocumentStore_FetchAll_FullMethodName, in, opts)
}

func (c *documentStoreClient) PresignSnapshot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, DocumentStore_PresignSnapshot_FullMethodName, in, opts)
}

// DocumentStoreServer is the server API for the DocumentStore service.
type DocumentStoreServer interface {
	Register(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetSalt(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Save(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Delete(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	FetchAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PresignSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedDocumentStoreServer can be embedded to get Unimplemented
// answers for methods a server does not provide.
type UnimplementedDocumentStoreServer struct{}

func (UnimplementedDocumentStoreServer) Register(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedDocumentStoreServer) GetSalt(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedDocumentStoreServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedDocumentStoreServer) RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedDocumentStoreServer) Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedDocumentStoreServer) Save(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Save not implemented")
}
func (UnimplementedDocumentStoreServer) Delete(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedDocumentStoreServer) FetchAll(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method FetchAll not implemented")
}
func (UnimplementedDocumentStoreServer) PresignSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method PresignSnapshot not implemented")
}

func RegisterDocumentStoreServer(s grpc.ServiceRegistrar, srv DocumentStoreServer) {
	s.RegisterService(&DocumentStore_ServiceDesc, srv)
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req any](method string, call func(DocumentStoreServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(DocumentStoreServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DocumentStore_ServiceDesc is the grpc.ServiceDesc for the DocumentStore service.
var DocumentStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DocumentStore_ServiceName,
	HandlerType: (*DocumentStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unary(DocumentStore_Register_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Register(ctx, in)
			}),
		},
		{
			MethodName: "GetSalt",
			Handler: unary(DocumentStore_GetSalt_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.GetSalt(ctx, in)
			}),
		},
		{
			MethodName: "Login",
			Handler: unary(DocumentStore_Login_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Login(ctx, in)
			}),
		},
		{
			MethodName: "RefreshToken",
			Handler: unary(DocumentStore_RefreshToken_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.RefreshToken(ctx, in)
			}),
		},
		{
			MethodName: "Ping",
			Handler: unary(DocumentStore_Ping_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Ping(ctx, in)
			}),
		},
		{
			MethodName: "Save",
			Handler: unary(DocumentStore_Save_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Save(ctx, in)
			}),
		},
		{
			MethodName: "Delete",
			Handler: unary(DocumentStore_Delete_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Delete(ctx, in)
			}),
		},
		{
			MethodName: "FetchAll",
			Handler: unary(DocumentStore_FetchAll_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.FetchAll(ctx, in)
			}),
		},
		{
			MethodName: "PresignSnapshot",
			Handler: unary(DocumentStore_PresignSnapshot_FullMethodName, func(s DocumentStoreServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.PresignSnapshot(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "studenthub/v1/documentstore.proto",
}
