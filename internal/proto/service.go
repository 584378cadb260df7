package proto

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "swappool.v1.SwapService"

// FullMethod returns the gRPC method path for name.
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

// SwapServiceServer is implemented by the gRPC transport of the server.
type SwapServiceServer interface {
	StartSession(context.Context, *StartSessionRequest) (*Session, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RequestUpload(context.Context, *RequestUploadRequest) (*UploadSlot, error)
	Submit(context.Context, *SubmitRequest) (*ContentResponse, error)
	Swap(context.Context, *SwapRequest) (*SwapResponse, error)
	Next(context.Context, *NextRequest) (*View, error)
	React(context.Context, *ContentRequest) (*ReactResponse, error)
	Comment(context.Context, *CommentRequest) (*CommentResponse, error)
	ListComments(context.Context, *ContentRequest) (*ListCommentsResponse, error)
	Delete(context.Context, *ContentRequest) (*Empty, error)
	SetSaveForever(context.Context, *SetFlagRequest) (*ContentResponse, error)
	UpdateCaption(context.Context, *UpdateCaptionRequest) (*ContentResponse, error)
	UpdateNSFW(context.Context, *SetFlagRequest) (*ContentResponse, error)
	MyUploads(context.Context, *Empty) (*MyUploadsResponse, error)
	Liked(context.Context, *Empty) (*LikedResponse, error)
}

func unary[Req, Resp any](name string, call func(SwapServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SwapServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SwapServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// SwapServiceDesc describes swappool.v1.SwapService for grpc.Server.
var SwapServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SwapServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("StartSession", SwapServiceServer.StartSession),
		unary("Ping", SwapServiceServer.Ping),
		unary("RequestUpload", SwapServiceServer.RequestUpload),
		unary("Submit", SwapServiceServer.Submit),
		unary("Swap", SwapServiceServer.Swap),
		unary("Next", SwapServiceServer.Next),
		unary("React", SwapServiceServer.React),
		unary("Comment", SwapServiceServer.Comment),
		unary("ListComments", SwapServiceServer.ListComments),
		unary("Delete", SwapServiceServer.Delete),
		unary("SetSaveForever", SwapServiceServer.SetSaveForever),
		unary("UpdateCaption", SwapServiceServer.UpdateCaption),
		unary("UpdateNSFW", SwapServiceServer.UpdateNSFW),
		unary("MyUploads", SwapServiceServer.MyUploads),
		unary("Liked", SwapServiceServer.Liked),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "swappool/v1/swap.proto",
}

func RegisterSwapServiceServer(s grpc.ServiceRegistrar, srv SwapServiceServer) {
	s.RegisterService(&SwapServiceDesc, srv)
}

// SwapServiceClient is the client API for swappool.v1.SwapService. Every
// call is sent with the JSON content subtype.
type SwapServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSwapServiceClient(cc grpc.ClientConnInterface) *SwapServiceClient {
	return &SwapServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SwapServiceClient) StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[Session](ctx, c.cc, "StartSession", in, opts)
}

func (c *SwapServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *SwapServiceClient) RequestUpload(ctx context.Context, in *RequestUploadRequest, opts ...grpc.CallOption) (*UploadSlot, error) {
	return invoke[UploadSlot](ctx, c.cc, "RequestUpload", in, opts)
}

func (c *SwapServiceClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*ContentResponse, error) {
	return invoke[ContentResponse](ctx, c.cc, "Submit", in, opts)
}

func (c *SwapServiceClient) Swap(ctx context.Context, in *SwapRequest, opts ...grpc.CallOption) (*SwapResponse, error) {
	return invoke[SwapResponse](ctx, c.cc, "Swap", in, opts)
}

func (c *SwapServiceClient) Next(ctx context.Context, in *NextRequest, opts ...grpc.CallOption) (*View, error) {
	return invoke[View](ctx, c.cc, "Next", in, opts)
}

func (c *SwapServiceClient) React(ctx context.Context, in *ContentRequest, opts ...grpc.CallOption) (*ReactResponse, error) {
	return invoke[ReactResponse](ctx, c.cc, "React", in, opts)
}

func (c *SwapServiceClient) Comment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return invoke[CommentResponse](ctx, c.cc, "Comment", in, opts)
}

func (c *SwapServiceClient) ListComments(ctx context.Context, in *ContentRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error) {
	return invoke[ListCommentsResponse](ctx, c.cc, "ListComments", in, opts)
}

func (c *SwapServiceClient) Delete(ctx context.Context, in *ContentRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "Delete", in, opts)
}

func (c *SwapServiceClient) SetSaveForever(ctx context.Context, in *SetFlagRequest, opts ...grpc.CallOption) (*ContentResponse, error) {
	return invoke[ContentResponse](ctx, c.cc, "SetSaveForever", in, opts)
}

func (c *SwapServiceClient) UpdateCaption(ctx context.Context, in *UpdateCaptionRequest, opts ...grpc.CallOption) (*ContentResponse, error) {
	return invoke[ContentResponse](ctx, c.cc, "UpdateCaption", in, opts)
}

func (c *SwapServiceClient) UpdateNSFW(ctx context.Context, in *SetFlagRequest, opts ...grpc.CallOption) (*ContentResponse, error) {
	return invoke[ContentResponse](ctx, c.cc, "UpdateNSFW", in, opts)
}

func (c *SwapServiceClient) MyUploads(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*MyUploadsResponse, error) {
	return invoke[MyUploadsResponse](ctx, c.cc, "MyUploads", in, opts)
}

func (c *SwapServiceClient) Liked(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*LikedResponse, error) {
	return invoke[LikedResponse](ctx, c.cc, "Liked", in, opts)
}
