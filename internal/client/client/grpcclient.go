package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/swappool/internal/common"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *pb.SwapServiceClient

	mu           sync.Mutex
	accessToken  string
	userID       string
	deviceSecret []byte
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func isExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if method == pb.FullMethod("StartSession") {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, s.token()), method, req, reply, cc, opts...)
	if err == nil || !isExpired(err) {
		return err
	}

	s.mu.Lock()
	secret := s.deviceSecret
	s.mu.Unlock()
	if len(secret) == 0 {
		return status.Error(codes.Unauthenticated, ErrSessionExpired.Error())
	}

	// same secret, same identity
	if _, err := s.StartSession(ctx, secret); err != nil {
		return err
	}
	return invoker(withAccessToken(ctx, s.token()), method, req, reply, cc, opts...)
}

func NewSwapClientService(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewSwapServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// StartSession opens a session. The secret is kept for silent renewal; an
// empty secret starts a one-shot anonymous identity.
func (s *GRPCClient) StartSession(ctx context.Context, deviceSecret []byte) (*pb.Session, error) {

	resp, err := s.client.StartSession(ctx, &pb.StartSessionRequest{DeviceSecret: string(deviceSecret)})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.userID = resp.UserID
	if len(deviceSecret) > 0 {
		s.deviceSecret = append([]byte(nil), deviceSecret...)
	} else {
		s.deviceSecret = nil
	}
	s.mu.Unlock()

	return resp, nil
}

func (s *GRPCClient) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) RequestUpload(ctx context.Context, kind string) (*pb.UploadSlot, error) {
	resp, err := s.client.RequestUpload(ctx, &pb.RequestUploadRequest{MediaKind: kind})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Submit(ctx context.Context, req *pb.SubmitRequest) (*pb.Content, error) {
	resp, err := s.client.Submit(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) Swap(ctx context.Context, req *pb.SwapRequest) (*pb.SwapResponse, error) {
	resp, err := s.client.Swap(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Next(ctx context.Context, filter string) (*pb.View, error) {
	resp, err := s.client.Next(ctx, &pb.NextRequest{Selection: pb.Selection{Filter: filter}})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) React(ctx context.Context, contentID string) (*pb.ReactResponse, error) {
	resp, err := s.client.React(ctx, &pb.ContentRequest{ContentID: contentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Comment(ctx context.Context, contentID, body string) (*pb.Comment, error) {
	resp, err := s.client.Comment(ctx, &pb.CommentRequest{ContentID: contentID, Body: body})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Comment, nil
}

func (s *GRPCClient) Comments(ctx context.Context, contentID string) ([]*pb.Comment, error) {
	resp, err := s.client.ListComments(ctx, &pb.ContentRequest{ContentID: contentID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Comments, nil
}

func (s *GRPCClient) Delete(ctx context.Context, contentID string) error {
	if _, err := s.client.Delete(ctx, &pb.ContentRequest{ContentID: contentID}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) SetSaveForever(ctx context.Context, contentID string, value bool) (*pb.Content, error) {
	resp, err := s.client.SetSaveForever(ctx, &pb.SetFlagRequest{ContentID: contentID, Value: value})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) UpdateCaption(ctx context.Context, contentID, caption string) (*pb.Content, error) {
	resp, err := s.client.UpdateCaption(ctx, &pb.UpdateCaptionRequest{ContentID: contentID, Caption: caption})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) UpdateNSFW(ctx context.Context, contentID string, value bool) (*pb.Content, error) {
	resp, err := s.client.UpdateNSFW(ctx, &pb.SetFlagRequest{ContentID: contentID, Value: value})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) MyUploads(ctx context.Context) (*pb.MyUploadsResponse, error) {
	resp, err := s.client.MyUploads(ctx, &pb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Liked(ctx context.Context) ([]*pb.LikedItem, error) {
	resp, err := s.client.Liked(ctx, &pb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Items, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == ErrSessionExpired.Error() {
			return ErrSessionExpired
		}
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalid, st.Message())
	case codes.FailedPrecondition:
		return ErrMediaDisabled
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
