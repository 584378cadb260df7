// Package grpc serves swappool.v1.SwapService and the standard gRPC
// health service.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/pool"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
	"github.com/dmitrijs2005/swappool/internal/server/auth"
	"github.com/dmitrijs2005/swappool/internal/server/media"
	"github.com/dmitrijs2005/swappool/internal/server/mirror"
	"github.com/dmitrijs2005/swappool/internal/server/swap"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SwapService is implemented by *swap.Service.
type SwapService interface {
	RequestUpload(ctx context.Context, ownerID string, kind pool.MediaKind) (media.Upload, error)
	Submit(ctx context.Context, ownerID string, up swap.Upload) (pool.Entry, error)
	Swap(ctx context.Context, ownerID string, up swap.Upload, mode pool.FilterMode) (swap.SwapResult, error)
	Next(ctx context.Context, viewerID string, mode pool.FilterMode) (swap.View, error)
	React(ctx context.Context, id, viewerID string) (swap.Reaction, error)
	Comment(ctx context.Context, id, authorID, body string) (mirror.Comment, error)
	Comments(ctx context.Context, id string) ([]mirror.Comment, error)
	Delete(ctx context.Context, id, callerID string) error
	SetSaveForever(ctx context.Context, id, callerID string, value bool) (pool.Entry, error)
	UpdateCaption(ctx context.Context, id, callerID, caption string) (pool.Entry, error)
	UpdateNSFW(ctx context.Context, id, callerID string, value bool) (pool.Entry, error)
	MyUploads(ctx context.Context, ownerID string) (swap.Uploads, error)
	Liked(ctx context.Context, viewerID string) ([]mirror.LikedContent, error)
}

// Sessions is implemented by *auth.Issuer.
type Sessions interface {
	Start(deviceSecret []byte) (auth.Session, error)
	Verify(token string) (string, error)
}

// RPCObserver records finished calls. Optional.
type RPCObserver interface {
	ObserveRPC(method, code string)
}

type GRPCServer struct {
	address  string
	swap     SwapService
	sessions Sessions
	observer RPCObserver
	logger   logging.Logger
	health   *health.Server
	validate *validator.Validate
	now      func() time.Time
}

func NewGRPCServer(address string, l logging.Logger, svc SwapService, sessions Sessions, obs RPCObserver) *GRPCServer {
	return &GRPCServer{
		address:  address,
		swap:     svc,
		sessions: sessions,
		observer: obs,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.observeInterceptor, s.accessTokenInterceptor))
	pb.RegisterSwapServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then drains
// in-flight calls.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
