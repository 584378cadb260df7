package grpc

import (
	"context"

	"github.com/dmitrijs2005/swappool/internal/pool"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
	"github.com/dmitrijs2005/swappool/internal/server/dto"
)

func (s *GRPCServer) StartSession(ctx context.Context, req *pb.StartSessionRequest) (*pb.Session, error) {

	session, err := s.sessions.Start([]byte(req.DeviceSecret))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Session started", "user_id", session.UserID, "anonymous", req.DeviceSecret == "")
	return &pb.Session{UserID: session.UserID, AccessToken: session.AccessToken, ExpiresAt: session.ExpiresAt}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK", Time: s.now().UTC()}, nil
}

func (s *GRPCServer) RequestUpload(ctx context.Context, req *pb.RequestUploadRequest) (*pb.UploadSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	up, err := s.swap.RequestUpload(ctx, UserIDFromContext(ctx), pool.MediaKind(req.MediaKind))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.UploadSlot{Ref: up.Ref, URL: up.URL, ContentType: up.ContentType, ExpiresAt: up.ExpiresAt}, nil
}

func (s *GRPCServer) Submit(ctx context.Context, req *pb.SubmitRequest) (*pb.ContentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	e, err := s.swap.Submit(ctx, UserIDFromContext(ctx), dto.Upload(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ContentResponse{Content: dto.Content(e)}, nil
}

func (s *GRPCServer) Swap(ctx context.Context, req *pb.SwapRequest) (*pb.SwapResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	mode, err := dto.FilterMode(req.Selection)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	res, err := s.swap.Swap(ctx, UserIDFromContext(ctx), dto.Upload(&req.SubmitRequest), mode)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.SwapResponse{Submitted: dto.Content(res.Submitted), Received: dto.View(res.Received)}, nil
}

func (s *GRPCServer) Next(ctx context.Context, req *pb.NextRequest) (*pb.View, error) {
	mode, err := dto.FilterMode(req.Selection)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	v, err := s.swap.Next(ctx, UserIDFromContext(ctx), mode)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return dto.View(v), nil
}

func (s *GRPCServer) React(ctx context.Context, req *pb.ContentRequest) (*pb.ReactResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	r, err := s.swap.React(ctx, req.ContentID, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ReactResponse{Content: dto.Content(r.Entry), Counted: r.Counted}, nil
}

func (s *GRPCServer) Comment(ctx context.Context, req *pb.CommentRequest) (*pb.CommentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	c, err := s.swap.Comment(ctx, req.ContentID, UserIDFromContext(ctx), req.Body)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.CommentResponse{Comment: dto.Comment(c)}, nil
}

func (s *GRPCServer) ListComments(ctx context.Context, req *pb.ContentRequest) (*pb.ListCommentsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	list, err := s.swap.Comments(ctx, req.ContentID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.ListCommentsResponse{Comments: dto.Comments(list)}, nil
}

func (s *GRPCServer) Delete(ctx context.Context, req *pb.ContentRequest) (*pb.Empty, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.swap.Delete(ctx, req.ContentID, UserIDFromContext(ctx)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) SetSaveForever(ctx context.Context, req *pb.SetFlagRequest) (*pb.ContentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	e, err := s.swap.SetSaveForever(ctx, req.ContentID, UserIDFromContext(ctx), req.Value)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ContentResponse{Content: dto.Content(e)}, nil
}

func (s *GRPCServer) UpdateCaption(ctx context.Context, req *pb.UpdateCaptionRequest) (*pb.ContentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	e, err := s.swap.UpdateCaption(ctx, req.ContentID, UserIDFromContext(ctx), req.Caption)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ContentResponse{Content: dto.Content(e)}, nil
}

func (s *GRPCServer) UpdateNSFW(ctx context.Context, req *pb.SetFlagRequest) (*pb.ContentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	e, err := s.swap.UpdateNSFW(ctx, req.ContentID, UserIDFromContext(ctx), req.Value)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ContentResponse{Content: dto.Content(e)}, nil
}

func (s *GRPCServer) MyUploads(ctx context.Context, req *pb.Empty) (*pb.MyUploadsResponse, error) {

	up, err := s.swap.MyUploads(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return dto.Uploads(up), nil
}

func (s *GRPCServer) Liked(ctx context.Context, req *pb.Empty) (*pb.LikedResponse, error) {

	list, err := s.swap.Liked(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.LikedResponse{Items: dto.LikedItems(list)}, nil
}
