package client

import (
	"context"

	pb "github.com/dmitrijs2005/swappool/internal/proto"
)

// Client is the API the CLI needs.
type Client interface {
	Close() error
	StartSession(ctx context.Context, deviceSecret []byte) (*pb.Session, error)
	UserID() string
	Ping(ctx context.Context) error
	RequestUpload(ctx context.Context, kind string) (*pb.UploadSlot, error)
	Submit(ctx context.Context, req *pb.SubmitRequest) (*pb.Content, error)
	Swap(ctx context.Context, req *pb.SwapRequest) (*pb.SwapResponse, error)
	Next(ctx context.Context, filter string) (*pb.View, error)
	React(ctx context.Context, contentID string) (*pb.ReactResponse, error)
	Comment(ctx context.Context, contentID, body string) (*pb.Comment, error)
	Comments(ctx context.Context, contentID string) ([]*pb.Comment, error)
	Delete(ctx context.Context, contentID string) error
	SetSaveForever(ctx context.Context, contentID string, value bool) (*pb.Content, error)
	UpdateCaption(ctx context.Context, contentID, caption string) (*pb.Content, error)
	UpdateNSFW(ctx context.Context, contentID string, value bool) (*pb.Content, error)
	MyUploads(ctx context.Context) (*pb.MyUploadsResponse, error)
	Liked(ctx context.Context) ([]*pb.LikedItem, error)
}
