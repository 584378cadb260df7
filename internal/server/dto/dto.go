// Package dto converts between domain values and the wire messages shared
// by the gRPC and REST transports.
package dto

import (
	"github.com/dmitrijs2005/swappool/internal/pool"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
	"github.com/dmitrijs2005/swappool/internal/server/mirror"
	"github.com/dmitrijs2005/swappool/internal/server/swap"
)

func Content(e pool.Entry) *pb.Content {
	return &pb.Content{
		ID:               e.ID,
		OwnerID:          e.OwnerID,
		OwnerDisplayName: e.OwnerDisplayName,
		MediaURL:         e.MediaURL,
		MediaKind:        string(e.MediaKind),
		Caption:          e.Caption,
		IsNSFW:           e.IsNSFW,
		CreatedAt:        e.CreatedAt,
		ViewCount:        e.ViewCount,
		ReactionCount:    e.ReactionCount,
		CommentCount:     e.CommentCount,
		SaveForever:      e.SaveForever,
	}
}

func Contents(entries []pool.Entry) []*pb.Content {
	out := make([]*pb.Content, 0, len(entries))
	for _, e := range entries {
		out = append(out, Content(e))
	}
	return out
}

func View(v swap.View) *pb.View {
	out := &pb.View{
		Tier:         v.Tier,
		FallbackUsed: v.FallbackUsed,
		Exhausted:    v.Exhausted,
		Message:      v.Message,
	}
	if !v.Exhausted {
		out.Content = Content(v.Entry)
	}
	return out
}

func Comment(c mirror.Comment) *pb.Comment {
	return &pb.Comment{
		ID:        c.ID,
		ContentID: c.ContentID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func Liked(l mirror.LikedContent) *pb.LikedItem {
	return &pb.LikedItem{
		ContentID: l.ContentID,
		MediaURL:  l.MediaURL,
		MediaKind: l.MediaKind,
		Caption:   l.Caption,
		LikedAt:   l.LikedAt,
		Removed:   l.Removed,
	}
}

func Upload(req *pb.SubmitRequest) swap.Upload {
	return swap.Upload{
		OwnerDisplayName: req.OwnerDisplayName,
		MediaRef:         req.MediaRef,
		MediaKind:        pool.MediaKind(req.MediaKind),
		Caption:          req.Caption,
		IsNSFW:           req.IsNSFW,
	}
}

// FilterMode prefers the explicit filter, then the legacy NSFW switch.
func FilterMode(sel pb.Selection) (pool.FilterMode, error) {
	if sel.Filter != "" {
		return pool.ParseFilterMode(sel.Filter)
	}
	if sel.ShowNSFW != nil {
		return pool.FilterFromNSFW(*sel.ShowNSFW), nil
	}
	return pool.FilterSFW, nil
}

func Comments(list []mirror.Comment) []*pb.Comment {
	out := make([]*pb.Comment, 0, len(list))
	for _, c := range list {
		out = append(out, Comment(c))
	}
	return out
}

func LikedItems(list []mirror.LikedContent) []*pb.LikedItem {
	out := make([]*pb.LikedItem, 0, len(list))
	for _, l := range list {
		out = append(out, Liked(l))
	}
	return out
}

func Uploads(up swap.Uploads) *pb.MyUploadsResponse {
	return &pb.MyUploadsResponse{
		Contents: Contents(up.Entries),
		Stats: &pb.OwnerStats{
			Uploads:   up.Stats.Uploads,
			Views:     up.Stats.Views,
			Reactions: up.Stats.Reactions,
			Comments:  up.Stats.Comments,
		},
	}
}
