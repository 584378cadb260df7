package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/dmitrijs2005/swappool/internal/pool"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
	"github.com/dmitrijs2005/swappool/internal/server/dto"
	"github.com/go-chi/chi/v5"
)

func contentID(r *http.Request) string { return chi.URLParam(r, "contentID") }

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req pb.StartSessionRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	session, err := s.sessions.Start([]byte(req.DeviceSecret))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Session started", "user_id", session.UserID, "anonymous", req.DeviceSecret == "")
	respondJSON(w, http.StatusCreated, pb.Session{UserID: session.UserID, AccessToken: session.AccessToken, ExpiresAt: session.ExpiresAt})
}

func (s *Server) requestUpload(w http.ResponseWriter, r *http.Request) {
	var req pb.RequestUploadRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	up, err := s.swap.RequestUpload(r.Context(), userID(r.Context()), pool.MediaKind(req.MediaKind))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, pb.UploadSlot{Ref: up.Ref, URL: up.URL, ContentType: up.ContentType, ExpiresAt: up.ExpiresAt})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var req pb.SubmitRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	e, err := s.swap.Submit(r.Context(), userID(r.Context()), dto.Upload(&req))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, pb.ContentResponse{Content: dto.Content(e)})
}

func (s *Server) swapContent(w http.ResponseWriter, r *http.Request) {
	var req pb.SwapRequest
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}
	mode, err := dto.FilterMode(req.Selection)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	res, err := s.swap.Swap(r.Context(), userID(r.Context()), dto.Upload(&req.SubmitRequest), mode)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, pb.SwapResponse{Submitted: dto.Content(res.Submitted), Received: dto.View(res.Received)})
}

// next reads the filter from ?filter= or the legacy ?show_nsfw=.
func (s *Server) next(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := pb.Selection{Filter: q.Get("filter")}
	if raw := q.Get("show_nsfw"); raw != "" {
		show, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, common.ErrorValidation.Error()+": show_nsfw must be a boolean")
			return
		}
		sel.ShowNSFW = &show
	}

	mode, err := dto.FilterMode(sel)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}

	v, err := s.swap.Next(r.Context(), userID(r.Context()), mode)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.View(v))
}

func (s *Server) react(w http.ResponseWriter, r *http.Request) {
	res, err := s.swap.React(r.Context(), contentID(r), userID(r.Context()))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pb.ReactResponse{Content: dto.Content(res.Entry), Counted: res.Counted})
}

func (s *Server) comment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body" validate:"required"`
	}
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	c, err := s.swap.Comment(r.Context(), contentID(r), userID(r.Context()), req.Body)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, pb.CommentResponse{Comment: dto.Comment(c)})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	list, err := s.swap.Comments(r.Context(), contentID(r))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pb.ListCommentsResponse{Comments: dto.Comments(list)})
}

func (s *Server) deleteContent(w http.ResponseWriter, r *http.Request) {
	if err := s.swap.Delete(r.Context(), contentID(r), userID(r.Context())); err != nil {
		s.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type flagBody struct {
	Value *bool `json:"value" validate:"required"`
}

func (s *Server) setSaveForever(w http.ResponseWriter, r *http.Request) {
	var req flagBody
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	e, err := s.swap.SetSaveForever(r.Context(), contentID(r), userID(r.Context()), *req.Value)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pb.ContentResponse{Content: dto.Content(e)})
}

func (s *Server) updateNSFW(w http.ResponseWriter, r *http.Request) {
	var req flagBody
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	e, err := s.swap.UpdateNSFW(r.Context(), contentID(r), userID(r.Context()), *req.Value)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pb.ContentResponse{Content: dto.Content(e)})
}

func (s *Server) updateCaption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caption string `json:"caption"`
	}
	if err := s.decode(r, &req); err != nil {
		s.respondErr(w, r, err)
		return
	}

	e, err := s.swap.UpdateCaption(r.Context(), contentID(r), userID(r.Context()), req.Caption)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pb.ContentResponse{Content: dto.Content(e)})
}

func (s *Server) myUploads(w http.ResponseWriter, r *http.Request) {
	up, err := s.swap.MyUploads(r.Context(), userID(r.Context()))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.Uploads(up))
}

func (s *Server) liked(w http.ResponseWriter, r *http.Request) {
	list, err := s.swap.Liked(r.Context(), userID(r.Context()))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pb.LikedResponse{Items: dto.LikedItems(list)})
}
