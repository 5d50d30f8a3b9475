package dto

import (
	"time"

	commentssvc "github.com/linkup-app/backend/internal/services/comments"
	likessvc "github.com/linkup-app/backend/internal/services/likes"
	postssvc "github.com/linkup-app/backend/internal/services/posts"
)

type AuthorResponse struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}

type MediaResponse struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type PostResponse struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Media     []MediaResponse `json:"media"`
	Author    AuthorResponse  `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type FeedItemResponse struct {
	ID        string          `json:"id"`
	Text      string          `json:"text"`
	Media     []MediaResponse `json:"media"`
	Comments  int             `json:"comments"`
	Likes     int             `json:"likes"`
	IsLiked   bool            `json:"isLiked"`
	Author    AuthorResponse  `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type FeedPageResponse struct {
	Status     string             `json:"status"`
	Data       []FeedItemResponse `json:"data"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
	Count      int                `json:"count"`
}

type CreatedPostResponse struct {
	Status string       `json:"status"`
	Post   PostResponse `json:"post"`
}

type CommentResponse struct {
	ID        string         `json:"id"`
	PostID    string         `json:"postId"`
	Text      string         `json:"text"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CommentPageResponse struct {
	Status     string            `json:"status"`
	Data       []CommentResponse `json:"data"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Count      int               `json:"count"`
}

type LikeResponse struct {
	ID        string         `json:"id"`
	PostID    string         `json:"postId"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
}

type LikePageResponse struct {
	Status     string         `json:"status"`
	Data       []LikeResponse `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Count      int            `json:"count"`
}

func MapPost(p postssvc.PostRecord) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Text:      p.Text,
		Media:     mapMedia(p.Media),
		Author:    AuthorResponse(p.Author),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func MapFeedItem(item postssvc.FeedItem) FeedItemResponse {
	return FeedItemResponse{
		ID:        item.ID,
		Text:      item.Text,
		Media:     mapMedia(item.Media),
		Comments:  item.Comments,
		Likes:     item.Likes,
		IsLiked:   item.IsLiked,
		Author:    AuthorResponse(item.Author),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func MapComment(c commentssvc.CommentRecord) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Text:      c.Text,
		Author:    AuthorResponse(c.Author),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func MapLike(l likessvc.LikeRecord) LikeResponse {
	return LikeResponse{
		ID:        l.ID,
		PostID:    l.PostID,
		Author:    AuthorResponse(l.Author),
		CreatedAt: l.CreatedAt,
	}
}

func mapMedia(media []postssvc.MediaRecord) []MediaResponse {
	out := make([]MediaResponse, 0, len(media))
	for _, m := range media {
		out = append(out, MediaResponse(m))
	}
	return out
}
