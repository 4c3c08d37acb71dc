package handler

import (
	"time"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
)

// DateUnavailable is rendered when an article carries no usable
// creation timestamp. A missing date never fails a page.
const DateUnavailable = "Date Unavailable"

type ArticleResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Writer       string `json:"writer"`
	Summary      string `json:"summary"`
	Content      string `json:"content"`
	ImageURL     string `json:"image_url"`
	VideoURL     string `json:"video_url,omitempty"`
	Category     string `json:"category"`
	BreakingNews bool   `json:"breaking_news"`
	Verified     bool   `json:"verified"`
	Likes        int64  `json:"likes"`
	Views        int64  `json:"views"`
	PublishedAt  string `json:"published_at"`
}

type FeedResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor,omitempty"`
	// Empty is true only when the first page of a feed has no items
	// at all, so clients can show a "no stories yet" state instead of
	// just hiding the load-more control.
	Empty bool `json:"empty"`
}

type SearchResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	ArticleID string `json:"article_id"`
	AuthorRef string `json:"author_ref"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type ReplyResponse struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
	AuthorRef string `json:"author_ref"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type SessionResponse struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

type ClaimsResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

type SuggestSummaryResponse struct {
	Summary   string `json:"summary"`
	ModelUsed string `json:"model_used"`
}

func formatPublishedAt(t time.Time) string {
	if t.IsZero() {
		return DateUnavailable
	}
	return t.Format(time.RFC3339)
}

func toArticleResponse(a model.Article) ArticleResponse {
	return ArticleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Writer:       a.Writer,
		Summary:      a.Summary,
		Content:      a.Content,
		ImageURL:     a.ImageURL,
		VideoURL:     a.VideoURL,
		Category:     a.Category,
		BreakingNews: a.BreakingNews,
		Verified:     a.Verified,
		Likes:        a.Likes,
		Views:        a.Views,
		PublishedAt:  formatPublishedAt(a.CreatedAt),
	}
}

func toArticleResponses(articles []model.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}

func toCommentResponse(c model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		AuthorRef: c.AuthorRef,
		Text:      c.Text,
		CreatedAt: formatPublishedAt(c.CreatedAt),
	}
}

func toReplyResponse(r model.Reply) ReplyResponse {
	return ReplyResponse{
		ID:        r.ID,
		CommentID: r.CommentID,
		AuthorRef: r.AuthorRef,
		Text:      r.Text,
		CreatedAt: formatPublishedAt(r.CreatedAt),
	}
}
