package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naijatruths892-ship-it/Naija-truths/internal/model"
	"github.com/naijatruths892-ship-it/Naija-truths/internal/repository"
)

const maxCommentLen = 2000

type CommentStore interface {
	AddComment(ctx context.Context, c *model.Comment) error
	ListByArticle(ctx context.Context, articleID string) ([]model.Comment, error)
	AddReply(ctx context.Context, r *model.Reply) error
	ListReplies(ctx context.Context, commentID string) ([]model.Reply, error)
}

type CommentHandler struct {
	store CommentStore
}

func NewCommentHandler(store CommentStore) *CommentHandler {
	return &CommentHandler{store: store}
}

type commentInput struct {
	Text string `json:"text"`
}

func (in *commentInput) validate() error {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return errors.New("text is required")
	}
	if len(text) > maxCommentLen {
		return errors.New("text is too long")
	}
	return nil
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	articleID := c.Param("id")

	comments, err := h.store.ListByArticle(c.Request.Context(), articleID)
	if err != nil {
		slog.Error("error listing comments", "error", err, "article_id", articleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		res = append(res, toCommentResponse(cm))
	}
	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to comment"})
		return
	}

	var in commentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := &model.Comment{
		ArticleID: c.Param("id"),
		AuthorRef: claims.UID,
		Text:      strings.TrimSpace(in.Text),
	}
	if err := h.store.AddComment(c.Request.Context(), comment); err != nil {
		slog.Error("error adding comment", "error", err, "article_id", comment.ArticleID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(*comment))
}

func (h *CommentHandler) GetReplies(c *gin.Context) {
	commentID := c.Param("id")

	replies, err := h.store.ListReplies(c.Request.Context(), commentID)
	if err != nil {
		slog.Error("error listing replies", "error", err, "comment_id", commentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]ReplyResponse, 0, len(replies))
	for _, r := range replies {
		res = append(res, toReplyResponse(r))
	}
	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) AddReply(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in to reply"})
		return
	}

	var in commentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := in.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := &model.Reply{
		CommentID: c.Param("id"),
		AuthorRef: claims.UID,
		Text:      strings.TrimSpace(in.Text),
	}
	err := h.store.AddReply(c.Request.Context(), reply)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if err != nil {
		slog.Error("error adding reply", "error", err, "comment_id", reply.CommentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toReplyResponse(*reply))
}
