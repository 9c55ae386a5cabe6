package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// CommentHandler serves comment routes.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	Content string `json:"content" validate:"notblank"`
}

func (commentRequest) validationMessage(validator.FieldError) string {
	return domain.MsgCommentContentRequired
}

type commentResponse struct {
	Message string          `json:"message"`
	Comment *domain.Comment `json:"comment"`
}

// ListByArticle returns the comments of an article, oldest first.
//
// @Summary      List comments of an article
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {array}   domain.Comment
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /articles/{id}/comments [get]
func (h *CommentHandler) ListByArticle(c echo.Context) error {
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.service.ListByArticle(c.Request().Context(), articleID)
	if err != nil {
		return internalError(err, "Erreur lors de la récupération des commentaires")
	}
	return c.JSON(http.StatusOK, comments)
}

// Get returns one comment.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  domain.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return internalError(err, "Erreur lors de la récupération du commentaire")
	}
	return c.JSON(http.StatusOK, comment)
}

// Create adds a comment to an article on behalf of the requester.
//
// @Summary      Comment an article
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int             true   "Article ID"
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      commentRequest  true   "Comment"
// @Success      201              {object}  commentResponse
// @Success      200              {object}  commentResponse  "Idempotent replay"
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /articles/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	articleID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), who, ports.CreateCommentInput{
		ArticleID:      articleID,
		Content:        req.Content,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return internalError(err, "Erreur lors de la création du commentaire")
	}

	status := http.StatusCreated
	if res.Replayed {
		metrics.IdempotentReplaysTotal.WithLabelValues("comment").Inc()
		c.Response().Header().Set(HeaderIdempotentReplay, "true")
		status = http.StatusOK
	}
	return c.JSON(status, commentResponse{Message: "Commentaire ajouté à l'article", Comment: &res.Comment})
}

// Delete removes a comment. Author or admin only.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), who, id); err != nil {
		return internalError(err, "Erreur lors de la suppression du commentaire")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Commentaire supprimé avec succès"})
}
