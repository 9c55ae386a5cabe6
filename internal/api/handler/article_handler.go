package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// ArticleHandler serves /articles.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type articleRequest struct {
	Title   string `json:"title"   validate:"notblank,max=255"`
	Content string `json:"content" validate:"notblank"`
}

func (articleRequest) validationMessage(fe validator.FieldError) string {
	if fe.Tag() == "max" {
		return domain.MsgTitleTooLong
	}
	return domain.MsgArticleFieldsRequired
}

type articleResponse struct {
	Message string          `json:"message"`
	Article *domain.Article `json:"article"`
}

// List returns every article, newest first.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}   domain.Article
// @Failure      500  {object}  map[string]string
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.List(c.Request().Context())
	if err != nil {
		return internalError(err, "Erreur lors de la récupération des articles")
	}
	return c.JSON(http.StatusOK, articles)
}

// Get returns one article.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  domain.Article
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	article, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return internalError(err, "Erreur lors de la récupération de l'article")
	}
	return c.JSON(http.StatusOK, article)
}

// Create publishes an article authored by the requester. A repeated
// Idempotency-Key returns the first article with 200.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      articleRequest  true   "Article"
// @Success      201              {object}  articleResponse
// @Success      200              {object}  articleResponse  "Idempotent replay"
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      500              {object}  map[string]string
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	var req articleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), who, ports.CreateArticleInput{
		Title:          req.Title,
		Content:        req.Content,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return internalError(err, "Erreur lors de la création de l'article")
	}

	status := http.StatusCreated
	if res.Replayed {
		metrics.IdempotentReplaysTotal.WithLabelValues("article").Inc()
		c.Response().Header().Set(HeaderIdempotentReplay, "true")
		status = http.StatusOK
	}
	return c.JSON(status, articleResponse{Message: "Article créé avec succès", Article: &res.Article})
}

// Update replaces title and content. Author or admin only.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Article ID"
// @Param        body  body      articleRequest  true  "Article"
// @Success      200   {object}  articleResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req articleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	article, err := h.service.Update(c.Request().Context(), who, id, req.Title, req.Content)
	if err != nil {
		return internalError(err, "Erreur lors de la modification de l'article")
	}
	return c.JSON(http.StatusOK, articleResponse{Message: "Article modifié avec succès", Article: article})
}

// Delete removes an article and its comments. Author or admin only.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), who, id); err != nil {
		return internalError(err, "Erreur lors de la suppression de l'article")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Article supprimé avec succès"})
}
