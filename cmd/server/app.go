package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumenpulse/apikit/core"
	"github.com/lumenpulse/apikit/handler"
	"github.com/lumenpulse/apikit/pkg/binder"
	"github.com/lumenpulse/apikit/pkg/environment"
	"github.com/lumenpulse/apikit/pkg/httpserver"
	"github.com/lumenpulse/apikit/pkg/payload"
	"github.com/lumenpulse/apikit/pkg/pipeline"
	"github.com/lumenpulse/apikit/pkg/requestid"
	"github.com/lumenpulse/apikit/pkg/sanitizer"
	"github.com/lumenpulse/apikit/pkg/validator"
)

type app struct {
	cfg        Config
	log        *slog.Logger
	normalizer *core.Normalizer
	sanitizer  *sanitizer.Sanitizer
	schemas    schemas
	store      *store
}

func newApp(cfg Config, log *slog.Logger) (*app, error) {
	mode, err := sanitizer.ParseMode(cfg.SanitizerMode)
	if err != nil {
		return nil, err
	}
	s, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	return &app{
		cfg: cfg,
		log: log,
		normalizer: core.NewNormalizer(
			core.WithLogger(log),
			core.WithExposeErrors(cfg.exposeErrors()),
		),
		sanitizer: sanitizer.New(sanitizer.WithMode(mode)),
		schemas:   s,
		store:     newStore(),
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(a.cfg.Env))

	r.NotFound(handler.NotFound(a.normalizer))
	r.MethodNotAllowed(handler.MethodNotAllowed(a.normalizer))

	r.Get("/healthz", httpserver.Health(a.normalizer))
	r.Get("/readyz", httpserver.Health(a.normalizer, httpserver.Check{Name: "store", Fn: a.store.ping}))

	body := binder.JSON(binder.WithMaxBodySize(a.cfg.MaxBodyBytes))

	r.Post("/auth/register", route(a, a.register, a.schemas.register, body))
	r.Post("/articles", route(a, a.createArticle, a.schemas.article, body))
	r.Get("/articles/{id}", route(a, a.getArticle, a.schemas.articleID, binder.Path(chi.URLParam, "id")))
	r.Get("/search", route(a, a.searchArticles, a.schemas.search, binder.Query()))
	r.Post("/metadata", route(a, a.putMetadata, a.schemas.metadata, body))

	return r
}

// route wires h behind a pipeline built from schema.
func route[R any](a *app, h handler.HandlerFunc[handler.Context, R], schema validator.Schema, binders ...binder.Bind) http.HandlerFunc {
	p := pipeline.MustNew(schema,
		pipeline.WithNormalizer(a.normalizer),
		pipeline.WithSanitizer(a.sanitizer),
		pipeline.WithLogger(a.log),
	)
	return handler.Wrap(h,
		handler.WithPipeline[handler.Context, R](p),
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithLogger[handler.Context, R](a.log),
	)
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	AcceptTerms bool   `json:"acceptTerms"`
}

func (a *app) register(ctx handler.Context, req registerRequest) (handler.Response, error) {
	u, err := a.store.createUser(ctx, req.Email, req.DisplayName)
	if errors.Is(err, errEmailTaken) {
		return nil, core.NewHTTPError(http.StatusConflict, errEmailTaken.Error())
	}
	if err != nil {
		return nil, err
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated)), nil
}

type createArticleRequest struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Status      string   `json:"status"`
	PublishedAt string   `json:"publishedAt"`
	Author      author   `json:"author"`
	Tags        []string `json:"tags"`
}

func (a *app) createArticle(ctx handler.Context, req createArticleRequest) (handler.Response, error) {
	created := a.store.createArticle(ctx, article{
		Title:       req.Title,
		Body:        req.Body,
		Status:      req.Status,
		PublishedAt: req.PublishedAt,
		Author:      req.Author,
		Tags:        req.Tags,
	})
	return handler.JSON(created, handler.WithJSONStatus(http.StatusCreated)), nil
}

type articleIDRequest struct {
	ID string `json:"id"`
}

func (a *app) getArticle(ctx handler.Context, req articleIDRequest) (handler.Response, error) {
	found, err := a.store.article(ctx, req.ID)
	if errors.Is(err, errArticleNotFound) {
		return nil, core.ErrNotFound.WithMessage(fmt.Sprintf("article %s not found", req.ID))
	}
	if err != nil {
		return nil, err
	}
	return handler.JSON(found), nil
}

type searchRequest struct {
	Q     string   `json:"q"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Tags  []string `json:"tags"`
}

func (a *app) searchArticles(ctx handler.Context, req searchRequest) (handler.Response, error) {
	page := max(req.Page, 1)
	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	found, total := a.store.search(ctx, req.Q, req.Tags, (page-1)*limit, limit)
	return handler.JSON(found, handler.WithJSONMeta(map[string]any{
		"query": req.Q,
		"page":  page,
		"limit": limit,
		"total": total,
	})), nil
}

type metadataRequest struct {
	Resource string `json:"resource"`
	Entries  []struct {
		Key   string        `json:"key"`
		Value payload.Value `json:"value"`
	} `json:"entries"`
}

func (a *app) putMetadata(_ handler.Context, req metadataRequest) (handler.Response, error) {
	out := make([]payload.Member, 0, len(req.Entries))
	for _, e := range req.Entries {
		out = append(out, payload.Field(e.Key, e.Value))
	}
	return handler.JSON(map[string]any{
		"resource": req.Resource,
		"metadata": payload.Object(out...),
	}), nil
}
