package handler

import (
	"time"

	"github.com/deppfellow/blog-service/internal/middleware"
	"github.com/deppfellow/blog-service/internal/server"
	"github.com/deppfellow/blog-service/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Typed handler plumbing -------------------------------------------------

// HandlerFunc is a typed endpoint function that receives a decoded and
// validated request payload and returns a response or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// bindFunc produces the request payload for one request.
type bindFunc[Req validation.Validatable] func(c echo.Context) (Req, error)

// handleRequest is the shared execution pipeline for all handlers:
//
//   - bind: decode + validate the payload
//   - run the handler
//   - write the JSON response
//
// with structured logging, New Relic attributes and timings around each
// phase. Errors are returned untouched so GlobalErrorHandler maps them.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	bind bindFunc[Req],
	handler func(c echo.Context, req Req) (interface{}, error),
	status int,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Decode + validation phase ------------------------------
	validationStart := time.Now()
	req, err := bind(c)
	validationDuration := time.Since(validationStart)
	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return c.JSON(status, result)
}

// Handle wraps a handler whose payload is the JSON request body.
//
// Usage:
//
//	router.POST("/entries", handler.Handle[model.Entry](h, h.CreateEntry, http.StatusOK))
func Handle[T any, PT interface {
	*T
	validation.Validatable
}, Res any](
	h Handler,
	handler HandlerFunc[PT, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest[PT](c, validation.BindAndValidate[T, PT], func(c echo.Context, req PT) (interface{}, error) {
			return handler(c, req)
		}, status)
	}
}

// HandleWithoutBody wraps a handler that takes no request body. A fresh
// zero payload is validated and handed to the handler.
func HandleWithoutBody[T any, PT interface {
	*T
	validation.Validatable
}, Res any](
	h Handler,
	handler HandlerFunc[PT, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		bind := func(c echo.Context) (PT, error) {
			req := PT(new(T))
			if err := validation.Validate(req); err != nil {
				return nil, err
			}
			return req, nil
		}
		return handleRequest[PT](c, bind, func(c echo.Context, req PT) (interface{}, error) {
			return handler(c, req)
		}, status)
	}
}
