package lambdaserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"moviecast/cast"
	"moviecast/errs"
	"moviecast/pkg/sentry"

	"github.com/aws/aws-lambda-go/events"
)

const defaultErrorMessage = "Internal Server Error"

var jsonHeaders = map[string]string{"content-type": "application/json"}

// Handler answers API Gateway proxy events. It never returns a Go error:
// every failure becomes a JSON response so API Gateway forwards the status.
type Handler struct {
	CastService cast.Service
	Logger      *slog.Logger
}

func New(svc cast.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{CastService: svc, Logger: logger}
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.Logger.InfoContext(ctx, "event",
		"request_id", req.RequestContext.RequestID,
		"path", req.Path,
		"query", req.QueryStringParameters,
	)

	q, err := cast.ParseQuery(cast.MapParams(req.QueryStringParameters))
	if err != nil {
		return h.failure(ctx, err), nil
	}

	if h.CastService == nil {
		return h.failure(ctx, errors.New("cast service not configured")), nil
	}

	result, err := h.CastService.ListCast(ctx, q)
	if err != nil {
		return h.failure(ctx, err), nil
	}

	return h.respond(ctx, http.StatusOK, result), nil
}

func (h *Handler) failure(ctx context.Context, err error) events.APIGatewayProxyResponse {
	if errs.ErrorCode(err) == errs.EINVALID {
		return h.respond(ctx, http.StatusBadRequest, map[string]string{"message": errs.ErrorMessage(err)})
	}

	h.Logger.ErrorContext(ctx, "request failed", "error", err)
	sentry.Error(err)

	msg := err.Error()
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if msg == "" {
		msg = defaultErrorMessage
	}
	return h.respond(ctx, http.StatusInternalServerError, map[string]string{"error": msg})
}

func (h *Handler) respond(ctx context.Context, status int, body interface{}) events.APIGatewayProxyResponse {
	b, err := json.Marshal(body)
	if err != nil {
		h.Logger.ErrorContext(ctx, "cannot encode response", "error", err)
		status = http.StatusInternalServerError
		b = []byte(`{"error":"` + defaultErrorMessage + `"}`)
	}

	headers := make(map[string]string, len(jsonHeaders))
	for k, v := range jsonHeaders {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(b),
	}
}
