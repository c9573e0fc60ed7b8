package repository

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/middleware"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/observability"
)

// APIClient sends requests to the community API and unwraps its envelope.
type APIClient struct {
	Client  *fiber.Client
	BaseURL string
	Timeout time.Duration
	Hooks   []middleware.RequestHook
	Log     *zap.Logger
}

func NewAPIClient(baseURL string, timeout time.Duration, zap *zap.Logger, hooks ...middleware.RequestHook) *APIClient {
	return &APIClient{
		Client: &fiber.Client{
			JSONEncoder: sonic.Marshal,
			JSONDecoder: sonic.Unmarshal,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		Hooks:   hooks,
		Log:     zap,
	}
}

type apiRequest struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	form   *multipartForm
}

type multipartForm struct {
	fields map[string]string
	files  []formFile
}

type formFile struct {
	fieldName string
	fileName  string
	content   []byte
}

type apiResponse struct {
	statusCode int
	body       []byte
}

func (client *APIClient) agent(request apiRequest) *fiber.Agent {
	target := client.BaseURL + request.path
	if len(request.query) > 0 {
		target += "?" + request.query.Encode()
	}

	switch request.method {
	case fiber.MethodPost:
		return client.Client.Post(target)
	case fiber.MethodDelete:
		return client.Client.Delete(target)
	case fiber.MethodPut:
		return client.Client.Put(target)
	default:
		return client.Client.Get(target)
	}
}

// timeout is the configured timeout, shortened to the ctx deadline.
func (client *APIClient) timeout(ctx context.Context) time.Duration {
	timeout := client.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	return timeout
}

func (client *APIClient) send(ctx context.Context, request apiRequest) (apiResponse, error) {
	if err := ctx.Err(); err != nil {
		return apiResponse{}, &model.TransportError{Op: request.op, Err: err}
	}

	ctx, span := observability.Tracer().Start(ctx, "api."+request.op)
	defer span.End()

	agent := client.agent(request)
	for _, hook := range client.Hooks {
		hook(ctx, agent)
	}

	if request.body != nil {
		agent.JSON(request.body)
	}

	var args *fiber.Args
	if request.form != nil {
		args = fiber.AcquireArgs()
		defer fiber.ReleaseArgs(args)

		for key, value := range request.form.fields {
			args.Set(key, value)
		}

		for _, file := range request.form.files {
			upload := fiber.AcquireFormFile()
			upload.Fieldname = file.fieldName
			upload.Name = file.fileName
			upload.Content = file.content
			agent.FileData(upload)
		}

		agent.MultipartForm(args)
	}

	if timeout := client.timeout(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	// agents from fiber.Client are parsed on creation; Bytes sends and
	// releases the agent
	start := time.Now()
	statusCode, body, errs := agent.Bytes()
	elapsed := time.Since(start).Seconds()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		observability.APIRequestDuration.WithLabelValues(request.op, observability.OutcomeError).Observe(elapsed)
		observability.WithContext(ctx, client.Log).Warn("api request failed",
			zap.String("op", request.op),
			zap.Error(err),
		)
		return apiResponse{}, &model.TransportError{Op: request.op, Err: err}
	}

	outcome := observability.OutcomeSuccess
	if statusCode < fiber.StatusOK || statusCode >= fiber.StatusMultipleChoices {
		outcome = observability.OutcomeError
	}
	observability.APIRequestDuration.WithLabelValues(request.op, outcome).Observe(elapsed)

	return apiResponse{statusCode: statusCode, body: body}, nil
}

// callEnvelope performs the request and returns Data of a successful
// envelope. IsSuccess false becomes a BusinessError carrying Message.
func callEnvelope[T any](ctx context.Context, client *APIClient, request apiRequest) (T, error) {
	var data T

	response, err := client.send(ctx, request)
	if err != nil {
		return data, err
	}

	var envelope model.Envelope[T]
	decodeErr := sonic.Unmarshal(response.body, &envelope)

	if response.statusCode < fiber.StatusOK || response.statusCode >= fiber.StatusMultipleChoices {
		// error responses may still carry an envelope with a message
		if decodeErr == nil && envelope.MessageText() != "" {
			return data, &model.BusinessError{Op: request.op, StatusCode: response.statusCode, Message: envelope.MessageText()}
		}
		return data, &model.TransportError{Op: request.op, StatusCode: response.statusCode}
	}

	if decodeErr != nil {
		return data, &model.TransportError{Op: request.op, StatusCode: response.statusCode, Err: decodeErr}
	}

	if !envelope.IsSuccess {
		return data, &model.BusinessError{Op: request.op, StatusCode: response.statusCode, Message: envelope.MessageText()}
	}

	return envelope.Data, nil
}

// callBare is for the endpoints that answer without the envelope.
func callBare[T any](ctx context.Context, client *APIClient, request apiRequest) (T, error) {
	var data T

	response, err := client.send(ctx, request)
	if err != nil {
		return data, err
	}

	if response.statusCode < fiber.StatusOK || response.statusCode >= fiber.StatusMultipleChoices {
		return data, &model.TransportError{Op: request.op, StatusCode: response.statusCode}
	}

	err = sonic.Unmarshal(response.body, &data)
	if err != nil {
		return data, &model.TransportError{Op: request.op, StatusCode: response.statusCode, Err: err}
	}

	return data, nil
}

func queryOf(pairs ...string) url.Values {
	query := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		query.Set(pairs[i], pairs[i+1])
	}

	return query
}

func itoa(value int64) string {
	return strconv.FormatInt(value, 10)
}
