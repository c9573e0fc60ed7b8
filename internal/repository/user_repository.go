package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
)

type UserRepository struct {
	Log      *zap.Logger
	API      *APIClient
	DBCache  *redis.Client
	DeviceId string
}

func NewUserRepository(zap *zap.Logger, api *APIClient, dbCache *redis.Client, deviceId string) *UserRepository {
	return &UserRepository{
		Log:      zap,
		API:      api,
		DBCache:  dbCache,
		DeviceId: deviceId,
	}
}

// API

func (repository *UserRepository) Login(ctx context.Context, payload model.LoginRequest) (string, error) {
	response, err := callEnvelope[*model.LoginResponse](ctx, repository.API, apiRequest{
		op:     "account.login",
		method: fiber.MethodPost,
		path:   "/Account/Login",
		body:   payload,
	})
	if err != nil {
		return "", err
	}

	if response == nil || response.Token == "" {
		return "", &model.BusinessError{Op: "account.login", Message: "Login failed. No token received"}
	}

	return response.Token, nil
}

func (repository *UserRepository) CreateAccount(ctx context.Context, payload model.CreateAccountRequest) (int64, error) {
	response, err := callEnvelope[*model.CreateAccountResponse](ctx, repository.API, apiRequest{
		op:     "account.create",
		method: fiber.MethodPost,
		path:   "/Account/CreateAccount",
		body:   payload,
	})
	if err != nil || response == nil {
		return 0, err
	}

	return response.Id, nil
}

func (repository *UserRepository) GetUserById(ctx context.Context, id int64) (model.UserData, error) {
	user, err := callEnvelope[*model.UserData](ctx, repository.API, apiRequest{
		op:     "account.get",
		method: fiber.MethodGet,
		path:   "/Account/GetById",
		query:  queryOf("id", itoa(id)),
	})
	if err != nil {
		return model.UserData{}, err
	}

	if user == nil {
		return model.UserData{}, &model.BusinessError{Op: "account.get", Message: "User not found"}
	}

	return *user, nil
}

func (repository *UserRepository) UpdateAccount(ctx context.Context, payload model.UpdateAccountRequest) (model.UserData, error) {
	user, err := callEnvelope[*model.UserData](ctx, repository.API, apiRequest{
		op:     "account.update",
		method: fiber.MethodPost,
		path:   "/Account/UpdateAccount",
		body:   payload,
	})
	if err != nil {
		return model.UserData{}, err
	}

	if user == nil {
		return model.UserData{}, &model.BusinessError{Op: "account.update", Message: "Profile update returned no data"}
	}

	return *user, nil
}

// Redis - Session

func (repository *UserRepository) sessionKey() string {
	return fmt.Sprintf("%s:%s", constant.SESSION_KEY_PREFIX, repository.DeviceId)
}

func (repository *UserRepository) SetSession(ctx context.Context, session model.Session) error {
	data, err := sonic.Marshal(session)
	if err != nil {
		return err
	}

	return repository.DBCache.Set(ctx, repository.sessionKey(), data, constant.SESSION_TTL).Err()
}

func (repository *UserRepository) GetSession(ctx context.Context) (model.Session, error) {
	session := model.Session{}

	data, err := repository.DBCache.Get(ctx, repository.sessionKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return session, &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "No saved session found",
			Param:   "session",
		}
	} else if err != nil {
		return session, err
	}

	err = sonic.Unmarshal(data, &session)
	if err != nil {
		return session, err
	}

	return session, nil
}

func (repository *UserRepository) RemoveSession(ctx context.Context) error {
	return repository.DBCache.Del(ctx, repository.sessionKey()).Err()
}
