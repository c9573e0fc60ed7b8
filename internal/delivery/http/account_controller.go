package http

import (
	"errors"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AccountController struct {
	Store    *StubStore
	Validate *validator.Validate
	Log      *zap.Logger
	Config   *koanf.Koanf
}

func NewAccountController(store *StubStore, validate *validator.Validate, zap *zap.Logger, koanf *koanf.Koanf) *AccountController {
	return &AccountController{
		Store:    store,
		Validate: validate,
		Log:      zap,
		Config:   koanf,
	}
}

func (controller AccountController) Login(ctx *fiber.Ctx) error {
	var payload model.LoginRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	user, admin, err := controller.Store.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	role := "Member"
	if admin {
		role = constant.ADMIN_ROLE_NAME
	}

	token, err := util.GenerateAccessToken(user.Id, role, controller.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, model.LoginResponse{Token: token})
}

func (controller AccountController) CreateAccount(ctx *fiber.Ctx) error {
	var payload model.CreateAccountRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	var validationErr *model.ValidationError

	err = util.ValidateStruct(controller.Validate, payload)
	if err != nil {
		if errors.As(err, &validationErr) {
			return util.SendBusinessError(ctx, validationErr.Message)
		}

		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	id, err := controller.Store.CreateAccount(payload)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, model.CreateAccountResponse{Id: id})
}

func (controller AccountController) GetById(ctx *fiber.Ctx) error {
	id, err := queryInt64(ctx, "id")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	user, err := controller.Store.User(id)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, user)
}

func (controller AccountController) UpdateAccount(ctx *fiber.Ctx) error {
	var payload model.UpdateAccountRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	err = util.ValidateStruct(controller.Validate, payload)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	userId, _ := ctx.Locals("userId").(int64)
	if payload.Id != userId && !isAdmin(ctx) {
		return util.SendBusinessError(ctx, "You can only update your own account")
	}

	user, err := controller.Store.UpdateAccount(payload)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, user)
}
