package http

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostController struct {
	Store  *StubStore
	Log    *zap.Logger
	Config *koanf.Koanf
}

func NewPostController(store *StubStore, zap *zap.Logger, koanf *koanf.Koanf) *PostController {
	return &PostController{
		Store:  store,
		Log:    zap,
		Config: koanf,
	}
}

func (controller *PostController) GetAllPosts(ctx *fiber.Ctx) error {
	pageNumber := ctx.QueryInt("pageNumber", 1)
	pageSize := ctx.QueryInt("pageSize", constant.DEFAULT_PAGE_SIZE)

	return util.SendSuccessResponseWithData(ctx, controller.Store.PostPage(pageNumber, pageSize))
}

func (controller *PostController) GetById(ctx *fiber.Ctx) error {
	id, err := queryInt64(ctx, "id")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	post, err := controller.Store.Post(id)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, post)
}

func (controller *PostController) GetByPostCategoryId(ctx *fiber.Ctx) error {
	categoryId, err := queryInt64(ctx, "postCategoryId")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	return util.SendSuccessResponseWithData(ctx, controller.Store.PostsByCategory(categoryId))
}

func (controller *PostController) GetMyPosts(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.PostsByAuthor(requestUserId(ctx)))
}

func (controller *PostController) GetMySavedPosts(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.SavedPosts(requestUserId(ctx)))
}

func (controller *PostController) Search(ctx *fiber.Ctx) error {
	return util.SendSuccessResponseWithData(ctx, controller.Store.SearchPosts(ctx.Query("keyword")))
}

func (controller *PostController) AddOrUpdatePost(ctx *fiber.Ctx) error {
	id, _ := strconv.ParseInt(ctx.FormValue("Id", "0"), 10, 64)

	userId, err := strconv.ParseInt(ctx.FormValue("UserId"), 10, 64)
	if err != nil || userId <= 0 {
		userId, _ = ctx.Locals("userId").(int64)
	}

	var categoryId *int64
	if raw := ctx.FormValue("PostCategoryId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return util.SendErrorResponse(ctx, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid post category",
				Param:   "PostCategoryId",
			})
		}
		categoryId = &parsed
	}

	description := ctx.FormValue("Description")
	if description == "" {
		return util.SendBusinessError(ctx, "Description is required to not be empty")
	}

	imageUrl := ""
	fileHeader, err := ctx.FormFile("ImageFile")
	if err == nil && fileHeader != nil {
		imageUrl = fmt.Sprintf("/uploads/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
		controller.Log.Debug("stub received upload",
			zap.String("file", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size),
		)
	}

	_, err = controller.Store.SavePost(id, userId, ctx.FormValue("Name"), ctx.FormValue("Url"), description, imageUrl, categoryId)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller *PostController) setLike(ctx *fiber.Ctx, liked bool) error {
	postId, err := queryInt64(ctx, "postId")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.Store.SetLike(postId, requestUserId(ctx), liked)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller *PostController) AddLike(ctx *fiber.Ctx) error {
	return controller.setLike(ctx, true)
}

func (controller *PostController) RemoveLike(ctx *fiber.Ctx) error {
	return controller.setLike(ctx, false)
}

func (controller *PostController) ToggleSavePost(ctx *fiber.Ctx) error {
	postId, err := queryInt64(ctx, "postId")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	saved, err := controller.Store.ToggleSave(postId, requestUserId(ctx))
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	if saved {
		return util.SendSuccessResponseWithData(ctx, "Post saved")
	}

	return util.SendSuccessResponseWithData(ctx, "Post removed from saved")
}

func (controller *PostController) DeletePost(ctx *fiber.Ctx) error {
	if !isAdmin(ctx) {
		return sendStoreError(ctx, controller.Log, errAdminOnly)
	}

	id, err := queryInt64(ctx, "id")
	if err != nil {
		return util.SendErrorResponse(ctx, err)
	}

	err = controller.Store.DeletePost(id)
	if err != nil {
		return sendStoreError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
