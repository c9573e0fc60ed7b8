package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/repository"
	"github.com/ferdian3456/communityclient/internal/util"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserUsecase owns the session: sign in and out, restore after a restart,
// account changes. It is also the token source of the API client.
type UserUsecase struct {
	UserRepository *repository.UserRepository
	Cache          *cache.Session
	Validate       *validator.Validate
	Log            *zap.Logger

	mu      sync.RWMutex
	session *model.Session
	// set while Login fetches the user, before a session exists
	pendingToken string
}

func NewUserUsecase(userRepository *repository.UserRepository, cache *cache.Session, validate *validator.Validate, zap *zap.Logger) *UserUsecase {
	return &UserUsecase{
		UserRepository: userRepository,
		Cache:          cache,
		Validate:       validate,
		Log:            zap,
	}
}

func (usecase *UserUsecase) Token() string {
	usecase.mu.RLock()
	defer usecase.mu.RUnlock()

	if usecase.session != nil {
		return usecase.session.Token
	}

	return usecase.pendingToken
}

func (usecase *UserUsecase) Login(ctx context.Context, email string, password string) (model.Session, error) {
	payload := model.LoginRequest{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}

	err := util.ValidateStruct(usecase.Validate, payload)
	if err != nil {
		return model.Session{}, err
	}

	token, err := usecase.UserRepository.Login(ctx, payload)
	if err != nil {
		return model.Session{}, err
	}

	userId, err := util.ParseSessionToken(token)
	if err != nil {
		return model.Session{}, err
	}

	usecase.mu.Lock()
	usecase.pendingToken = token
	usecase.mu.Unlock()

	defer func() {
		usecase.mu.Lock()
		usecase.pendingToken = ""
		usecase.mu.Unlock()
	}()

	user, err := usecase.UserRepository.GetUserById(ctx, userId)
	if err != nil {
		return model.Session{}, err
	}

	session := model.Session{
		Token:     token,
		User:      user,
		IsAdmin:   user.HasRole(constant.ADMIN_ROLE_NAME, constant.ADMIN_ROLE_ID),
		CreatedAt: time.Now().UTC(),
	}

	err = usecase.UserRepository.SetSession(ctx, session)
	if err != nil {
		return model.Session{}, err
	}

	usecase.mu.Lock()
	usecase.session = &session
	usecase.mu.Unlock()

	usecase.Log.Info("signed in", zap.Int64("userId", user.Id), zap.Bool("isAdmin", session.IsAdmin))
	return session, nil
}

// Restore picks up the session saved by an earlier run. A missing session
// is not an error; the client just stays signed out.
func (usecase *UserUsecase) Restore(ctx context.Context) (bool, error) {
	session, err := usecase.UserRepository.GetSession(ctx)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) && validationErr.Code == constant.ERR_NOT_FOUND_ERROR {
			return false, nil
		}

		return false, err
	}

	// a token that no longer names a user is as good as none
	_, err = util.ParseSessionToken(session.Token)
	if err != nil {
		usecase.Log.Warn("saved session has an unusable token, discarding", zap.Error(err))
		return false, usecase.UserRepository.RemoveSession(ctx)
	}

	usecase.mu.Lock()
	usecase.session = &session
	usecase.mu.Unlock()

	return true, nil
}

func (usecase *UserUsecase) Current() (model.Session, bool) {
	usecase.mu.RLock()
	defer usecase.mu.RUnlock()

	if usecase.session == nil {
		return model.Session{}, false
	}

	return *usecase.session, true
}

// Identity is the zero Identity when signed out.
func (usecase *UserUsecase) Identity() model.Identity {
	session, ok := usecase.Current()
	if !ok {
		return model.Identity{}
	}

	return session.Identity()
}

func (usecase *UserUsecase) IsAdmin() bool {
	return usecase.Identity().IsAdmin
}

// Logout forgets the session and everything cached for it.
func (usecase *UserUsecase) Logout(ctx context.Context) error {
	usecase.mu.Lock()
	usecase.session = nil
	usecase.pendingToken = ""
	usecase.mu.Unlock()

	usecase.Cache.Clear()

	err := usecase.UserRepository.RemoveSession(ctx)
	if err != nil {
		return err
	}

	usecase.Log.Info("signed out")
	return nil
}

// SignUp creates the account. It does not sign in.
func (usecase *UserUsecase) SignUp(ctx context.Context, payload model.CreateAccountRequest) (int64, error) {
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	payload.Name = strings.TrimSpace(payload.Name)

	err := util.ValidateStruct(usecase.Validate, payload)
	if err != nil {
		return 0, err
	}

	return usecase.UserRepository.CreateAccount(ctx, payload)
}

// UpdateProfile saves the account and refreshes the saved session's user.
func (usecase *UserUsecase) UpdateProfile(ctx context.Context, payload model.UpdateAccountRequest) (model.UserData, error) {
	session, ok := usecase.Current()
	if !ok {
		return model.UserData{}, signInRequired()
	}

	payload.Id = session.User.Id
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	payload.Name = strings.TrimSpace(payload.Name)

	err := util.ValidateStruct(usecase.Validate, payload)
	if err != nil {
		return model.UserData{}, err
	}

	user, err := usecase.UserRepository.UpdateAccount(ctx, payload)
	if err != nil {
		return model.UserData{}, err
	}

	if len(user.RoleMappings) == 0 {
		user.RoleMappings = session.User.RoleMappings
	}
	session.User = user

	err = usecase.UserRepository.SetSession(ctx, session)
	if err != nil {
		return model.UserData{}, err
	}

	usecase.mu.Lock()
	usecase.session = &session
	usecase.mu.Unlock()

	return user, nil
}
