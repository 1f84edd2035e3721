package users

import (
	"errors"
	"io"
	"time"

	"module/postforge/internal/auth"
	"module/postforge/internal/dto"
	"module/postforge/internal/models"
	"module/postforge/internal/repo"
	"module/postforge/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionTTL   = time.Hour * 720
	loginCodeTTL = time.Minute * 15
)

type UserService struct {
	userRepo    *repo.UserRepo
	sessionRepo *repo.SessionRepo
	notifier    *auth.Notifier
	jwtSecret   []byte
}

func NewUserService(userRepo *repo.UserRepo, sessionRepo *repo.SessionRepo, notifier *auth.Notifier, jwtSecret string) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		notifier:    notifier,
		jwtSecret:   []byte(jwtSecret),
	}
}

// issueToken creates a session row and signs a JWT naming it. The token is
// only good while the session row exists.
func (s *UserService) issueToken(user *models.User) (string, error) {
	session := models.Session{
		Id:        uuid.NewString(),
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.sessionRepo.CreateSession(&session); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.Id,
		"session_id": session.Id,
		"exp":        session.ExpiresAt.Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *UserService) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterUserRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}

	verdict := utilities.ValidatePassword(request.Password)
	if !verdict.IsValid {
		utilities.Response(ctx, 400, false, verdict, "Password does not meet the requirements")
		return
	}

	exists, err := s.userRepo.EmailExists(request.Email)
	if err != nil {
		log.Errorf("checking email existence: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to check email")
		return
	}
	if exists {
		utilities.Response(ctx, 400, false, nil, "An account with this email already exists. Please sign in instead.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), 10)
	if err != nil {
		log.Errorf("hashing password: %v", err)
		utilities.Response(ctx, 500, false, nil, "Internal server error")
		return
	}

	newUser := models.User{
		Id:       uuid.NewString(),
		Email:    request.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.CreateUser(&newUser); err != nil {
		log.Errorf("creating user: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to create user")
		return
	}

	signedToken, err := s.issueToken(&newUser)
	if err != nil {
		log.Errorf("issuing token: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to generate token")
		return
	}

	s.notifier.Publish(auth.Event{Type: auth.EventSignedIn, UserId: newUser.Id, Email: newUser.Email})
	utilities.Response(ctx, 201, true, gin.H{"token": signedToken}, "Check your email to confirm your account.")
}

func (s *UserService) LoginUser(ctx *gin.Context) {
	var request dto.LoginUserRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}

	user, err := s.userRepo.GetUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.Response(ctx, 400, false, nil, "Invalid login credentials")
			return
		}
		log.Errorf("getting user by email: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to get user by email")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid login credentials")
		return
	}

	signedToken, err := s.issueToken(user)
	if err != nil {
		log.Errorf("issuing token: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to generate token")
		return
	}

	s.notifier.Publish(auth.Event{Type: auth.EventSignedIn, UserId: user.Id, Email: user.Email})
	utilities.Response(ctx, 200, true, gin.H{"token": signedToken}, "User logged in successfully")
}

// SendMagicLink mints a one-time login code for an existing account. Mail
// delivery is out of scope; the code is written to the server log.
func (s *UserService) SendMagicLink(ctx *gin.Context) {
	var request dto.MagicLinkRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}

	user, err := s.userRepo.GetUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.Response(ctx, 400, false, nil, "No account found for this email")
			return
		}
		log.Errorf("getting user by email: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to get user by email")
		return
	}

	loginCode := models.LoginCode{
		Code:      uuid.NewString(),
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(loginCodeTTL),
	}
	if err := s.sessionRepo.CreateLoginCode(&loginCode); err != nil {
		log.Errorf("creating login code: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to send magic link")
		return
	}

	log.Infof("magic link code for %s: %s", user.Email, loginCode.Code)
	utilities.Response(ctx, 200, true, nil, "Magic link sent! Check your inbox.")
}

// VerifyMagicLink exchanges an unexpired, unused code for a session token.
func (s *UserService) VerifyMagicLink(ctx *gin.Context) {
	var request dto.VerifyMagicLinkRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}

	user, err := s.userRepo.GetUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.Response(ctx, 400, false, nil, "Invalid code")
			return
		}
		log.Errorf("getting user by email: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to get user by email")
		return
	}

	if _, err := s.sessionRepo.ConsumeLoginCode(user.Id, request.Code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.Response(ctx, 400, false, nil, "Invalid code")
			return
		}
		log.Errorf("consuming login code: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to verify code")
		return
	}

	signedToken, err := s.issueToken(user)
	if err != nil {
		log.Errorf("issuing token: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to generate token")
		return
	}

	s.notifier.Publish(auth.Event{Type: auth.EventSignedIn, UserId: user.Id, Email: user.Email})
	utilities.Response(ctx, 200, true, gin.H{"token": signedToken}, "User logged in successfully")
}

func (s *UserService) GetCurrentUser(ctx *gin.Context) {
	userId := ctx.GetString("user_id")

	user, err := s.userRepo.GetUserById(userId)
	if err != nil {
		log.Errorf("getting user by id: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to fetch user")
		return
	}
	user.Password = ""
	utilities.Response(ctx, 200, true, user, "User fetched successfully")
}

// Logout deletes the session behind the presented token, which makes any
// further use of that token fail auth.
func (s *UserService) Logout(ctx *gin.Context) {
	userId := ctx.GetString("user_id")
	sessionId := ctx.GetString("session_id")

	if err := s.sessionRepo.DeleteSession(sessionId); err != nil {
		log.Errorf("deleting session: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to sign out")
		return
	}

	s.notifier.Publish(auth.Event{Type: auth.EventSignedOut, UserId: userId})
	utilities.Response(ctx, 200, true, nil, "User signed out successfully")
}

// CheckEmail answers whether an account exists for the given address. A
// missing row is exists=false; a database failure is a 500, never a
// silent false.
func (s *UserService) CheckEmail(ctx *gin.Context) {
	var request dto.CheckEmailRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	if request.Email == "" {
		utilities.Response(ctx, 400, false, nil, "Email is required")
		return
	}

	exists, err := s.userRepo.EmailExists(request.Email)
	if err != nil {
		log.Errorf("checking email existence: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to check email")
		return
	}

	utilities.Response(ctx, 200, true, dto.CheckEmailResponse{Exists: exists}, "")
}

// AuthEvents streams auth-state changes to the client as SSE until the
// client goes away.
func (s *UserService) AuthEvents(ctx *gin.Context) {
	events, unsubscribe := s.notifier.Subscribe()
	defer unsubscribe()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent("auth", event)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
