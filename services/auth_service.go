package services

import (
	"errors"

	"gorm.io/gorm"

	"smartmenu/models"
	"smartmenu/utils"
)

var (
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("record not found")
)

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	RestaurantName string
	Phone          string
}

type LoginResult struct {
	Token    string      `json:"token"`
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

type AuthService struct {
	db     *gorm.DB
	tokens *utils.TokenManager
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Register creates a new owner account. Uniqueness is checked before
// the insert with two separate lookups; the unique indexes on username
// and email are the backstop for concurrent registrations.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:       in.Username,
		Email:          in.Email,
		Password:       hashed,
		RestaurantName: in.RestaurantName,
		Phone:          in.Phone,
		Role:           models.RoleOwner,
		Active:         true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Username, user.Role)
	return &user, nil
}

// Login verifies the credentials and issues a bearer token. Unknown
// username, wrong password and deactivated accounts all return the
// same ErrInvalidCredentials so callers cannot enumerate usernames.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("User logged in: %s", user.Username)

	return &LoginResult{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
