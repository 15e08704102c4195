package services

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/jackc/pgx/v5"
	"github.com/justsurfingit/jobly-api/internal/apperr"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/models"
	"github.com/justsurfingit/jobly-api/internal/sqlutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var userFields = sqlutil.ColumnMap{
	"firstName": "first_name",
	"lastName":  "last_name",
}

// UserService reads and registers users through gorm; partial updates go
// through the shared SQL builder on the raw pool.
type UserService struct {
	DB         *gorm.DB
	Pool       Querier
	BcryptCost int
}

func NewUserService(db *gorm.DB, pool Querier, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{DB: db, Pool: pool, BcryptCost: bcryptCost}
}

// Authenticate returns the user when the password matches.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Invalid username/password")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid username/password")
	}
	return &user, nil
}

func (s *UserService) Register(ctx context.Context, req *dtos.UserRegisterRequest, isAdmin bool) (*models.User, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, apperr.BadRequest("Duplicate username: " + req.Username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   isAdmin,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		// a concurrent registration can win between the count and the insert
		if pgCode(err) == uniqueViolation {
			return nil, apperr.BadRequest("Duplicate username: " + req.Username)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("No user: " + username)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Update applies a partial update; a new password is hashed before storage.
func (s *UserService) Update(ctx context.Context, username string, changes map[string]any) (*models.User, error) {
	if _, ok := changes["username"]; ok {
		return nil, apperr.BadRequest("Cannot change username")
	}
	changes = maps.Clone(changes)
	if pw, ok := changes["password"].(string); ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(pw), s.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		changes["password"] = string(hashed)
	}

	setCols, values, err := sqlutil.PartialUpdate(changes, userFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s
		 WHERE username = $%d
		RETURNING username, first_name, last_name, email, is_admin`, setCols, len(values)+1)

	var user models.User
	err = s.Pool.QueryRow(ctx, query, append(values, username)...).
		Scan(&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("No user: " + username)
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Remove(ctx context.Context, username string) error {
	res := s.DB.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("No user: " + username)
	}
	return nil
}
