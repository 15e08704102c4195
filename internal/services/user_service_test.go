package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/justsurfingit/jobly-api/internal/apperr"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/models"
)

func newUserService() *UserService {
	return NewUserService(testDB.Gorm, testDB.Pool, bcrypt.MinCost)
}

func TestUserAuthenticate(t *testing.T) {
	resetDB(t)
	svc := newUserService()
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "u1", "password1")
	require.NoError(t, err)
	assert.Equal(t, "U1F", user.FirstName)
	assert.False(t, user.IsAdmin)

	_, err = svc.Authenticate(ctx, "u1", "wrong")
	assert.True(t, apperr.IsUnauthorized(err))

	_, err = svc.Authenticate(ctx, "nope", "password1")
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestUserRegister(t *testing.T) {
	resetDB(t)
	svc := newUserService()
	ctx := context.Background()

	req := &dtos.UserRegisterRequest{
		Username: "new", Password: "password", FirstName: "Test", LastName: "Tester", Email: "test@test.com",
	}
	user, err := svc.Register(ctx, req, true)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.NotEqual(t, "password", user.Password)

	_, err = svc.Authenticate(ctx, "new", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, req, false)
	assert.True(t, apperr.IsBadRequest(err))
}

func TestUserRegisterConcurrentDuplicates(t *testing.T) {
	resetDB(t)
	svc := newUserService()
	req := &dtos.UserRegisterRequest{
		Username: "racer", Password: "password", FirstName: "R", LastName: "R", Email: "racer@test.com",
	}

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), req, false)
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, apperr.IsBadRequest(err), "got %v", err)
	}
	assert.Equal(t, 1, created)
}

func TestUserFindAllAndGet(t *testing.T) {
	resetDB(t)
	svc := newUserService()
	ctx := context.Background()

	users, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a1", users[0].Username)
	assert.Equal(t, "u1", users[1].Username)

	user, err := svc.Get(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	_, err = svc.Get(ctx, "nope")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUserUpdate(t *testing.T) {
	resetDB(t)
	svc := newUserService()
	ctx := context.Background()

	user, err := svc.Update(ctx, "u1", map[string]any{"firstName": "NewF", "email": "new@email.com"})
	require.NoError(t, err)
	assert.Equal(t, &models.User{
		Username: "u1", FirstName: "NewF", LastName: "U1L", Email: "new@email.com",
	}, user)

	changes := map[string]any{"password": "new-password"}
	_, err = svc.Update(ctx, "u1", changes)
	require.NoError(t, err)
	assert.Equal(t, "new-password", changes["password"])
	_, err = svc.Authenticate(ctx, "u1", "new-password")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "nope", map[string]any{"firstName": "x"})
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.Update(ctx, "u1", map[string]any{})
	assert.True(t, apperr.IsBadRequest(err))
}

func TestUserRemove(t *testing.T) {
	resetDB(t)
	svc := newUserService()
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "u1"))
	_, err := svc.Get(ctx, "u1")
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(svc.Remove(ctx, "u1")))
}
