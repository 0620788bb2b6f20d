package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edmarcres18/mhrhci-backend/internal/domain"
	"github.com/edmarcres18/mhrhci-backend/internal/repository"
)

func TestUserListExcludeRole(t *testing.T) {
	db := testDB(t)
	repo := repository.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.User{ID: 1, Name: "Root", Email: "root@example.com", Role: domain.RoleSystemAdmin}).Error)
	require.NoError(t, db.Create(&domain.User{ID: 2, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAdmin}).Error)
	require.NoError(t, db.Create(&domain.User{ID: 3, Name: "Ben", Email: "ben@example.com", Role: domain.RoleStaff}).Error)

	rows, total, err := repo.List(ctx, repository.UserQuery{ExcludeRole: domain.RoleSystemAdmin, Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, u := range rows {
		assert.NotEqual(t, domain.RoleSystemAdmin, u.Role)
	}

	rows, total, err = repo.List(ctx, repository.UserQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)
}

func TestUserListSearchByNameOrEmail(t *testing.T) {
	db := testDB(t)
	repo := repository.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.User{ID: 1, Name: "Maria Santos", Email: "maria@example.com", Role: domain.RoleStaff}).Error)
	require.NoError(t, db.Create(&domain.User{ID: 2, Name: "Jose Cruz", Email: "jcruz@example.com", Role: domain.RoleStaff}).Error)

	rows, total, err := repo.List(ctx, repository.UserQuery{Search: "MARIA", Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Maria Santos", rows[0].Name)

	_, total, err = repo.List(ctx, repository.UserQuery{Search: "cruz", Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db := testDB(t)
	repo := repository.NewGormUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
