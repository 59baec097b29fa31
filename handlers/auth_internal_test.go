package handlers

import (
	"errors"
	"fmt"
	"testing"

	"homechef-api/config"
	"homechef-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestIsDuplicateKey(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	user := models.User{FirstName: "A", LastName: "B", Email: "dup@x.com", HashedPassword: "h"}
	require.NoError(t, db.Create(&user).Error)

	// A second insert on the same email trips the unique index; that
	// is the error Register's transaction branch must map to 400.
	dup := models.User{FirstName: "C", LastName: "D", Email: "dup@x.com", HashedPassword: "h"}
	err = db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))

	assert.False(t, isDuplicateKey(errors.New("connection reset")))
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
}
