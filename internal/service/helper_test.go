package service

import (
	"Beacon/internal/model"
	redispkg "Beacon/internal/pkg/redis"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存库，单连接避免 :memory: 连接间不共享
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.SocialAccount{},
		&model.Post{},
		&model.AnalyticsSnapshot{},
	))
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, account *model.SocialAccount) *model.SocialAccount {
	t.Helper()
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedPost(t *testing.T, db *gorm.DB, post *model.Post) *model.Post {
	t.Helper()
	require.NoError(t, db.Create(post).Error)
	return post
}

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	redispkg.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		redispkg.Rdb = nil
	})
	return mr
}
