package service

import (
	"testing"

	"matrimony-service/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.BrideProfile{},
		&model.GroomProfile{},
		&model.ConnectionRequest{},
		&model.Message{},
	))

	return New(db)
}

func seedProfile(t *testing.T, s *Service, kind model.Kind, username string) *model.Profile {
	t.Helper()

	p, err := s.CreateProfile(kind, ProfileInput{
		FullName:    "Test " + username,
		Username:    username,
		Password:    "secret123",
		City:        "Mumbai",
		DateOfBirth: "1998-06-15",
	})
	require.NoError(t, err)
	return p
}
