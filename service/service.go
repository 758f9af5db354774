// Package service holds the matchmaking core: the connection-request state
// machine, the append-only message log and the read-side profile card joins.
// Controllers and the socket gateway stay thin on top of it.
package service

import (
	"errors"

	"matrimony-service/errs"
	"matrimony-service/model"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// findProfile loads one profile from the table selected by kind.
func (s *Service) findProfile(kind model.Kind, username string) (*model.Profile, error) {
	p := new(model.Profile)
	err := s.db.Table(kind.Table()).Where("username = ?", username).First(p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Newf(errs.CodeNotFound, "%s profile %q not found", kind, username)
	}
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "load profile")
	}
	return p, nil
}
