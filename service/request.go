package service

import (
	"errors"

	"matrimony-service/errs"
	"matrimony-service/model"

	"gorm.io/gorm"
)

// Status and Role describe a pair's request state from a viewer's side.
type Status string

type Role string

const (
	StatusNone     Status = "None"
	StatusWaiting  Status = Status(model.StatusWaiting)
	StatusApproved Status = Status(model.StatusApproved)

	RoleNone     Role = "None"
	RoleSender   Role = "Sender"
	RoleReceiver Role = "Receiver"
)

// SendRequest creates a Waiting request from sender to receiver. It fails
// with AlreadyExists when any request between the pair is active, in either
// direction. The check and the insert run in one transaction, and the unique
// index on the pair key backstops concurrent sends that pass the check
// simultaneously.
func (s *Service) SendRequest(sender, receiver string) error {
	if sender == "" || receiver == "" || sender == receiver {
		return errs.New(errs.CodeInvalidArgument, "sender and receiver must be distinct non-empty usernames")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.ConnectionRequest{}).
			Where("pair_key = ?", model.PairKey(sender, receiver)).
			Count(&count).Error; err != nil {
			return errs.Wrap(err, errs.CodeStorage, "check existing request")
		}
		if count > 0 {
			return errs.Newf(errs.CodeAlreadyExists, "a request between %s and %s already exists", sender, receiver)
		}

		req := &model.ConnectionRequest{
			Sender:   sender,
			Receiver: receiver,
			Status:   model.StatusWaiting,
			PairKey:  model.PairKey(sender, receiver),
		}
		if err := tx.Create(req).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Newf(errs.CodeAlreadyExists, "a request between %s and %s already exists", sender, receiver)
			}
			return errs.Wrap(err, errs.CodeStorage, "insert request")
		}
		return nil
	})
	return err
}

// ApproveRequest moves the exact-ordered (sender, receiver) request from
// Waiting to Approved. A missing or already-approved request surfaces as
// NotFound instead of silently succeeding.
func (s *Service) ApproveRequest(sender, receiver string) error {
	res := s.db.Model(&model.ConnectionRequest{}).
		Where("sender = ? AND receiver = ? AND status = ?", sender, receiver, model.StatusWaiting).
		Update("status", model.StatusApproved)
	if res.Error != nil {
		return errs.Wrap(res.Error, errs.CodeStorage, "approve request")
	}
	if res.RowsAffected == 0 {
		return errs.Newf(errs.CodeNotFound, "no waiting request from %s to %s", sender, receiver)
	}
	return nil
}

// CancelRequest withdraws a pending request. Only the exact-ordered record is
// removed; a reversed record, should one exist, is untouched.
func (s *Service) CancelRequest(sender, receiver string) error {
	err := s.db.
		Where("sender = ? AND receiver = ?", sender, receiver).
		Delete(&model.ConnectionRequest{}).Error
	if err != nil {
		return errs.Wrap(err, errs.CodeStorage, "cancel request")
	}
	return nil
}

// DeleteRequest severs the connection between the pair regardless of which
// side originally sent the request.
func (s *Service) DeleteRequest(sender, receiver string) error {
	err := s.db.
		Where("pair_key = ?", model.PairKey(sender, receiver)).
		Delete(&model.ConnectionRequest{}).Error
	if err != nil {
		return errs.Wrap(err, errs.CodeStorage, "delete request")
	}
	return nil
}

// StatusFor reports the request state between viewer and candidate from the
// viewer's perspective: (Waiting|Approved, Sender|Receiver), or (None, None)
// when no record exists for the pair.
func (s *Service) StatusFor(viewer, candidate string) (Status, Role, error) {
	req := new(model.ConnectionRequest)
	err := s.db.Where("pair_key = ?", model.PairKey(viewer, candidate)).First(req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StatusNone, RoleNone, nil
	}
	if err != nil {
		return StatusNone, RoleNone, errs.Wrap(err, errs.CodeStorage, "load request")
	}
	if req.Sender == viewer {
		return Status(req.Status), RoleSender, nil
	}
	return Status(req.Status), RoleReceiver, nil
}

// ApprovedPeers lists usernames connected to username with an Approved
// request, whichever side sent it. Feeds the socket init payload.
func (s *Service) ApprovedPeers(username string) ([]string, error) {
	var reqs []model.ConnectionRequest
	err := s.db.
		Where("status = ? AND (sender = ? OR receiver = ?)", model.StatusApproved, username, username).
		Find(&reqs).Error
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "list approved peers")
	}

	peers := make([]string, 0, len(reqs))
	for _, req := range reqs {
		if req.Sender == username {
			peers = append(peers, req.Receiver)
		} else {
			peers = append(peers, req.Sender)
		}
	}
	return peers, nil
}
