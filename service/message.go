package service

import (
	"fmt"
	"time"

	"matrimony-service/errs"
	"matrimony-service/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// RoomID derives the conversation room for an unordered username pair. Both
// orderings map to the same room, so clients cannot smuggle messages into a
// foreign conversation by inventing room names.
func RoomID(a, b string) string {
	return fmt.Sprintf("room-%s", model.PairKey(a, b))
}

// AppendMessage stamps and stores one chat line. All four fields are
// required; nothing is written on a validation failure. Delivery to live
// clients is the socket layer's concern, not this write path's.
func (s *Service) AppendMessage(sender, receiver, body, roomID string) (*model.Message, error) {
	if sender == "" || receiver == "" || body == "" || roomID == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "sender, receiver, message and room_id are required")
	}

	now := time.Now()
	msg := &model.Message{
		Sender:   sender,
		Receiver: receiver,
		Body:     body,
		RoomID:   roomID,
		Date:     now.Format(dateLayout),
		Time:     now.Format(timeLayout),
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "insert message")
	}
	return msg, nil
}

// ListMessages returns the room's history between the two parties in either
// direction, oldest first. Date and time are lexically sortable text, so the
// string ordering is chronological.
func (s *Service) ListMessages(roomID, a, b string) ([]model.Message, error) {
	if roomID == "" || a == "" || b == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "room_id, sender and receiver are required")
	}

	var msgs []model.Message
	err := s.db.
		Where("room_id = ? AND ((sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?))",
			roomID, a, b, b, a).
		Order("date asc, time asc, id asc").
		Find(&msgs).Error
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "list messages")
	}
	return msgs, nil
}
