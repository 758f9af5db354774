package controller

import (
	"matrimony-service/errs"
	"matrimony-service/model"
	"matrimony-service/service"

	"github.com/gofiber/fiber/v2"
)

type MessageInput struct {
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
	RoomID   string `json:"room_id"`
}

// MessageSave appends one chat line. The sender is always the authenticated
// caller; a missing room id falls back to the room derived from the pair, so
// honest clients need not compute it themselves.
func MessageSave(c *fiber.Ctx) error {
	in := new(MessageInput)
	if err := c.BodyParser(in); err != nil {
		return fail(c, errs.New(errs.CodeInvalidArgument, "invalid request body"))
	}

	username, kind := claimsOf(c)
	if in.RoomID == "" {
		in.RoomID = service.RoomID(username, in.Receiver)
	}

	// Messages reference profiles by username, so the receiver must exist
	// in the opposite pool, same as a connection request.
	if in.Receiver != "" {
		if _, err := svc.Profile(model.Kind(kind).Opposite(), in.Receiver); err != nil {
			return fail(c, err)
		}
	}

	msg, err := svc.AppendMessage(username, in.Receiver, in.Message, in.RoomID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, msg)
}

// MessageList returns the room history between the caller and the other
// party, oldest first. The caller is always one side of the pair; history of
// foreign pairs is not readable.
func MessageList(c *fiber.Ctx) error {
	username, _ := claimsOf(c)

	other := c.Query("with")
	if other == "" {
		// legacy query shape: explicit sender/receiver, caller must be one
		sender, receiver := c.Query("sender"), c.Query("receiver")
		if sender == "" || receiver == "" {
			return fail(c, errs.New(errs.CodeInvalidArgument, "room participants are required"))
		}
		switch username {
		case sender:
			other = receiver
		case receiver:
			other = sender
		default:
			return fail(c, errs.New(errs.CodeUnauthorized, "caller must be a conversation participant"))
		}
	}

	roomID := c.Query("room_id")
	if roomID == "" {
		roomID = service.RoomID(username, other)
	}

	msgs, err := svc.ListMessages(roomID, username, other)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"room_id":  roomID,
		"messages": msgs,
	})
}
