package controller

import (
	"encoding/json"

	"matrimony-service/errs"
	"matrimony-service/event"
	"matrimony-service/model"
	"matrimony-service/socketio"

	"github.com/gofiber/fiber/v2"
)

type RequestInput struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// notifyRequest runs the fan-out for a committed request mutation: the
// update_request hint to both participants' socket rooms, then the analytics
// event. Never called on a failed mutation.
func notifyRequest(action, sender, receiver string) {
	socketio.NotifyRequestUpdate(sender, receiver)

	payload, _ := json.Marshal(socketio.RequestUpdate{Sender: sender, Receiver: receiver})
	event.Emit("analytics", action, payload, true)
}

func parseRequestInput(c *fiber.Ctx) (*RequestInput, error) {
	in := new(RequestInput)
	if err := c.BodyParser(in); err != nil {
		return nil, errs.New(errs.CodeInvalidArgument, "invalid request body")
	}
	if in.Sender == "" || in.Receiver == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "sender and receiver are required")
	}
	return in, nil
}

// RequestSend creates a Waiting request. The caller must be the sender, and
// the receiver must exist in the opposite pool. Requests reference profiles
// by username, so existence is checked here rather than trusted.
func RequestSend(c *fiber.Ctx) error {
	in, err := parseRequestInput(c)
	if err != nil {
		return fail(c, err)
	}

	username, kind := claimsOf(c)
	if in.Sender != username {
		return fail(c, errs.New(errs.CodeUnauthorized, "only the sender may send a request"))
	}
	if _, err := svc.Profile(model.Kind(kind).Opposite(), in.Receiver); err != nil {
		return fail(c, err)
	}

	if err := svc.SendRequest(in.Sender, in.Receiver); err != nil {
		return fail(c, err)
	}

	notifyRequest(event.ActionRequestSent, in.Sender, in.Receiver)
	return ok(c, nil)
}

// RequestApprove flips a Waiting request to Approved. Only the receiver of
// the original request may approve it, and the (sender, receiver) ordering
// must match the stored record.
func RequestApprove(c *fiber.Ctx) error {
	in, err := parseRequestInput(c)
	if err != nil {
		return fail(c, err)
	}

	username, _ := claimsOf(c)
	if in.Receiver != username {
		return fail(c, errs.New(errs.CodeUnauthorized, "only the receiver may approve a request"))
	}

	if err := svc.ApproveRequest(in.Sender, in.Receiver); err != nil {
		return fail(c, err)
	}

	notifyRequest(event.ActionRequestApproved, in.Sender, in.Receiver)
	return ok(c, nil)
}

// RequestCancel withdraws a pending request; sender only, exact ordering.
func RequestCancel(c *fiber.Ctx) error {
	in, err := parseRequestInput(c)
	if err != nil {
		return fail(c, err)
	}

	username, _ := claimsOf(c)
	if in.Sender != username {
		return fail(c, errs.New(errs.CodeUnauthorized, "only the sender may cancel a request"))
	}

	if err := svc.CancelRequest(in.Sender, in.Receiver); err != nil {
		return fail(c, err)
	}

	notifyRequest(event.ActionRequestCancelled, in.Sender, in.Receiver)
	return ok(c, nil)
}

// RequestDelete severs the connection in either direction; either participant
// may unlink.
func RequestDelete(c *fiber.Ctx) error {
	in, err := parseRequestInput(c)
	if err != nil {
		return fail(c, err)
	}

	username, _ := claimsOf(c)
	if in.Sender != username && in.Receiver != username {
		return fail(c, errs.New(errs.CodeUnauthorized, "only a participant may delete a request"))
	}

	if err := svc.DeleteRequest(in.Sender, in.Receiver); err != nil {
		return fail(c, err)
	}

	notifyRequest(event.ActionRequestDeleted, in.Sender, in.Receiver)
	return ok(c, nil)
}

// RequestStatus reports the pair state from the caller's perspective.
func RequestStatus(c *fiber.Ctx) error {
	candidate := c.Query("candidate")
	if candidate == "" {
		return fail(c, errs.New(errs.CodeInvalidArgument, "candidate is required"))
	}

	username, _ := claimsOf(c)
	status, role, err := svc.StatusFor(username, candidate)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"status": status,
		"role":   role,
	})
}
