package controller

import (
	"matrimony-service/errs"
	"matrimony-service/model"

	"github.com/gofiber/fiber/v2"
)

// ProfileCard serves the card view: the caller's own profile plus every
// opposite-kind candidate annotated with the request status and the caller's
// role in it. Clients re-hit this endpoint on every update_request hint.
func ProfileCard(c *fiber.Ctx) error {
	kind := model.Kind(c.Params("kind"))
	target := c.Params("username")

	// Usernames are only unique within a pool, so owning the name in one
	// table grants nothing in the other; the kind claim must match too.
	username, viewerKind := claimsOf(c)
	if target != username || model.Kind(viewerKind) != kind {
		return fail(c, errs.New(errs.CodeUnauthorized, "a profile card is only visible to its owner"))
	}

	card, err := svc.ProfileCard(target, kind)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, card)
}

// ProfileFull serves the complete profile of a candidate to a signed-in
// viewer of the opposite kind.
func ProfileFull(c *fiber.Ctx) error {
	kind := model.Kind(c.Params("kind"))
	target := c.Params("username")

	_, viewerKind := claimsOf(c)
	if !kind.Valid() || model.Kind(viewerKind).Opposite() != kind {
		return fail(c, errs.New(errs.CodeUnauthorized, "complete profiles are visible to the opposite kind only"))
	}

	profile, err := svc.Profile(kind, target)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profile)
}

// AdminProfiles lists a whole pool; RBAC-guarded.
func AdminProfiles(c *fiber.Ctx) error {
	kind := model.Kind(c.Query("kind", string(model.KindBride)))

	profiles, err := svc.ListProfiles(kind)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profiles)
}
