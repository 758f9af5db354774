package service

import (
	"strings"
	"time"

	"matrimony-service/errs"
	"matrimony-service/model"

	"golang.org/x/crypto/bcrypt"
)

// ProfileInput carries everything a signup submits. Image holds relative
// upload paths already written to disk by the boundary layer; the service
// only records them.
type ProfileInput struct {
	FullName    string
	Email       string
	Phone       string
	Country     string
	State       string
	City        string
	Address     string
	Diet        string
	Complexion  string
	Height      string
	Weight      string
	Images      []string
	Video       string
	Username    string
	Password    string
	Manglik     string
	DateOfBirth string
	Profession  string
	Package     string
	Education   string
	Likes       string
	Dislikes    string
	OtpSecret   string
}

// Candidate is one opposite-kind profile on a card, annotated with the
// request state as seen by the card's owner.
type Candidate struct {
	model.Profile
	Status Status `json:"status"`
	Role   Role   `json:"role"`
}

// ProfileCard is the read-side join the profile view renders.
type ProfileCard struct {
	Profile    model.Profile `json:"profile"`
	Candidates []Candidate   `json:"candidates"`
}

// CreateProfile registers a new bride or groom. Usernames are unique across
// the kind's table and the password is stored as a bcrypt hash, never as
// cleartext. Age is derived from the date of birth when present.
func (s *Service) CreateProfile(kind model.Kind, in ProfileInput) (*model.Profile, error) {
	if !kind.Valid() {
		return nil, errs.Newf(errs.CodeInvalidArgument, "unknown profile kind %q", kind)
	}
	if in.Username == "" || in.Password == "" || in.FullName == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "full_name, username and password are required")
	}

	var count int64
	if err := s.db.Table(kind.Table()).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "check username")
	}
	if count > 0 {
		return nil, errs.Newf(errs.CodeAlreadyExists, "username %q is already registered", in.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 14)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "hash password")
	}

	p := &model.Profile{
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		Country:     in.Country,
		State:       in.State,
		City:        in.City,
		Address:     in.Address,
		Diet:        in.Diet,
		Complexion:  in.Complexion,
		Height:      in.Height,
		Weight:      in.Weight,
		Image:       strings.Join(in.Images, ","),
		Video:       in.Video,
		Username:    in.Username,
		Password:    string(hash),
		Manglik:     in.Manglik,
		DateOfBirth: in.DateOfBirth,
		Age:         ageFromDOB(in.DateOfBirth, time.Now()),
		Profession:  in.Profession,
		Package:     in.Package,
		Education:   in.Education,
		Likes:       in.Likes,
		Dislikes:    in.Dislikes,
		OtpSecret:   in.OtpSecret,
	}
	if err := s.db.Table(kind.Table()).Create(p).Error; err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "insert profile")
	}
	return p, nil
}

// Authenticate verifies a username/password pair against the kind's table.
func (s *Service) Authenticate(kind model.Kind, username, password string) (*model.Profile, error) {
	if !kind.Valid() {
		return nil, errs.Newf(errs.CodeInvalidArgument, "unknown profile kind %q", kind)
	}
	if username == "" || password == "" {
		return nil, errs.New(errs.CodeInvalidArgument, "username and password are required")
	}

	p, err := s.findProfile(kind, username)
	if err != nil {
		if errs.Code(err) == errs.CodeNotFound {
			return nil, errs.New(errs.CodeUnauthorized, "invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)); err != nil {
		return nil, errs.New(errs.CodeUnauthorized, "invalid username or password")
	}
	return p, nil
}

// Profile loads a single profile by kind and username.
func (s *Service) Profile(kind model.Kind, username string) (*model.Profile, error) {
	if !kind.Valid() {
		return nil, errs.Newf(errs.CodeInvalidArgument, "unknown profile kind %q", kind)
	}
	return s.findProfile(kind, username)
}

// ProfileCard assembles the viewer's profile plus every opposite-kind
// candidate annotated with the request status and the viewer's role in it.
// One requests query serves the whole card; the join runs in memory keyed by
// the counterpart username, mirroring StatusFor's semantics per candidate.
func (s *Service) ProfileCard(username string, kind model.Kind) (*ProfileCard, error) {
	owner, err := s.Profile(kind, username)
	if err != nil {
		return nil, err
	}

	var pool []model.Profile
	if err := s.db.Table(kind.Opposite().Table()).Order("id asc").Find(&pool).Error; err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "list candidates")
	}

	var reqs []model.ConnectionRequest
	if err := s.db.Where("sender = ? OR receiver = ?", username, username).Find(&reqs).Error; err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "list requests")
	}

	type pairState struct {
		status Status
		role   Role
	}
	states := make(map[string]pairState, len(reqs))
	for _, req := range reqs {
		if req.Sender == username {
			states[req.Receiver] = pairState{Status(req.Status), RoleSender}
		} else {
			states[req.Sender] = pairState{Status(req.Status), RoleReceiver}
		}
	}

	card := &ProfileCard{Profile: *owner, Candidates: make([]Candidate, 0, len(pool))}
	for _, p := range pool {
		c := Candidate{Profile: p, Status: StatusNone, Role: RoleNone}
		if st, ok := states[p.Username]; ok {
			c.Status = st.status
			c.Role = st.role
		}
		card.Candidates = append(card.Candidates, c)
	}
	return card, nil
}

// SearchProfiles backs the chatbot's "brides from <city> age <a> to <b>"
// queries.
func (s *Service) SearchProfiles(kind model.Kind, city string, ageMin, ageMax int) ([]model.Profile, error) {
	if !kind.Valid() {
		return nil, errs.Newf(errs.CodeInvalidArgument, "unknown profile kind %q", kind)
	}
	var out []model.Profile
	err := s.db.Table(kind.Table()).
		Where("city = ? AND age BETWEEN ? AND ?", city, ageMin, ageMax).
		Order("age asc").
		Find(&out).Error
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "search profiles")
	}
	return out, nil
}

// ListProfiles returns a whole pool, oldest first. Admin surface only.
func (s *Service) ListProfiles(kind model.Kind) ([]model.Profile, error) {
	if !kind.Valid() {
		return nil, errs.Newf(errs.CodeInvalidArgument, "unknown profile kind %q", kind)
	}
	var out []model.Profile
	if err := s.db.Table(kind.Table()).Order("id asc").Find(&out).Error; err != nil {
		return nil, errs.Wrap(err, errs.CodeStorage, "list profiles")
	}
	return out, nil
}

// SetOtpEnabled flips the 2FA flag after a successful verify/disable.
func (s *Service) SetOtpEnabled(kind model.Kind, username string, enabled bool) error {
	res := s.db.Table(kind.Table()).Where("username = ?", username).Update("otp_enabled", enabled)
	if res.Error != nil {
		return errs.Wrap(res.Error, errs.CodeStorage, "update otp flag")
	}
	if res.RowsAffected == 0 {
		return errs.Newf(errs.CodeNotFound, "%s profile %q not found", kind, username)
	}
	return nil
}

func ageFromDOB(dob string, now time.Time) int {
	b, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
