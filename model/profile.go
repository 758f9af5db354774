package model

import "time"

// Kind selects one of the two disjoint profile pools.
type Kind string

const (
	KindBride Kind = "bride"
	KindGroom Kind = "groom"
)

func (k Kind) Valid() bool {
	return k == KindBride || k == KindGroom
}

// Opposite returns the candidate pool for a viewer of this kind.
func (k Kind) Opposite() Kind {
	if k == KindBride {
		return KindGroom
	}
	return KindBride
}

// Table returns the physical table backing this kind.
func (k Kind) Table() string {
	if k == KindBride {
		return "bride_profiles"
	}
	return "groom_profiles"
}

// Profile is the shared matrimonial profile shape. Bride and groom profiles
// are structurally identical but live in separate tables; the username is the
// stable identity every relation references and is never renamed.
type Profile struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`

	FullName    string `gorm:"not null" json:"full_name"`
	Email       string `json:"email_id"`
	Phone       string `json:"phone_number"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Diet        string `json:"diet"`
	Complexion  string `json:"complexion"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	Image       string `json:"image"` // comma-joined relative paths under the upload dir
	Video       string `json:"video"`
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	Password    string `gorm:"not null" json:"-"` // bcrypt hash
	Manglik     string `json:"manglik"`
	DateOfBirth string `json:"date_of_birth"`
	Age         int    `json:"age"`
	Profession  string `json:"profession"`
	Package     string `json:"package"`
	Education   string `json:"education"`
	Likes       string `json:"likes"`
	Dislikes    string `json:"dislikes"`

	OtpEnabled bool   `gorm:"default:false" json:"-"`
	OtpSecret  string `json:"-"`
}

type BrideProfile struct {
	Profile
}

func (BrideProfile) TableName() string { return KindBride.Table() }

type GroomProfile struct {
	Profile
}

func (GroomProfile) TableName() string { return KindGroom.Table() }
