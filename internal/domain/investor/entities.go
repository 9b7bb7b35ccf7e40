package investor

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("investor not found")
	// ErrNotEligible means the investor has not cleared onboarding: email
	// unconfirmed, KYC not approved, or rejected. Gates investing and loans.
	ErrNotEligible = errors.New("investor not eligible")
	ErrBadToken    = errors.New("invalid or expired token")
)

// Investor is the onboarding/KYC aggregate. File uploads are stored
// elsewhere; only opaque refs live here.
type Investor struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	InvestorID string `gorm:"size:32;uniqueIndex:ux_investors_public_id" json:"investor_id"`

	FirstName    string `gorm:"size:80" json:"first_name"`
	Surname      string `gorm:"size:80" json:"surname"`
	Username     string `gorm:"size:80;uniqueIndex:ux_investors_username" json:"username"`
	Email        string `gorm:"size:120;uniqueIndex:ux_investors_email" json:"email"`
	PasswordHash string `gorm:"size:200;column:password_hash" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	IDNumber  string `gorm:"size:50;column:id_number" json:"id_number"`
	Address   string `gorm:"size:255" json:"address"`
	NextOfKin string `gorm:"size:100;column:next_of_kin" json:"next_of_kin"`
	KinPhone  string `gorm:"size:20;column:kin_phone" json:"kin_phone"`

	ResidenceProofRef string `gorm:"size:200;column:residence_proof_ref" json:"residence_proof_ref,omitempty"`
	IDDocumentRef     string `gorm:"size:200;column:id_document_ref" json:"id_document_ref,omitempty"`
	FacePhotoRef      string `gorm:"size:200;column:face_photo_ref" json:"face_photo_ref,omitempty"`

	EmailConfirmed    bool       `gorm:"column:email_confirmed;default:false" json:"email_confirmed"`
	ConfirmationToken string     `gorm:"size:100;column:confirmation_token" json:"-"`
	ResetToken        string     `gorm:"size:100;column:reset_token" json:"-"`
	ResetTokenExpiry  *time.Time `gorm:"column:reset_token_expiry" json:"-"`

	IsApproved bool    `gorm:"column:is_approved;default:false" json:"is_approved"`
	IsRejected bool    `gorm:"column:is_rejected;default:false" json:"is_rejected"`
	Balance    float64 `gorm:"type:decimal(18,2);default:0" json:"balance"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Investor) TableName() string { return "investors" }

func (i *Investor) SetPassword(plain string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	i.PasswordHash = string(h)
	return nil
}

func (i *Investor) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(i.PasswordHash), []byte(plain)) == nil
}

// Eligible reports whether the investor may create investments or loans.
func (i *Investor) Eligible() bool {
	return i.EmailConfirmed && i.IsApproved && !i.IsRejected
}
