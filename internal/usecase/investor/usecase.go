package investor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"microfinance-backoffice/internal/domain/actor"
	domainInvestor "microfinance-backoffice/internal/domain/investor"
	"microfinance-backoffice/internal/domain/notification"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/pkg/id"
)

var (
	ErrInvalidInput = errors.New("invalid registration input")
	// ErrEmailTaken also covers duplicate usernames.
	ErrEmailTaken = errors.New("email or username already registered")
)

const resetTokenTTL = time.Hour

var reEmail = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Usecase struct {
	investors domainInvestor.Repository
	uow       uow.UnitOfWork
	pub       notification.Publisher
	now       func() time.Time
}

func NewUsecase(investors domainInvestor.Repository, tx uow.UnitOfWork, pub notification.Publisher) *Usecase {
	return &Usecase{investors: investors, uow: tx, pub: pub, now: func() time.Time { return time.Now().UTC() }}
}

type RegisterInput struct {
	FirstName         string `json:"first_name"`
	Surname           string `json:"surname"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Phone             string `json:"phone"`
	IDNumber          string `json:"id_number"`
	Address           string `json:"address"`
	NextOfKin         string `json:"next_of_kin"`
	KinPhone          string `json:"kin_phone"`
	ResidenceProofRef string `json:"residence_proof_ref"`
	IDDocumentRef     string `json:"id_document_ref"`
	FacePhotoRef      string `json:"face_photo_ref"`
}

type InvestorDTO struct {
	InvestorID     string    `json:"investor_id"`
	FirstName      string    `json:"first_name"`
	Surname        string    `json:"surname"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	EmailConfirmed bool      `json:"email_confirmed"`
	IsApproved     bool      `json:"is_approved"`
	IsRejected     bool      `json:"is_rejected"`
	Balance        float64   `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// Register opens an unconfirmed, unapproved account and emits a
// confirmation-requested event carrying the token for the mail relay.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*InvestorDTO, error) {
	if in.Username == "" || in.Password == "" || !reEmail.MatchString(in.Email) {
		return nil, ErrInvalidInput
	}

	inv := &domainInvestor.Investor{
		InvestorID:        id.NewID32(),
		FirstName:         in.FirstName,
		Surname:           in.Surname,
		Username:          in.Username,
		Email:             in.Email,
		Phone:             in.Phone,
		IDNumber:          in.IDNumber,
		Address:           in.Address,
		NextOfKin:         in.NextOfKin,
		KinPhone:          in.KinPhone,
		ResidenceProofRef: in.ResidenceProofRef,
		IDDocumentRef:     in.IDDocumentRef,
		FacePhotoRef:      in.FacePhotoRef,
		ConfirmationToken: id.NewToken(),
	}
	if err := inv.SetPassword(in.Password); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Investors.GetByEmail(ctx, in.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.Investors.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: inv.ID,
		Kind:       "investor.confirmation_requested",
		EntityID:   inv.InvestorID,
		Message:    inv.ConfirmationToken,
		OccurredAt: u.now(),
	})
	return toDTO(inv), nil
}

// ConfirmEmail consumes a confirmation token.
func (u *Usecase) ConfirmEmail(ctx context.Context, token string) (*InvestorDTO, error) {
	var dto *InvestorDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investors.GetByConfirmationToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrBadToken
			}
			return err
		}
		inv.EmailConfirmed = true
		inv.ConfirmationToken = ""
		if err := r.Investors.Save(ctx, inv); err != nil {
			return err
		}
		dto = toDTO(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ResendConfirmation rotates the token for an unconfirmed account and
// re-emits the confirmation event. Unknown emails return ErrNotFound.
func (u *Usecase) ResendConfirmation(ctx context.Context, email string) error {
	var inv *domainInvestor.Investor
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		got, err := r.Investors.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrNotFound
			}
			return err
		}
		if got.EmailConfirmed {
			return domainInvestor.ErrBadToken
		}
		got.ConfirmationToken = id.NewToken()
		if err := r.Investors.Save(ctx, got); err != nil {
			return err
		}
		inv = got
		return nil
	})
	if err != nil {
		return err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: inv.ID,
		Kind:       "investor.confirmation_requested",
		EntityID:   inv.InvestorID,
		Message:    inv.ConfirmationToken,
		OccurredAt: u.now(),
	})
	return nil
}

// RequestPasswordReset issues a one-hour reset token. Unknown emails succeed
// silently so the endpoint does not leak which addresses exist.
func (u *Usecase) RequestPasswordReset(ctx context.Context, email string) error {
	var inv *domainInvestor.Investor
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		got, err := r.Investors.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		expiry := u.now().Add(resetTokenTTL)
		got.ResetToken = id.NewToken()
		got.ResetTokenExpiry = &expiry
		if err := r.Investors.Save(ctx, got); err != nil {
			return err
		}
		inv = got
		return nil
	})
	if err != nil || inv == nil {
		return err
	}

	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: inv.ID,
		Kind:       "investor.password_reset_requested",
		EntityID:   inv.InvestorID,
		Message:    inv.ResetToken,
		OccurredAt: u.now(),
	})
	return nil
}

// ResetPassword consumes a live reset token and sets the new password.
func (u *Usecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investors.GetByResetToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrBadToken
			}
			return err
		}
		if inv.ResetTokenExpiry == nil || u.now().After(*inv.ResetTokenExpiry) {
			return domainInvestor.ErrBadToken
		}
		if err := inv.SetPassword(newPassword); err != nil {
			return err
		}
		inv.ResetToken = ""
		inv.ResetTokenExpiry = nil
		return r.Investors.Save(ctx, inv)
	})
}

// Approve clears the investor's KYC gate. Admin only.
func (u *Usecase) Approve(ctx context.Context, investorID string, role actor.Role) (*InvestorDTO, error) {
	return u.decide(ctx, investorID, role, true)
}

// Reject marks the application rejected. Admin only.
func (u *Usecase) Reject(ctx context.Context, investorID string, role actor.Role) (*InvestorDTO, error) {
	return u.decide(ctx, investorID, role, false)
}

func (u *Usecase) decide(ctx context.Context, investorID string, role actor.Role, approve bool) (*InvestorDTO, error) {
	if !role.IsAdmin() {
		return nil, domainInvestor.ErrNotEligible
	}
	var dto *InvestorDTO
	var internalID uint64

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investors.GetByInvestorID(ctx, investorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainInvestor.ErrNotFound
			}
			return err
		}
		inv.IsApproved = approve
		inv.IsRejected = !approve
		if err := r.Investors.Save(ctx, inv); err != nil {
			return err
		}
		verdict := "approved"
		if !approve {
			verdict = "rejected"
		}
		n := &notification.Notification{
			InvestorID: inv.ID,
			Message:    fmt.Sprintf("Your account has been %s", verdict),
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}
		internalID = inv.ID
		dto = toDTO(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := "investor.approved"
	if !approve {
		kind = "investor.rejected"
	}
	notification.BestEffort(ctx, u.pub, notification.Event{
		InvestorID: internalID,
		Kind:       kind,
		EntityID:   investorID,
		OccurredAt: u.now(),
	})
	return dto, nil
}

// ListPending feeds the admin KYC queue.
func (u *Usecase) ListPending(ctx context.Context) ([]InvestorDTO, error) {
	items, err := u.investors.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InvestorDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

func toDTO(inv *domainInvestor.Investor) *InvestorDTO {
	return &InvestorDTO{
		InvestorID:     inv.InvestorID,
		FirstName:      inv.FirstName,
		Surname:        inv.Surname,
		Username:       inv.Username,
		Email:          inv.Email,
		Phone:          inv.Phone,
		EmailConfirmed: inv.EmailConfirmed,
		IsApproved:     inv.IsApproved,
		IsRejected:     inv.IsRejected,
		Balance:        inv.Balance,
		CreatedAt:      inv.CreatedAt,
	}
}
