package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/repository"
	"github.com/nira-system/backend/internal/storage"
	"github.com/nira-system/backend/pkg/logger"
	"github.com/nira-system/backend/pkg/pdf"

	"go.uber.org/zap"
)

type citizenService struct {
	citizenRepository   repository.Citizens
	idCardLogRepository repository.IDCardLogs
	files               storage.FileStore
	pdfGenerator        *pdf.Generator
	notifier            StatusNotifier
	maxNINAttempts      int
}

func newCitizenService(
	citizenRepository repository.Citizens,
	idCardLogRepository repository.IDCardLogs,
	files storage.FileStore,
	pdfGenerator *pdf.Generator,
	notifier StatusNotifier,
	ninConfig config.NINConfig,
) *citizenService {
	return &citizenService{
		citizenRepository:   citizenRepository,
		idCardLogRepository: idCardLogRepository,
		files:               files,
		pdfGenerator:        pdfGenerator,
		notifier:            notifier,
		maxNINAttempts:      ninConfig.MaxGenerationAttempts,
	}
}

type CreateCitizenInput struct {
	FullName string
	Gender   string
	DOB      string
	Region   string
	District string
	Address  string

	Phone string
	Email string

	Photo            string
	BirthCertificate string
	Passport         string
	ResidencyProof   string
}

func (i CreateCitizenInput) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"full_name", i.FullName},
		{"gender", i.Gender},
		{"dob", i.DOB},
		{"region", i.Region},
		{"district", i.District},
		{"address", i.Address},
	}

	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field}
		}
	}

	return nil
}

// Create registers a new citizen application. The record always starts in
// pending status under a freshly generated NIN.
func (s *citizenService) Create(ctx context.Context, input CreateCitizenInput) (string, error) {
	if err := input.validate(); err != nil {
		return "", err
	}

	citizen := &domain.Citizen{
		FullName:         input.FullName,
		Gender:           input.Gender,
		DOB:              input.DOB,
		Region:           input.Region,
		District:         input.District,
		Address:          input.Address,
		Phone:            nullString(input.Phone),
		Email:            nullString(input.Email),
		Photo:            nullString(input.Photo),
		BirthCertificate: nullString(input.BirthCertificate),
		Passport:         nullString(input.Passport),
		ResidencyProof:   nullString(input.ResidencyProof),
		Status:           domain.StatusPending,
	}

	// The pre-check keeps the common path to a single insert; the unique
	// index on nin is what actually guarantees uniqueness. A concurrent
	// insert of the same candidate surfaces as ErrDuplicateEntry and we
	// pick a new candidate.
	for attempt := 0; attempt < s.maxNINAttempts; attempt++ {
		nin, err := newNINCandidate()
		if err != nil {
			return "", fmt.Errorf("generate nin candidate failed: %w", err)
		}

		exists, err := s.citizenRepository.ExistsByNIN(ctx, nin)
		if err != nil {
			return "", fmt.Errorf("check nin existence failed: %w", err)
		}
		if exists {
			continue
		}

		citizen.NIN = nin

		err = s.citizenRepository.Create(ctx, citizen)
		if errors.Is(err, domain.ErrDuplicateEntry) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create citizen failed: %w", err)
		}

		return nin, nil
	}

	return "", ErrNINGenerationExhausted
}

func newNINCandidate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}

	return domain.FormatNIN(time.Now().Year(), int(n.Int64())), nil
}

// StatusUpdate reports the outcome of a transition attempt. Found false is
// a normal outcome meaning no citizen with that NIN exists.
type StatusUpdate struct {
	Found bool
}

// SetStatus applies an approve/reject decision. The caller role is an
// explicit parameter; there is no ambient session state.
func (s *citizenService) SetStatus(ctx context.Context, nin string, status domain.Status, role domain.Role) (*StatusUpdate, error) {
	if !role.CanReviewApplications() {
		return nil, ErrUnauthorized
	}

	if nin == "" || !status.Reviewable() {
		return nil, ErrInvalidParameters
	}

	affected, err := s.citizenRepository.UpdateStatus(ctx, nin, status)
	if err != nil {
		return nil, fmt.Errorf("update citizen status failed: %w", err)
	}

	if affected == 0 {
		return &StatusUpdate{Found: false}, nil
	}

	s.notifyStatusChanged(ctx, nin, status)

	return &StatusUpdate{Found: true}, nil
}

// notifyStatusChanged enqueues an applicant notification. Failures are
// logged operationally and never surface to the caller.
func (s *citizenService) notifyStatusChanged(ctx context.Context, nin string, status domain.Status) {
	if s.notifier == nil {
		return
	}

	citizen, err := s.citizenRepository.GetByNIN(ctx, nin)
	if err != nil {
		logger.Error("load citizen for status notification failed", zap.String("nin", nin), zap.Error(err))
		return
	}

	if !citizen.Email.Valid || citizen.Email.String == "" {
		return
	}

	err = s.notifier.NotifyStatusChanged(ctx, StatusNotification{
		NIN:      nin,
		Email:    citizen.Email.String,
		FullName: citizen.FullName,
		Status:   status,
	})
	if err != nil {
		logger.Error("enqueue status notification failed", zap.String("nin", nin), zap.Error(err))
	}
}

// IssueIDCard renders and stores an ID card PDF for an approved citizen and
// records the issuance. Returns the stored card reference.
func (s *citizenService) IssueIDCard(ctx context.Context, nin string, issuedBy string) (string, error) {
	citizen, err := s.citizenRepository.GetApprovedByNIN(ctx, nin)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrCitizenNotApproved
	}
	if err != nil {
		return "", fmt.Errorf("get approved citizen failed: %w", err)
	}

	card, err := s.pdfGenerator.GenerateIDCard(citizen, issuedBy)
	if err != nil {
		return "", fmt.Errorf("generate id card pdf failed: %w", err)
	}

	path, err := s.files.Save(ctx, "id_cards", ".pdf", bytes.NewReader(card))
	if err != nil {
		return "", fmt.Errorf("store id card failed: %w", err)
	}

	err = s.idCardLogRepository.Create(ctx, &domain.IDCardLog{
		NIN:      nin,
		IssuedBy: issuedBy,
		CardPath: path,
	})
	if err != nil {
		return "", fmt.Errorf("record id card issuance failed: %w", err)
	}

	return path, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
