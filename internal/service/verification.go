package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/repository"
	"github.com/nira-system/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type verificationService struct {
	citizenRepository repository.Citizens
	logRepository     repository.VerificationLogs
}

func newVerificationService(
	citizenRepository repository.Citizens,
	logRepository repository.VerificationLogs,
) *verificationService {
	return &verificationService{
		citizenRepository: citizenRepository,
		logRepository:     logRepository,
	}
}

// VerifyContext carries request-scoped caller attributes used only as audit
// annotations, never for authorization.
type VerifyContext struct {
	Type       domain.VerificationType
	VerifierID string
	IPAddress  string
	UserAgent  string
}

type VerificationOutcome struct {
	Found bool
	// Citizen is sanitized: address and contact details are stripped.
	Citizen        *domain.Citizen
	VerificationID string
}

// Verify looks up a NIN and audit-logs the attempt. Pending and rejected
// applications are indistinguishable from unknown NINs in the outcome.
func (s *verificationService) Verify(ctx context.Context, rawInput string, caller VerifyContext) (*VerificationOutcome, error) {
	nin := domain.NormalizeNIN(rawInput)
	if !domain.ValidNIN(nin) {
		return nil, ErrInvalidNINFormat
	}

	citizen, err := s.citizenRepository.GetApprovedByNIN(ctx, nin)
	if errors.Is(err, domain.ErrNotFound) {
		s.record(ctx, nin, caller, domain.VerificationNotFound)
		return &VerificationOutcome{Found: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get approved citizen by nin failed: %w", err)
	}

	s.record(ctx, nin, caller, domain.VerificationSuccess)

	return &VerificationOutcome{
		Found:          true,
		Citizen:        sanitize(citizen),
		VerificationID: newVerificationID(),
	}, nil
}

// record appends one audit entry. A logging failure must never change the
// outcome returned to the caller, so it only reaches the operational log.
func (s *verificationService) record(ctx context.Context, nin string, caller VerifyContext, result domain.VerificationResult) {
	entry := &domain.VerificationLog{
		NIN:        nin,
		VerifierID: nullString(caller.VerifierID),
		Type:       caller.Type,
		IPAddress:  nullString(caller.IPAddress),
		UserAgent:  nullString(caller.UserAgent),
		Result:     result,
	}

	if err := s.logRepository.Create(ctx, entry); err != nil {
		logger.Error("record verification attempt failed",
			zap.String("nin", nin),
			zap.String("result", string(result)),
			zap.Error(err),
		)
	}
}

func sanitize(citizen *domain.Citizen) *domain.Citizen {
	sanitized := *citizen
	sanitized.Address = ""
	sanitized.Phone = nullString("")
	sanitized.Email = nullString("")
	sanitized.BirthCertificate = nullString("")
	sanitized.Passport = nullString("")
	sanitized.ResidencyProof = nullString("")

	return &sanitized
}

func newVerificationID() string {
	return "VER_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
