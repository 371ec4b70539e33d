package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nira-system/backend/internal/domain"
	"github.com/nira-system/backend/internal/repository"
)

// memCitizenRepository is an in-memory repository.Citizens used by the
// service tests. It mirrors the store contract: a unique NIN constraint
// surfacing as domain.ErrDuplicateEntry, and an approved-only lookup that
// reports pending and rejected rows as domain.ErrNotFound.
type memCitizenRepository struct {
	mu      sync.Mutex
	rows    map[string]*domain.Citizen
	nextID  int64
	created int

	// dupFailures fails the next N Creates with domain.ErrDuplicateEntry,
	// simulating a racing insert of the same candidate.
	dupFailures int
	// existsAlways forces ExistsByNIN to report true for any candidate.
	existsAlways bool

	// lookupErr, when set, fails GetApprovedByNIN with that error.
	lookupErr error
	// approvedLookups counts GetApprovedByNIN calls.
	approvedLookups int
}

func newMemCitizenRepository() *memCitizenRepository {
	return &memCitizenRepository{rows: map[string]*domain.Citizen{}}
}

func (r *memCitizenRepository) Create(_ context.Context, citizen *domain.Citizen) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dupFailures > 0 {
		r.dupFailures--
		return domain.ErrDuplicateEntry
	}
	if _, ok := r.rows[citizen.NIN]; ok {
		return domain.ErrDuplicateEntry
	}

	r.nextID++
	r.created++

	stored := *citizen
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.rows[citizen.NIN] = &stored

	return nil
}

func (r *memCitizenRepository) ExistsByNIN(_ context.Context, nin string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsAlways {
		return true, nil
	}

	_, ok := r.rows[nin]

	return ok, nil
}

func (r *memCitizenRepository) GetApprovedByNIN(_ context.Context, nin string) (*domain.Citizen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.approvedLookups++

	if r.lookupErr != nil {
		return nil, r.lookupErr
	}

	citizen, ok := r.rows[nin]
	if !ok || citizen.Status != domain.StatusApproved {
		return nil, domain.ErrNotFound
	}

	copied := *citizen

	return &copied, nil
}

func (r *memCitizenRepository) GetByNIN(_ context.Context, nin string) (*domain.Citizen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	citizen, ok := r.rows[nin]
	if !ok {
		return nil, domain.ErrNotFound
	}

	copied := *citizen

	return &copied, nil
}

func (r *memCitizenRepository) UpdateStatus(_ context.Context, nin string, status domain.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	citizen, ok := r.rows[nin]
	if !ok {
		return 0, nil
	}

	citizen.Status = status
	now := time.Now()
	citizen.UpdatedAt = &now

	return 1, nil
}

func (r *memCitizenRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.rows)), nil
}

func (r *memCitizenRepository) CountByStatus(_ context.Context, status domain.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, citizen := range r.rows {
		if citizen.Status == status {
			n++
		}
	}

	return n, nil
}

func (r *memCitizenRepository) CountDistinctApprovedRegions(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regions := map[string]struct{}{}
	for _, citizen := range r.rows {
		if citizen.Status == domain.StatusApproved {
			regions[citizen.Region] = struct{}{}
		}
	}

	return int64(len(regions)), nil
}

func (r *memCitizenRepository) RegionDistribution(_ context.Context) ([]repository.RegionCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byRegion := map[string]int64{}
	for _, citizen := range r.rows {
		if citizen.Status == domain.StatusApproved {
			byRegion[citizen.Region]++
		}
	}

	out := make([]repository.RegionCount, 0, len(byRegion))
	for region, count := range byRegion {
		out = append(out, repository.RegionCount{Region: region, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	return out, nil
}

func (r *memCitizenRepository) MonthlyRegistrations(_ context.Context, _ int) ([]repository.MonthCount, error) {
	return nil, nil
}

func (r *memCitizenRepository) GenderDistribution(_ context.Context) ([]repository.GenderCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byGender := map[string]int64{}
	for _, citizen := range r.rows {
		if citizen.Status == domain.StatusApproved {
			byGender[citizen.Gender]++
		}
	}

	out := make([]repository.GenderCount, 0, len(byGender))
	for gender, count := range byGender {
		out = append(out, repository.GenderCount{Gender: gender, Count: count})
	}

	return out, nil
}

// snapshotStatuses returns nin -> status for asserting the store was or was
// not touched by an operation.
func (r *memCitizenRepository) snapshotStatuses() map[string]domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]domain.Status, len(r.rows))
	for nin, citizen := range r.rows {
		out[nin] = citizen.Status
	}

	return out
}

// memVerificationLogs is an in-memory repository.VerificationLogs. Setting
// failErr makes every Create fail, for asserting that audit failures never
// leak into verification outcomes.
type memVerificationLogs struct {
	mu      sync.Mutex
	entries []domain.VerificationLog

	failErr error
}

func (r *memVerificationLogs) Create(_ context.Context, entry *domain.VerificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failErr != nil {
		return r.failErr
	}

	stored := *entry
	stored.ID = int64(len(r.entries) + 1)
	stored.CreatedAt = time.Now()
	r.entries = append(r.entries, stored)

	return nil
}

func (r *memVerificationLogs) CountToday(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.entries)), nil
}

func (r *memVerificationLogs) Recent(_ context.Context, limit int) ([]domain.VerificationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit > len(r.entries) {
		limit = len(r.entries)
	}

	// newest first, like the store's ORDER BY created_at DESC
	out := make([]domain.VerificationLog, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		out = append(out, r.entries[i])
	}

	return out, nil
}

func (r *memVerificationLogs) all() []domain.VerificationLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.VerificationLog, len(r.entries))
	copy(out, r.entries)

	return out
}

type memIDCardLogs struct {
	mu      sync.Mutex
	entries []domain.IDCardLog
}

func (r *memIDCardLogs) Create(_ context.Context, entry *domain.IDCardLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)

	return nil
}

func (r *memIDCardLogs) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.entries)), nil
}

// memAdmins is an in-memory repository.Admins keyed by username.
type memAdmins struct {
	byUsername map[string]*domain.Admin
}

func (r *memAdmins) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	admin, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}

	copied := *admin

	return &copied, nil
}

// recordingNotifier captures status notifications, optionally failing each
// call to exercise the best-effort delivery contract.
type recordingNotifier struct {
	mu     sync.Mutex
	sent   []StatusNotification
	sendFn func(StatusNotification) error
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, input StatusNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.sendFn != nil {
		if err := n.sendFn(input); err != nil {
			return err
		}
	}
	n.sent = append(n.sent, input)

	return nil
}

func (n *recordingNotifier) notifications() []StatusNotification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]StatusNotification, len(n.sent))
	copy(out, n.sent)

	return out
}

var errStoreDown = fmt.Errorf("store unavailable")
