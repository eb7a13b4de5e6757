package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/apperror"
)

// mockRepository implements Repository for testing
type mockRepository struct {
	patientExistsFunc    func(ctx context.Context, id uuid.UUID) (bool, error)
	doctorExistsFunc     func(ctx context.Context, id uuid.UUID) (bool, error)
	findActiveBySlotFunc func(ctx context.Context, doctorID uuid.UUID, date, slotTime string) (*Appointment, error)
	insertFunc           func(ctx context.Context, b booking) (*Detail, error)
	getDetailFunc        func(ctx context.Context, id uuid.UUID) (*Detail, error)
	cancelActiveFunc     func(ctx context.Context, id uuid.UUID) error
	listFunc             func(ctx context.Context, f Filters) ([]Detail, error)
	deleteAllFunc        func(ctx context.Context) (int64, error)
}

func (m *mockRepository) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.patientExistsFunc != nil {
		return m.patientExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockRepository) DoctorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.doctorExistsFunc != nil {
		return m.doctorExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockRepository) FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date, slotTime string) (*Appointment, error) {
	if m.findActiveBySlotFunc != nil {
		return m.findActiveBySlotFunc(ctx, doctorID, date, slotTime)
	}
	return nil, ErrAppointmentNotFound
}

func (m *mockRepository) Insert(ctx context.Context, b booking) (*Detail, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, b)
	}
	return detailFor(b), nil
}

func (m *mockRepository) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	if m.getDetailFunc != nil {
		return m.getDetailFunc(ctx, id)
	}
	return nil, ErrAppointmentNotFound
}

func (m *mockRepository) CancelActive(ctx context.Context, id uuid.UUID) error {
	if m.cancelActiveFunc != nil {
		return m.cancelActiveFunc(ctx, id)
	}
	return ErrAppointmentNotFound
}

func (m *mockRepository) List(ctx context.Context, f Filters) ([]Detail, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f)
	}
	return nil, nil
}

func (m *mockRepository) DeleteAll(ctx context.Context) (int64, error) {
	if m.deleteAllFunc != nil {
		return m.deleteAllFunc(ctx)
	}
	return 0, nil
}

func detailFor(b booking) *Detail {
	return &Detail{
		Appointment: Appointment{
			ID:        uuid.New(),
			PatientID: b.PatientID,
			DoctorID:  b.DoctorID,
			Date:      b.Date,
			Time:      b.Time,
			Reason:    b.Reason,
			Status:    StatusActive,
			CreatedAt: time.Now(),
		},
		PatientName:     "Ana Pérez",
		PatientEmail:    "ana@example.com",
		PatientPhone:    "5551234567",
		DoctorName:      "Dr. García",
		DoctorSpecialty: "Medicina General",
	}
}

func TestBook_Success(t *testing.T) {
	var inserted *booking
	repo := &mockRepository{
		insertFunc: func(ctx context.Context, b booking) (*Detail, error) {
			inserted = &b
			return detailFor(b), nil
		},
	}
	svc := NewService(repo)

	req := validRequest()
	req.Time = "9:00"

	detail, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if detail.Status != StatusActive {
		t.Errorf("Status = %q, want active", detail.Status)
	}
	if inserted == nil {
		t.Fatal("Insert was not called")
	}
	if inserted.Time != "09:00" {
		t.Errorf("inserted time = %q, want normalized 09:00", inserted.Time)
	}
	if detail.PatientName == "" || detail.DoctorSpecialty == "" {
		t.Error("booking result is missing joined display fields")
	}
}

func TestBook_PatientNotFound(t *testing.T) {
	repo := &mockRepository{
		patientExistsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Book(context.Background(), validRequest())
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0] != "patient_id" {
		t.Errorf("Fields = %v, want [patient_id]", appErr.Fields)
	}
}

func TestBook_DoctorNotFound(t *testing.T) {
	repo := &mockRepository{
		doctorExistsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Book(context.Background(), validRequest())
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0] != "doctor_id" {
		t.Errorf("Fields = %v, want [doctor_id]", appErr.Fields)
	}
}

func TestBook_ConflictFromPreCheck(t *testing.T) {
	insertCalled := false
	repo := &mockRepository{
		findActiveBySlotFunc: func(ctx context.Context, doctorID uuid.UUID, date, slotTime string) (*Appointment, error) {
			return &Appointment{ID: uuid.New(), Status: StatusActive}, nil
		},
		insertFunc: func(ctx context.Context, b booking) (*Detail, error) {
			insertCalled = true
			return detailFor(b), nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Book(context.Background(), validRequest())
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0] != "time" {
		t.Errorf("Fields = %v, want [time]", appErr.Fields)
	}
	if insertCalled {
		t.Error("Insert called despite occupied slot")
	}
}

func TestBook_ConflictFromUniqueViolation(t *testing.T) {
	// Pre-check sees a free slot, but a concurrent booking lands first and
	// the insert hits the unique index.
	repo := &mockRepository{
		insertFunc: func(ctx context.Context, b booking) (*Detail, error) {
			return nil, ErrSlotTaken
		},
	}
	svc := NewService(repo)

	_, err := svc.Book(context.Background(), validRequest())
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0] != "time" {
		t.Errorf("Fields = %v, want [time]", appErr.Fields)
	}
}

func TestBook_StorageFailureIsNotADomainOutcome(t *testing.T) {
	repo := &mockRepository{
		patientExistsFunc: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	svc := NewService(repo)

	_, err := svc.Book(context.Background(), validRequest())
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindStorage {
		t.Fatalf("err = %v, want storage kind", err)
	}
}

func TestCancel_Success(t *testing.T) {
	id := uuid.New()
	cancelledAt := time.Now()
	repo := &mockRepository{
		cancelActiveFunc: func(ctx context.Context, gotID uuid.UUID) error {
			if gotID != id {
				t.Errorf("CancelActive id = %s, want %s", gotID, id)
			}
			return nil
		},
		getDetailFunc: func(ctx context.Context, gotID uuid.UUID) (*Detail, error) {
			return &Detail{
				Appointment: Appointment{
					ID:          gotID,
					Status:      StatusCancelled,
					CancelledAt: &cancelledAt,
				},
			}, nil
		},
	}
	svc := NewService(repo)

	detail, err := svc.Cancel(context.Background(), id.String())
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if detail.Status != StatusCancelled {
		t.Errorf("Status = %q, want cancelled", detail.Status)
	}
	if detail.CancelledAt == nil {
		t.Error("CancelledAt not set")
	}
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Cancel(context.Background(), uuid.NewString())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestCancel_MalformedID(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Cancel(context.Background(), "not-a-uuid")
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	reloaded := false
	repo := &mockRepository{
		cancelActiveFunc: func(ctx context.Context, id uuid.UUID) error {
			return ErrNotActive
		},
		getDetailFunc: func(ctx context.Context, id uuid.UUID) (*Detail, error) {
			reloaded = true
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Cancel(context.Background(), uuid.NewString())
	if !apperror.IsKind(err, apperror.KindAlreadyCancelled) {
		t.Fatalf("err = %v, want already_cancelled", err)
	}
	if reloaded {
		t.Error("detail reloaded after a rejected cancellation")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Get(context.Background(), uuid.NewString())
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestList_PassesFiltersThrough(t *testing.T) {
	patientID := uuid.NewString()
	var got Filters
	repo := &mockRepository{
		listFunc: func(ctx context.Context, f Filters) ([]Detail, error) {
			got = f
			return []Detail{}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), Filters{Status: "cancelled", PatientID: patientID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got.Status != "cancelled" || got.PatientID != patientID {
		t.Errorf("repo saw filters %+v", got)
	}
}

func TestList_NeverReturnsNilSlice(t *testing.T) {
	svc := NewService(&mockRepository{})

	result, err := svc.List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result == nil {
		t.Error("List returned nil slice")
	}
}

func TestList_RejectsBadFilter(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.List(context.Background(), Filters{Status: "archived"})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestDeleteAll_ReturnsCount(t *testing.T) {
	repo := &mockRepository{
		deleteAllFunc: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}
	svc := NewService(repo)

	count, err := svc.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}
