package procure

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"p9e.in/qms/models"
)

// memPOStore is an in-memory PORepository for service tests.
type memPOStore struct {
	orders     map[string]models.PurchaseOrder
	creatorErr error
	updateErr  error
}

func newMemPOStore() *memPOStore {
	return &memPOStore{orders: map[string]models.PurchaseOrder{}}
}

func (s *memPOStore) Create(po *models.PurchaseOrder) error {
	if _, exists := s.orders[po.PONumber]; exists {
		return ErrDuplicatePONumber
	}
	s.orders[po.PONumber] = *po
	return nil
}

func (s *memPOStore) GetByNumber(poNumber string) (*models.PurchaseOrder, error) {
	po, ok := s.orders[poNumber]
	if !ok {
		return nil, ErrNotFound
	}
	out := po
	return &out, nil
}

func (s *memPOStore) Update(po *models.PurchaseOrder, expectedVersion int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	current, ok := s.orders[po.PONumber]
	if !ok || current.Version != expectedVersion {
		return ErrVersionConflict
	}
	s.orders[po.PONumber] = *po
	return nil
}

func (s *memPOStore) ListByStatus(status models.POStatus) ([]models.PurchaseOrder, error) {
	var out []models.PurchaseOrder
	for _, po := range s.orders {
		if po.Status == status {
			out = append(out, po)
		}
	}
	return out, nil
}

func (s *memPOStore) ListAll() ([]models.PurchaseOrder, error) {
	var out []models.PurchaseOrder
	for _, po := range s.orders {
		out = append(out, po)
	}
	return out, nil
}

func (s *memPOStore) ListByCreator(userID string) ([]models.PurchaseOrder, error) {
	if s.creatorErr != nil {
		return nil, s.creatorErr
	}
	var out []models.PurchaseOrder
	for _, po := range s.orders {
		if po.CreatedBy == userID {
			out = append(out, po)
		}
	}
	return out, nil
}

// memAuditStore collects activity entries for assertions.
type memAuditStore struct {
	entries []models.ActivityLog
	err     error
}

func (s *memAuditStore) Append(entry models.ActivityLog) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memAuditStore) Recent(limit int) ([]models.ActivityLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.entries) > limit {
		return s.entries[len(s.entries)-limit:], nil
	}
	return s.entries, nil
}

func (s *memAuditStore) lastAction() string {
	if len(s.entries) == 0 {
		return ""
	}
	return s.entries[len(s.entries)-1].Action
}

func newTestLifecycle() (*Lifecycle, *memPOStore, *memAuditStore) {
	pos := newMemPOStore()
	audit := &memAuditStore{}
	l := NewLifecycle(pos, NewRecorder(audit))
	l.now = func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }
	return l, pos, audit
}

func validCreateReq() CreatePORequest {
	return CreatePORequest{
		PONumber:        "PO20240115042",
		OrderDate:       "2024-01-15",
		DeliverDate:     "2024-01-25",
		SupplierName:    "Acme Metals",
		Material:        "Steel Rods",
		Quantity:        "500",
		RatePerQuantity: "120",
		RatePerKG:       "60",
		HSNSACCode:      "7214",
		GST:             "18",
	}
}

var (
	purchaser = Actor{ID: "user-pt", Role: models.RolePurchaseTeam}
	manager   = Actor{ID: "user-mgr", Role: models.RoleManager}
	vendor    = Actor{ID: "user-ven", Role: models.RoleVendor}
)

func TestCreateValidatesRequiredFields(t *testing.T) {
	l, _, _ := newTestLifecycle()

	req := validCreateReq()
	req.SupplierName = ""
	req.GST = ""

	_, err := l.Create(req, purchaser)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Missing) != 2 || ve.Missing[0] != "supplierName" || ve.Missing[1] != "gst" {
		t.Errorf("missing = %v", ve.Missing)
	}
}

func TestCreateRejectsMalformedPONumber(t *testing.T) {
	l, pos, _ := newTestLifecycle()

	for _, number := range []string{"definitely-not-a-po-number", "PO2024011504", "po20240115042"} {
		req := validCreateReq()
		req.PONumber = number
		_, err := l.Create(req, purchaser)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("PONumber %q: expected ValidationError, got %v", number, err)
		}
	}
	if len(pos.orders) != 0 {
		t.Errorf("malformed numbers were persisted: %v", pos.orders)
	}
}

func TestCreateStartsPending(t *testing.T) {
	l, pos, audit := newTestLifecycle()

	po, err := l.Create(validCreateReq(), purchaser)
	if err != nil {
		t.Fatal(err)
	}
	if po.Status != models.POPending {
		t.Errorf("status = %q, want Pending", po.Status)
	}
	if po.WorkflowStage != models.StageCreated {
		t.Errorf("stage = %q, want Created", po.WorkflowStage)
	}
	if po.Version != 1 {
		t.Errorf("version = %d, want 1", po.Version)
	}
	if po.TaxAmount == nil || *po.TaxAmount != "10800.00" {
		t.Errorf("tax amount = %v, want 10800.00", po.TaxAmount)
	}
	if _, ok := pos.orders[po.PONumber]; !ok {
		t.Error("order not persisted")
	}
	if audit.lastAction() != "PO Created" {
		t.Errorf("audit action = %q", audit.lastAction())
	}
}

func TestCreateKeepsProvidedTaxAmount(t *testing.T) {
	l, _, _ := newTestLifecycle()

	req := validCreateReq()
	req.TaxAmount = "9999.99"
	po, err := l.Create(req, purchaser)
	if err != nil {
		t.Fatal(err)
	}
	if po.TaxAmount == nil || *po.TaxAmount != "9999.99" {
		t.Errorf("tax amount = %v, want the submitted value", po.TaxAmount)
	}
}

func TestCreateRetriesOnDuplicateNumber(t *testing.T) {
	l, pos, _ := newTestLifecycle()

	pos.orders["PO20240115042"] = models.PurchaseOrder{PONumber: "PO20240115042"}
	seq := 0
	l.newNumber = func(time.Time) string {
		seq++
		return fmt.Sprintf("PO20240115%03d", 100+seq)
	}

	po, err := l.Create(validCreateReq(), purchaser)
	if err != nil {
		t.Fatal(err)
	}
	if po.PONumber != "PO20240115101" {
		t.Errorf("po number = %q, want the regenerated one", po.PONumber)
	}
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	l, pos, _ := newTestLifecycle()

	pos.orders["PO20240115042"] = models.PurchaseOrder{PONumber: "PO20240115042"}
	l.newNumber = func(time.Time) string { return "PO20240115042" }

	_, err := l.Create(validCreateReq(), purchaser)
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError after exhausted retries, got %v", err)
	}
}

func TestDecideApprove(t *testing.T) {
	l, _, audit := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	po, err := l.Decide(created.PONumber, models.POApproved, "looks good", manager)
	if err != nil {
		t.Fatal(err)
	}
	if po.Status != models.POApproved {
		t.Errorf("status = %q", po.Status)
	}
	if po.ManagerRemarks == nil || *po.ManagerRemarks != "looks good" {
		t.Errorf("remarks = %v", po.ManagerRemarks)
	}
	if po.ApprovedBy == nil || *po.ApprovedBy != manager.ID {
		t.Errorf("approvedBy = %v", po.ApprovedBy)
	}
	if po.ApprovedAt == nil {
		t.Error("approvedAt not set")
	}
	if po.Version != 2 {
		t.Errorf("version = %d, want 2", po.Version)
	}
	if audit.lastAction() != "PO Approved" {
		t.Errorf("audit action = %q", audit.lastAction())
	}
}

func TestDecideRequiresRemarks(t *testing.T) {
	l, _, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	_, err := l.Decide(created.PONumber, models.PORejected, "", manager)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDecideRejectsBadDecision(t *testing.T) {
	l, _, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	_, err := l.Decide(created.PONumber, models.PODispatched, "remarks", manager)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDecideOnlyWhilePending(t *testing.T) {
	l, _, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)
	if _, err := l.Decide(created.PONumber, models.PORejected, "no budget", manager); err != nil {
		t.Fatal(err)
	}

	_, err := l.Decide(created.PONumber, models.POApproved, "changed my mind", manager)
	var ite *IllegalTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	if ite.From != models.PORejected {
		t.Errorf("From = %q", ite.From)
	}
}

func TestDispatchRequiresApproved(t *testing.T) {
	l, _, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	_, err := l.Dispatch(created.PONumber, vendor)
	var ite *IllegalTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
}

func TestFullLifecycle(t *testing.T) {
	l, _, _ := newTestLifecycle()

	created, err := l.Create(validCreateReq(), purchaser)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Decide(created.PONumber, models.POApproved, "approved", manager); err != nil {
		t.Fatal(err)
	}
	po, err := l.Dispatch(created.PONumber, vendor)
	if err != nil {
		t.Fatal(err)
	}
	if po.Status != models.PODispatched {
		t.Errorf("status = %q, want Dispatched", po.Status)
	}
	if po.DispatchedAt == nil {
		t.Error("dispatchedAt not set")
	}

	// Dispatched is terminal: no further decision is legal.
	_, err = l.Decide(created.PONumber, models.PORejected, "too late", manager)
	var ite *IllegalTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
}

func TestMarkSentToWP(t *testing.T) {
	l, _, audit := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	po, err := l.MarkSentToWP(created.PONumber, purchaser)
	if err != nil {
		t.Fatal(err)
	}
	if po.WorkflowStage != models.StageSentToWP {
		t.Errorf("stage = %q", po.WorkflowStage)
	}
	if po.SentToWPAt == nil {
		t.Error("sentToWPAt not set")
	}
	if po.Status != models.POPending {
		t.Errorf("status must stay Pending, got %q", po.Status)
	}
	if audit.lastAction() != "PO Sent to WP" {
		t.Errorf("audit action = %q", audit.lastAction())
	}

	// Second call is a no-op, not an error.
	again, err := l.MarkSentToWP(created.PONumber, purchaser)
	if err != nil {
		t.Fatal(err)
	}
	if again.Version != po.Version {
		t.Errorf("idempotent resend bumped version to %d", again.Version)
	}
}

func TestMarkSentToWPCreatorOnly(t *testing.T) {
	l, _, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	_, err := l.MarkSentToWP(created.PONumber, manager)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// The creator gate also applies once the stage is already set: the
	// idempotent no-op is for the creator only.
	if _, err := l.MarkSentToWP(created.PONumber, purchaser); err != nil {
		t.Fatal(err)
	}
	_, err = l.MarkSentToWP(created.PONumber, manager)
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError on already-sent PO, got %v", err)
	}
}

func TestMarkSentToWPOnlyWhilePending(t *testing.T) {
	l, _, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)
	if _, err := l.Decide(created.PONumber, models.POApproved, "go", manager); err != nil {
		t.Fatal(err)
	}

	_, err := l.MarkSentToWP(created.PONumber, purchaser)
	var ite *IllegalTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
}

func TestConcurrentUpdateSurfacesConflict(t *testing.T) {
	l, pos, _ := newTestLifecycle()
	created, _ := l.Create(validCreateReq(), purchaser)

	pos.updateErr = ErrVersionConflict
	_, err := l.Decide(created.PONumber, models.POApproved, "race", manager)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestGetUnknownPO(t *testing.T) {
	l, _, _ := newTestLifecycle()

	_, err := l.Get("PO20991231999")
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestListForCreatorFallsBackOnError(t *testing.T) {
	l, pos, _ := newTestLifecycle()
	if _, err := l.Create(validCreateReq(), purchaser); err != nil {
		t.Fatal(err)
	}

	pos.creatorErr = errors.New("missing index")
	orders, err := l.ListForCreator(purchaser.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Errorf("fallback list has %d orders, want 1", len(orders))
	}
}
