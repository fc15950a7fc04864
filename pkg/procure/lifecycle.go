package procure

import (
	"errors"
	"fmt"
	"time"

	"p9e.in/qms/models"
	"p9e.in/qms/utils"
)

// Actor identifies who triggered an operation. Role gating happens at
// the route layer; services trust the actor they are handed.
type Actor struct {
	ID   string
	Role string
}

// PORepository is the persistence surface the lifecycle needs. Update
// is a compare-and-swap on the version column and returns
// ErrVersionConflict when the row moved underneath the caller.
type PORepository interface {
	Create(po *models.PurchaseOrder) error
	GetByNumber(poNumber string) (*models.PurchaseOrder, error)
	Update(po *models.PurchaseOrder, expectedVersion int) error
	ListByStatus(status models.POStatus) ([]models.PurchaseOrder, error)
	ListAll() ([]models.PurchaseOrder, error)
	ListByCreator(userID string) ([]models.PurchaseOrder, error)
}

// CreatePORequest carries the purchase team's form. Commercial values
// stay strings end to end, as entered.
type CreatePORequest struct {
	PONumber        string `json:"poNumber"`
	OrderDate       string `json:"orderDate"`
	DeliverDate     string `json:"deliverDate"`
	SupplierName    string `json:"supplierName"`
	Material        string `json:"material"`
	Quantity        string `json:"quantity"`
	RatePerQuantity string `json:"ratePerQuantity"`
	RatePerKG       string `json:"ratePerKG"`
	HSNSACCode      string `json:"hsnSacCode"`
	GST             string `json:"gst"`
	TaxAmount       string `json:"taxAmount"`
	Remark          string `json:"remark"`
}

// Lifecycle owns the PO state machine:
//
//	Pending -> Approved | Rejected
//	Approved -> Dispatched
//
// plus the orthogonal workflow stage Created -> Sent to WP that the
// creator may set while the order is still pending. Rejected and
// Dispatched are terminal.
type Lifecycle struct {
	pos       PORepository
	audit     *Recorder
	now       func() time.Time
	newNumber func(time.Time) string
}

func NewLifecycle(pos PORepository, audit *Recorder) *Lifecycle {
	return &Lifecycle{
		pos:       pos,
		audit:     audit,
		now:       time.Now,
		newNumber: utils.GeneratePONumber,
	}
}

// requiredPOFields in form order; validation errors list them this way.
var requiredPOFields = []string{
	"poNumber", "orderDate", "deliverDate", "supplierName", "material",
	"quantity", "ratePerQuantity", "ratePerKG", "hsnSacCode", "gst",
}

func (req *CreatePORequest) missingFields() []string {
	values := map[string]string{
		"poNumber":        req.PONumber,
		"orderDate":       req.OrderDate,
		"deliverDate":     req.DeliverDate,
		"supplierName":    req.SupplierName,
		"material":        req.Material,
		"quantity":        req.Quantity,
		"ratePerQuantity": req.RatePerQuantity,
		"ratePerKG":       req.RatePerKG,
		"hsnSacCode":      req.HSNSACCode,
		"gst":             req.GST,
	}
	var missing []string
	for _, f := range requiredPOFields {
		if values[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Create files a new order in Pending. The PO number must be in the
// canonical POYYYYMMDDXXX format and is verified unique at create time;
// on a same-day collision a fresh number is generated and the insert
// retried.
func (l *Lifecycle) Create(req CreatePORequest, actor Actor) (*models.PurchaseOrder, error) {
	if missing := req.missingFields(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}
	if !utils.ValidatePONumber(req.PONumber) {
		return nil, &ValidationError{Reason: fmt.Sprintf("poNumber %q is not in POYYYYMMDDXXX format", req.PONumber)}
	}

	taxAmount := req.TaxAmount
	if taxAmount == "" {
		taxAmount = ComputeTaxAmount(req.Quantity, req.RatePerQuantity, req.GST)
	}

	now := l.now()
	po := &models.PurchaseOrder{
		PONumber:        req.PONumber,
		SupplierName:    req.SupplierName,
		Material:        req.Material,
		Quantity:        req.Quantity,
		RatePerQuantity: req.RatePerQuantity,
		RatePerKG:       req.RatePerKG,
		HSNSACCode:      req.HSNSACCode,
		GST:             req.GST,
		OrderDate:       req.OrderDate,
		DeliverDate:     req.DeliverDate,
		Status:          models.POPending,
		WorkflowStage:   models.StageCreated,
		CreatedBy:       actor.ID,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if taxAmount != "" {
		po.TaxAmount = &taxAmount
	}
	if req.Remark != "" {
		po.Remark = &req.Remark
	}

	const maxAttempts = 3
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = l.pos.Create(po)
		if err == nil {
			l.audit.RecordWith("PO Created", actor.ID, actor.Role,
				fmt.Sprintf("PO %s created for %s (%s)", po.PONumber, po.SupplierName, po.Material),
				map[string]string{"poNumber": po.PONumber})
			return po, nil
		}
		if !errors.Is(err, ErrDuplicatePONumber) {
			return nil, &StoreError{Op: "create purchase order", Err: err}
		}
		po.PONumber = l.newNumber(l.now())
	}
	return nil, &StoreError{Op: "create purchase order", Err: err}
}

// Get returns the order for a PO number.
func (l *Lifecycle) Get(poNumber string) (*models.PurchaseOrder, error) {
	po, err := l.pos.GetByNumber(poNumber)
	if errors.Is(err, ErrNotFound) {
		return nil, &NotFoundError{Kind: "purchase order", Key: poNumber}
	}
	if err != nil {
		return nil, &StoreError{Op: "load purchase order", Err: err}
	}
	return po, nil
}

// Decide records the manager's approval or rejection. Legal only while
// the order is Pending; remarks are mandatory.
func (l *Lifecycle) Decide(poNumber string, decision models.POStatus, remarks string, actor Actor) (*models.PurchaseOrder, error) {
	if decision != models.POApproved && decision != models.PORejected {
		return nil, &ValidationError{Reason: fmt.Sprintf("decision must be %s or %s", models.POApproved, models.PORejected)}
	}
	if remarks == "" {
		return nil, &ValidationError{Missing: []string{"remarks"}}
	}

	po, err := l.Get(poNumber)
	if err != nil {
		return nil, err
	}
	if po.Status != models.POPending {
		return nil, &IllegalTransitionError{PONumber: poNumber, From: po.Status, Op: "decide"}
	}

	now := l.now()
	actorID := actor.ID
	po.Status = decision
	po.ManagerRemarks = &remarks
	po.ApprovedBy = &actorID
	po.ApprovedAt = &now
	po.UpdatedAt = now

	if err := l.update(po); err != nil {
		return nil, err
	}
	l.audit.RecordWith("PO "+string(decision), actor.ID, actor.Role,
		fmt.Sprintf("PO %s %s with remarks: %s", poNumber, decisionWord(decision), remarks),
		map[string]string{"poNumber": poNumber})
	return po, nil
}

func decisionWord(decision models.POStatus) string {
	if decision == models.POApproved {
		return "approved"
	}
	return "rejected"
}

// Dispatch moves an Approved order to Dispatched.
func (l *Lifecycle) Dispatch(poNumber string, actor Actor) (*models.PurchaseOrder, error) {
	po, err := l.Get(poNumber)
	if err != nil {
		return nil, err
	}
	if po.Status != models.POApproved {
		return nil, &IllegalTransitionError{PONumber: poNumber, From: po.Status, Op: "dispatch"}
	}

	now := l.now()
	po.Status = models.PODispatched
	po.DispatchedAt = &now
	po.UpdatedAt = now

	if err := l.update(po); err != nil {
		return nil, err
	}
	l.audit.RecordWith("PO Dispatched", actor.ID, actor.Role,
		fmt.Sprintf("PO %s marked as dispatched", poNumber),
		map[string]string{"poNumber": poNumber})
	return po, nil
}

// MarkSentToWP flags the workflow stage after creation. Only the
// creator may set it, only while the order is still Pending and the
// stage has not been set before.
func (l *Lifecycle) MarkSentToWP(poNumber string, actor Actor) (*models.PurchaseOrder, error) {
	po, err := l.Get(poNumber)
	if err != nil {
		return nil, err
	}
	if po.Status != models.POPending {
		return nil, &IllegalTransitionError{PONumber: poNumber, From: po.Status, Op: "send to WP"}
	}
	if po.CreatedBy != actor.ID {
		return nil, &ValidationError{Reason: "only the creating user can send a PO to WP"}
	}
	if po.WorkflowStage == models.StageSentToWP {
		return po, nil
	}

	now := l.now()
	po.WorkflowStage = models.StageSentToWP
	po.SentToWPAt = &now
	po.UpdatedAt = now

	if err := l.update(po); err != nil {
		return nil, err
	}
	l.audit.Record("PO Sent to WP", actor.ID, actor.Role,
		fmt.Sprintf("PO %s sent to WP", poNumber))
	return po, nil
}

func (l *Lifecycle) update(po *models.PurchaseOrder) error {
	expected := po.Version
	po.Version = expected + 1
	err := l.pos.Update(po, expected)
	if errors.Is(err, ErrVersionConflict) {
		return &ConflictError{PONumber: po.PONumber}
	}
	if err != nil {
		return &StoreError{Op: "update purchase order", Err: err}
	}
	return nil
}

// ListPending serves the manager queue, newest first.
func (l *Lifecycle) ListPending() ([]models.PurchaseOrder, error) {
	return l.pos.ListByStatus(models.POPending)
}

// ListApproved serves the vendor dispatch queue, newest first.
func (l *Lifecycle) ListApproved() ([]models.PurchaseOrder, error) {
	return l.pos.ListByStatus(models.POApproved)
}

// ListAll serves admin and gate lookups, newest first.
func (l *Lifecycle) ListAll() ([]models.PurchaseOrder, error) {
	return l.pos.ListAll()
}

// ListForCreator serves the purchase team view. A failed creator-scoped
// query degrades to the unfiltered list so the view is never left
// empty by a missing index.
func (l *Lifecycle) ListForCreator(userID string) ([]models.PurchaseOrder, error) {
	orders, err := l.pos.ListByCreator(userID)
	if err != nil {
		return l.pos.ListAll()
	}
	return orders, nil
}
