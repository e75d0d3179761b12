package ledger

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Finding is one validation problem discovered in a snapshot.
type Finding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return f.Field + ": " + f.Message
}

// SnapshotValidator runs the ingestion-boundary validation pass over a
// snapshot. The metrics engine itself never validates and never fails;
// providers that want stronger guarantees than "a plausible-looking number"
// run this before handing records over.
type SnapshotValidator struct {
	validate *validator.Validate
}

// NewSnapshotValidator creates a validator with JSON field names in findings.
func NewSnapshotValidator() *SnapshotValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &SnapshotValidator{validate: v}
}

// Validate returns every problem found in the snapshot. An empty slice means
// the snapshot is clean. Structural problems come from struct tags; the
// cross-signal rules the tags cannot express are checked by hand:
//
//   - a transaction whose signed amount disagrees with its debit flag
//   - a credit limit on a non-credit-card account
//   - an account kind outside the known vocabulary
//   - a transaction referencing no account in the snapshot
func (sv *SnapshotValidator) Validate(s *Snapshot) []Finding {
	var findings []Finding

	if err := sv.validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range verrs {
				findings = append(findings, Finding{
					Field:   e.Namespace(),
					Message: messageFor(e),
				})
			}
		} else {
			findings = append(findings, Finding{Field: "snapshot", Message: err.Error()})
		}
	}

	accountIDs := make(map[uuid.UUID]struct{}, len(s.Accounts))
	for i := range s.Accounts {
		a := &s.Accounts[i]
		accountIDs[a.ID] = struct{}{}
		if !a.Kind.IsValid() {
			findings = append(findings, Finding{
				Field:   fmt.Sprintf("accounts[%d].kind", i),
				Message: fmt.Sprintf("unknown account kind %q", a.Kind),
			})
		}
		if !a.CreditLimit.IsZero() && a.Kind != AccountKindCreditCard {
			findings = append(findings, Finding{
				Field:   fmt.Sprintf("accounts[%d].credit_limit", i),
				Message: "credit limit is only meaningful for credit_card accounts",
			})
		}
	}

	for i := range s.Transactions {
		t := &s.Transactions[i]
		if !t.DirectionConsistent() {
			findings = append(findings, Finding{
				Field:   fmt.Sprintf("transactions[%d].amount", i),
				Message: "signed amount disagrees with the debit flag",
			})
		}
		if _, ok := accountIDs[t.AccountID]; !ok {
			findings = append(findings, Finding{
				Field:   fmt.Sprintf("transactions[%d].account_id", i),
				Message: "transaction references an account not in the snapshot",
			})
		}
	}

	return findings
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	default:
		return "failed validation rule: " + e.Tag()
	}
}
