package scenarios

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionTypeAriesOOB         = "ARIES_OOB"
	ActionTypeAcceptCredential = "ACCEPT_CREDENTIAL"
	ActionTypeShareCredential  = "SHARE_CREDENTIAL"
	ActionTypeButton           = "BUTTON"
	ActionTypeSetupConnection  = "SETUP_CONNECTION"
	ActionTypeChooseWallet     = "CHOOSE_WALLET"
)

// StepAction is a tagged union keyed by ActionType. Variant fields that do
// not belong to the declared type must be empty; Validate enforces this at
// every write boundary.
type StepAction struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StepID      uuid.UUID `gorm:"type:uuid;not null;index" json:"step_id"`
	ActionOrder int       `gorm:"column:action_order;not null;default:0" json:"action_order"`
	ActionType  string    `gorm:"column:action_type;not null" json:"action_type"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Text        string    `gorm:"column:text;type:text" json:"text,omitempty"`

	// ACCEPT_CREDENTIAL / SHARE_CREDENTIAL
	CredentialDefinitionID *uuid.UUID `gorm:"type:uuid;index" json:"credential_definition_id,omitempty"`

	// BUTTON
	GoToStepID *uuid.UUID `gorm:"type:uuid" json:"go_to_step_id,omitempty"`

	// ARIES_OOB
	ProofRequest datatypes.JSON `gorm:"column:proof_request;type:jsonb" json:"proof_request,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StepAction) TableName() string { return "step_action" }

// ProofRequest is the named attribute/predicate group structure carried by
// ARIES_OOB actions.
type ProofRequest struct {
	Attributes map[string]ProofAttributeGroup `json:"attributes,omitempty"`
	Predicates map[string]ProofPredicateGroup `json:"predicates,omitempty"`
}

type ProofAttributeGroup struct {
	Attributes   []string `json:"attributes"`
	Restrictions []string `json:"restrictions,omitempty"`
}

type ProofPredicateGroup struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Value        int      `json:"value"`
	Restrictions []string `json:"restrictions,omitempty"`
}

func (a *StepAction) DecodeProofRequest() (*ProofRequest, error) {
	if len(a.ProofRequest) == 0 {
		return nil, nil
	}
	var pr ProofRequest
	if err := json.Unmarshal(a.ProofRequest, &pr); err != nil {
		return nil, fmt.Errorf("decode proof request: %w", err)
	}
	return &pr, nil
}

func (a *StepAction) SetProofRequest(pr *ProofRequest) error {
	if pr == nil {
		a.ProofRequest = nil
		return nil
	}
	raw, err := json.Marshal(pr)
	if err != nil {
		return fmt.Errorf("encode proof request: %w", err)
	}
	a.ProofRequest = datatypes.JSON(raw)
	return nil
}

// Validate checks the variant payload against the declared action type.
// Every action type is handled explicitly; an unknown type is an error.
func (a *StepAction) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("step action title required")
	}
	switch a.ActionType {
	case ActionTypeAriesOOB:
		if a.CredentialDefinitionID != nil || a.GoToStepID != nil {
			return fmt.Errorf("%s action carries only a proof request", a.ActionType)
		}
		pr, err := a.DecodeProofRequest()
		if err != nil {
			return err
		}
		if pr == nil || (len(pr.Attributes) == 0 && len(pr.Predicates) == 0) {
			return fmt.Errorf("%s action requires a proof request with at least one group", a.ActionType)
		}
		for name, group := range pr.Attributes {
			if len(group.Attributes) == 0 {
				return fmt.Errorf("proof request attribute group %q has no attributes", name)
			}
		}
		for name, group := range pr.Predicates {
			if group.Name == "" || group.Type == "" {
				return fmt.Errorf("proof request predicate group %q missing name or type", name)
			}
		}
		return nil
	case ActionTypeAcceptCredential, ActionTypeShareCredential:
		if a.CredentialDefinitionID == nil {
			return fmt.Errorf("%s action requires a credential definition", a.ActionType)
		}
		if a.GoToStepID != nil || len(a.ProofRequest) != 0 {
			return fmt.Errorf("%s action carries only a credential definition", a.ActionType)
		}
		return nil
	case ActionTypeButton:
		if a.GoToStepID == nil {
			return fmt.Errorf("%s action requires a go-to-step target", a.ActionType)
		}
		if a.CredentialDefinitionID != nil || len(a.ProofRequest) != 0 {
			return fmt.Errorf("%s action carries only a go-to-step target", a.ActionType)
		}
		return nil
	case ActionTypeSetupConnection, ActionTypeChooseWallet:
		if a.CredentialDefinitionID != nil || a.GoToStepID != nil || len(a.ProofRequest) != 0 {
			return fmt.Errorf("%s action carries no variant payload", a.ActionType)
		}
		return nil
	default:
		return fmt.Errorf("unknown action type %q", a.ActionType)
	}
}
