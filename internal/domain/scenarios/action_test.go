package scenarios

import (
	"testing"

	"github.com/google/uuid"
)

func validProofAction(t *testing.T) *StepAction {
	t.Helper()
	a := &StepAction{
		ActionType: ActionTypeAriesOOB,
		Title:      "Share your proof",
	}
	err := a.SetProofRequest(&ProofRequest{
		Attributes: map[string]ProofAttributeGroup{
			"identity": {Attributes: []string{"first_name", "last_name"}},
		},
	})
	if err != nil {
		t.Fatalf("set proof request: %v", err)
	}
	return a
}

func TestStepActionValidateAriesOOB(t *testing.T) {
	a := validProofAction(t)
	if err := a.Validate(); err != nil {
		t.Fatalf("valid proof action rejected: %v", err)
	}

	empty := &StepAction{ActionType: ActionTypeAriesOOB, Title: "Share"}
	if err := empty.Validate(); err == nil {
		t.Fatalf("proof action without a proof request accepted")
	}

	defID := uuid.New()
	mixed := validProofAction(t)
	mixed.CredentialDefinitionID = &defID
	if err := mixed.Validate(); err == nil {
		t.Fatalf("proof action carrying a credential definition accepted")
	}

	hollow := &StepAction{ActionType: ActionTypeAriesOOB, Title: "Share"}
	if err := hollow.SetProofRequest(&ProofRequest{
		Attributes: map[string]ProofAttributeGroup{"identity": {}},
	}); err != nil {
		t.Fatalf("set proof request: %v", err)
	}
	if err := hollow.Validate(); err == nil {
		t.Fatalf("attribute group without attributes accepted")
	}
}

func TestStepActionValidateCredentialVariants(t *testing.T) {
	defID := uuid.New()
	stepID := uuid.New()

	accept := &StepAction{
		ActionType:             ActionTypeAcceptCredential,
		Title:                  "Accept",
		CredentialDefinitionID: &defID,
	}
	if err := accept.Validate(); err != nil {
		t.Fatalf("valid accept action rejected: %v", err)
	}

	share := &StepAction{ActionType: ActionTypeShareCredential, Title: "Share"}
	if err := share.Validate(); err == nil {
		t.Fatalf("share action without a definition accepted")
	}

	crossed := &StepAction{
		ActionType:             ActionTypeAcceptCredential,
		Title:                  "Accept",
		CredentialDefinitionID: &defID,
		GoToStepID:             &stepID,
	}
	if err := crossed.Validate(); err == nil {
		t.Fatalf("accept action carrying a go-to target accepted")
	}
}

func TestStepActionValidateButton(t *testing.T) {
	stepID := uuid.New()
	defID := uuid.New()

	button := &StepAction{ActionType: ActionTypeButton, Title: "Next", GoToStepID: &stepID}
	if err := button.Validate(); err != nil {
		t.Fatalf("valid button rejected: %v", err)
	}

	aimless := &StepAction{ActionType: ActionTypeButton, Title: "Next"}
	if err := aimless.Validate(); err == nil {
		t.Fatalf("button without a target accepted")
	}

	crossed := &StepAction{
		ActionType:             ActionTypeButton,
		Title:                  "Next",
		GoToStepID:             &stepID,
		CredentialDefinitionID: &defID,
	}
	if err := crossed.Validate(); err == nil {
		t.Fatalf("button carrying a credential definition accepted")
	}
}

func TestStepActionValidatePayloadFreeVariants(t *testing.T) {
	for _, actionType := range []string{ActionTypeSetupConnection, ActionTypeChooseWallet} {
		plain := &StepAction{ActionType: actionType, Title: "Go"}
		if err := plain.Validate(); err != nil {
			t.Fatalf("%s: valid action rejected: %v", actionType, err)
		}

		stepID := uuid.New()
		loaded := &StepAction{ActionType: actionType, Title: "Go", GoToStepID: &stepID}
		if err := loaded.Validate(); err == nil {
			t.Fatalf("%s: action with a payload accepted", actionType)
		}
	}
}

func TestStepActionValidateRejectsUnknownTypeAndMissingTitle(t *testing.T) {
	unknown := &StepAction{ActionType: "TELEPORT", Title: "Go"}
	if err := unknown.Validate(); err == nil {
		t.Fatalf("unknown action type accepted")
	}

	untitled := &StepAction{ActionType: ActionTypeSetupConnection}
	if err := untitled.Validate(); err == nil {
		t.Fatalf("action without a title accepted")
	}
}

func TestProofRequestRoundTrip(t *testing.T) {
	a := &StepAction{ActionType: ActionTypeAriesOOB, Title: "Prove age"}
	want := &ProofRequest{
		Predicates: map[string]ProofPredicateGroup{
			"age": {Name: "birthdate_dateint", Type: "<=", Value: 20060101},
		},
	}
	if err := a.SetProofRequest(want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := a.DecodeProofRequest()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got == nil || len(got.Predicates) != 1 {
		t.Fatalf("predicates: want=1 got=%v", got)
	}
	pred := got.Predicates["age"]
	if pred.Name != "birthdate_dateint" || pred.Type != "<=" || pred.Value != 20060101 {
		t.Fatalf("predicate mangled: %+v", pred)
	}

	if err := a.SetProofRequest(nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, err := a.DecodeProofRequest()
	if err != nil || cleared != nil {
		t.Fatalf("cleared proof request: got=%v err=%v", cleared, err)
	}
}
