package authflow

import (
	"fmt"

	"github.com/google/uuid"
)

// Generated identifiers are opaque; the prefix only makes values
// distinguishable in logs and captures. Uniqueness comes from the UUID.

func newCode() string {
	return "code-" + uuid.NewString()
}

func newState() string {
	return "state-" + uuid.NewString()
}

func newAssertion(keyID string) string {
	return fmt.Sprintf("mock-assertion-%s-%s", keyID, uuid.NewString())
}

func newB2BToken(keyID string) string {
	return fmt.Sprintf("mock-b2b-token-%s-%s", keyID, uuid.NewString())
}

func newUserToken(keyID string) string {
	return fmt.Sprintf("mock-user-token-%s-%s", keyID, uuid.NewString())
}

func newFinalToken(keyID string) string {
	return fmt.Sprintf("mock-final-token-%s-%s", keyID, uuid.NewString())
}
