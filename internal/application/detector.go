package application

import (
	"strings"

	"github.com/gorchard/farmhand/internal/domain"
)

// fatalSignatures maps substrings of session log messages to the failure
// category they indicate. Matching is case-insensitive.
var fatalSignatures = []struct {
	category domain.TriggerCategory
	needles  []string
}{
	{domain.TriggerConnRejected, []string{"rejected with status 400", "connect rejected: 400"}},
	{domain.TriggerPatrolDisconnected, []string{"patrol reports disconnected"}},
	{domain.TriggerKickedOut, []string{"kicked by remote", "logged in elsewhere"}},
}

// Detector classifies log events against the fatal signature set. It is
// stateless; per-session idempotence lives in the TriggerSet consulted by
// the supervisor.
type Detector struct{}

func NewDetector() *Detector { return &Detector{} }

func (d *Detector) Detect(ev domain.LogEvent) (domain.TriggerCategory, bool) {
	msg := strings.ToLower(ev.Message)
	for _, sig := range fatalSignatures {
		for _, needle := range sig.needles {
			if strings.Contains(msg, needle) {
				return sig.category, true
			}
		}
	}
	return "", false
}
