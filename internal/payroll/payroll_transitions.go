package payroll

// TransitionPolicy decides which status changes a run may take. The default
// follows the operator flow Draft→Processed→Approved→Paid but also lets an
// operator walk a run back one step before it is paid.
type TransitionPolicy map[string][]string

func DefaultTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		StatusDraft:     {StatusProcessed},
		StatusProcessed: {StatusApproved, StatusDraft},
		StatusApproved:  {StatusPaid, StatusProcessed},
		StatusPaid:      {},
	}
}

func (p TransitionPolicy) Allows(from, to string) bool {
	for _, next := range p[from] {
		if next == to {
			return true
		}
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case StatusDraft, StatusProcessed, StatusApproved, StatusPaid:
		return true
	}
	return false
}
