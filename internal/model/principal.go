package model

const (
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Principal identifies the caller behind a request. Anonymous is used when
// token checks are disabled and may do everything an operator can.
type Principal struct {
	Subject string
	Role    string
}

var Anonymous = Principal{Subject: "anonymous", Role: RoleOperator}

// CanOperate reports whether the caller may change documents or start
// batches. Viewers and unknown roles may only read and export.
func (p Principal) CanOperate() bool {
	return p.Role == RoleOperator
}
