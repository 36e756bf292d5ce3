// Package cdc administers and reads SQL Server change data capture for
// the Insurance schema. Capture instances are named <schema>_<table>, so
// the change table for Insurance.Members is cdc.Insurance_Members_CT.
package cdc

import (
	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

// TrackedTables is every Insurance table the simulator writes to, in
// dependency order.
var TrackedTables = []string{
	"Members",
	"CoveragePlans",
	"Policies",
	"PolicyMembers",
	"Providers",
	"Claims",
	"PremiumPayments",
}

// Change is one row read from a change table or a cdc.fn_cdc_get_* function.
type Change struct {
	Table     string
	LSN       string
	Seq       string
	Operation string
	Data      map[string]any
}

// OperationName maps a __$operation value to its meaning. Operation 3 is
// the before-image of an update and is normally filtered out upstream.
func OperationName(op int) (string, bool) {
	switch op {
	case 1:
		return "Delete", true
	case 2:
		return "Insert", true
	case 3, 4:
		return "Update", true
	default:
		return "", false
	}
}
