package eventbus

import (
	"github.com/lsevent/dispatcher/pkg/interfaces"
	"github.com/lsevent/dispatcher/pkg/types"
)

// triggerRecord is the concrete storage for one pending moment: one event,
// one payload, and the optional result callback that runs once its
// dispatch completes. It doubles as the linkage node for the dispatcher's
// moment queue.
type triggerRecord struct {
	interfaces.SealTriggerRecord

	event     *event
	data      interface{}
	resultCB  types.ResultCallback
	resultArg interface{}
	handled   bool
	next      *triggerRecord

	// allocTok backs this record's own allocation for OOM accounting. For
	// a record allocated by trigger() it is released when the moment
	// finishes dispatching; for a prepared record only UnprepareTrigger
	// releases it.
	allocTok Token

	// prepared marks a record obtained via PrepareTrigger. Such records
	// are not re-allocated by trigger() and their allocTok is only freed
	// via UnprepareTrigger, never automatically after dispatch, since a
	// prepared record can be reused by the caller for a later trigger.
	prepared bool
}

var _ interfaces.TriggerRecord = (*triggerRecord)(nil)
