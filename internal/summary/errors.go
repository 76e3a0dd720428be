package summary

import "fmt"

type ErrorKind int

const (
	// KindModelLoading means the backend model is still warming up and a
	// retry is worthwhile shortly.
	KindModelLoading ErrorKind = iota + 1
	// KindBackend is an error the backend reported about the request.
	KindBackend
	// KindUnexpected covers transport failures and response shapes the
	// client does not recognize.
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindModelLoading:
		return "model_loading"
	case KindBackend:
		return "backend"
	default:
		return "unexpected"
	}
}

// Error is the typed summarization failure. The orchestrator treats all
// kinds the same (fallback path); the kind only shapes the user notice.
type Error struct {
	Kind          ErrorKind
	Message       string
	EstimatedTime float64 // seconds, only for KindModelLoading
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("summarize: %s", e.Kind)
	}
	return fmt.Sprintf("summarize: %s: %s", e.Kind, e.Message)
}
