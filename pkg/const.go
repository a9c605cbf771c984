package pkg

const (
	HeaderTraceId   string = "X-Trace-Id"
	HeaderRequestId string = "X-Request-Id"
)

const (
	TraceId   string = "trace_id"
	RequestId string = "request_id"
)

type PredictionOutcome string

const (
	OutcomeDefault   PredictionOutcome = "default"
	OutcomeNoDefault PredictionOutcome = "no_default"
)
