package observability

import (
	"time"

	"github.com/rs/zerolog"
)

// Operation times one codec call and reports it to metrics and the log.
type Operation struct {
	logger zerolog.Logger
	name   string
	start  time.Time
}

func Start(logger zerolog.Logger, name string) *Operation {
	return &Operation{logger: logger, name: name, start: time.Now()}
}

// Done records the outcome. Failures log at warn, successes at debug.
func (o *Operation) Done(payloadBytes int, err error) error {
	elapsed := time.Since(o.start)
	RecordOperation(o.name, payloadBytes, elapsed, err)

	event := o.logger.Debug()
	if err != nil {
		event = o.logger.Warn().Err(err)
	}
	event.
		Str("op", o.name).
		Int("bytes", payloadBytes).
		Dur("elapsed", elapsed).
		Msg("codec operation")
	return err
}
