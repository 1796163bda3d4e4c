package landing

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/risegum/internal/gateway"
	"github.com/risegum/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ErrSubmissionInFlight is returned when the same visitor submits again
// before the previous request finished.
var ErrSubmissionInFlight = errors.New("waitlist submission already in flight")

// Submitter is the gateway operation the flow depends on.
type Submitter interface {
	SubmitEntry(ctx context.Context, entry gateway.Entry) (gateway.SubmitResult, error)
}

// Outcome is what the page shows after a submit: the form to re-render and
// the status line.
type Outcome struct {
	Form   Form
	Status Status
}

// Flow runs the waitlist submission: local validation, one gateway call,
// response mapping. Each visitor may have at most one call outstanding.
type Flow struct {
	submitter Submitter

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewFlow 创建提交流程。
func NewFlow(s Submitter) *Flow {
	return &Flow{submitter: s, inFlight: make(map[string]struct{})}
}

// Submit validates form and, when valid, posts it. The returned error is
// non-nil only for ErrSubmissionInFlight; every other failure is expressed
// as a status message.
func (f *Flow) Submit(ctx context.Context, visitor string, form Form) (Outcome, error) {
	if msg := form.Validate(); msg != "" {
		metrics.WaitlistSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return Outcome{Form: form, Status: failureStatus(msg)}, nil
	}

	if !f.acquire(visitor) {
		metrics.WaitlistSubmissions.WithLabelValues(metrics.OutcomeInFlight).Inc()
		return Outcome{Form: form, Status: failureStatus(MsgInFlight)}, ErrSubmissionInFlight
	}
	defer f.release(visitor)

	t := form.Trimmed()
	res, err := f.submitter.SubmitEntry(ctx, gateway.Entry{Name: t.Name, Email: t.Email, City: t.City})
	if err != nil {
		metrics.WaitlistSubmissions.WithLabelValues(metrics.OutcomeNetwork).Inc()
		log.Warn().Err(err).Str("visitor", visitor).Msg("waitlist submit failed")
		return Outcome{Form: form, Status: failureStatus(MsgNetwork)}, nil
	}

	if res.Success {
		metrics.WaitlistSubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
		msg := strings.TrimSpace(res.Message)
		if msg == "" {
			msg = MsgJoined
		}
		return Outcome{Status: successStatus(msg)}, nil
	}

	if isDuplicate(res.Result) {
		metrics.WaitlistSubmissions.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return Outcome{Form: form, Status: failureStatus(MsgDuplicate)}, nil
	}

	metrics.WaitlistSubmissions.WithLabelValues(metrics.OutcomeRejected).Inc()
	return Outcome{Form: form, Status: failureStatus(describeFailure(res.Result))}, nil
}

// Submitting reports whether visitor currently has a request outstanding.
func (f *Flow) Submitting(visitor string) bool {
	if visitor == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.inFlight[visitor]
	return ok
}

// acquire marks visitor as submitting. Visitors without a key are not tracked.
func (f *Flow) acquire(visitor string) bool {
	if visitor == "" {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.inFlight[visitor]; busy {
		return false
	}
	f.inFlight[visitor] = struct{}{}
	return true
}

func (f *Flow) release(visitor string) {
	if visitor == "" {
		return
	}
	f.mu.Lock()
	delete(f.inFlight, visitor)
	f.mu.Unlock()
}

// isDuplicate prefers the structured code; the text match covers backends
// that only send a message.
func isDuplicate(r gateway.Result) bool {
	if r.Code == gateway.CodeDuplicateEmail {
		return true
	}
	return strings.Contains(strings.ToLower(r.Error), "already registered")
}

func describeFailure(r gateway.Result) string {
	if len(r.Details) > 0 {
		msgs := make([]string, 0, len(r.Details))
		for _, d := range r.Details {
			if m := strings.TrimSpace(d.Message); m != "" {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	if msg := strings.TrimSpace(r.Error); msg != "" {
		return msg
	}
	return MsgJoinFailed
}
