package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"solar-predictor/internal/prediction"
)

// DefaultDelay je umělá prodleva mezi odesláním formuláře a zobrazením výsledku.
const DefaultDelay = 1500 * time.Millisecond

// State je stav formuláře pro jednu session.
type State string

const (
	StateIdle        State = "idle"
	StateComputing   State = "computing"
	StateResultReady State = "result_ready"
)

// Submission je jediná věc, kterou si o session pamatujeme.
// Stav se z ní odvozuje až při čtení (viz Tracker.snapshot).
type Submission struct {
	Seq         uint64           `json:"seq"`
	Input       prediction.Input `json:"input"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// Snapshot je pohled na session v jednom okamžiku. Slouží i jako JSON odpověď API.
type Snapshot struct {
	SessionID string           `json:"session_id"`
	State     State            `json:"state"`
	Seq       uint64           `json:"seq"`
	Input     prediction.Input `json:"input"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`

	// Replaced: odeslání přepsalo výpočet, který ještě běžel (jen v odpovědi na Submit).
	Replaced bool `json:"replaced,omitempty"`

	// Output a Result jsou vyplněné jen ve stavu result_ready.
	Output *prediction.Output `json:"output,omitempty"`
	Result string             `json:"result,omitempty"`
}

// Remaining vrací, kolik zbývá do zobrazení výsledku (0 mimo stav computing).
func (s Snapshot) Remaining(now time.Time) time.Duration {
	if s.State != StateComputing || s.ReadyAt == nil {
		return 0
	}
	if d := s.ReadyAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Store ukládá poslední odeslání pro každou session.
// Load vrací found=false, pokud session neexistuje nebo vypršela.
type Store interface {
	Load(ctx context.Context, id string) (Submission, bool, error)
	Save(ctx context.Context, id string, sub Submission) error
	Delete(ctx context.Context, id string) error
}

// Tracker implementuje stavový automat Idle -> Computing -> ResultReady.
// Nemá žádné časovače ani goroutiny: stav Computing trvá, dokud now < SubmittedAt + delay.
type Tracker struct {
	store  Store
	delay  time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option upravuje Tracker při vytvoření.
type Option func(*Tracker)

// WithDelay nastaví umělou prodlevu (záporná hodnota se bere jako 0).
func WithDelay(d time.Duration) Option {
	return func(t *Tracker) {
		if d < 0 {
			d = 0
		}
		t.delay = d
	}
}

// WithClock podstrčí vlastní hodiny (v testech).
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger nastaví logger, jinak se použije slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// NewTracker vytvoří automat nad daným úložištěm.
func NewTracker(store Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		delay: DefaultDelay,
		now:   time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Delay vrací nastavenou prodlevu.
func (t *Tracker) Delay() time.Duration { return t.delay }

// Now vrací aktuální čas podle hodin trackeru.
func (t *Tracker) Now() time.Time { return t.now() }

// Submit zaznamená nové odeslání formuláře a vrátí stav computing.
// Pokud předchozí výpočet ještě běží, přepíše se: časovač začne znovu
// a starý výsledek se nikdy nezobrazí.
func (t *Tracker) Submit(ctx context.Context, id string, in prediction.Input) (Snapshot, error) {
	prev, found, err := t.store.Load(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("načtení session %s: %w", id, err)
	}

	now := t.now().UTC()
	sub := Submission{Input: in.Finite(), SubmittedAt: now, Seq: 1}
	replaced := false
	if found {
		sub.Seq = prev.Seq + 1
		if t.snapshot(id, prev, found, now).State == StateComputing {
			replaced = true
			t.logger.Debug("Předchozí výpočet přerušen novým odesláním", "session", id, "seq", prev.Seq)
		}
	}

	if err := t.store.Save(ctx, id, sub); err != nil {
		return Snapshot{}, fmt.Errorf("uložení session %s: %w", id, err)
	}
	t.logger.Debug("Predikce odeslána", "session", id, "seq", sub.Seq)

	snap := t.snapshot(id, sub, true, now)
	snap.Replaced = replaced
	return snap, nil
}

// Snapshot vrátí aktuální stav session.
func (t *Tracker) Snapshot(ctx context.Context, id string) (Snapshot, error) {
	sub, found, err := t.store.Load(ctx, id)
	if err != nil {
		return Snapshot{}, fmt.Errorf("načtení session %s: %w", id, err)
	}
	return t.snapshot(id, sub, found, t.now().UTC()), nil
}

// Reset vrátí session do stavu idle.
func (t *Tracker) Reset(ctx context.Context, id string) error {
	if err := t.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("reset session %s: %w", id, err)
	}
	return nil
}

func (t *Tracker) snapshot(id string, sub Submission, found bool, now time.Time) Snapshot {
	if !found {
		return Snapshot{
			SessionID: id,
			State:     StateIdle,
			Input:     prediction.DefaultInput(now),
		}
	}

	submitted := sub.SubmittedAt
	ready := submitted.Add(t.delay)
	snap := Snapshot{
		SessionID:   id,
		Seq:         sub.Seq,
		Input:       sub.Input,
		SubmittedAt: &submitted,
		ReadyAt:     &ready,
	}

	if now.Before(ready) {
		snap.State = StateComputing
		return snap
	}

	out := prediction.Estimate(sub.Input)
	snap.State = StateResultReady
	snap.Output = &out
	snap.Result = out.String()
	return snap
}

// NewSessionID vygeneruje náhodné ID session.
func NewSessionID() string {
	return uuid.NewString()
}
