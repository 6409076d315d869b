package timer

// Notifier receives threshold crossings from a Countdown.
// Methods are called synchronously from Tick, in the order warning, critical, timeout.
type Notifier interface {
	OnWarning()
	OnCritical()
	OnTimeout()
}

// Funcs adapts plain functions to a Notifier. Nil fields are skipped.
type Funcs struct {
	Warning  func()
	Critical func()
	Timeout  func()
}

// Compile-time check that Funcs implements Notifier.
var _ Notifier = Funcs{}

func (f Funcs) OnWarning() {
	if f.Warning != nil {
		f.Warning()
	}
}

func (f Funcs) OnCritical() {
	if f.Critical != nil {
		f.Critical()
	}
}

func (f Funcs) OnTimeout() {
	if f.Timeout != nil {
		f.Timeout()
	}
}

type nopNotifier struct{}

func (nopNotifier) OnWarning()  {}
func (nopNotifier) OnCritical() {}
func (nopNotifier) OnTimeout()  {}
