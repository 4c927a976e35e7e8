// Package payment define la máquina de estados de pago de una factura.
//
// Estados:
//
//	Unpaid  paid=false, paid_date=NULL
//	Paid    paid=true,  paid_date=<fecha del primer pago>
//
// La fecha de pago se fija solo en la transición Unpaid → Paid y se borra al volver a Unpaid.
package payment

import "time"

// State estado de pago de una factura.
type State int

const (
	Unpaid State = iota
	Paid
)

func (s State) String() string {
	if s == Paid {
		return "paid"
	}
	return "unpaid"
}

// StateOf deriva el estado a partir del flag persistido.
func StateOf(paid bool) State {
	if paid {
		return Paid
	}
	return Unpaid
}

// Transition resultado de aplicar una actualización de pago.
type Transition struct {
	From     State
	To       State
	PaidDate *time.Time
}

// FirstPayment informa si la transición fijó la fecha de pago.
func (t Transition) FirstPayment() bool {
	return t.From == Unpaid && t.To == Paid
}

// Apply calcula el nuevo paid_date dado el paid_date actual y el flag solicitado.
// today se trunca a fecha (medianoche UTC) porque paid_date es una columna DATE.
func Apply(currentPaidDate *time.Time, paid bool, today time.Time) Transition {
	from := Unpaid
	if currentPaidDate != nil {
		from = Paid
	}
	if !paid {
		return Transition{From: from, To: Unpaid, PaidDate: nil}
	}
	if currentPaidDate != nil {
		d := *currentPaidDate
		return Transition{From: from, To: Paid, PaidDate: &d}
	}
	d := DateOf(today)
	return Transition{From: from, To: Paid, PaidDate: &d}
}

// DateOf descarta la hora conservando el día calendario local de t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
