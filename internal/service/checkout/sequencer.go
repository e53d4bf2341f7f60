package checkout

import (
	"context"
	"errors"
	"fmt"

	cartsvc "jewelryshop/internal/service/cart"
)

// ErrInvalidTransition is returned when a transition is requested from the
// wrong state.
var ErrInvalidTransition = errors.New("invalid checkout transition")

// State is the shopper's position in the checkout walk.
type State int

const (
	Browsing State = iota
	OrderSummary
	PaymentScreen
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case OrderSummary:
		return "orderSummary"
	case PaymentScreen:
		return "paymentScreen"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// stockDecrementer is the slice of the catalog store the sequencer needs.
type stockDecrementer interface {
	DecrementStock(ctx context.Context, id string, amount int) error
}

// Sequencer walks one shopper through browsing, order summary and the
// payment screen. Confirmation is the only point where the cart and the
// catalog interact: stock is decremented per line, then the cart is cleared.
// Payment itself is simulated and always succeeds.
type Sequencer struct {
	state   State
	cart    *cartsvc.Cart
	catalog stockDecrementer
}

func New(cart *cartsvc.Cart, catalog stockDecrementer) *Sequencer {
	return &Sequencer{state: Browsing, cart: cart, catalog: catalog}
}

// State returns the current position.
func (s *Sequencer) State() State {
	return s.state
}

// ProceedToSummary moves Browsing -> OrderSummary. Refusing the move on an
// empty cart is the caller's contract, not enforced here.
func (s *Sequencer) ProceedToSummary() error {
	if s.state != Browsing {
		return ErrInvalidTransition
	}
	s.state = OrderSummary
	return nil
}

// ProceedToPayment moves OrderSummary -> PaymentScreen.
func (s *Sequencer) ProceedToPayment() error {
	if s.state != OrderSummary {
		return ErrInvalidTransition
	}
	s.state = PaymentScreen
	return nil
}

// ConfirmPayment applies the purchase: every cart line decrements its
// product's stock by the line quantity (clamped at zero by the catalog),
// the cart is cleared and the shopper returns to Browsing.
func (s *Sequencer) ConfirmPayment(ctx context.Context) error {
	if s.state != PaymentScreen {
		return ErrInvalidTransition
	}
	for _, item := range s.cart.Items() {
		if err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}
	}
	s.cart.Clear()
	s.state = Browsing
	return nil
}

// Back moves one step backward without side effects. In Browsing there is
// nowhere to go and the call fails.
func (s *Sequencer) Back() error {
	switch s.state {
	case OrderSummary:
		s.state = Browsing
	case PaymentScreen:
		s.state = OrderSummary
	default:
		return ErrInvalidTransition
	}
	return nil
}
