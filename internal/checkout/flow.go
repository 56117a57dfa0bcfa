// Package checkout turns the local cart into a backend order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"
	"glassstore/internal/pricing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DeliveryWindow is added to the submission time to estimate delivery.
const DeliveryWindow = 7 * 24 * time.Hour

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotAuthenticated   = errors.New("sign in to check out")
	ErrSubmissionInFlight = errors.New("an order submission is already in progress")
)

type orderAPI interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	ProcessPayment(ctx context.Context, req apiclient.PaymentRequest) (*apiclient.PaymentResult, error)
}

type cartState interface {
	Lines() []domain.CartLine
	Clear()
}

type sessionState interface {
	IsAuthenticated() bool
}

type Flow struct {
	api      orderAPI
	cart     cartState
	session  sessionState
	logger   *logrus.Entry
	validate *validator.Validate
	now      func() time.Time

	submitting atomic.Bool
}

func NewFlow(api orderAPI, cart cartState, session sessionState, logger *logrus.Entry) *Flow {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &Flow{
		api:      api,
		cart:     cart,
		session:  session,
		logger:   logger,
		validate: v,
		now:      time.Now,
	}
}

type Request struct {
	Method  PaymentMethod      `json:"payment_method"`
	Billing domain.BillingInfo `json:"billing_info"`
}

// Receipt is what the confirmation screen shows.
type Receipt struct {
	Order             domain.Order       `json:"order"`
	Breakdown         pricing.Breakdown  `json:"breakdown"`
	Display           pricing.Display    `json:"display"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
	PaymentMethod     string             `json:"payment_method"`
	Billing           domain.BillingInfo `json:"billing_info"`
}

// Quote prices the current cart.
func (f *Flow) Quote() pricing.Breakdown {
	return pricing.Quote(subtotal(f.cart.Lines()))
}

// Submit posts the cart as an order. Only one submission runs at a time; a
// second call while one is in flight fails with ErrSubmissionInFlight. The cart
// is cleared only after the backend accepted the order.
func (f *Flow) Submit(ctx context.Context, req Request) (*Receipt, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer f.submitting.Store(false)

	if !f.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	method, err := ParsePaymentMethod(string(req.Method))
	if err != nil {
		return nil, err
	}
	if err := f.validateBilling(req.Billing); err != nil {
		return nil, err
	}
	lines := f.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	quote := pricing.Quote(subtotal(lines))
	order := domain.OrderRequest{
		Items:         orderItems(lines),
		TotalAmount:   quote.Total.InexactFloat64(),
		PaymentMethod: method.Label(),
		BillingInfo:   req.Billing,
	}
	created, err := f.api.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	f.cart.Clear()
	f.logger.WithFields(logrus.Fields{
		"order_id": created.ID,
		"total":    quote.Display().Total,
		"items":    len(lines),
	}).Info("order placed")

	return &Receipt{
		Order:             *created,
		Breakdown:         quote,
		Display:           quote.Display(),
		EstimatedDelivery: f.now().Add(DeliveryWindow),
		PaymentMethod:     method.Label(),
		Billing:           req.Billing,
	}, nil
}

// PaymentDetails are the fields of the payment screen for one method.
type PaymentDetails struct {
	Method PaymentMethod          `json:"payment_method"`
	Card   *apiclient.CardDetails `json:"card_details,omitempty"`
	UPIID  string                 `json:"upi_id,omitempty"`
	Bank   string                 `json:"bank,omitempty"`
}

// Pay sends the payment details for the current cart total to the backend's
// simulated processor.
func (f *Flow) Pay(ctx context.Context, details PaymentDetails) (*apiclient.PaymentResult, error) {
	if !f.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	method, err := ParsePaymentMethod(string(details.Method))
	if err != nil {
		return nil, err
	}
	lines := f.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := apiclient.PaymentRequest{
		PaymentMethod: method.Label(),
		Amount:        pricing.Quote(subtotal(lines)).Total.InexactFloat64(),
	}
	switch method {
	case MethodCard:
		if details.Card == nil || strings.TrimSpace(details.Card.Number) == "" {
			return nil, domain.Invalid("card_details", "card number required")
		}
		card := *details.Card
		card.Number = strings.ReplaceAll(FormatCardNumber(card.Number), " ", "")
		req.CardDetails = &card
	case MethodUPI:
		if strings.TrimSpace(details.UPIID) == "" {
			return nil, domain.Invalid("upi_id", "required")
		}
		req.UPIID = strings.TrimSpace(details.UPIID)
	case MethodNetBanking:
		if strings.TrimSpace(details.Bank) == "" {
			return nil, domain.Invalid("bank", "required")
		}
		req.Bank = strings.TrimSpace(details.Bank)
	}

	res, err := f.api.ProcessPayment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("process payment: %w", err)
	}
	return res, nil
}

func (f *Flow) validateBilling(b domain.BillingInfo) error {
	err := f.validate.Struct(b)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "required"
		if fe.Tag() == "email" {
			reason = "must be a valid email address"
		}
		return &domain.ValidationError{Field: fe.Field(), Reason: reason, Err: err}
	}
	return &domain.ValidationError{Field: "billing_info", Reason: err.Error(), Err: err}
}

func subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func orderItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ID:            l.ID,
			Name:          l.Name,
			Price:         l.UnitPrice.InexactFloat64(),
			Quantity:      l.Quantity,
			Customization: l.Customization,
		})
	}
	return items
}
