package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/luxefashion/go-storefront/internal/cart"
	"github.com/luxefashion/go-storefront/internal/kafkax"
)

var ErrSubmitFailed = errors.New("xatolik yuz berdi, qayta urining")

// Checkout submits the current cart to the remote order endpoint. The
// cart is cleared only after the endpoint confirms success; on any
// failure the cart and its persisted snapshot stay as they were.
type Checkout struct {
	Orders   *Client
	Cart     *cart.Cart
	Producer *kafkax.Producer
	Service  string
}

func (c *Checkout) Submit(ctx context.Context, customer Customer) (SubmitResult, error) {
	if err := customer.Validate(); err != nil {
		return SubmitResult{}, err
	}
	items := c.Cart.Items()
	if len(items) == 0 {
		return SubmitResult{}, ErrEmptyCart
	}

	order := Order{
		Customer: customer,
		Items:    items,
		Totals:   ComputeTotals(items),
	}
	res, err := c.Orders.Submit(ctx, order)
	if err != nil {
		return SubmitResult{}, err
	}
	if !res.Success {
		return res, ErrSubmitFailed
	}

	if err := c.Cart.Clear(ctx); err != nil {
		return res, err
	}
	c.publish(order, res.OrderID)
	return res, nil
}

func (c *Checkout) publish(order Order, orderID string) {
	if c.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderSubmitted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      c.Service,
		CorrelationID: orderID,
	}
	ev.Payload = kafkax.MustMarshal(OrderSubmittedPayload{
		OrderID:    orderID,
		UserID:     c.Cart.UserID(),
		Customer:   order.Customer,
		Items:      order.Items,
		TotalCents: order.Totals.Total,
	})
	c.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderSubmitted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
