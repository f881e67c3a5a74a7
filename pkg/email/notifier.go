package email

import (
	"context"
	"log"
	"time"

	"propane-delivery/internal/models"
)

// Notifier renders and sends transactional emails. Sends run in the
// background; a failed email is logged and never fails the request
// that triggered it.
type Notifier struct {
	sender    Sender
	templates *TemplateManager
}

func NewNotifier(sender Sender, templates *TemplateManager) *Notifier {
	return &Notifier{sender: sender, templates: templates}
}

const sendTimeout = 15 * time.Second

func (n *Notifier) Welcome(to, nickname string) {
	html, err := n.templates.GenerateWelcomeEmailHTML(WelcomeData{Name: nickname})
	if err != nil {
		log.Printf("render welcome email: %v", err)
		return
	}
	plain := "Welcome, " + nickname + "! Set your delivery address and order your first refill."
	n.sendAsync(to, "Welcome to Propane Delivery", plain, html)
}

func (n *Notifier) OrderReceived(to string, order *models.Order) {
	html, err := n.templates.GenerateOrderReceivedEmailHTML(orderData(order))
	if err != nil {
		log.Printf("render order received email: %v", err)
		return
	}
	n.sendAsync(to, "We received your propane order", "We received your order "+order.ID+".", html)
}

func (n *Notifier) OrderAssigned(to string, order *models.Order) {
	html, err := n.templates.GenerateOrderAssignedEmailHTML(orderData(order))
	if err != nil {
		log.Printf("render order assigned email: %v", err)
		return
	}
	n.sendAsync(to, "A driver is on the way", "A driver has been assigned to your order "+order.ID+".", html)
}

func orderData(order *models.Order) OrderData {
	return OrderData{
		OrderID:  order.ID,
		TankSize: order.TankSize,
		Quantity: order.Quantity,
		Total:    order.Total,
		Address:  order.DeliveryAddress,
	}
}

func (n *Notifier) sendAsync(to, subject, plain, html string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := n.sender.SendEmail(ctx, to, subject, plain, html); err != nil {
			log.Printf("send email %q to %s: %v", subject, to, err)
		}
	}()
}
