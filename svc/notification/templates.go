package notification

import (
	"fmt"
	"html/template"
	"strings"
)

// Rendered is the channel-ready content for one notification. Email uses
// Subject and HTMLBody, SMS and push use the plain-text Body.
type Rendered struct {
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateFunc builds channel content for a notification type.
type TemplateFunc func(n *Notification) Rendered

// templates maps notification types to their content builders. Types
// without an entry fall back to the generic title/message rendering.
var templates = map[Type]TemplateFunc{
	TypeInvoiceCreated:       renderInvoiceCreated,
	TypeInvoiceOverdue:       renderInvoiceOverdue,
	TypePaymentReceived:      renderPaymentReceived,
	TypePaymentDue:           renderPaymentDue,
	TypeLeaseExpiring:        renderLeaseExpiring,
	TypeMaintenanceScheduled: renderMaintenanceScheduled,
	TypeVisitorArrived:       renderVisitorArrived,
	TypeParkingAssigned:      renderParkingAssigned,
	TypeSecurityIncident:     renderSecurityIncident,
	TypeEmergencyAlert:       renderEmergencyAlert,
}

// Render produces channel content for the notification, using the
// type-specific template when one is registered and the generic fallback
// otherwise.
func Render(n *Notification) Rendered {
	if fn, ok := templates[n.Type]; ok {
		return fn(n)
	}
	return renderGeneric(n)
}

func renderGeneric(n *Notification) Rendered {
	return Rendered{
		Subject:  n.Title,
		Body:     n.Message,
		HTMLBody: htmlBody(n.Title, n.Message, n.Link),
	}
}

func renderInvoiceCreated(n *Notification) Rendered {
	subject := n.Title
	body := n.Message
	if num := metaString(n, "invoice_number"); num != "" {
		subject = fmt.Sprintf("Invoice %s issued", num)
		if amount := metaString(n, "amount"); amount != "" {
			body = fmt.Sprintf("Invoice %s for %s has been issued. %s", num, amount, n.Message)
		}
	}
	return Rendered{Subject: subject, Body: body, HTMLBody: htmlBody(subject, body, n.Link)}
}

func renderInvoiceOverdue(n *Notification) Rendered {
	subject := "Invoice overdue"
	if num := metaString(n, "invoice_number"); num != "" {
		subject = fmt.Sprintf("Invoice %s is overdue", num)
	}
	body := n.Message
	if due := metaString(n, "due_date"); due != "" {
		body = fmt.Sprintf("%s Payment was due on %s.", n.Message, due)
	}
	return Rendered{Subject: subject, Body: body, HTMLBody: htmlBody(subject, body, n.Link)}
}

func renderPaymentReceived(n *Notification) Rendered {
	subject := "Payment received"
	if amount := metaString(n, "amount"); amount != "" {
		subject = fmt.Sprintf("Payment of %s received", amount)
	}
	return Rendered{Subject: subject, Body: n.Message, HTMLBody: htmlBody(subject, n.Message, n.Link)}
}

func renderPaymentDue(n *Notification) Rendered {
	subject := "Payment due"
	body := n.Message
	if due := metaString(n, "due_date"); due != "" {
		subject = fmt.Sprintf("Payment due on %s", due)
		if amount := metaString(n, "amount"); amount != "" {
			body = fmt.Sprintf("A payment of %s is due on %s. %s", amount, due, n.Message)
		}
	}
	return Rendered{Subject: subject, Body: body, HTMLBody: htmlBody(subject, body, n.Link)}
}

func renderLeaseExpiring(n *Notification) Rendered {
	subject := "Lease expiring soon"
	if date := metaString(n, "expiry_date"); date != "" {
		subject = fmt.Sprintf("Lease expires on %s", date)
	}
	return Rendered{Subject: subject, Body: n.Message, HTMLBody: htmlBody(subject, n.Message, n.Link)}
}

func renderMaintenanceScheduled(n *Notification) Rendered {
	subject := "Maintenance scheduled"
	body := n.Message
	if when := metaString(n, "scheduled_at"); when != "" {
		body = fmt.Sprintf("%s Scheduled for %s.", n.Message, when)
	}
	if area := metaString(n, "area"); area != "" {
		subject = fmt.Sprintf("Maintenance scheduled: %s", area)
	}
	return Rendered{Subject: subject, Body: body, HTMLBody: htmlBody(subject, body, n.Link)}
}

func renderVisitorArrived(n *Notification) Rendered {
	subject := "Visitor arrived"
	body := n.Message
	if name := metaString(n, "visitor_name"); name != "" {
		subject = fmt.Sprintf("%s has arrived", name)
		if gate := metaString(n, "gate"); gate != "" {
			body = fmt.Sprintf("%s is waiting at %s. %s", name, gate, n.Message)
		}
	}
	return Rendered{Subject: subject, Body: body, HTMLBody: htmlBody(subject, body, n.Link)}
}

func renderParkingAssigned(n *Notification) Rendered {
	subject := "Parking spot assigned"
	if spot := metaString(n, "spot"); spot != "" {
		subject = fmt.Sprintf("Parking spot %s assigned", spot)
	}
	return Rendered{Subject: subject, Body: n.Message, HTMLBody: htmlBody(subject, n.Message, n.Link)}
}

func renderSecurityIncident(n *Notification) Rendered {
	subject := "Security incident"
	if loc := metaString(n, "location"); loc != "" {
		subject = fmt.Sprintf("Security incident at %s", loc)
	}
	return Rendered{Subject: subject, Body: n.Message, HTMLBody: htmlBody(subject, n.Message, n.Link)}
}

func renderEmergencyAlert(n *Notification) Rendered {
	subject := "EMERGENCY: " + n.Title
	return Rendered{Subject: subject, Body: n.Message, HTMLBody: htmlBody(subject, n.Message, n.Link)}
}

// metaString returns the metadata value under key when it is a string.
// Numeric values are formatted with their default representation.
func metaString(n *Notification, key string) string {
	if n.Metadata == nil {
		return ""
	}
	switch v := n.Metadata[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// htmlBody wraps the rendered content in the shared email layout. All
// dynamic values are escaped; the link, when present, becomes a button.
func htmlBody(subject, body, link string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto;padding:24px;color:#1f2933;">`)
	b.WriteString(`<h2 style="margin:0 0 16px;font-size:20px;">`)
	b.WriteString(template.HTMLEscapeString(subject))
	b.WriteString(`</h2>`)
	b.WriteString(`<p style="margin:0 0 16px;line-height:1.5;">`)
	b.WriteString(template.HTMLEscapeString(body))
	b.WriteString(`</p>`)
	if link != "" {
		b.WriteString(`<p style="margin:24px 0;"><a href="`)
		b.WriteString(template.HTMLEscapeString(link))
		b.WriteString(`" style="background:#2563eb;color:#ffffff;padding:10px 20px;border-radius:6px;text-decoration:none;">View details</a></p>`)
	}
	b.WriteString(`<hr style="border:none;border-top:1px solid #e4e7eb;margin:24px 0;">`)
	b.WriteString(`<p style="margin:0;font-size:12px;color:#7b8794;">This is an automated message from your building management system.</p>`)
	b.WriteString(`</div>`)
	return b.String()
}
