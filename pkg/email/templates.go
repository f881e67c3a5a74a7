package email

import (
	"bytes"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	WelcomeTmpl       *template.Template
	OrderReceivedTmpl *template.Template
	OrderAssignedTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	welcomeTmpl, err := template.New("welcome").Parse(welcomeTemplate)
	if err != nil {
		return nil, err
	}

	receivedTmpl, err := template.New("orderReceived").Parse(orderReceivedTemplate)
	if err != nil {
		return nil, err
	}

	assignedTmpl, err := template.New("orderAssigned").Parse(orderAssignedTemplate)
	if err != nil {
		return nil, err
	}

	return &TemplateManager{
		WelcomeTmpl:       welcomeTmpl,
		OrderReceivedTmpl: receivedTmpl,
		OrderAssignedTmpl: assignedTmpl,
	}, nil
}

// WelcomeData holds the dynamic data for the welcome email.
type WelcomeData struct {
	Name string
}

// OrderData holds the dynamic data for the order lifecycle emails.
type OrderData struct {
	OrderID  string
	TankSize string
	Quantity int
	Total    float64
	Address  string
}

func (tm *TemplateManager) GenerateWelcomeEmailHTML(data WelcomeData) (string, error) {
	var body bytes.Buffer
	if err := tm.WelcomeTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

func (tm *TemplateManager) GenerateOrderReceivedEmailHTML(data OrderData) (string, error) {
	var body bytes.Buffer
	if err := tm.OrderReceivedTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

func (tm *TemplateManager) GenerateOrderAssignedEmailHTML(data OrderData) (string, error) {
	var body bytes.Buffer
	if err := tm.OrderAssignedTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// --- HTML Template Definitions ---

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Welcome</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Welcome, {{.Name}}!</h2>
	<p>Your account is ready. Set your delivery address on the map and we will tell you right away whether you are inside one of our delivery zones.</p>
	<p>Once your address is confirmed you can order a refill in a couple of taps.</p>
</body>
</html>
`

const orderReceivedTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Order Received</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>We got your order</h2>
	<p>Order <strong>{{.OrderID}}</strong> is in. Here is what we have:</p>
	<ul>
		<li>{{.Quantity}} x {{.TankSize}} tank</li>
		<li>Delivery to: {{.Address}}</li>
		<li>Total: ${{printf "%.2f" .Total}}</li>
	</ul>
	<p>We will let you know as soon as a driver picks it up.</p>
</body>
</html>
`

const orderAssignedTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Driver Assigned</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Your propane is on the way</h2>
	<p>A driver has been assigned to order <strong>{{.OrderID}}</strong>.</p>
	<p>{{.Quantity}} x {{.TankSize}} tank, delivering to {{.Address}}.</p>
	<p>You will get an update when the delivery is in transit.</p>
</body>
</html>
`
