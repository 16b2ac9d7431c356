package mailer

import "fmt"

// Render fills in the subject and text body for a templated job. Jobs with
// an explicit Subject/Text are passed through untouched.
func Render(job *EmailJob) {
	if job.Template == "" || job.Text != "" {
		return
	}
	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	switch job.Template {
	case OrderConfirmation:
		if job.Subject == "" {
			job.Subject = fmt.Sprintf("Order #%v confirmed", data["OrderID"])
		}
		job.Text = fmt.Sprintf(
			"Hi %v,\n\nThanks for your order #%v. Your total was $%v.\n"+
				"Estimated delivery: %v.\n\n— eShop Express",
			data["FirstName"], data["OrderID"], data["Total"], data["EstimatedDelivery"])
	case OrderShipped:
		if job.Subject == "" {
			job.Subject = fmt.Sprintf("Order #%v has shipped", data["OrderID"])
		}
		job.Text = fmt.Sprintf(
			"Hi %v,\n\nYour order #%v is on its way.\n\n— eShop Express",
			data["FirstName"], data["OrderID"])
	default:
		if job.Subject == "" {
			job.Subject = "Notification"
		}
	}
}
