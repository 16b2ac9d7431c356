package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderOrderConfirmation(t *testing.T) {
	job := EmailJob{
		To:       "demo@eshopexpress.ca",
		Template: OrderConfirmation,
		Data: map[string]any{
			"OrderID":           int64(42),
			"FirstName":         "Demo",
			"Total":             "158.17",
			"EstimatedDelivery": "September 6, 2026",
		},
	}
	Render(&job)

	assert.Equal(t, "Order #42 confirmed", job.Subject)
	assert.Contains(t, job.Text, "order #42")
	assert.Contains(t, job.Text, "$158.17")
	assert.Contains(t, job.Text, "September 6, 2026")
}

func TestRenderLeavesExplicitBodiesAlone(t *testing.T) {
	job := EmailJob{
		To:      "demo@eshopexpress.ca",
		Subject: "Custom",
		Text:    "Custom body",
	}
	Render(&job)
	assert.Equal(t, "Custom", job.Subject)
	assert.Equal(t, "Custom body", job.Text)
}

func TestRenderUnknownTemplateFallsBack(t *testing.T) {
	job := EmailJob{To: "x@y.z", Template: "mystery"}
	Render(&job)
	assert.Equal(t, "Notification", job.Subject)
}
