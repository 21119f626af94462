package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// NotificationService posts back-office events to an outbound webhook.
// Best-effort: failures are logged, never returned to the caller's flow.
type NotificationService struct {
	client *http.Client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotificationEvent is the webhook payload.
type NotificationEvent struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	EntityID uint   `json:"entityId,omitempty"`
	LeaseID  uint   `json:"leaseId,omitempty"`
	UnitID   uint   `json:"unitId,omitempty"`
}

func (ns *NotificationService) send(event NotificationEvent) {
	webhookURL := os.Getenv("NOTIFY_WEBHOOK_URL")
	if webhookURL == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("notification: failed to marshal event: %v", err)
		return
	}

	res, err := ns.client.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("notification: webhook call failed: %v", err)
		return
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		log.Printf("notification: webhook returned status %d", res.StatusCode)
	}
}

// NotifyLeaseRenewed announces a completed renewal.
func (ns *NotificationService) NotifyLeaseRenewed(oldLeaseID, newLeaseID, unitID uint, carriedForward int) {
	msg := fmt.Sprintf("Lease %d renewed as lease %d", oldLeaseID, newLeaseID)
	if carriedForward > 0 {
		msg = fmt.Sprintf("%s with %d installment(s) carried forward", msg, carriedForward)
	}
	go ns.send(NotificationEvent{
		Type:     "lease_renewed",
		Message:  msg,
		EntityID: newLeaseID,
		LeaseID:  oldLeaseID,
		UnitID:   unitID,
	})
}

// NotifyExtensionRequested announces a tenant's due-date extension request
// so a manager can pick it up.
func (ns *NotificationService) NotifyExtensionRequested(paymentID, leaseID uint, requestedDate string) {
	go ns.send(NotificationEvent{
		Type:     "extension_requested",
		Message:  fmt.Sprintf("Due-date extension to %s requested on installment %d", requestedDate, paymentID),
		EntityID: paymentID,
		LeaseID:  leaseID,
	})
}
