package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"

	"github.com/scamwatch/backend/internal/models"
)

// MessageSender is the slice of the FCM client the notifier uses;
// *messaging.Client satisfies it.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Notifier stores a notification for the user and, when the user has a
// registered device token, mirrors it as an FCM push. Both halves are
// best-effort: failures are logged, never surfaced to the caller — report
// submission and triage must not depend on this side channel.
type Notifier struct {
	notifications NotificationService
	users         UserService
	sender        MessageSender
}

// NewNotifier creates a notifier. sender may be nil when FCM is not
// configured; pushes are then skipped.
func NewNotifier(notifications NotificationService, users UserService, sender MessageSender) *Notifier {
	return &Notifier{
		notifications: notifications,
		users:         users,
		sender:        sender,
	}
}

func (n *Notifier) Notify(userID, title, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := n.notifications.Create(ctx, userID, body); err != nil {
		log.Printf("[Notifier] store failed user=%s err=%v", userID, err)
	}

	if n.sender == nil {
		return
	}
	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[Notifier] user lookup failed user=%s err=%v", userID, err)
		return
	}
	if user.DeviceToken == "" {
		return
	}

	_, err = n.sender.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: user.DeviceToken,
	})
	if err != nil {
		log.Printf("[Notifier] push failed user=%s err=%v", userID, err)
		return
	}
	log.Printf("[Notifier] push sent user=%s", userID)
}

// NotifyReportConfirmed tells the reporter their submission was validated.
func (n *Notifier) NotifyReportConfirmed(report *models.ScamReport) {
	n.Notify(
		report.ReporterID,
		"Report confirmed",
		fmt.Sprintf("Your report about %s on %s has been confirmed by an administrator.",
			report.ScammerUsername, report.Platform),
	)
}

// NotifyReportReceived acknowledges a new submission with its risk score.
func (n *Notifier) NotifyReportReceived(report *models.ScamReport) {
	n.Notify(
		report.ReporterID,
		"Report received",
		fmt.Sprintf("Thank you for helping to make the internet safer. The risk score for this report is %d.",
			report.RiskScore),
	)
}
