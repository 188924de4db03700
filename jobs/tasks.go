// Package jobs defines background tasks and the Asynq worker that runs them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeContactNotification notifies staff of a new contact submission.
	TaskTypeContactNotification = "mail:contact-notification"
	// TaskTypeSubscriberWelcome greets a new newsletter subscriber.
	TaskTypeSubscriberWelcome = "mail:subscriber-welcome"
)

// ContactNotificationPayload describes a contact-form submission to relay.
type ContactNotificationPayload struct {
	Ref     string `json:"ref"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewContactNotificationTask constructs an Asynq task for a submission.
func NewContactNotificationTask(payload ContactNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeContactNotification, data, asynq.Queue(QueueDefault)), nil
}

// SubscriberWelcomePayload describes the welcome mail for a new subscriber.
type SubscriberWelcomePayload struct {
	Email string `json:"email"`
}

// NewSubscriberWelcomeTask constructs an Asynq task for a new subscriber.
func NewSubscriberWelcomeTask(payload SubscriberWelcomePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSubscriberWelcome, data, asynq.Queue(QueueDefault)), nil
}
