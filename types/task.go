package types

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

var (
	QueueTypeMailForward = "alias:forward"
	QueueTypeMailBounce  = "alias:bounce"
)

// ForwardTask carries one validated inbound message to the queue for
// delivery to the recipient its alias key is bound to
type ForwardTask struct {
	// AliasAddress is the alias the message arrived on
	AliasAddress string `json:"aliasAddress" validate:"required"`
	// Recipient is the real mailbox resolved from the key ring
	Recipient string `json:"recipient" validate:"required"`
	Mail      *Mail  `json:"mail" validate:"required"`
}

// BounceTask carries one rejected inbound message for an asynchronous
// bounce back to the sender
type BounceTask struct {
	Code    string `json:"code"`
	Reason  string `json:"reason"`
	Mail    *Mail  `json:"mail" validate:"required"`
	Domain  string `json:"domain"`
	Address string `json:"address"` // the rejected alias address
}

func NewMailForwardTask(task *ForwardTask) (*asynq.Task, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(QueueTypeMailForward, payload), nil
}

func NewMailBounceTask(task *BounceTask) (*asynq.Task, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(QueueTypeMailBounce, payload), nil
}
