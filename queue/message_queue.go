package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/hibiken/asynq"
	"github.com/mailio/go-mailio-alias-server/email"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/metrics"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/mailio/go-mailio-alias-server/util"
)

// MessageQueue works entirely off the task payload; alias validation
// already happened in the webhook before the task was queued
type MessageQueue struct {
	env *types.Environment
}

func NewMessageQueue(env *types.Environment) *MessageQueue {
	return &MessageQueue{
		env: env,
	}
}

// Processing of mail tasks (forward and bounce)
func (mq *MessageQueue) ProcessMailTask(ctx context.Context, t *asynq.Task) error {
	switch t.Type() {
	case types.QueueTypeMailForward:
		var task types.ForwardTask
		if err := json.Unmarshal(t.Payload(), &task); err != nil {
			return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
		}
		return mq.ForwardMail(&task)
	case types.QueueTypeMailBounce:
		var task types.BounceTask
		if err := json.Unmarshal(t.Payload(), &task); err != nil {
			return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
		}
		return mq.BounceMail(&task)
	default:
		return fmt.Errorf("unexpected task type: %s, %w", t.Type(), asynq.SkipRetry)
	}
}

// ForwardMail delivers a validated inbound message to the real
// recipient over the forwarder registered for the alias domain
func (mq *MessageQueue) ForwardMail(task *types.ForwardTask) error {
	domain := util.AliasDomain(task.AliasAddress)
	forwarder := email.GetForwarder(domain)
	if forwarder == nil {
		global.Logger.Log("error", "no forwarder registered", "domain", domain)
		return fmt.Errorf("no forwarder registered for %s: %w", domain, asynq.SkipRetry)
	}

	to := mail.Address{Address: task.Recipient}
	mime, mErr := email.ToMime(task.Mail, task.AliasAddress, to)
	if mErr != nil {
		global.Logger.Log("error", "failed to build forward mime", "error", mErr.Error())
		return fmt.Errorf("failed to build forward mime: %v: %w", mErr, asynq.SkipRetry)
	}

	start := time.Now()
	id, sendErr := forwarder.SendMimeMail(mime, []mail.Address{to})
	metrics.MailForwardProcessingLatency.Observe(float64(time.Since(start).Milliseconds()))
	if sendErr != nil {
		// transient provider failures are retried by the queue
		global.Logger.Log("error", "failed to forward mail", "alias", task.AliasAddress, "error", sendErr.Error())
		return sendErr
	}
	metrics.MailForwardedMetricsCount.Inc()
	global.Logger.Log("msg", "mail forwarded", "alias", task.AliasAddress, "providerId", id)
	return nil
}

// BounceMail returns a delivery status notification to the sender of a
// rejected message
func (mq *MessageQueue) BounceMail(task *types.BounceTask) error {
	forwarder := email.GetForwarder(task.Domain)
	if forwarder == nil {
		global.Logger.Log("error", "no forwarder registered", "domain", task.Domain)
		return fmt.Errorf("no forwarder registered for %s: %w", task.Domain, asynq.SkipRetry)
	}
	if task.Mail == nil {
		return fmt.Errorf("bounce task has no mail: %w", asynq.SkipRetry)
	}

	bounceMime, bErr := email.ToBounce(task.Mail.From, task.Mail, task.Code, task.Reason)
	if bErr != nil {
		global.Logger.Log("error", "failed to build bounce mime", "error", bErr.Error())
		return fmt.Errorf("failed to build bounce mime: %v: %w", bErr, asynq.SkipRetry)
	}

	_, sendErr := forwarder.SendMimeMail(bounceMime, []mail.Address{task.Mail.From})
	if sendErr != nil {
		global.Logger.Log("error", "failed to send bounce", "sender", task.Mail.From.Address, "error", sendErr.Error())
		return sendErr
	}
	metrics.MailBouncedMetricsCount.Inc()
	global.Logger.Log("msg", "bounce sent", "sender", task.Mail.From.Address, "code", task.Code)
	return nil
}
