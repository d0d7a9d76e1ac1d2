package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/mailio/go-mailio-alias-server/email"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/metrics"
	"github.com/mailio/go-mailio-alias-server/services"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/mailio/go-mailio-alias-server/util"
)

const (
	maxMessageBytes = 30 * 1024 * 1024
	maxRecipients   = 100
)

type MailReceiveWebhook struct {
	env          *types.Environment
	aliasService *services.AliasService
}

func NewMailReceiveWebhook(aliasService *services.AliasService, env *types.Environment) *MailReceiveWebhook {
	return &MailReceiveWebhook{env: env, aliasService: aliasService}
}

// finds the forwarder config whose webhook is mounted on this path
func fullPathToForwarderConfig(fullPath string) *global.ForwarderConfig {
	for _, fw := range global.Conf.Forwarders {
		if fw.Webhookurl == fullPath {
			return fw
		}
	}
	return nil
}

// readMimeBody reads the raw MIME message from the webhook request.
// Mailgun posts it as the body-mime form field; a raw message/rfc822
// body is accepted as well.
func readMimeBody(c *gin.Context) []byte {
	if bodyMime, ok := c.GetPostForm("body-mime"); ok {
		return []byte(bodyMime)
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMessageBytes+1))
	if err != nil {
		return nil
	}
	return raw
}

// ReceiveMail webhook implementation
// @Summary Receive an inbound message from the ESP webhook
// @Description Validate the alias of each recipient and queue a forward or a bounce
// @Tags Mail Webhook Handler
// @Accept json
// @Produce json
// @Success 200
// @Failure 401 {object} api.ApiError "invalid webhook key"
// @Failure 400 {object} api.ApiError "bad request"
// @Failure 500 {object} api.ApiError "internal error"
// @Router /webhook/mailgun_mime [post]
func (m *MailReceiveWebhook) ReceiveMail(c *gin.Context) {
	fwConfig := fullPathToForwarderConfig(c.FullPath())
	if fwConfig == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "no forwarder mounted on this path"})
		return
	}
	if fwConfig.Webhookkey != "" && c.Query("key") != fwConfig.Webhookkey {
		ApiErrorf(c, http.StatusUnauthorized, "invalid webhook key")
		return
	}
	if email.GetForwarder(fwConfig.Domain) == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "no forwarder registered for " + fwConfig.Domain})
		return
	}

	raw := readMimeBody(c)
	if len(raw) == 0 {
		ApiErrorf(c, http.StatusBadRequest, "empty message body")
		return
	}
	msg, mErr := email.ParseMime(raw)
	if mErr != nil {
		global.Logger.Log("error", "error parsing mime", "error", mErr.Error())
		ApiErrorf(c, http.StatusBadRequest, "error parsing mime")
		return
	}
	metrics.WebhookMessagesReceivedMetricsCount.Inc()
	global.Logger.Log("msg", "received mail webhook call", "messageId", msg.MessageId)

	// limits checked before any key ring work
	if len(msg.To) > maxRecipients {
		if err := m.enqueueBounce(fwConfig, msg, "", "4.5.3", "Too many recipients"); err != nil {
			ApiErrorf(c, http.StatusInternalServerError, "failed to queue bounce")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Too many recipients"})
		return
	}
	if msg.SizeBytes > maxMessageBytes {
		if err := m.enqueueBounce(fwConfig, msg, "", "5.3.4", "Email size is too large"); err != nil {
			ApiErrorf(c, http.StatusInternalServerError, "failed to queue bounce")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Email size is too large"})
		return
	}

	forwarded := 0
	bounced := 0
	for _, to := range msg.To {
		if !util.IsServedDomain(util.AliasDomain(to.Address)) {
			continue
		}
		recipient, rErr := m.aliasService.ResolveRecipient(c.Request.Context(), to.Address, global.Conf.Alias.HashLength)
		if rErr != nil {
			global.Logger.Log("error", "failed to resolve recipient", "alias", to.Address, "error", rErr.Error())
			ApiErrorf(c, http.StatusInternalServerError, "failed to resolve recipient")
			return
		}
		if recipient == "" {
			// alias validates against no key in the ring
			if err := m.enqueueBounce(fwConfig, msg, to.Address, "5.1.1", "Mailbox does not exist"); err != nil {
				global.Logger.Log("error", "failed to queue bounce", "alias", to.Address, "error", err.Error())
			}
			bounced++
			continue
		}

		task := &types.ForwardTask{
			AliasAddress: to.Address,
			Recipient:    recipient,
			Mail:         msg,
		}
		forwardTask, tErr := types.NewMailForwardTask(task)
		if tErr != nil {
			ApiErrorf(c, http.StatusInternalServerError, tErr.Error())
			return
		}
		id, idErr := util.MailToUniqueID(msg, to.Address)
		if idErr != nil {
			ApiErrorf(c, http.StatusBadRequest, idErr.Error())
			return
		}
		taskInfo, tqErr := m.env.TaskClient.Enqueue(forwardTask,
			asynq.MaxRetry(3),              // max number of times to retry the task
			asynq.Timeout(600*time.Second), // max time to process the task
			asynq.TaskID(id),               // unique task id
			asynq.Unique(time.Second*10))   // unique for 10 seconds (preventing multiple equal messages in the queue)
		if tqErr != nil {
			global.Logger.Log("error", "failed to queue message", "error", tqErr.Error())
			ApiErrorf(c, http.StatusInternalServerError, "failed to queue message")
			return
		}
		global.Logger.Log("msg", "message queued for forwarding", "taskId", taskInfo.ID)
		forwarded++
	}

	c.JSON(http.StatusOK, gin.H{"message": "email processed", "forwarded": forwarded, "bounced": bounced})
}

// enqueueBounce queues an asynchronous bounce back to the sender. When
// address is empty the whole message is bounced, not one recipient.
func (m *MailReceiveWebhook) enqueueBounce(fwConfig *global.ForwarderConfig, msg *types.Mail, address, code, reason string) error {
	task := &types.BounceTask{
		Code:    code,
		Reason:  reason,
		Mail:    msg,
		Domain:  fwConfig.Domain,
		Address: address,
	}
	bounceTask, tErr := types.NewMailBounceTask(task)
	if tErr != nil {
		return tErr
	}
	id, idErr := util.MailToUniqueID(msg, "bounce"+address)
	if idErr != nil {
		return idErr
	}
	_, tqErr := m.env.TaskClient.Enqueue(bounceTask,
		asynq.MaxRetry(3),
		asynq.Timeout(600*time.Second),
		asynq.TaskID(id),
		asynq.Unique(time.Second*10))
	return tqErr
}
