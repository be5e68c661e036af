// Package queue serves execute requests arriving on a message queue and
// publishes the results to a reply topic.
package queue

import (
	"context"
	"encoding/json"

	"polyrun/internal/common/mq"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/service"
	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/contextkey"
	"polyrun/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExecuteMessage is the payload of the request topic.
type ExecuteMessage struct {
	RequestID string                 `json:"requestId"`
	Request   service.ExecuteRequest `json:"request"`
}

// ReplyError describes why a request produced no results.
type ReplyError struct {
	Code    pkgerrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// ExecuteReply is the payload of the reply topic, keyed by request id.
type ExecuteReply struct {
	RequestID string         `json:"requestId"`
	Results   []model.Result `json:"results,omitempty"`
	Error     *ReplyError    `json:"error,omitempty"`
}

// Executor runs one execute request.
type Executor interface {
	Execute(ctx context.Context, req service.ExecuteRequest) (*service.ExecuteResponse, error)
}

// Consumer turns request messages into replies.
type Consumer struct {
	executor   Executor
	producer   mq.Producer
	replyTopic string
}

func NewConsumer(executor Executor, producer mq.Producer, replyTopic string) *Consumer {
	return &Consumer{executor: executor, producer: producer, replyTopic: replyTopic}
}

// Subscribe registers the consumer for topic on c.
func (c *Consumer) Subscribe(ctx context.Context, consumer mq.Consumer, topic string, opts *mq.SubscribeOptions) error {
	if c.replyTopic == "" {
		return pkgerrors.ValidationError("replyTopic", "required")
	}
	return consumer.Subscribe(ctx, topic, c.HandleMessage, opts)
}

// HandleMessage executes one request. Errors the request itself caused are
// published as replies; only transient failures are returned for a retry.
func (c *Consumer) HandleMessage(ctx context.Context, msg *mq.Message) error {
	if msg == nil {
		return pkgerrors.New(pkgerrors.InvalidParams).WithMessage("message is nil")
	}

	var payload ExecuteMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		logger.Warn(ctx, "drop undecodable execute message", zap.String("message_id", msg.ID), zap.Error(err))
		return c.reply(ctx, ExecuteReply{
			RequestID: msg.ID,
			Error:     &ReplyError{Code: pkgerrors.InvalidParams, Message: "decode message failed: " + err.Error()},
		})
	}
	if payload.RequestID == "" {
		payload.RequestID = msg.ID
	}
	if payload.RequestID == "" {
		payload.RequestID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, contextkey.RequestID, payload.RequestID)

	resp, err := c.executor.Execute(ctx, payload.Request)
	if err != nil {
		if retryable(err) {
			logger.Warn(ctx, "execute request will be retried", zap.Error(err))
			return err
		}
		e := pkgerrors.GetError(err)
		return c.reply(ctx, ExecuteReply{
			RequestID: payload.RequestID,
			Error:     &ReplyError{Code: e.Code, Message: e.Error()},
		})
	}
	return c.reply(ctx, ExecuteReply{RequestID: payload.RequestID, Results: resp.Results})
}

func (c *Consumer) reply(ctx context.Context, reply ExecuteReply) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.InternalServerError, "encode reply failed")
	}
	msg := mq.NewMessage(reply.RequestID, body)
	if err := c.producer.Publish(ctx, c.replyTopic, msg); err != nil {
		logger.Error(ctx, "publish execute reply failed", zap.String("topic", c.replyTopic), zap.Error(err))
		return pkgerrors.Wrapf(err, pkgerrors.ServiceUnavailable, "publish reply failed")
	}
	return nil
}

func retryable(err error) bool {
	switch pkgerrors.GetCode(err) {
	case pkgerrors.TooManyRequests, pkgerrors.Timeout, pkgerrors.BackendInitFailed, pkgerrors.ServiceUnavailable:
		return true
	default:
		return false
	}
}
