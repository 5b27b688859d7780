package payment_succeeded

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"parcel-service/internal/entities"
	"parcel-service/internal/service/parcel"
	"parcel-service/pkg/logger"
)

// Handler records settled payments from the payment.succeeded topic. It is
// safe to redeliver a message: RecordPayment is idempotent per transaction id.
type Handler struct {
	service Service
	log     handlerLogger
	timeout time.Duration
}

func New(log handlerLogger, service Service, timeout time.Duration) *Handler {
	return &Handler{
		service: service,
		log:     log.With(logger.NewField("handler", "payment.succeeded")),
		timeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim closed")
				return nil
			}
			if stop := h.process(sess, message); stop {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("session done")
			return nil
		}
	}
}

// process handles one message and reports whether the claim must stop. A
// message is left unmarked only when it could succeed on redelivery.
func (h *Handler) process(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.timeout)
	defer cancel()

	msgLog := h.log.With(
		logger.NewField("partition", message.Partition),
		logger.NewField("offset", message.Offset),
	)

	var event paymentSucceededEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		msgLog.Error("malformed message skipped", logger.NewField("error", err))
		sess.MarkMessage(message, "")
		return false
	}

	msgLog = msgLog.With(
		logger.NewField("parcel", event.ParcelID),
		logger.NewField("transaction", event.TransactionID),
	)

	result, err := h.service.RecordPayment(ctx, entities.PaymentModify{
		ParcelID:       &event.ParcelID,
		PayerEmail:     &event.Email,
		Amount:         &event.Amount,
		Method:         &event.Method,
		TransactionRef: &event.TransactionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("processing interrupted, message will be redelivered", logger.NewField("error", err))
			return true

		case errors.Is(err, parcel.ErrMissingRequiredFields),
			errors.Is(err, parcel.ErrInvalidParcelID),
			errors.Is(err, parcel.ErrInvalidAmount),
			errors.Is(err, parcel.ErrMissingTransactionRef),
			errors.Is(err, parcel.ErrParcelNotFound),
			errors.Is(err, parcel.ErrPaymentConflict):
			msgLog.Warn("payment rejected, message skipped", logger.NewField("error", err))
			sess.MarkMessage(message, "")
			return false

		default:
			msgLog.Error("payment not recorded, message will be redelivered", logger.NewField("error", err))
			return true
		}
	}

	msgLog.Info("payment processed",
		logger.NewField("payment_recorded", result.PaymentRecorded),
		logger.NewField("parcel_marked_paid", result.ParcelMarkedPaid),
		logger.NewField("already_recorded", result.AlreadyRecorded),
	)
	sess.MarkMessage(message, "")
	return false
}
