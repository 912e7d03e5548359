// Package natsrpc exposes the order use cases over NATS request/reply.
// Each operation listens on its own subject; replies carry either the
// operation result or an error envelope with a status code and message.
package natsrpc

import (
	"context"
	"encoding/json"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subjects served by the order service.
const (
	SubjectCreateOrder       = "create_order"
	SubjectFindAllOrders     = "find_all_orders"
	SubjectFindOneOrder      = "find_one_order"
	SubjectChangeOrderStatus = "change_order_status"
)

// queueGroup lets multiple service instances share the subjects; NATS
// delivers each request to exactly one member.
const queueGroup = "orders"

// Server subscribes the order use cases to their subjects. Requests on the
// same subject are processed concurrently, each under its own deadline.
type Server struct {
	conn *nats.Conn

	createOrder  commands.CreateOrderCommandHandler
	changeStatus commands.ChangeOrderStatusCommandHandler
	getOrders    queries.GetOrdersQueryHandler
	getOrder     queries.GetOrderQueryHandler

	timeout time.Duration
	logger  *zap.Logger

	subs []*nats.Subscription
}

// NewServer creates a server over an established NATS connection. The
// timeout bounds the handling of each request.
func NewServer(
	conn *nats.Conn,
	createOrder commands.CreateOrderCommandHandler,
	changeStatus commands.ChangeOrderStatusCommandHandler,
	getOrders queries.GetOrdersQueryHandler,
	getOrder queries.GetOrderQueryHandler,
	timeout time.Duration,
	logger *zap.Logger,
) *Server {
	return &Server{
		conn:         conn,
		createOrder:  createOrder,
		changeStatus: changeStatus,
		getOrders:    getOrders,
		getOrder:     getOrder,
		timeout:      timeout,
		logger:       logger,
	}
}

// Start subscribes all subjects. On any subscription failure the already
// established subscriptions are torn down.
func (s *Server) Start() error {
	handlers := map[string]nats.MsgHandler{
		SubjectCreateOrder:       s.handleCreateOrder,
		SubjectFindAllOrders:     s.handleFindAllOrders,
		SubjectFindOneOrder:      s.handleFindOneOrder,
		SubjectChangeOrderStatus: s.handleChangeOrderStatus,
	}

	for subject, handler := range handlers {
		sub, err := s.conn.QueueSubscribe(subject, queueGroup, s.dispatch(handler))
		if err != nil {
			s.Stop()
			return err
		}
		s.subs = append(s.subs, sub)
	}

	s.logger.Info("order subjects subscribed",
		zap.Int("subjects", len(handlers)),
		zap.String("queue", queueGroup))

	return nil
}

// Stop unsubscribes all subjects. In-flight requests finish on their own.
func (s *Server) Stop() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn("unsubscribe failed",
				zap.String("subject", sub.Subject),
				zap.Error(err))
		}
	}
	s.subs = nil
}

// dispatch hands each message to its handler on a fresh goroutine so a slow
// request does not serialize the subscription's delivery loop.
func (s *Server) dispatch(handler nats.MsgHandler) nats.MsgHandler {
	return func(msg *nats.Msg) {
		go handler(msg)
	}
}

func (s *Server) handleCreateOrder(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var req createOrderRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.replyError(msg, errBadPayload(err))
		return
	}

	items, err := req.toDomainItems()
	if err != nil {
		s.replyError(msg, err)
		return
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), items)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	resp, err := s.createOrder.Handle(ctx, cmd)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, fromCreateOrderResponse(resp))
}

func (s *Server) handleFindAllOrders(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// An empty payload means first page, default limit.
	var req findAllOrdersRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			s.replyError(msg, errBadPayload(err))
			return
		}
	}

	query, err := req.toQuery()
	if err != nil {
		s.replyError(msg, err)
		return
	}

	resp, err := s.getOrders.Handle(ctx, query)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, fromGetOrdersResponse(resp))
}

func (s *Server) handleFindOneOrder(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var req findOneOrderRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.replyError(msg, errBadPayload(err))
		return
	}

	query, err := req.toQuery()
	if err != nil {
		s.replyError(msg, err)
		return
	}

	resp, err := s.getOrder.Handle(ctx, query)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, fromGetOrderResponse(resp))
}

func (s *Server) handleChangeOrderStatus(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var req changeOrderStatusRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.replyError(msg, errBadPayload(err))
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		s.replyError(msg, err)
		return
	}

	resp, err := s.changeStatus.Handle(ctx, cmd)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	s.reply(msg, fromChangeStatusResponse(resp))
}

func (s *Server) reply(msg *nats.Msg, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("response marshalling failed",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		s.replyError(msg, err)
		return
	}

	if err := msg.Respond(data); err != nil {
		s.logger.Warn("reply failed",
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}
}

func (s *Server) replyError(msg *nats.Msg, err error) {
	envelope := toErrorResponse(err)

	if envelope.Status >= 500 {
		s.logger.Error("request failed",
			zap.String("subject", msg.Subject),
			zap.Error(err))
	} else {
		s.logger.Debug("request rejected",
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}

	data, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		s.logger.Error("error envelope marshalling failed", zap.Error(marshalErr))
		return
	}

	if respondErr := msg.Respond(data); respondErr != nil {
		s.logger.Warn("error reply failed",
			zap.String("subject", msg.Subject),
			zap.Error(respondErr))
	}
}
