package http

import (
	"net/http"

	"freelance/internal/core/application/usecases/commands"
	"freelance/internal/core/application/usecases/queries"
	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/core/domain/model/review"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	caller, err := CallerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req CreateOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}

	details, err := order.NewDetails(req.Title, req.Description, req.Scope, req.TechStack, req.Budget)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateOrderCommand(caller, details)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Int64()})
}

// ActivateOrder handles POST /api/v1/orders/:id/activate.
func (s *Server) ActivateOrder(c echo.Context) error {
	return s.changeActivity(c, commands.NewActivateOrderCommand)
}

// DeactivateOrder handles POST /api/v1/orders/:id/deactivate.
func (s *Server) DeactivateOrder(c echo.Context) error {
	return s.changeActivity(c, commands.NewDeactivateOrderCommand)
}

func (s *Server) changeActivity(
	c echo.Context, newCommand func(kernel.Caller, kernel.ID) (commands.OrderActivityCommand, error),
) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := newCommand(caller, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.OrderActivity.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SoftDeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) SoftDeleteOrder(c echo.Context) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSoftDeleteOrderCommand(caller, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.SoftDeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignPerformer handles POST /api/v1/orders/:id/performer.
func (s *Server) AssignPerformer(c echo.Context) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req AssignPerformerRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAssignPerformerCommand(caller, orderID, kernel.ID(req.PerformerID))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.AssignPerformer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RefusePerformer handles DELETE /api/v1/orders/:id/performer, the customer
// side of a refusal.
func (s *Server) RefusePerformer(c echo.Context) error {
	return s.refuse(c, commands.NewRefusePerformerByCustomerCommand)
}

// RefuseOrder handles POST /api/v1/orders/:id/refusal, the performer side.
func (s *Server) RefuseOrder(c echo.Context) error {
	return s.refuse(c, commands.NewRefuseOrderByPerformerCommand)
}

func (s *Server) refuse(
	c echo.Context, newCommand func(kernel.Caller, kernel.ID) (commands.RefusePerformerCommand, error),
) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := newCommand(caller, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.RefusePerformer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmOrderDone handles POST /api/v1/orders/:id/confirmation.
func (s *Server) ConfirmOrderDone(c echo.Context) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req ConfirmOrderDoneRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewConfirmOrderDoneCommand(caller, orderID, req.Done, req.OnCheck)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ConfirmOrderDone.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestCorrection handles POST /api/v1/orders/:id/corrections.
func (s *Server) RequestCorrection(c echo.Context) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req RequestCorrectionRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRequestCorrectionCommand(caller, orderID, kernel.ID(req.PerformerID))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.RequestCorrection.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateReply handles POST /api/v1/orders/:id/replies.
func (s *Server) CreateReply(c echo.Context) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateReplyCommand(caller, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := s.handlers.CreateReply.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Int64()})
}

// DeleteReply handles DELETE /api/v1/replies/:id.
func (s *Server) DeleteReply(c echo.Context) error {
	return s.deleteReply(c, commands.NewDeleteReplyCommand)
}

// DeleteCompletedReply handles DELETE /api/v1/replies/:id/completed.
func (s *Server) DeleteCompletedReply(c echo.Context) error {
	return s.deleteReply(c, commands.NewDeleteCompletedReplyCommand)
}

func (s *Server) deleteReply(
	c echo.Context, newCommand func(kernel.Caller, kernel.ID) (commands.DeleteReplyCommand, error),
) error {
	caller, replyID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := newCommand(caller, replyID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteReply.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkTaskDone handles POST /api/v1/replies/:id/done.
func (s *Server) MarkTaskDone(c echo.Context) error {
	caller, replyID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewMarkTaskDoneCommand(caller, replyID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.MarkTaskDone.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateReview handles POST /api/v1/orders/:id/reviews.
func (s *Server) CreateReview(c echo.Context) error {
	caller, orderID, err := callerAndID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req CreateReviewRequest
	if err = bindAndValidate(c, &req); err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateReviewCommand(caller, orderID, review.Body{Name: req.Name, Rate: req.Rate, Text: req.Text})
	if err != nil {
		return s.fail(c, err)
	}
	id, err := s.handlers.CreateReview.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Int64()})
}

// ListCustomerOrders handles GET /api/v1/customer/orders.
func (s *Server) ListCustomerOrders(c echo.Context) error {
	caller, err := CallerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListCustomerOrdersQuery(caller)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// ListPerformerOrders handles GET /api/v1/performer/orders.
func (s *Server) ListPerformerOrders(c echo.Context) error {
	caller, err := CallerFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListPerformerOrdersQuery(caller)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListPerformerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(views))
}

// ListPerformerReviews handles GET /api/v1/performers/:id/reviews.
func (s *Server) ListPerformerReviews(c echo.Context) error {
	performerID, err := kernel.ParseID(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListPerformerReviewsQuery(performerID)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListPerformerReviews.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResponses(views))
}
