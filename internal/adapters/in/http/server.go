// Package http exposes the parcel operations over an echo REST API.
package http

import (
	"net/http"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/model/vehicle"
	"parcelhub/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Server wires the HTTP routes to the application use cases.
type Server struct {
	tariff *services.Tariff

	// Command handlers
	createParcelHandler     commands.CreateParcelCommandHandler
	applyParcelEventHandler commands.ApplyParcelEventCommandHandler
	confirmPaymentHandler   commands.ConfirmParcelPaymentCommandHandler
	assignParcelHandler     commands.AssignParcelCommandHandler
	unassignParcelHandler   commands.UnassignParcelCommandHandler
	consolidateHandler      commands.ConsolidateShipmentCommandHandler
	assignTransportHandler  commands.AssignShipmentTransportCommandHandler
	advanceShipmentHandler  commands.AdvanceShipmentCommandHandler

	// Query handlers
	parcelStatusHandler    queries.GetParcelStatusQueryHandler
	scheduleSummaryHandler queries.GetScheduleSummaryQueryHandler
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(
	tariff *services.Tariff,
	createParcelHandler commands.CreateParcelCommandHandler,
	applyParcelEventHandler commands.ApplyParcelEventCommandHandler,
	confirmPaymentHandler commands.ConfirmParcelPaymentCommandHandler,
	assignParcelHandler commands.AssignParcelCommandHandler,
	unassignParcelHandler commands.UnassignParcelCommandHandler,
	consolidateHandler commands.ConsolidateShipmentCommandHandler,
	assignTransportHandler commands.AssignShipmentTransportCommandHandler,
	advanceShipmentHandler commands.AdvanceShipmentCommandHandler,
	parcelStatusHandler queries.GetParcelStatusQueryHandler,
	scheduleSummaryHandler queries.GetScheduleSummaryQueryHandler,
) *Server {
	return &Server{
		tariff:                  tariff,
		createParcelHandler:     createParcelHandler,
		applyParcelEventHandler: applyParcelEventHandler,
		confirmPaymentHandler:   confirmPaymentHandler,
		assignParcelHandler:     assignParcelHandler,
		unassignParcelHandler:   unassignParcelHandler,
		consolidateHandler:      consolidateHandler,
		assignTransportHandler:  assignTransportHandler,
		advanceShipmentHandler:  advanceShipmentHandler,
		parcelStatusHandler:     parcelStatusHandler,
		scheduleSummaryHandler:  scheduleSummaryHandler,
	}
}

// RegisterRoutes mounts all routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/quote", s.GetQuote)

	v1.POST("/parcels", s.CreateParcel)
	v1.GET("/parcels/:trackingNo/status", s.GetParcelStatus)
	v1.POST("/parcels/:parcelId/events", s.ApplyParcelEvent)
	v1.POST("/parcels/:parcelId/payment/confirmation", s.ConfirmParcelPayment)

	v1.POST("/schedules/assignments", s.AssignParcel)
	v1.DELETE("/schedules/:scheduleId/parcels/:parcelId", s.UnassignParcel)
	v1.GET("/vehicles/:vehicleId/schedules", s.GetScheduleSummary)

	v1.POST("/shipments", s.ConsolidateShipment)
	v1.POST("/shipments/:shipmentId/transport", s.AssignShipmentTransport)
	v1.POST("/shipments/:shipmentId/advance", s.AdvanceShipment)
}

// GetQuote handles GET /api/v1/quote - prices a route without placing an order.
func (s *Server) GetQuote(ctx echo.Context) error {
	size, err := kernel.ItemSizeFromString(ctx.QueryParam("size"))
	if err != nil {
		return errorJSON(ctx, err)
	}
	method, err := parcel.ShippingMethodFromString(ctx.QueryParam("method"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	quote, err := s.tariff.QuoteRoute(size, ctx.QueryParam("from"), ctx.QueryParam("to"), method)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteResponse{
		From:       ctx.QueryParam("from"),
		To:         ctx.QueryParam("to"),
		Size:       size.String(),
		Method:     method.String(),
		DistanceKm: quote.DistanceKm,
		Amount:     quote.Amount,
	})
}

// CreateParcel handles POST /api/v1/parcels - places a parcel order.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var req createParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	size, err := kernel.ItemSizeFromString(req.Size)
	if err != nil {
		return errorJSON(ctx, err)
	}
	submittingType, err := parcel.SubmittingTypeFromString(req.SubmittingType)
	if err != nil {
		return errorJSON(ctx, err)
	}
	receivingType, err := parcel.ReceivingTypeFromString(req.ReceivingType)
	if err != nil {
		return errorJSON(ctx, err)
	}
	shippingMethod, err := parcel.ShippingMethodFromString(req.ShippingMethod)
	if err != nil {
		return errorJSON(ctx, err)
	}
	paymentMethod, err := parcel.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return errorJSON(ctx, err)
	}
	paidBy, err := parcel.PayerFromString(req.PaidBy)
	if err != nil {
		return errorJSON(ctx, err)
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(
		parcelID,
		req.ItemType,
		size,
		submittingType,
		receivingType,
		shippingMethod,
		commands.ContactDetails{Name: req.Sender.Name, Phone: req.Sender.Phone, Address: req.Sender.Address},
		commands.ContactDetails{Name: req.Receiver.Name, Phone: req.Receiver.Phone, Address: req.Receiver.Address},
		req.FromBranch,
		req.ToBranch,
		paymentMethod,
		paidBy,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	trackingNo, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createParcelResponse{
		ParcelID:   parcelID.String(),
		TrackingNo: trackingNo,
	})
}

// GetParcelStatus handles GET /api/v1/parcels/:trackingNo/status.
func (s *Server) GetParcelStatus(ctx echo.Context) error {
	query, err := queries.NewGetParcelStatusQuery(ctx.Param("trackingNo"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	response, err := s.parcelStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApplyParcelEvent handles POST /api/v1/parcels/:parcelId/events - advances
// the parcel lifecycle by one event.
func (s *Server) ApplyParcelEvent(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req applyEventRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	event, err := parcel.EventFromString(req.Event)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewApplyParcelEventCommand(parcelID, event)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.applyParcelEventHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponse{
		Status:    result.NewStatus.String(),
		Timestamp: result.Timestamp,
	})
}

// ConfirmParcelPayment handles POST /api/v1/parcels/:parcelId/payment/confirmation.
func (s *Server) ConfirmParcelPayment(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewConfirmParcelPaymentCommand(parcelID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignParcel handles POST /api/v1/schedules/assignments - places a parcel
// into a vehicle schedule bucket.
func (s *Server) AssignParcel(ctx echo.Context) error {
	var req assignParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	parcelID, err := kernel.UUIDFromString(req.ParcelID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(ctx, "date must be formatted as "+dateLayout)
	}
	slot, err := vehicle.TimeSlotFromString(req.Slot)
	if err != nil {
		return errorJSON(ctx, err)
	}
	scheduleType, err := vehicle.ScheduleTypeFromString(req.ScheduleType)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignParcelCommand(parcelID, vehicleID, date, slot, scheduleType)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.assignParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignmentResponse{
		ScheduleID: result.ScheduleID.String(),
		VolumePct:  result.VolumePct,
		WeightPct:  result.WeightPct,
	})
}

// UnassignParcel handles DELETE /api/v1/schedules/:scheduleId/parcels/:parcelId.
func (s *Server) UnassignParcel(ctx echo.Context) error {
	scheduleID, err := kernel.UUIDFromString(ctx.Param("scheduleId"))
	if err != nil {
		return errorJSON(ctx, err)
	}
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewUnassignParcelCommand(scheduleID, parcelID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.unassignParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetScheduleSummary handles GET /api/v1/vehicles/:vehicleId/schedules.
func (s *Server) GetScheduleSummary(ctx echo.Context) error {
	vehicleID, err := kernel.UUIDFromString(ctx.Param("vehicleId"))
	if err != nil {
		return errorJSON(ctx, err)
	}
	from, err := time.Parse(dateLayout, ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, "from must be formatted as "+dateLayout)
	}
	to, err := time.Parse(dateLayout, ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, "to must be formatted as "+dateLayout)
	}

	query, err := queries.NewGetScheduleSummaryQuery(vehicleID, from, to)
	if err != nil {
		return errorJSON(ctx, err)
	}

	summaries, err := s.scheduleSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}

// ConsolidateShipment handles POST /api/v1/shipments - builds a shipment out
// of parcels waiting at a hub.
func (s *Server) ConsolidateShipment(ctx echo.Context) error {
	var req consolidateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	parcelIDs := make([]kernel.UUID, 0, len(req.ParcelIDs))
	for _, raw := range req.ParcelIDs {
		parcelID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return errorJSON(ctx, err)
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewConsolidateShipmentCommand(shipmentID, parcelIDs, req.SourceBranch, req.DestinationBranch)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.consolidateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, consolidateShipmentResponse{
		ShipmentID: shipmentID.String(),
	})
}

// AssignShipmentTransport handles POST /api/v1/shipments/:shipmentId/transport.
func (s *Server) AssignShipmentTransport(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req assignTransportRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignShipmentTransportCommand(shipmentID, vehicleID, req.DriverID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.assignTransportHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceShipment handles POST /api/v1/shipments/:shipmentId/advance - moves
// the shipment one step along its lifecycle, cascading to its parcels.
func (s *Server) AdvanceShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req advanceShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := shipment.StatusFromString(req.Target)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, target)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.advanceShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, advanceShipmentResponse{
		Status:          result.Status.String(),
		ReleasedVehicle: result.ReleasedVehicle,
	})
}
