package http

import (
	"errors"
	"net/http"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type quoteResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Size       string  `json:"size"`
	Method     string  `json:"method"`
	DistanceKm float64 `json:"distanceKm"`
	Amount     int64   `json:"amount"`
}

type contactDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type createParcelRequest struct {
	ItemType       string         `json:"itemType"`
	Size           string         `json:"size"`
	SubmittingType string         `json:"submittingType"`
	ReceivingType  string         `json:"receivingType"`
	ShippingMethod string         `json:"shippingMethod"`
	Sender         contactDetails `json:"sender"`
	Receiver       contactDetails `json:"receiver"`
	FromBranch     string         `json:"fromBranch"`
	ToBranch       string         `json:"toBranch"`
	PaymentMethod  string         `json:"paymentMethod"`
	PaidBy         string         `json:"paidBy"`
}

type createParcelResponse struct {
	ParcelID   string `json:"parcelId"`
	TrackingNo string `json:"trackingNo"`
}

type applyEventRequest struct {
	Event string `json:"event"`
}

type transitionResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type assignParcelRequest struct {
	ParcelID     string `json:"parcelId"`
	VehicleID    string `json:"vehicleId"`
	Date         string `json:"date"`
	Slot         string `json:"slot"`
	ScheduleType string `json:"scheduleType"`
}

type assignmentResponse struct {
	ScheduleID string  `json:"scheduleId"`
	VolumePct  float64 `json:"volumePct"`
	WeightPct  float64 `json:"weightPct"`
}

type consolidateShipmentRequest struct {
	ParcelIDs         []string `json:"parcelIds"`
	SourceBranch      string   `json:"sourceBranch"`
	DestinationBranch string   `json:"destinationBranch"`
}

type consolidateShipmentResponse struct {
	ShipmentID string `json:"shipmentId"`
}

type assignTransportRequest struct {
	VehicleID string `json:"vehicleId"`
	DriverID  string `json:"driverId"`
}

type advanceShipmentRequest struct {
	Target string `json:"target"`
}

type advanceShipmentResponse struct {
	Status          string `json:"status"`
	ReleasedVehicle string `json:"releasedVehicle,omitempty"`
}

// statusOf maps application errors onto HTTP status codes. Contested resources
// (capacity, availability, concurrent schedule writes, lifecycle order) all
// answer 409 so clients retry or re-read instead of treating them as input
// mistakes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrRouteNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrVehicleUnavailable),
		errors.Is(err, errs.ErrDriverUnavailable),
		errors.Is(err, errs.ErrConsistencyViolation),
		errors.Is(err, shipment.ErrShipmentIsSealed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, err error) error {
	code := statusOf(err)
	return ctx.JSON(code, errorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
