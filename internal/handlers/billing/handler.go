package billing

import (
	"net/http"
	"strconv"

	"hms/infras/otel"
	"hms/internal/domains/billing/model/dto"
	"hms/internal/domains/billing/service"
	"hms/shared/constant"
	gDto "hms/shared/dto"
	"hms/shared/failure"
	"hms/shared/validator"
	"hms/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Billing
	otel    otel.Otel
}

func New(service service.Billing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bills", func(routerGroup chi.Router) {
		routerGroup.Post("/preview", handler.PreviewBill)
		routerGroup.Post("/", handler.CreateBill)
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/{id}", handler.GetBillByID)
	})

	router.Route("/discounts", func(routerGroup chi.Router) {
		routerGroup.Get("/{code}", handler.GetDiscountByCode)
	})
}

// PreviewBill computes a bill without persisting anything.
// @Summary Preview a customer's bill
// @Description Compute the invoice for a customer's stay, including service charges and an optional discount, without creating it.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.BuildBillRequest true "Build Bill Request"
// @Success 200 {object} dto.BillResponse "Computed bill"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/preview [post]
func (handler *Handler) PreviewBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PreviewBill")
	defer scope.End()

	req := dto.BuildBillRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.BuildBill(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build bill")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill computed successfully")

	response.WithJSON(w, http.StatusOK, bill)
}

// CreateBill computes a bill and submits it upstream as a pending invoice.
// @Summary Create an invoice for a customer's stay
// @Description Compute the invoice and persist it through the invoice backend.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CreateBillRequest true "Create Bill Request"
// @Success 201 {object} dto.BillResponse "Created bill"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills [post]
func (handler *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBill")
	defer scope.End()

	req := dto.CreateBillRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.CreateBill(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create bill")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill created successfully")

	response.WithJSON(w, http.StatusCreated, bill)
}

// GetBills lists invoices in the normalized display shape.
// @Summary List invoices
// @Description Retrieve all invoices from the invoice backend, normalized and paginated.
// @Tags Billing
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetInvoicesResponse "Normalized invoices"
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/bills [get]
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	invoices, err := handler.service.GetBills(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bills retrieved successfully")

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetBillByID retrieves one invoice with its billed service usage.
// @Summary Get an invoice by ID
// @Description Retrieve one invoice in the normalized display shape, with the service usage billed on it.
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceDetailResponse "Invoice details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id} [get]
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil || id <= 0 {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequestFromString("invoice id must be a positive integer"))

		return
	}

	invoice, err := handler.service.GetBill(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved successfully")

	response.WithJSON(w, http.StatusOK, invoice)
}

// GetDiscountByCode validates a discount code.
// @Summary Resolve a discount code
// @Description Validate a discount code and return its kind and value. Invalid codes return the rejection reason.
// @Tags Billing
// @Accept json
// @Produce json
// @Param code path string true "Discount code"
// @Success 200 {object} dto.DiscountResponse "Discount details"
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/discounts/{code} [get]
func (handler *Handler) GetDiscountByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDiscountByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)
	if code == "" {
		response.WithError(w, failure.BadRequestFromString("discount code is required"))

		return
	}

	discount, err := handler.service.ResolveDiscountByCode(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("code", code).Msg("failed to resolve discount code")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Discount code resolved successfully")

	response.WithJSON(w, http.StatusOK, discount)
}
