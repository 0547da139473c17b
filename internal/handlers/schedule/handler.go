package schedule

import (
	"net/http"

	"examsync/infras/otel"
	"examsync/internal/domains/schedule/model"
	"examsync/internal/domains/schedule/model/dto"
	"examsync/internal/domains/schedule/service"
	"examsync/shared"
	"examsync/shared/constant"
	gDto "examsync/shared/dto"
	"examsync/shared/failure"
	"examsync/shared/validator"
	"examsync/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedules", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSchedule)
		routerGroup.Get("/", handler.GetSchedules)
		routerGroup.Get("/timetable", handler.GetTimetable)
		routerGroup.Get("/export", handler.ExportTimetable)
		routerGroup.Get("/{id}", handler.GetScheduleByID)
		routerGroup.Delete("/{id}", handler.DeleteSchedule)
	})
}

// CreateSchedule handles the creation of a new exam schedule entry.
// @Summary Create a new exam schedule
// @Description Create a new exam schedule entry with the provided details.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Message "Schedule created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [post]
// @Security BearerAuth
func (handler *Handler) CreateSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSchedule")
	defer scope.End()

	req := dto.CreateScheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create schedule")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Schedule created successfully")
}

// GetSchedules retrieves exam schedule entries based on query parameters.
// @Summary Get all exam schedules
// @Description Retrieve exam schedules with optional filtering and pagination.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param course_id query string false "Filter by course identifier"
// @Param section_name query string false "Filter by section name"
// @Param college_name query string false "Filter by college"
// @Param exam_date query string false "Filter by exam date (YYYY-MM-DD)"
// @Param room_id query string false "Filter by room"
// @Success 200 {object} dto.GetSchedulesResponse "List of schedules"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [get]
func (handler *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCourseID,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldCourseID),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSectionName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldSectionName),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCollegeName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldCollegeName),
				Table:    model.TableName,
			},
		},
	}

	if examDate := r.URL.Query().Get(model.FieldExamDate); examDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldExamDate,
			Operator: gDto.FilterOperatorEq,
			Value:    examDate,
			Table:    model.TableName,
		})
	}

	if roomID := r.URL.Query().Get(model.FieldRoomID); roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	schedules, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedules")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedules retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedules)
}

// GetTimetable renders the exam timetable grid for one exam date.
// @Summary Get the exam timetable grid
// @Description Build the half-hour timetable grid for an exam date, paged by room columns.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param exam_date query string false "Exam date (YYYY-MM-DD), defaults to the earliest scheduled date"
// @Param college_name query string false "Restrict to one college"
// @Param page query integer false "Zero-based room page"
// @Param room_columns query integer false "Room columns per page"
// @Success 200 {object} dto.TimetableResponse "Rendered timetable"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/timetable [get]
func (handler *Handler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimetable")
	defer scope.End()

	req, err := timetableRequestFromQuery(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse timetable query")

		response.WithError(w, err)

		return
	}

	timetable, err := handler.service.Timetable(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build timetable")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Timetable built successfully")

	response.WithJSON(w, http.StatusOK, timetable)
}

// ExportTimetable exports the exam schedule for one date as a CSV object.
// @Summary Export the exam timetable as CSV
// @Description Export the schedules of an exam date to object storage and return a presigned URL.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param exam_date query string false "Exam date (YYYY-MM-DD), defaults to the earliest scheduled date"
// @Param college_name query string false "Restrict to one college"
// @Success 200 {object} dto.ExportResponse "Export location"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/export [get]
// @Security BearerAuth
func (handler *Handler) ExportTimetable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportTimetable")
	defer scope.End()

	req, err := timetableRequestFromQuery(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse export query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Export(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export timetable")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Timetable exported successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetScheduleByID retrieves a schedule entry by its ID.
// @Summary Get a schedule by ID
// @Description Retrieve a schedule entry by its unique identifier.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse "Schedule details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [get]
func (handler *Handler) GetScheduleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScheduleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	schedule, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedule)
}

// DeleteSchedule deletes a schedule entry by its ID.
// @Summary Delete a schedule by ID
// @Description Delete a schedule entry using its unique identifier.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Message "Schedule deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete schedule")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Schedule deleted successfully")
}

func timetableRequestFromQuery(r *http.Request) (dto.TimetableRequest, error) {
	req := dto.TimetableRequest{
		ExamDate:    r.URL.Query().Get("exam_date"),
		CollegeName: r.URL.Query().Get("college_name"),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := shared.ConvertStringToInt(pageStr)
		if err != nil {
			return req, failure.BadRequestFromString("page must be an integer") // nolint:wrapcheck
		}

		req.Page = page
	}

	if columnsStr := r.URL.Query().Get("room_columns"); columnsStr != "" {
		columns, err := shared.ConvertStringToInt(columnsStr)
		if err != nil {
			return req, failure.BadRequestFromString("room_columns must be an integer") // nolint:wrapcheck
		}

		req.RoomColumns = columns
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return req, err
	}

	return req, nil
}
