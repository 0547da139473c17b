package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"examsync/config"
	"examsync/infras/kafka"
	"examsync/infras/otel"
	"examsync/infras/s3"
	roomModel "examsync/internal/domains/room/model"
	roomRepo "examsync/internal/domains/room/repository"
	"examsync/internal/domains/schedule/model"
	"examsync/internal/domains/schedule/model/dto"
	"examsync/internal/domains/schedule/repository"
	"examsync/internal/domains/schedule/timetable"
	"examsync/shared"
	"examsync/shared/cache"
	"examsync/shared/constant"
	gDto "examsync/shared/dto"
	"examsync/shared/failure"
	"examsync/shared/timezone"
)

const (
	cacheGetSchedule    = "schedule:get"
	cacheGetAllSchedule = "schedule:gets"
	cacheCountSchedule  = "schedule:count"
	cacheTimetable      = "schedule:timetable"
	cacheCourseColors   = "schedule:colors"
)

type Schedule interface {
	Create(ctx context.Context, req dto.CreateScheduleRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSchedulesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
	Timetable(ctx context.Context, req dto.TimetableRequest) (dto.TimetableResponse, error)
	Export(ctx context.Context, req dto.TimetableRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repo     repository.Schedule
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	events   kafka.Client
	storage  s3.S3
}

func New(repo repository.Schedule, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events kafka.Client, storage s3.S3) Schedule {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		events:   events,
		storage:  storage,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateScheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	schedule, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse schedule request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !schedule.ExamStart.Before(schedule.ExamEnd) {
		return failure.BadRequestFromString("exam_start must be before exam_end") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, schedule); err != nil {
		log.Error().Err(err).Msg("failed to create schedule")

		return fmt.Errorf("failed to create schedule: %w", err)
	}

	go s.afterMutation(ctx, "created", schedule)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSchedulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSchedule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedules")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return res, fmt.Errorf("failed to get schedules: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedules to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSchedule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSchedule, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	schedule, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return res, fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == constant.Empty {
		return res, failure.NotFound("schedule not found") // nolint:wrapcheck
	}

	res.FromModel(schedule)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	schedule, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == constant.Empty {
		log.Error().Msg("schedule not found")

		return failure.NotFound("schedule not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete schedule")

		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSchedule, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}
	}()

	go s.afterMutation(ctx, "deleted", schedule)

	return nil
}

// Timetable lays the schedule set out as a conflict-free grid: one row per
// half-hour slot, one column per room on the requested page, merged cells for
// exams spanning several slots. The page index is clamped to the valid range
// before the room columns are selected.
func (s *serviceImpl) Timetable(ctx context.Context, req dto.TimetableRequest) (res dto.TimetableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Timetable")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheTimetable, req, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for timetable")

		return res, nil
	}

	models, err := s.loadSet(ctx, req.CollegeName)
	if err != nil {
		return res, err
	}

	bookings := dto.ToBookings(models)

	res.TotalSchedules = len(models)
	if len(models) > 0 {
		res.CollegeName = models[0].CollegeName
		res.ExamPeriod = models[0].ExamPeriod
		res.Term = models[0].Term
		res.Semester = models[0].Semester
		res.AcademicYear = models[0].AcademicYear
	}

	res.ExamDates = timetable.UniqueDates(bookings)

	selectedDate := req.ExamDate
	if selectedDate == "" && len(res.ExamDates) > 0 {
		selectedDate = res.ExamDates[0]
	}

	res.SelectedDate = selectedDate

	pageSize := req.RoomColumns
	if pageSize < 1 {
		pageSize = timetable.DefaultRoomColumns
	}

	rooms := timetable.UniqueRooms(bookings)

	_, totalPages := timetable.PageRooms(rooms, pageSize, 0)

	page := req.Page
	if page >= totalPages {
		page = totalPages - 1
	}

	if page < 0 {
		page = 0
	}

	pageRooms, totalPages := timetable.PageRooms(rooms, pageSize, page)

	res.Page = page
	res.TotalPages = totalPages

	colors, err := s.courseColors(ctx, req.CollegeName, bookings)
	if err != nil {
		return res, err
	}

	buildingIndex, fallback := s.buildingIndex(ctx, bookings)

	grid := timetable.BuildGrid(timetable.ForDate(bookings, selectedDate), pageRooms, timetable.DefaultSlots())
	groups := timetable.GroupRoomsByBuilding(pageRooms, buildingIndex, fallback)

	res.FromGrid(grid, groups, colors)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save timetable to cache")
		}
	}()

	return res, nil
}

// Export renders the schedule set as CSV, uploads it to object storage and
// returns a time-limited download URL.
func (s *serviceImpl) Export(ctx context.Context, req dto.TimetableRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.loadSet(ctx, req.CollegeName)
	if err != nil {
		return res, err
	}

	if len(models) == 0 {
		return res, failure.NotFound("no schedules to export") // nolint:wrapcheck
	}

	data, err := exportCSV(models)
	if err != nil {
		log.Error().Err(err).Msg("failed to render schedule export")

		return res, fmt.Errorf("failed to render schedule export: %w", err)
	}

	fileName := fmt.Sprintf("exam-schedules-%s.csv", timezone.Now().Format("20060102-150405"))

	key, err := s.storage.UploadFileBytes(ctx, constant.Empty, constant.ExportDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload schedule export")

		return res, fmt.Errorf("failed to upload schedule export: %w", err)
	}

	expiresIn := time.Duration(s.cfg.External.S3.PresignExpireMin) * time.Minute

	url, err := s.storage.PresignedURL(ctx, constant.Empty, key, expiresIn)
	if err != nil {
		log.Error().Err(err).Msg("failed to presign schedule export")

		return res, fmt.Errorf("failed to presign schedule export: %w", err)
	}

	res.Key = key
	res.URL = url
	res.ExpiresIn = int64(expiresIn.Seconds())

	return res, nil
}

// loadSet fetches the full schedule set ordered by exam date, optionally
// restricted to one college. The timetable always derives from the whole set
// so colors and room pagination stay stable across dates.
func (s *serviceImpl) loadSet(ctx context.Context, collegeName string) ([]model.ExamSchedule, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if collegeName != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCollegeName,
			Operator: gDto.FilterOperatorEq,
			Value:    collegeName,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldExamDate,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load schedule set")

		return nil, fmt.Errorf("failed to load schedule set: %w", err)
	}

	return models, nil
}

// courseColors returns the derived course color map, cached wholesale and
// recomputed only after the schedule set changes.
func (s *serviceImpl) courseColors(ctx context.Context, collegeName string, bookings []timetable.Booking) (map[string]string, error) {
	cacheKey := shared.BuildCacheKey(cacheCourseColors, collegeName)

	colors := map[string]string{}

	err := s.cache.Get(ctx, cacheKey, &colors)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for course colors")

		return colors, nil
	}

	colors = timetable.AssignCourseColors(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, colors, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save course colors to cache")
		}
	}()

	return colors, nil
}

// buildingIndex maps rooms to buildings from the booking set itself, then
// fills gaps from the rooms table. The fallback is the first building name in
// the set.
func (s *serviceImpl) buildingIndex(ctx context.Context, bookings []timetable.Booking) (map[string]string, string) {
	index := timetable.BuildingIndex(bookings)

	fallback := ""
	for _, b := range bookings {
		if b.BuildingName != "" {
			fallback = b.BuildingName

			break
		}
	}

	missing := []string{}
	for room, building := range index {
		if building == "" {
			missing = append(missing, room)
		}
	}

	if len(missing) == 0 {
		return index, fallback
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldRoomID,
				Operator: gDto.FilterOperatorIn,
				Value:    missing,
				Table:    roomModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve room buildings, using fallback")

		return index, fallback
	}

	for _, room := range rooms {
		if index[room.RoomID] == "" {
			index[room.RoomID] = room.BuildingName
		}
	}

	return index, fallback
}

// afterMutation invalidates every derived cache and notifies downstream
// consumers that the schedule set changed.
func (s *serviceImpl) afterMutation(ctx context.Context, action string, schedule model.ExamSchedule) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
	shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
	shared.InvalidateCaches(c, s.cache, cacheTimetable)
	shared.InvalidateCaches(c, s.cache, cacheCourseColors)

	event := dto.ScheduleEvent{
		Action:     action,
		ScheduleID: schedule.ID,
		CourseID:   schedule.CourseID,
		ExamDate:   schedule.ExamDate.Format("2006-01-02"),
		RoomID:     schedule.RoomID,
		OccurredAt: timezone.Now().Format(time.RFC3339),
	}

	err := s.events.SendMessages(c, constant.KafkaTopicScheduleUpdated, kafka.Message{
		Key:   schedule.ID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to publish schedule event")
	}
}

func exportCSV(models []model.ExamSchedule) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := []string{
		"course_id", "section_name", "exam_date", "exam_start", "exam_end",
		"room_id", "building_name", "instructor", "proctor",
	}

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, mod := range models {
		record := []string{
			mod.CourseID,
			mod.SectionName,
			mod.ExamDate.Format("2006-01-02"),
			timetable.FormatTo12Hour(mod.ExamStart.Format("15:04")),
			timetable.FormatTo12Hour(mod.ExamEnd.Format("15:04")),
			mod.RoomID,
			mod.BuildingName,
			mod.Instructor,
			mod.Proctor,
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
