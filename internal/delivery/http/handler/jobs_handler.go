package handler

import (
	"net/http"

	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/response"
)

// JobsHandler exposes the maintenance jobs that a scheduler (cron, k8s
// CronJob) invokes over HTTP. Both endpoints are idempotent.
type JobsHandler struct {
	recurrenceUsecase usecase.RecurrenceUsecase
	reminderUsecase   usecase.ReminderUsecase
}

func NewJobsHandler(recurrenceUsecase usecase.RecurrenceUsecase, reminderUsecase usecase.ReminderUsecase) *JobsHandler {
	return &JobsHandler{
		recurrenceUsecase: recurrenceUsecase,
		reminderUsecase:   reminderUsecase,
	}
}

func (h *JobsHandler) ExtendRecurrences(w http.ResponseWriter, r *http.Request) {
	result, err := h.recurrenceUsecase.ExtendIndefiniteRecurrences(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to extend recurrences")
		return
	}

	response.Success(w, http.StatusOK, "Recurrences extended successfully", result)
}

func (h *JobsHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.reminderUsecase.SendReminders(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to send reminders")
		return
	}

	response.Success(w, http.StatusOK, "Reminders dispatched successfully", map[string]int{
		"reminders_sent": sent,
	})
}
